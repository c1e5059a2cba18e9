// Package handler exposes the employee workflows over HTTP. Handlers decode,
// delegate, and translate errors; business rules live in the service.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"employees/internal/employee/models"
	id "employees/pkg/domain"
	dErrors "employees/pkg/domain-errors"
	"employees/pkg/platform/httputil"
	"employees/pkg/requestcontext"
)

// Service defines the employee operations the HTTP surface needs.
type Service interface {
	CreateEmployee(ctx context.Context, cmd models.CreateEmployeeCommand) (*models.Employee, error)
	GetEmployee(ctx context.Context, employeeID id.EmployeeID) (*models.Employee, error)
	SendToConference(ctx context.Context, cmd models.SendToConferenceCommand) error
}

// Handler handles employee endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates an employee Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the employee routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/employees", h.handleCreate)
	r.Get("/employees/{employeeID}", h.handleGet)
	r.Post("/employees/{employeeID}/conferences", h.handleSendToConference)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	emp, err := h.service.CreateEmployee(ctx, models.CreateEmployeeCommand{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MiddleName:   req.MiddleName,
		Email:        req.Email,
		ClothingSize: models.ClothingSize(req.ClothingSize),
	})
	if err != nil {
		h.logWarn(ctx, "create employee failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toEmployeeResponse(emp))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employeeID, err := id.ParseEmployeeID(chi.URLParam(r, "employeeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	emp, err := h.service.GetEmployee(ctx, employeeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toEmployeeResponse(emp))
}

func (h *Handler) handleSendToConference(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	employeeID, err := id.ParseEmployeeID(chi.URLParam(r, "employeeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req sendToConferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.ConferenceID <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "conference id is required"))
		return
	}

	err = h.service.SendToConference(ctx, models.SendToConferenceCommand{
		EmployeeID:   employeeID,
		ConferenceID: id.ConferenceID(req.ConferenceID),
		AsWhom:       models.AttendeeRole(req.AsWhom),
	})
	if err != nil {
		h.logWarn(ctx, "send to conference failed", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logWarn(ctx context.Context, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"error", err.Error(),
		"code", string(dErrors.CodeOf(err)),
		"request_id", requestcontext.RequestID(ctx),
	)
}
