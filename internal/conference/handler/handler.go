// Package handler exposes conference administration over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"employees/internal/conference/models"
	id "employees/pkg/domain"
	dErrors "employees/pkg/domain-errors"
	"employees/pkg/platform/httputil"
)

// Store defines the conference operations the HTTP surface needs.
type Store interface {
	Create(ctx context.Context, conf *models.Conference) (id.ConferenceID, error)
}

// Handler handles conference endpoints.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// New creates a conference Handler.
func New(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts the conference routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/conferences", h.handleCreate)
}

type createConferenceRequest struct {
	Name   string    `json:"name"`
	EndsAt time.Time `json:"endsAt"`
}

type conferenceResponse struct {
	ID     id.ConferenceID `json:"id"`
	Name   string          `json:"name"`
	EndsAt time.Time       `json:"endsAt"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createConferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Name == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "conference name is required"))
		return
	}
	if req.EndsAt.IsZero() || !req.EndsAt.After(time.Now()) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "conference end time must be in the future"))
		return
	}

	conf := &models.Conference{Name: req.Name, EndsAt: req.EndsAt}
	if _, err := h.store.Create(ctx, conf); err != nil {
		h.logger.ErrorContext(ctx, "create conference failed", "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "persist conference"))
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, conferenceResponse{
		ID:     conf.ID,
		Name:   conf.Name,
		EndsAt: conf.EndsAt,
	})
}
