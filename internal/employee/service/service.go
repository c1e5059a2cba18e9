// Package service orchestrates employee workflows. The registration workflow
// runs strictly forward: validate, begin transaction, stage the write,
// compose the event, publish, commit. Publish happens before commit so a
// broker failure still rolls the registration back; the residual risk of a
// published event whose transaction then fails to commit is a known gap of
// this design.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	empMetrics "employees/internal/employee/metrics"
	"employees/internal/employee/models"
	"employees/internal/notification"
	id "employees/pkg/domain"
	dErrors "employees/pkg/domain-errors"
	"employees/pkg/email"
	"employees/pkg/platform/sentinel"
	"employees/pkg/requestcontext"
)

// Topics names the broker topics this service publishes to.
type Topics struct {
	EmployeeCreated  string
	MoveToConference string
}

// Service orchestrates employee lifecycle and conference registration.
type Service struct {
	employees   EmployeeStore
	conferences ConferenceStore
	tx          StoreTx
	producer    Producer
	composer    *notification.Composer
	topics      Topics
	logger      *slog.Logger
	metrics     *empMetrics.Metrics
	tracer      trace.Tracer
}

type serviceConfig struct {
	logger  *slog.Logger
	metrics *empMetrics.Metrics
}

// Option configures the Service.
type Option func(*serviceConfig)

// WithLogger sets the logger used for workflow diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *empMetrics.Metrics) Option {
	return func(c *serviceConfig) {
		c.metrics = m
	}
}

// New creates the employee service. All collaborators are required except
// the options.
func New(
	employees EmployeeStore,
	conferences ConferenceStore,
	tx StoreTx,
	producer Producer,
	composer *notification.Composer,
	topics Topics,
	opts ...Option,
) (*Service, error) {
	if employees == nil {
		return nil, errors.New("employee store is required")
	}
	if conferences == nil {
		return nil, errors.New("conference store is required")
	}
	if tx == nil {
		return nil, errors.New("store tx is required")
	}
	if producer == nil {
		return nil, errors.New("producer is required")
	}
	if composer == nil {
		return nil, errors.New("composer is required")
	}
	if topics.EmployeeCreated == "" || topics.MoveToConference == "" {
		return nil, errors.New("broker topics are required")
	}

	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	return &Service{
		employees:   employees,
		conferences: conferences,
		tx:          tx,
		producer:    producer,
		composer:    composer,
		topics:      topics,
		logger:      cfg.logger,
		metrics:     cfg.metrics,
		tracer:      otel.Tracer("employees/service"),
	}, nil
}

// SendToConference registers an employee for a conference and publishes the
// merch-delivery notification. Both effects commit together: a publish
// failure rolls back the registration.
func (s *Service) SendToConference(ctx context.Context, cmd models.SendToConferenceCommand) error {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "SendToConference", trace.WithAttributes(
		attribute.String("employee.id", cmd.EmployeeID.String()),
		attribute.String("conference.id", cmd.ConferenceID.String()),
		attribute.String("attendee.role", string(cmd.AsWhom)),
	))
	defer span.End()

	err := s.sendToConference(ctx, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementRegistrations()
		s.metrics.ObserveSendToConference(start)
	}
	s.logger.InfoContext(ctx, "employee registered for conference",
		"employee_id", cmd.EmployeeID,
		"conference_id", cmd.ConferenceID,
		"role", cmd.AsWhom,
	)
	return nil
}

func (s *Service) sendToConference(ctx context.Context, cmd models.SendToConferenceCommand) error {
	emp, err := s.employees.FindByID(ctx, cmd.EmployeeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeNotFound, "employee %s not found", cmd.EmployeeID)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "employee lookup failed")
	}

	now := requestcontext.Now(ctx)
	if _, err := s.conferences.FindOpen(ctx, cmd.ConferenceID, now); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Newf(dErrors.CodeNotFound,
				"conference %s not found or already ended", cmd.ConferenceID)
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "conference lookup failed")
	}

	// Uniqueness is per conference id. This read is a race under
	// concurrency; the storage primary key is the durable guard.
	if emp.IsRegisteredFor(cmd.ConferenceID) {
		return dErrors.Newf(dErrors.CodeConflict,
			"employee %s is already registered for conference %s", cmd.EmployeeID, cmd.ConferenceID)
	}

	return s.tx.RunInTx(ctx, func(store EmployeeStore) error {
		if err := emp.RegisterFor(cmd.ConferenceID); err != nil {
			return err
		}
		if err := store.Update(ctx, emp); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.Newf(dErrors.CodeConflict,
					"employee %s is already registered for conference %s", cmd.EmployeeID, cmd.ConferenceID)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "persist registration")
		}

		event, err := s.composer.ConferenceAttendance(emp, cmd.AsWhom)
		if err != nil {
			return err
		}
		return s.publish(ctx, s.topics.MoveToConference, cmd.EmployeeID.String(), event)
	})
}

// CreateEmployee persists a new employee and publishes the welcome-pack
// notification with the same stage-write, publish, commit ordering.
func (s *Service) CreateEmployee(ctx context.Context, cmd models.CreateEmployeeCommand) (*models.Employee, error) {
	ctx, span := s.tracer.Start(ctx, "CreateEmployee")
	defer span.End()

	emp, err := s.createEmployee(ctx, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementEmployeesCreated()
	}
	s.logger.InfoContext(ctx, "employee created", "employee_id", emp.ID)
	return emp, nil
}

func (s *Service) createEmployee(ctx context.Context, cmd models.CreateEmployeeCommand) (*models.Employee, error) {
	emp, err := newEmployee(cmd)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(store EmployeeStore) error {
		if _, err := store.Create(ctx, emp); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.Newf(dErrors.CodeConflict, "employee %q already exists", emp.Email)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "persist employee")
		}
		return s.publish(ctx, s.topics.EmployeeCreated, emp.ID.String(), s.composer.EmployeeCreated(emp))
	})
	if err != nil {
		return nil, err
	}
	return emp, nil
}

// GetEmployee loads an employee with its registration collection.
func (s *Service) GetEmployee(ctx context.Context, employeeID id.EmployeeID) (*models.Employee, error) {
	emp, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "employee %s not found", employeeID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "employee lookup failed")
	}
	return emp, nil
}

// newEmployee validates the create command and builds the aggregate. Missing
// name parts are derived from the email local part, matching how the HR
// import feed provisions accounts.
func newEmployee(cmd models.CreateEmployeeCommand) (*models.Employee, error) {
	addr := strings.TrimSpace(cmd.Email)
	if addr == "" || !strings.Contains(addr, "@") {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "a valid email is required")
	}
	size, err := models.ParseClothingSize(string(cmd.ClothingSize))
	if err != nil {
		return nil, err
	}

	first, last := cmd.FirstName, cmd.LastName
	if first == "" && last == "" {
		first, last = email.DeriveNameFromEmail(addr)
	}
	return &models.Employee{
		FirstName:    first,
		LastName:     last,
		MiddleName:   cmd.MiddleName,
		Email:        addr,
		ClothingSize: size,
	}, nil
}

func (s *Service) publish(ctx context.Context, topic, key string, event notification.Event) error {
	payload, err := event.Encode()
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode notification event")
	}
	if err := s.producer.Publish(ctx, topic, key, payload); err != nil {
		if s.metrics != nil {
			s.metrics.IncrementPublishFailures(topic)
		}
		s.logger.ErrorContext(ctx, "notification publish failed, rolling back",
			"topic", topic,
			"key", key,
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "publish notification event")
	}
	if s.metrics != nil {
		s.metrics.IncrementPublished(topic)
	}
	return nil
}
