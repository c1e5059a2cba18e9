package notification

import (
	"math/rand/v2"

	"employees/internal/employee/models"
	dErrors "employees/pkg/domain-errors"
)

// Manager is a static pool entry eligible to issue merch. Read-only,
// process-wide, safe to share across concurrent workflow runs.
type Manager struct {
	Name  string
	Email string
}

// Composer derives notification events from post-transition employee state.
// It is a pure function of (employee, role, random draw) and performs no I/O.
type Composer struct {
	pool []Manager
	intn func(n int) int
}

// Option configures the Composer.
type Option func(*Composer)

// WithRand injects the random source used for manager selection.
// Tests use a deterministic draw; production keeps the default.
func WithRand(intn func(n int) int) Option {
	return func(c *Composer) {
		c.intn = intn
	}
}

// NewComposer creates a composer over the given manager pool.
// The pool must not be empty: every event names a manager.
func NewComposer(pool []Manager, opts ...Option) (*Composer, error) {
	if len(pool) == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "manager pool must not be empty")
	}
	c := &Composer{
		pool: pool,
		intn: rand.IntN,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ConferenceAttendance builds the merch-delivery event for a conference
// registration. An unrecognized role is a contract error and aborts the
// workflow before any commit.
func (c *Composer) ConferenceAttendance(emp *models.Employee, role models.AttendeeRole) (Event, error) {
	var merch MerchType
	switch role {
	case models.RoleListener:
		merch = MerchConferenceListenerPack
	case models.RoleSpeaker:
		merch = MerchConferenceSpeakerPack
	default:
		return Event{}, dErrors.Newf(dErrors.CodeInvalidInput, "unknown attendee role %q", role)
	}
	return c.compose(emp, EventTypeConferenceAttendance, merch), nil
}

// EmployeeCreated builds the welcome-pack event for a newly created employee.
func (c *Composer) EmployeeCreated(emp *models.Employee) Event {
	return c.compose(emp, EventTypeEmployeeCreated, MerchWelcomePack)
}

func (c *Composer) compose(emp *models.Employee, eventType EmployeeEventType, merch MerchType) Event {
	manager := c.pool[c.intn(len(c.pool))]
	return Event{
		EmployeeEmail: emp.Email,
		EmployeeName:  emp.FullName(),
		ManagerEmail:  manager.Email,
		ManagerName:   manager.Name,
		EventType:     eventType,
		Payload: MerchDeliveryPayload{
			MerchType:    merch,
			ClothingSize: emp.ClothingSize,
		},
	}
}

// DefaultManagerPool mirrors the statically configured issuing managers.
// Deployments override it through configuration.
var DefaultManagerPool = []Manager{
	{Name: "Ekaterina Kotova", Email: "e.kotova@employees.local"},
	{Name: "Pavel Morozov", Email: "p.morozov@employees.local"},
	{Name: "Anna Sazonova", Email: "a.sazonova@employees.local"},
}
