package service

import (
	"context"
	"time"

	confModels "employees/internal/conference/models"
	"employees/internal/employee/models"
	id "employees/pkg/domain"
)

// EmployeeStore is the storage port for employee aggregates.
// Implementations return sentinel errors; the service translates them
// into coded domain errors.
type EmployeeStore interface {
	// FindByID loads an employee with its full registration collection.
	FindByID(ctx context.Context, employeeID id.EmployeeID) (*models.Employee, error)

	// Create persists a new employee and returns its assigned id.
	Create(ctx context.Context, emp *models.Employee) (id.EmployeeID, error)

	// Update persists the employee and any newly appended registrations.
	// A durable uniqueness constraint on (employee, conference) backs the
	// in-memory duplicate check under concurrency.
	Update(ctx context.Context, emp *models.Employee) error
}

// ConferenceStore is the storage port for conference lookups.
type ConferenceStore interface {
	// FindOpen returns the conference only if it exists and has not ended
	// by now. Absence and already-ended collapse into one not-found signal.
	FindOpen(ctx context.Context, conferenceID id.ConferenceID, now time.Time) (*confModels.Conference, error)
}

// StoreTx provides the transactional boundary for employee mutations.
// Implementations wrap a database transaction or, in-memory, staged writes.
// fn runs against a transaction-scoped store; a non-nil return rolls the
// transaction back, including any staged registration.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(store EmployeeStore) error) error
}

// Producer is the broker port. Publish must be safe for concurrent use and
// must honor ctx cancellation before acknowledgment.
type Producer interface {
	Publish(ctx context.Context, topic, key string, value []byte) error
}
