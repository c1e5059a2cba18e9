// Package store provides employee persistence. The in-memory variant mirrors
// the PostgreSQL contracts, including transactional staging, so services can
// be exercised without a database.
package store

import (
	"context"
	"sync"
	"time"

	"employees/internal/employee/models"
	"employees/internal/employee/service"
	id "employees/pkg/domain"
	dErrors "employees/pkg/domain-errors"
	"employees/pkg/platform/sentinel"
)

// defaultTxTimeout bounds in-memory transactions the same way the postgres
// runner bounds database transactions.
const defaultTxTimeout = 5 * time.Second

// Memory is an in-memory employee store with staged-write transactions:
// RunInTx clones current state, runs fn against the clone, and swaps the
// clone in only when fn succeeds. A failed publish therefore leaves the
// store untouched, matching rollback semantics.
type Memory struct {
	mu        sync.Mutex
	nextID    int64
	employees map[id.EmployeeID]*models.Employee
}

// NewMemory creates an empty in-memory employee store.
func NewMemory() *Memory {
	return &Memory{
		nextID:    1,
		employees: make(map[id.EmployeeID]*models.Employee),
	}
}

// FindByID returns a deep copy so callers can mutate freely before Update.
func (m *Memory) FindByID(_ context.Context, employeeID id.EmployeeID) (*models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	emp, ok := m.employees[employeeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return emp.Clone(), nil
}

// Create assigns an id when unset and stores a copy.
func (m *Memory) Create(_ context.Context, emp *models.Employee) (id.EmployeeID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return createIn(m.employees, &m.nextID, emp)
}

// Update replaces the stored employee.
func (m *Memory) Update(_ context.Context, emp *models.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return updateIn(m.employees, emp)
}

// RunInTx implements service.StoreTx with staged writes.
func (m *Memory) RunInTx(ctx context.Context, fn func(store service.EmployeeStore) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTxTimeout)
		defer cancel()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	staged := make(map[id.EmployeeID]*models.Employee, len(m.employees))
	for k, v := range m.employees {
		staged[k] = v.Clone()
	}
	tx := &memoryTx{employees: staged, nextID: &m.nextID}

	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	m.employees = staged
	return nil
}

// memoryTx is the transaction-scoped view handed to RunInTx callbacks.
type memoryTx struct {
	employees map[id.EmployeeID]*models.Employee
	nextID    *int64
}

func (t *memoryTx) FindByID(_ context.Context, employeeID id.EmployeeID) (*models.Employee, error) {
	emp, ok := t.employees[employeeID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return emp.Clone(), nil
}

func (t *memoryTx) Create(_ context.Context, emp *models.Employee) (id.EmployeeID, error) {
	return createIn(t.employees, t.nextID, emp)
}

func (t *memoryTx) Update(_ context.Context, emp *models.Employee) error {
	return updateIn(t.employees, emp)
}

func createIn(employees map[id.EmployeeID]*models.Employee, nextID *int64, emp *models.Employee) (id.EmployeeID, error) {
	if emp.ID.IsNil() {
		emp.ID = id.EmployeeID(*nextID)
		*nextID++
	} else if _, exists := employees[emp.ID]; exists {
		return 0, sentinel.ErrConflict
	}
	for i := range emp.Conferences {
		emp.Conferences[i].EmployeeID = emp.ID
	}
	employees[emp.ID] = emp.Clone()
	return emp.ID, nil
}

func updateIn(employees map[id.EmployeeID]*models.Employee, emp *models.Employee) error {
	if _, ok := employees[emp.ID]; !ok {
		return sentinel.ErrNotFound
	}
	employees[emp.ID] = emp.Clone()
	return nil
}
