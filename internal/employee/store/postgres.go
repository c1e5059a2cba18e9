package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"employees/internal/employee/models"
	id "employees/pkg/domain"
	"employees/pkg/platform/sentinel"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
// The (employee_id, conference_id) primary key is the durable guard against
// two concurrent registrations both passing the in-memory duplicate check.
const pgUniqueViolation = "23505"

// querier is satisfied by *sql.DB and *sql.Tx so the same store code serves
// plain and transaction-scoped access.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Postgres persists employees in PostgreSQL. The store is pure I/O; domain
// rules live in the service.
type Postgres struct {
	q querier
}

// NewPostgres constructs a store over a database handle.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{q: db}
}

// NewPostgresTx constructs a transaction-scoped store. Used by the RunInTx
// runner in cmd/server.
func NewPostgresTx(tx *sql.Tx) *Postgres {
	return &Postgres{q: tx}
}

// FindByID loads the employee row together with its registration collection.
func (s *Postgres) FindByID(ctx context.Context, employeeID id.EmployeeID) (*models.Employee, error) {
	query := `
		SELECT id, first_name, last_name, middle_name, email, clothing_size
		FROM employees
		WHERE id = $1
	`
	var emp models.Employee
	var size string
	err := s.q.QueryRowContext(ctx, query, int64(employeeID)).Scan(
		&emp.ID, &emp.FirstName, &emp.LastName, &emp.MiddleName, &emp.Email, &size,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	emp.ClothingSize = models.ClothingSize(size)

	regs, err := s.registrations(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	emp.Conferences = regs
	return &emp, nil
}

func (s *Postgres) registrations(ctx context.Context, employeeID id.EmployeeID) ([]models.EmployeeConference, error) {
	query := `
		SELECT employee_id, conference_id
		FROM employee_conferences
		WHERE employee_id = $1
		ORDER BY conference_id
	`
	rows, err := s.q.QueryContext(ctx, query, int64(employeeID))
	if err != nil {
		return nil, fmt.Errorf("load registrations: %w", err)
	}
	defer rows.Close()

	var regs []models.EmployeeConference
	for rows.Next() {
		var reg models.EmployeeConference
		if err := rows.Scan(&reg.EmployeeID, &reg.ConferenceID); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}
	return regs, nil
}

// Create inserts the employee and any initial registrations.
func (s *Postgres) Create(ctx context.Context, emp *models.Employee) (id.EmployeeID, error) {
	query := `
		INSERT INTO employees (first_name, last_name, middle_name, email, clothing_size)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var assigned id.EmployeeID
	err := s.q.QueryRowContext(ctx, query,
		emp.FirstName, emp.LastName, emp.MiddleName, emp.Email, string(emp.ClothingSize),
	).Scan(&assigned)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, sentinel.ErrConflict
		}
		return 0, fmt.Errorf("create employee: %w", err)
	}
	emp.ID = assigned
	for i := range emp.Conferences {
		emp.Conferences[i].EmployeeID = assigned
	}
	if err := s.insertRegistrations(ctx, emp.Conferences, nil); err != nil {
		return 0, err
	}
	return assigned, nil
}

// Update persists the employee row and inserts registrations that are not yet
// durable. New registrations use plain INSERTs: under concurrency the primary
// key rejects the second writer with a unique violation, which surfaces as
// sentinel.ErrConflict.
func (s *Postgres) Update(ctx context.Context, emp *models.Employee) error {
	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, middle_name = $4, email = $5, clothing_size = $6
		WHERE id = $1
	`
	res, err := s.q.ExecContext(ctx, query,
		int64(emp.ID), emp.FirstName, emp.LastName, emp.MiddleName, emp.Email, string(emp.ClothingSize),
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}

	existing, err := s.registrations(ctx, emp.ID)
	if err != nil {
		return err
	}
	durable := make(map[id.ConferenceID]struct{}, len(existing))
	for _, reg := range existing {
		durable[reg.ConferenceID] = struct{}{}
	}
	return s.insertRegistrations(ctx, emp.Conferences, durable)
}

func (s *Postgres) insertRegistrations(ctx context.Context, regs []models.EmployeeConference, durable map[id.ConferenceID]struct{}) error {
	query := `
		INSERT INTO employee_conferences (employee_id, conference_id)
		VALUES ($1, $2)
	`
	for _, reg := range regs {
		if _, ok := durable[reg.ConferenceID]; ok {
			continue
		}
		if _, err := s.q.ExecContext(ctx, query, int64(reg.EmployeeID), int64(reg.ConferenceID)); err != nil {
			if isUniqueViolation(err) {
				return sentinel.ErrConflict
			}
			return fmt.Errorf("insert registration: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
