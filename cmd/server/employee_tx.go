package main

import (
	"context"
	"database/sql"
	"time"

	empservice "employees/internal/employee/service"
	empstore "employees/internal/employee/store"
	dErrors "employees/pkg/domain-errors"
)

// defaultEmployeeTxTimeout bounds the stage-write/publish/commit window so a
// hung broker cannot hold row locks indefinitely.
const defaultEmployeeTxTimeout = 15 * time.Second

// employeePostgresTx runs employee mutations inside a database transaction.
// The callback receives a transaction-scoped store; returning an error (or
// cancellation) rolls back, so a failed publish never leaves a committed
// registration behind.
type employeePostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func newEmployeePostgresTx(db *sql.DB) *employeePostgresTx {
	return &employeePostgresTx{db: db}
}

func (t *employeePostgresTx) RunInTx(ctx context.Context, fn func(store empservice.EmployeeStore) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultEmployeeTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(empstore.NewPostgresTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "commit transaction")
	}
	return nil
}
