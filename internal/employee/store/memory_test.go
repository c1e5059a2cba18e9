package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employees/internal/employee/models"
	"employees/internal/employee/service"
	id "employees/pkg/domain"
	dErrors "employees/pkg/domain-errors"
	"employees/pkg/platform/sentinel"
)

func seedEmployee(t *testing.T, m *Memory) id.EmployeeID {
	t.Helper()
	empID, err := m.Create(context.Background(), &models.Employee{
		FirstName:    "Ivan",
		LastName:     "Ivanov",
		Email:        "i.ivanov@corp.example",
		ClothingSize: models.SizeM,
	})
	require.NoError(t, err)
	return empID
}

func TestMemoryCRUD(t *testing.T) {
	ctx := context.Background()

	t.Run("create assigns sequential ids", func(t *testing.T) {
		m := NewMemory()
		first := seedEmployee(t, m)
		second, err := m.Create(ctx, &models.Employee{Email: "b@corp.example", ClothingSize: models.SizeS})
		require.NoError(t, err)
		assert.Equal(t, id.EmployeeID(1), first)
		assert.Equal(t, id.EmployeeID(2), second)
	})

	t.Run("create with a taken id conflicts", func(t *testing.T) {
		m := NewMemory()
		empID := seedEmployee(t, m)
		_, err := m.Create(ctx, &models.Employee{ID: empID, Email: "dup@corp.example"})
		assert.ErrorIs(t, err, sentinel.ErrConflict)
	})

	t.Run("find returns an isolated copy", func(t *testing.T) {
		m := NewMemory()
		empID := seedEmployee(t, m)

		emp, err := m.FindByID(ctx, empID)
		require.NoError(t, err)
		require.NoError(t, emp.RegisterFor(id.ConferenceID(9)))

		again, err := m.FindByID(ctx, empID)
		require.NoError(t, err)
		assert.Empty(t, again.Conferences, "mutating a loaded copy must not write through")
	})

	t.Run("find unknown id", func(t *testing.T) {
		m := NewMemory()
		_, err := m.FindByID(ctx, id.EmployeeID(404))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("update unknown id", func(t *testing.T) {
		m := NewMemory()
		err := m.Update(ctx, &models.Employee{ID: id.EmployeeID(404)})
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestMemoryRunInTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		m := NewMemory()
		empID := seedEmployee(t, m)

		err := m.RunInTx(ctx, func(store service.EmployeeStore) error {
			emp, err := store.FindByID(ctx, empID)
			if err != nil {
				return err
			}
			if err := emp.RegisterFor(id.ConferenceID(1)); err != nil {
				return err
			}
			return store.Update(ctx, emp)
		})
		require.NoError(t, err)

		emp, err := m.FindByID(ctx, empID)
		require.NoError(t, err)
		assert.True(t, emp.IsRegisteredFor(id.ConferenceID(1)))
	})

	t.Run("discards staged writes on error", func(t *testing.T) {
		m := NewMemory()
		empID := seedEmployee(t, m)
		boom := errors.New("boom")

		err := m.RunInTx(ctx, func(store service.EmployeeStore) error {
			emp, err := store.FindByID(ctx, empID)
			if err != nil {
				return err
			}
			if err := emp.RegisterFor(id.ConferenceID(1)); err != nil {
				return err
			}
			if err := store.Update(ctx, emp); err != nil {
				return err
			}
			if _, err := store.Create(ctx, &models.Employee{Email: "x@corp.example"}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		emp, err := m.FindByID(ctx, empID)
		require.NoError(t, err)
		assert.Empty(t, emp.Conferences)
		_, err = m.FindByID(ctx, id.EmployeeID(2))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("rejects a cancelled context", func(t *testing.T) {
		m := NewMemory()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := m.RunInTx(cancelled, func(store service.EmployeeStore) error {
			t.Fatal("fn must not run on a cancelled context")
			return nil
		})
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeTimeout, dErrors.CodeOf(err))
	})
}
