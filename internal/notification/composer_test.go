package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employees/internal/employee/models"
	dErrors "employees/pkg/domain-errors"
)

func testEmployee() *models.Employee {
	return &models.Employee{
		FirstName:    "Ivan",
		LastName:     "Ivanov",
		MiddleName:   "Petrovich",
		Email:        "i.ivanov@corp.example",
		ClothingSize: models.SizeM,
	}
}

func TestNewComposer(t *testing.T) {
	t.Run("rejects an empty pool", func(t *testing.T) {
		_, err := NewComposer(nil)
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeInvariantViolation, dErrors.CodeOf(err))
	})

	t.Run("accepts a non-empty pool", func(t *testing.T) {
		c, err := NewComposer(DefaultManagerPool)
		require.NoError(t, err)
		require.NotNil(t, c)
	})
}

func TestConferenceAttendance(t *testing.T) {
	pool := []Manager{{Name: "Olga Petrova", Email: "o.petrova@corp.example"}}
	c, err := NewComposer(pool, WithRand(func(int) int { return 0 }))
	require.NoError(t, err)

	t.Run("listener maps to the listener pack", func(t *testing.T) {
		event, err := c.ConferenceAttendance(testEmployee(), models.RoleListener)
		require.NoError(t, err)
		assert.Equal(t, EventTypeConferenceAttendance, event.EventType)
		assert.Equal(t, MerchConferenceListenerPack, event.Payload.MerchType)
		assert.Equal(t, models.SizeM, event.Payload.ClothingSize)
		assert.Equal(t, "Ivanov Ivan Petrovich", event.EmployeeName)
		assert.Equal(t, "i.ivanov@corp.example", event.EmployeeEmail)
		assert.Equal(t, "Olga Petrova", event.ManagerName)
		assert.Equal(t, "o.petrova@corp.example", event.ManagerEmail)
	})

	t.Run("speaker maps to the speaker pack", func(t *testing.T) {
		event, err := c.ConferenceAttendance(testEmployee(), models.RoleSpeaker)
		require.NoError(t, err)
		assert.Equal(t, MerchConferenceSpeakerPack, event.Payload.MerchType)
	})

	t.Run("unknown role is a contract error", func(t *testing.T) {
		_, err := c.ConferenceAttendance(testEmployee(), models.AttendeeRole("Organizer"))
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeInvalidInput, dErrors.CodeOf(err))
	})
}

func TestEmployeeCreated(t *testing.T) {
	c, err := NewComposer(DefaultManagerPool, WithRand(func(int) int { return 1 }))
	require.NoError(t, err)

	event := c.EmployeeCreated(testEmployee())
	assert.Equal(t, EventTypeEmployeeCreated, event.EventType)
	assert.Equal(t, MerchWelcomePack, event.Payload.MerchType)
	assert.Equal(t, DefaultManagerPool[1].Email, event.ManagerEmail)
	assert.Equal(t, DefaultManagerPool[1].Name, event.ManagerName)
}

func TestManagerSelectionStaysInPool(t *testing.T) {
	c, err := NewComposer(DefaultManagerPool)
	require.NoError(t, err)

	known := make(map[string]bool, len(DefaultManagerPool))
	for _, m := range DefaultManagerPool {
		known[m.Email] = true
	}

	seen := make(map[string]bool)
	for range 200 {
		event := c.EmployeeCreated(testEmployee())
		require.True(t, known[event.ManagerEmail], "manager %q is not in the pool", event.ManagerEmail)
		seen[event.ManagerEmail] = true
	}
	// 200 draws over 3 managers make a single-manager run astronomically
	// unlikely with a uniform source.
	assert.Greater(t, len(seen), 1)
}
