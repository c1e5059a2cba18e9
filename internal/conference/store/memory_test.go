package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employees/internal/conference/models"
	id "employees/pkg/domain"
	"employees/pkg/platform/sentinel"
)

func TestMemoryFindOpen(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	m := NewMemory()
	openID, err := m.Create(ctx, &models.Conference{Name: "GopherConf", EndsAt: now.Add(time.Hour)})
	require.NoError(t, err)
	endedID, err := m.Create(ctx, &models.Conference{Name: "Legacy Summit", EndsAt: now.Add(-time.Hour)})
	require.NoError(t, err)

	t.Run("returns an open conference", func(t *testing.T) {
		conf, err := m.FindOpen(ctx, openID, now)
		require.NoError(t, err)
		assert.Equal(t, "GopherConf", conf.Name)
	})

	t.Run("ended reads as not found", func(t *testing.T) {
		_, err := m.FindOpen(ctx, endedID, now)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("ending boundary is closed", func(t *testing.T) {
		_, err := m.FindOpen(ctx, openID, now.Add(time.Hour))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := m.FindOpen(ctx, id.ConferenceID(404), now)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestMemoryCreate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	first, err := m.Create(ctx, &models.Conference{Name: "A", EndsAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, id.ConferenceID(1), first)

	_, err = m.Create(ctx, &models.Conference{ID: first, Name: "B", EndsAt: time.Now()})
	assert.ErrorIs(t, err, sentinel.ErrConflict)
}
