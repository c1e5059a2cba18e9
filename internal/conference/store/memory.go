// Package store provides conference persistence.
package store

import (
	"context"
	"sync"
	"time"

	"employees/internal/conference/models"
	id "employees/pkg/domain"
	"employees/pkg/platform/sentinel"
)

// Memory is an in-memory conference store.
type Memory struct {
	mu          sync.RWMutex
	nextID      int64
	conferences map[id.ConferenceID]models.Conference
}

// NewMemory creates an empty in-memory conference store.
func NewMemory() *Memory {
	return &Memory{
		nextID:      1,
		conferences: make(map[id.ConferenceID]models.Conference),
	}
}

// FindOpen returns the conference only if it exists and has not ended by now.
func (m *Memory) FindOpen(_ context.Context, conferenceID id.ConferenceID, now time.Time) (*models.Conference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	conf, ok := m.conferences[conferenceID]
	if !ok || !conf.IsOpen(now) {
		return nil, sentinel.ErrNotFound
	}
	cp := conf
	return &cp, nil
}

// Create stores a conference, assigning an id when unset.
func (m *Memory) Create(_ context.Context, conf *models.Conference) (id.ConferenceID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if conf.ID.IsNil() {
		conf.ID = id.ConferenceID(m.nextID)
		m.nextID++
	} else if _, exists := m.conferences[conf.ID]; exists {
		return 0, sentinel.ErrConflict
	}
	m.conferences[conf.ID] = *conf
	return conf.ID, nil
}
