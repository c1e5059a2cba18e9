package models

import (
	"time"

	id "employees/pkg/domain"
)

// Conference is a registration target. Only conferences whose end time has
// not passed are eligible; the open-lookup in the store filters on this, so
// "absent" and "already ended" collapse into one signal for callers.
type Conference struct {
	ID     id.ConferenceID
	Name   string
	EndsAt time.Time
}

// IsOpen reports whether the conference can still accept registrations.
func (c *Conference) IsOpen(now time.Time) bool {
	return c.EndsAt.After(now)
}
