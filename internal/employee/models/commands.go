package models

import (
	id "employees/pkg/domain"
)

// AttendeeRole is the role an employee takes at a conference. It drives the
// merch pack classification in the published notification.
type AttendeeRole string

const (
	RoleListener AttendeeRole = "Listener"
	RoleSpeaker  AttendeeRole = "Speaker"
)

// SendToConferenceCommand registers an employee for a conference and
// triggers the merch-delivery notification.
type SendToConferenceCommand struct {
	EmployeeID   id.EmployeeID
	ConferenceID id.ConferenceID
	AsWhom       AttendeeRole
}

// CreateEmployeeCommand creates an employee and triggers the welcome-pack
// notification.
type CreateEmployeeCommand struct {
	FirstName    string
	LastName     string
	MiddleName   string
	Email        string
	ClothingSize ClothingSize
}
