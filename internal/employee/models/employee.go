package models

import (
	"strings"

	id "employees/pkg/domain"
	dErrors "employees/pkg/domain-errors"
)

// ClothingSize classifies merch sizing. Serialized by name for downstream
// consumer compatibility.
type ClothingSize string

const (
	SizeXS ClothingSize = "XS"
	SizeS  ClothingSize = "S"
	SizeM  ClothingSize = "M"
	SizeL  ClothingSize = "L"
	SizeXL ClothingSize = "XL"
)

// ParseClothingSize validates and returns a ClothingSize.
func ParseClothingSize(s string) (ClothingSize, error) {
	switch cs := ClothingSize(strings.ToUpper(s)); cs {
	case SizeXS, SizeS, SizeM, SizeL, SizeXL:
		return cs, nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown clothing size %q", s)
	}
}

// EmployeeConference is the durable fact that one employee attends one
// conference. Created exactly once per successful registration, immutable
// thereafter.
type EmployeeConference struct {
	EmployeeID   id.EmployeeID
	ConferenceID id.ConferenceID
}

// Employee is the aggregate root for registration state. It is loaded with
// its full registration collection before any mutation; the collection holds
// at most one entry per conference.
type Employee struct {
	ID           id.EmployeeID
	FirstName    string
	LastName     string
	MiddleName   string
	Email        string
	ClothingSize ClothingSize
	Conferences  []EmployeeConference
}

// FullName renders the employee's display name in the downstream contract
// order: "last first middle".
func (e *Employee) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.LastName, e.FirstName, e.MiddleName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// IsRegisteredFor reports whether the employee already holds a registration
// for the given conference.
func (e *Employee) IsRegisteredFor(conferenceID id.ConferenceID) bool {
	for _, reg := range e.Conferences {
		if reg.ConferenceID == conferenceID {
			return true
		}
	}
	return false
}

// RegisterFor appends a registration for the conference. The in-memory check
// guards against duplicates within one loaded aggregate; the storage layer's
// primary key is the durable guard under concurrency.
func (e *Employee) RegisterFor(conferenceID id.ConferenceID) error {
	if e.IsRegisteredFor(conferenceID) {
		return dErrors.Newf(dErrors.CodeConflict,
			"employee %s is already registered for conference %s", e.ID, conferenceID)
	}
	e.Conferences = append(e.Conferences, EmployeeConference{
		EmployeeID:   e.ID,
		ConferenceID: conferenceID,
	})
	return nil
}

// Clone returns a deep copy, used by stores that stage writes.
func (e *Employee) Clone() *Employee {
	cp := *e
	cp.Conferences = make([]EmployeeConference, len(e.Conferences))
	copy(cp.Conferences, e.Conferences)
	return &cp
}
