// Package domain holds domain primitives shared across modules.
// Identifiers are distinct types so the compiler rejects accidental
// cross-assignment (an EmployeeID can never be passed where a
// ConferenceID is expected).
package domain

import (
	"strconv"

	dErrors "employees/pkg/domain-errors"
)

// EmployeeID identifies an employee.
type EmployeeID int64

// ConferenceID identifies a conference.
type ConferenceID int64

// ParseEmployeeID validates and returns an EmployeeID from its string form.
func ParseEmployeeID(s string) (EmployeeID, error) {
	n, err := parseID(s, "employee id")
	return EmployeeID(n), err
}

// ParseConferenceID validates and returns a ConferenceID from its string form.
func ParseConferenceID(s string) (ConferenceID, error) {
	n, err := parseID(s, "conference id")
	return ConferenceID(n), err
}

func parseID(s, what string) (int64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, what+" is required")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+what)
	}
	return n, nil
}

// String returns the decimal representation, used as the broker message key.
func (id EmployeeID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// IsNil reports whether the id is unset.
func (id EmployeeID) IsNil() bool {
	return id == 0
}

// String returns the decimal representation.
func (id ConferenceID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// IsNil reports whether the id is unset.
func (id ConferenceID) IsNil() bool {
	return id == 0
}
