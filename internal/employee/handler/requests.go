package handler

import (
	"employees/internal/employee/models"
	id "employees/pkg/domain"
)

type createEmployeeRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	MiddleName   string `json:"middleName"`
	Email        string `json:"email"`
	ClothingSize string `json:"clothingSize"`
}

type sendToConferenceRequest struct {
	ConferenceID int64  `json:"conferenceId"`
	AsWhom       string `json:"asWhom"`
}

type registrationResponse struct {
	ConferenceID id.ConferenceID `json:"conferenceId"`
}

type employeeResponse struct {
	ID           id.EmployeeID          `json:"id"`
	FirstName    string                 `json:"firstName"`
	LastName     string                 `json:"lastName"`
	MiddleName   string                 `json:"middleName,omitempty"`
	Email        string                 `json:"email"`
	ClothingSize models.ClothingSize    `json:"clothingSize"`
	Conferences  []registrationResponse `json:"conferences"`
}

func toEmployeeResponse(emp *models.Employee) employeeResponse {
	resp := employeeResponse{
		ID:           emp.ID,
		FirstName:    emp.FirstName,
		LastName:     emp.LastName,
		MiddleName:   emp.MiddleName,
		Email:        emp.Email,
		ClothingSize: emp.ClothingSize,
		Conferences:  make([]registrationResponse, 0, len(emp.Conferences)),
	}
	for _, reg := range emp.Conferences {
		resp.Conferences = append(resp.Conferences, registrationResponse{ConferenceID: reg.ConferenceID})
	}
	return resp
}
