// Package notification builds and serializes the events this service emits
// to the broker. Events are value objects: constructed per workflow run,
// serialized, handed to the producer, then discarded.
package notification

import (
	jsoniter "github.com/json-iterator/go"

	"employees/internal/employee/models"
)

// Field names and enum spellings below are a wire contract with downstream
// merch-delivery consumers. Do not rename.

// EmployeeEventType discriminates the event kinds this service publishes.
type EmployeeEventType string

const (
	EventTypeEmployeeCreated      EmployeeEventType = "EmployeeCreated"
	EventTypeConferenceAttendance EmployeeEventType = "ConferenceAttendance"
)

// MerchType classifies which merch pack to deliver.
type MerchType string

const (
	MerchWelcomePack            MerchType = "WelcomePack"
	MerchConferenceListenerPack MerchType = "ConferenceListenerPack"
	MerchConferenceSpeakerPack  MerchType = "ConferenceSpeakerPack"
)

// MerchDeliveryPayload is the payload variant for merch-delivery events.
// Each event type carries exactly one payload shape so consumers work
// against a closed set.
type MerchDeliveryPayload struct {
	MerchType    MerchType           `json:"merchType"`
	ClothingSize models.ClothingSize `json:"clothingSize"`
}

// Event is the notification envelope published to the broker, keyed by
// employee id.
type Event struct {
	EmployeeEmail string               `json:"employeeEmail"`
	EmployeeName  string               `json:"employeeName"`
	ManagerEmail  string               `json:"managerEmail"`
	ManagerName   string               `json:"managerName"`
	EventType     EmployeeEventType    `json:"eventType"`
	Payload       MerchDeliveryPayload `json:"payload"`
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode serializes the event for the broker message value.
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}
