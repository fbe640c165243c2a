package models

import "time"

type Appointment struct {
	AppointmentID   int64     `json:"appointmentId"`
	Title           string    `json:"title"`
	StartDate       Timestamp `json:"startDate"`
	EndDate         Timestamp `json:"endDate"`
	TypeDescription string    `json:"typeDescription"`
	Notes           string    `json:"notes"`
	ClientID        int64     `json:"clientId"`
}

func (a Appointment) TypeLabel() string {
	if a.TypeDescription == "" {
		return "General"
	}
	return a.TypeDescription
}

type AppointmentType struct {
	ID    int
	Label string
}

var AppointmentTypes = []AppointmentType{
	{ID: 1, Label: "Online diet"},
	{ID: 2, Label: "Face to face"},
	{ID: 3, Label: "Check-up"},
}

const (
	DefaultAppointmentStatus = 1
	AppointmentDuration      = time.Hour
)

// CreateAppointmentRequest is the POST /appointments payload.
type CreateAppointmentRequest struct {
	Title               string    `json:"title" validate:"required"`
	StartDate           time.Time `json:"startDate" validate:"required"`
	EndDate             time.Time `json:"endDate" validate:"required,gtfield=StartDate"`
	Notes               string    `json:"notes"`
	ClientID            int64     `json:"clientId" validate:"required,gt=0"`
	AppointmentStatusID int       `json:"appointmentStatusId" validate:"required,gt=0"`
	AppointmentTypeID   int       `json:"appointmentTypeId" validate:"required,gt=0"`
}
