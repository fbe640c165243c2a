package models

import "time"

const (
	EventUserLoggedIn       = "user_logged_in"
	EventUserLoggedOut      = "user_logged_out"
	EventClientCreated      = "client_created"
	EventAppointmentCreated = "appointment_created"
	EventDietListCreated    = "diet_list_created"
	EventPasswordChanged    = "password_changed"
)

// ActivityEvent is one admin action, published to kafka and indexed for reports.
type ActivityEvent struct {
	Event    string    `json:"event"`
	Actor    string    `json:"actor"`
	EntityID int64     `json:"entityId,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	At       time.Time `json:"at"`
}

var activityLabels = map[string]string{
	EventUserLoggedIn:       "Signed in",
	EventUserLoggedOut:      "Signed out",
	EventClientCreated:      "Client created",
	EventAppointmentCreated: "Appointment created",
	EventDietListCreated:    "Diet list created",
	EventPasswordChanged:    "Password changed",
}

func (e ActivityEvent) Label() string {
	if l, ok := activityLabels[e.Event]; ok {
		return l
	}
	return e.Event
}
