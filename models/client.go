package models

import "strings"

type Client struct {
	ClientID            int64  `json:"clientId"`
	UserID              int64  `json:"userId,omitempty"`
	FullName            string `json:"fullName"`
	Username            string `json:"username"`
	Email               string `json:"email"`
	PhoneNumber         string `json:"phoneNumber"`
	LastAppointmentDate string `json:"lastAppointmentDate"`
}

func (c Client) DisplayName() string {
	if c.FullName != "" {
		return c.FullName
	}
	if c.Username != "" {
		return c.Username
	}
	return "Unnamed"
}

// SelectID is the id the diet writer submits for this client.
func (c Client) SelectID() int64 {
	if c.ClientID != 0 {
		return c.ClientID
	}
	return c.UserID
}

func (c Client) HasAppointment() bool {
	return c.LastAppointmentDate != "" && c.LastAppointmentDate != "N/A"
}

// LastAppointmentLabel shows only the date part of an ISO datetime.
func (c Client) LastAppointmentLabel() string {
	if !c.HasAppointment() {
		return "No appointment"
	}
	if date, _, ok := strings.Cut(c.LastAppointmentDate, "T"); ok {
		return date
	}
	return c.LastAppointmentDate
}

// CreateClientRequest is the POST /clients payload.
type CreateClientRequest struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Email        string `json:"email" validate:"required"`
	PhoneNumber  string `json:"phoneNumber"`
	Username     string `json:"username" validate:"required"`
	PasswordHash string `json:"passwordHash" validate:"required"`
}

// FilterClients keeps clients whose name or email contains term, ignoring case.
func FilterClients(clients []Client, term string) []Client {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return clients
	}
	out := make([]Client, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.FullName), term) ||
			strings.Contains(strings.ToLower(c.Email), term) {
			out = append(out, c)
		}
	}
	return out
}
