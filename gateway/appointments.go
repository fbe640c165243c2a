package gateway

import (
	"context"
	"net/http"

	"wellness-admin/models"
)

func (c *Client) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := c.call(ctx, "list_appointments", http.MethodGet, "/appointments", nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (c *Client) CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}
	var created models.Appointment
	if err := c.call(ctx, "create_appointment", http.MethodPost, "/appointments", req, &created); err != nil {
		return nil, err
	}
	if created.AppointmentID == 0 {
		return nil, nil
	}
	return &created, nil
}
