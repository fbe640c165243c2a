package gateway

import (
	"context"
	"net/http"

	"wellness-admin/models"
)

func (c *Client) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := c.call(ctx, "list_clients", http.MethodGet, "/clients", nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// CreateClient returns the created client when the backend echoes it, nil otherwise.
func (c *Client) CreateClient(ctx context.Context, req models.CreateClientRequest) (*models.Client, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}
	var created models.Client
	if err := c.call(ctx, "create_client", http.MethodPost, "/clients", req, &created); err != nil {
		return nil, err
	}
	if created == (models.Client{}) {
		return nil, nil
	}
	return &created, nil
}
