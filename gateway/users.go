package gateway

import (
	"context"
	"fmt"
	"net/http"

	"wellness-admin/models"
)

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}
	var resp models.LoginResponse
	if err := c.call(ctx, "login", http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (*models.MessageResponse, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}
	var resp models.MessageResponse
	if err := c.call(ctx, "change_password", http.MethodPut, "/users/change-password", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.call(ctx, "list_users", http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: user id %d", ErrInvalidRequest, id)
	}
	var user models.User
	if err := c.call(ctx, "get_user", http.MethodGet, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
