package gateway

import (
	"context"
	"fmt"
	"net/http"

	"wellness-admin/models"
)

func (c *Client) ListDietLists(ctx context.Context) ([]models.DietList, error) {
	var lists []models.DietList
	if err := c.call(ctx, "list_diet_lists", http.MethodGet, "/dietlists", nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (c *Client) GetDietList(ctx context.Context, id int64) (*models.DietList, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: diet list id %d", ErrInvalidRequest, id)
	}
	var list models.DietList
	if err := c.call(ctx, "get_diet_list", http.MethodGet, fmt.Sprintf("/dietlists/%d", id), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) CreateDietList(ctx context.Context, req models.CreateDietListRequest) (*models.DietList, error) {
	if err := c.check(req); err != nil {
		return nil, err
	}
	var created models.DietList
	if err := c.call(ctx, "create_diet_list", http.MethodPost, "/dietlists", req, &created); err != nil {
		return nil, err
	}
	if created.DietListID == 0 {
		return nil, nil
	}
	return &created, nil
}
