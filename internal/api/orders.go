package api

import (
	"context"
	"net/http"

	"github.com/kaushalNeupane10/CloudBite/internal/domain"
)

// Orders returns the authenticated user's order history, newest first as
// reported by the API.
func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, pathOrders, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
