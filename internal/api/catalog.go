package api

import (
	"context"
	"net/http"

	"github.com/kaushalNeupane10/CloudBite/internal/domain"
)

// MenuItems returns the catalog. The endpoint is public; a bearer header is
// still attached when a session exists, matching the API's expectations.
func (c *Client) MenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	if err := c.do(ctx, http.MethodGet, pathMenuItems, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}
