package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kaushalNeupane10/CloudBite/internal/domain"
)

// MergeBatchHeader carries the idempotency key shared by every add call of
// one guest-cart merge batch, so an interrupted merge can be replayed
// without duplicating lines.
const MergeBatchHeader = "X-Merge-Batch"

type createCartItemRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartItems returns the authenticated user's cart lines.
func (c *Client) CartItems(ctx context.Context) (domain.ServerCart, error) {
	var cart domain.ServerCart
	if err := c.do(ctx, http.MethodGet, pathCartItems, nil, &cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// CreateCartItem creates a new cart line. mergeBatch, when non-empty, tags
// the request as part of a merge batch.
func (c *Client) CreateCartItem(ctx context.Context, menuItemID int64, quantity int, mergeBatch string) (domain.ServerCartLine, error) {
	body := createCartItemRequest{MenuItemID: menuItemID, Quantity: quantity}

	var opts []requestOption
	if mergeBatch != "" {
		opts = append(opts, withHeader(MergeBatchHeader, mergeBatch))
	}

	var line domain.ServerCartLine
	if err := c.do(ctx, http.MethodPost, pathCartItems, body, &line, opts...); err != nil {
		return domain.ServerCartLine{}, err
	}
	return line, nil
}

// UpdateCartItem sets the quantity of an existing cart line and returns the
// server-confirmed line.
func (c *Client) UpdateCartItem(ctx context.Context, lineID int64, quantity int) (domain.ServerCartLine, error) {
	path := fmt.Sprintf("%s%d/", pathCartItems, lineID)

	var line domain.ServerCartLine
	if err := c.do(ctx, http.MethodPatch, path, updateCartItemRequest{Quantity: quantity}, &line); err != nil {
		return domain.ServerCartLine{}, err
	}
	return line, nil
}

// DeleteCartItem removes a cart line.
func (c *Client) DeleteCartItem(ctx context.Context, lineID int64) error {
	path := fmt.Sprintf("%s%d/", pathCartItems, lineID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
