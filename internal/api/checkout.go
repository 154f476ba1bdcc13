package api

import (
	"context"
	"net/http"
)

// CheckoutItem is one line of a multi-item checkout request.
type CheckoutItem struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

type checkoutSessionResponse struct {
	SessionID string `json:"sessionId"`
}

// CreateCheckoutSession starts a payment-processor session for a single menu
// item and returns the opaque session ID handed off to the processor's
// redirect.
func (c *Client) CreateCheckoutSession(ctx context.Context, menuItemID int64, quantity int) (string, error) {
	body := CheckoutItem{MenuItemID: menuItemID, Quantity: quantity}

	var resp checkoutSessionResponse
	if err := c.do(ctx, http.MethodPost, pathCheckout, body, &resp); err != nil {
		return "", err
	}
	return resp.SessionID, nil
}

// CreateMultiCheckoutSession starts a payment-processor session for the full
// cart and returns the session ID.
func (c *Client) CreateMultiCheckoutSession(ctx context.Context, items []CheckoutItem) (string, error) {
	body := struct {
		Items []CheckoutItem `json:"items"`
	}{Items: items}

	var resp checkoutSessionResponse
	if err := c.do(ctx, http.MethodPost, pathMultiCheckout, body, &resp); err != nil {
		return "", err
	}
	return resp.SessionID, nil
}
