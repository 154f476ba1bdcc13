package domain

import "time"

// Order statuses reported by the API.
const (
	OrderStatusSuccess  = "success"
	OrderStatusCanceled = "canceled"
)

// OrderLine is a single line of a past order, priced at order time.
type OrderLine struct {
	ID           int64    `json:"id"`
	MenuItem     MenuItem `json:"menu_item"`
	Quantity     int      `json:"quantity"`
	PriceAtOrder string   `json:"price_at_order"`
}

// Order is a past order with its nested line items.
type Order struct {
	ID         int64       `json:"id"`
	Items      []OrderLine `json:"order_items"`
	TotalPrice string      `json:"total_price"`
	IsPaid     bool        `json:"is_paid"`
	Status     string      `json:"status"`
	OrderedAt  time.Time   `json:"ordered_at"`
}
