package domain

// Action types that can be parked while the user detours through login.
const (
	ActionAddToCart = "addToCart"
	ActionBuyNow    = "buyNow"
)

// PendingAction records a cart or checkout intent issued while anonymous,
// to be resumed once the user has logged in.
type PendingAction struct {
	Type       string `json:"type"`
	MenuItemID int64  `json:"menuItemId"`
}

// Valid reports whether the action names a known type and a menu item.
func (a PendingAction) Valid() bool {
	return (a.Type == ActionAddToCart || a.Type == ActionBuyNow) && a.MenuItemID > 0
}
