package domain

// GuestCartEntry is a single item in the locally persisted guest cart.
type GuestCartEntry struct {
	MenuItemID int64 `json:"menuItemId"`
	Quantity   int   `json:"quantity"`
}

// GuestCart is the guest cart collection. It holds at most one entry per
// menu item: adds merge into the existing entry instead of appending.
type GuestCart []GuestCartEntry

// FindIndex returns the index of the entry for the given menu item, or -1.
func (c GuestCart) FindIndex(menuItemID int64) int {
	for i := range c {
		if c[i].MenuItemID == menuItemID {
			return i
		}
	}
	return -1
}

// Add merges quantity into an existing entry or appends a new one, returning
// the updated collection.
func (c GuestCart) Add(menuItemID int64, quantity int) GuestCart {
	if i := c.FindIndex(menuItemID); i >= 0 {
		c[i].Quantity += quantity
		return c
	}
	return append(c, GuestCartEntry{MenuItemID: menuItemID, Quantity: quantity})
}

// Remove deletes the entry for the given menu item if present.
func (c GuestCart) Remove(menuItemID int64) GuestCart {
	if i := c.FindIndex(menuItemID); i >= 0 {
		return append(c[:i], c[i+1:]...)
	}
	return c
}

// SetQuantity replaces the quantity of an existing entry. It reports whether
// the entry was found.
func (c GuestCart) SetQuantity(menuItemID int64, quantity int) bool {
	if i := c.FindIndex(menuItemID); i >= 0 {
		c[i].Quantity = quantity
		return true
	}
	return false
}

// Clone returns an independent copy of the collection.
func (c GuestCart) Clone() GuestCart {
	cloned := make(GuestCart, len(c))
	copy(cloned, c)
	return cloned
}

// Count returns the total number of items across all entries.
func (c GuestCart) Count() int {
	var count int
	for _, e := range c {
		count += e.Quantity
	}
	return count
}

// ServerCartLine is a single server-assigned cart line. The line ID is
// distinct from the menu item ID it references.
type ServerCartLine struct {
	ID       int64    `json:"id"`
	MenuItem MenuItem `json:"menu_item"`
	Quantity int      `json:"quantity"`
}

// ServerCart is the authenticated cart collection mirrored from the API.
type ServerCart []ServerCartLine

// FindByMenuItem returns the index of the line referencing the given menu
// item, or -1. The server enforces at most one line per menu item per user.
func (c ServerCart) FindByMenuItem(menuItemID int64) int {
	for i := range c {
		if c[i].MenuItem.ID == menuItemID {
			return i
		}
	}
	return -1
}

// Clone returns an independent copy of the collection.
func (c ServerCart) Clone() ServerCart {
	cloned := make(ServerCart, len(c))
	copy(cloned, c)
	return cloned
}

// Count returns the total number of items across all lines.
func (c ServerCart) Count() int {
	var count int
	for _, l := range c {
		count += l.Quantity
	}
	return count
}

// CartSnapshot is the client-side view of whichever cart is active. Exactly
// one collection is populated: Guest while anonymous, Lines once
// authenticated.
type CartSnapshot struct {
	Authenticated bool
	Guest         GuestCart
	Lines         ServerCart
}

// Count returns the item count of the active collection.
func (s CartSnapshot) Count() int {
	if s.Authenticated {
		return s.Lines.Count()
	}
	return s.Guest.Count()
}
