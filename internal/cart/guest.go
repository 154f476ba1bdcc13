package cart

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kaushalNeupane10/CloudBite/internal/credstore"
	"github.com/kaushalNeupane10/CloudBite/internal/domain"
	"github.com/kaushalNeupane10/CloudBite/internal/tabsync"
	apperrors "github.com/kaushalNeupane10/CloudBite/pkg/errors"
)

// GuestManager owns the guest cart while no session exists: an in-memory
// mirror of the persisted list, updated and re-persisted wholesale on every
// mutation. It is not safe for concurrent use; the Facade serializes access.
type GuestManager struct {
	store       credstore.Store
	broadcaster tabsync.Broadcaster
	logger      *slog.Logger
	items       domain.GuestCart
}

// NewGuestManager creates a guest cart manager. Call Load before first use.
func NewGuestManager(store credstore.Store, broadcaster tabsync.Broadcaster, logger *slog.Logger) *GuestManager {
	return &GuestManager{
		store:       store,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Load replaces the in-memory mirror with the persisted list.
func (m *GuestManager) Load(ctx context.Context) error {
	items, err := m.store.GuestCart(ctx)
	if err != nil {
		return fmt.Errorf("load guest cart: %w", err)
	}
	m.items = items
	return nil
}

// Add merges quantity into an existing entry or appends a new one, then
// persists the full list in a single write.
func (m *GuestManager) Add(ctx context.Context, menuItemID int64, quantity int) error {
	if menuItemID <= 0 {
		return apperrors.InvalidInput("menu item id is required")
	}
	if quantity < 1 {
		return apperrors.InvalidInput("quantity must be at least 1")
	}

	updated := m.items.Clone().Add(menuItemID, quantity)
	if err := m.persist(ctx, updated); err != nil {
		return err
	}

	m.logger.DebugContext(ctx, "guest cart item added",
		slog.Int64("menu_item_id", menuItemID),
		slog.Int("quantity", quantity),
		slog.Int("count", m.items.Count()),
	)
	return nil
}

// Remove deletes the entry for the menu item. Removing an absent entry is a
// no-op, not an error.
func (m *GuestManager) Remove(ctx context.Context, menuItemID int64) error {
	if m.items.FindIndex(menuItemID) < 0 {
		return nil
	}

	updated := m.items.Clone().Remove(menuItemID)
	if err := m.persist(ctx, updated); err != nil {
		return err
	}

	m.logger.DebugContext(ctx, "guest cart item removed",
		slog.Int64("menu_item_id", menuItemID),
	)
	return nil
}

// UpdateQuantity sets the quantity of an existing entry. Quantities below 1
// are rejected; an absent entry is a no-op.
func (m *GuestManager) UpdateQuantity(ctx context.Context, menuItemID int64, quantity int) error {
	if quantity < 1 {
		return apperrors.InvalidInput("quantity must be at least 1")
	}

	updated := m.items.Clone()
	if !updated.SetQuantity(menuItemID, quantity) {
		return nil
	}
	return m.persist(ctx, updated)
}

// Replace persists the given list wholesale. The merge protocol uses it to
// retain the unmerged tail after a partial failure.
func (m *GuestManager) Replace(ctx context.Context, items domain.GuestCart) error {
	return m.persist(ctx, items.Clone())
}

// Clear empties the guest cart in the store and in memory.
func (m *GuestManager) Clear(ctx context.Context) error {
	return m.persist(ctx, domain.GuestCart{})
}

// List returns a copy of the in-memory mirror. It does not re-read storage:
// reads stay consistent within one render cycle.
func (m *GuestManager) List() domain.GuestCart {
	return m.items.Clone()
}

// Count returns the total item count of the mirror.
func (m *GuestManager) Count() int {
	return m.items.Count()
}

// persist writes the list, swaps the mirror only on success, and notifies
// other processes. A failed write leaves the mirror at its last known-good
// value; a failed notification is logged and dropped.
func (m *GuestManager) persist(ctx context.Context, items domain.GuestCart) error {
	if err := m.store.SetGuestCart(ctx, items); err != nil {
		return fmt.Errorf("persist guest cart: %w", err)
	}
	m.items = items

	if err := m.broadcaster.Publish(ctx); err != nil {
		m.logger.WarnContext(ctx, "failed to broadcast guest cart change",
			slog.String("error", err.Error()),
		)
	}
	return nil
}
