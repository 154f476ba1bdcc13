package cart

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kaushalNeupane10/CloudBite/internal/domain"
	apperrors "github.com/kaushalNeupane10/CloudBite/pkg/errors"
)

// CartAPI is the slice of the API client the server cart manager needs.
type CartAPI interface {
	CartItems(ctx context.Context) (domain.ServerCart, error)
	CreateCartItem(ctx context.Context, menuItemID int64, quantity int, mergeBatch string) (domain.ServerCartLine, error)
	UpdateCartItem(ctx context.Context, lineID int64, quantity int) (domain.ServerCartLine, error)
	DeleteCartItem(ctx context.Context, lineID int64) error
}

// ServerManager owns the authenticated cart: an in-memory mirror of the
// server's lines, mutated only after the corresponding API call succeeds.
// The server is the source of truth; the mirror is never guessed forward.
// It is not safe for concurrent use; the Facade serializes access.
type ServerManager struct {
	api    CartAPI
	logger *slog.Logger
	lines  domain.ServerCart
}

// NewServerManager creates a server cart manager with an empty mirror.
func NewServerManager(api CartAPI, logger *slog.Logger) *ServerManager {
	return &ServerManager{
		api:    api,
		logger: logger,
	}
}

// Fetch retrieves the authoritative cart and replaces the mirror wholesale.
func (m *ServerManager) Fetch(ctx context.Context) error {
	lines, err := m.api.CartItems(ctx)
	if err != nil {
		return fmt.Errorf("fetch cart: %w", err)
	}
	m.lines = lines
	return nil
}

// Add adds quantity of a menu item. If a line already exists the quantities
// are summed through an update call, so the server never sees a duplicate
// line for the same item. mergeBatch tags adds issued by the merge protocol.
func (m *ServerManager) Add(ctx context.Context, menuItemID int64, quantity int, mergeBatch string) error {
	if menuItemID <= 0 {
		return apperrors.InvalidInput("menu item id is required")
	}
	if quantity < 1 {
		return apperrors.InvalidInput("quantity must be at least 1")
	}

	if i := m.lines.FindByMenuItem(menuItemID); i >= 0 {
		return m.UpdateQuantity(ctx, menuItemID, m.lines[i].Quantity+quantity)
	}

	line, err := m.api.CreateCartItem(ctx, menuItemID, quantity, mergeBatch)
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	m.lines = append(m.lines, line)

	m.logger.DebugContext(ctx, "cart line created",
		slog.Int64("menu_item_id", menuItemID),
		slog.Int64("line_id", line.ID),
		slog.Int("quantity", line.Quantity),
	)
	return nil
}

// Remove resolves the menu item to its server line and deletes it. The line
// stays visible until the delete succeeds; removing an absent item is a
// no-op.
func (m *ServerManager) Remove(ctx context.Context, menuItemID int64) error {
	i := m.lines.FindByMenuItem(menuItemID)
	if i < 0 {
		return nil
	}

	lineID := m.lines[i].ID
	if err := m.api.DeleteCartItem(ctx, lineID); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}

	updated := m.lines.Clone()
	m.lines = append(updated[:i], updated[i+1:]...)

	m.logger.DebugContext(ctx, "cart line removed",
		slog.Int64("menu_item_id", menuItemID),
		slog.Int64("line_id", lineID),
	)
	return nil
}

// UpdateQuantity sets a line's quantity to exactly the server-confirmed
// value. Quantities below 1 are rejected; an absent line is a no-op.
func (m *ServerManager) UpdateQuantity(ctx context.Context, menuItemID int64, quantity int) error {
	if quantity < 1 {
		return apperrors.InvalidInput("quantity must be at least 1")
	}

	i := m.lines.FindByMenuItem(menuItemID)
	if i < 0 {
		return nil
	}

	line, err := m.api.UpdateCartItem(ctx, m.lines[i].ID, quantity)
	if err != nil {
		return fmt.Errorf("update cart item quantity: %w", err)
	}

	updated := m.lines.Clone()
	updated[i].Quantity = line.Quantity
	m.lines = updated
	return nil
}

// List returns a copy of the mirrored lines.
func (m *ServerManager) List() domain.ServerCart {
	return m.lines.Clone()
}

// Count returns the total item count of the mirror.
func (m *ServerManager) Count() int {
	return m.lines.Count()
}

// Drop empties the mirror without touching the server, used at logout.
func (m *ServerManager) Drop() {
	m.lines = nil
}
