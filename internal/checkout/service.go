package checkout

import (
	"context"
	"log/slog"

	"github.com/kaushalNeupane10/CloudBite/internal/api"
	"github.com/kaushalNeupane10/CloudBite/internal/cart"
	"github.com/kaushalNeupane10/CloudBite/internal/domain"
	apperrors "github.com/kaushalNeupane10/CloudBite/pkg/errors"
)

// CheckoutAPI is the slice of the API client the checkout service needs.
type CheckoutAPI interface {
	CreateCheckoutSession(ctx context.Context, menuItemID int64, quantity int) (string, error)
	CreateMultiCheckoutSession(ctx context.Context, items []api.CheckoutItem) (string, error)
}

// Cart is the slice of the cart facade the checkout service needs.
type Cart interface {
	State() cart.State
	Snapshot() domain.CartSnapshot
	ParkAction(ctx context.Context, action domain.PendingAction) error
	TakePendingAction(ctx context.Context) (domain.PendingAction, bool, error)
}

// Service starts payment-processor sessions. Checkout always requires a
// session: anonymous buy-now intents are parked and resumed after login.
type Service struct {
	api    CheckoutAPI
	cart   Cart
	logger *slog.Logger
}

// NewService creates a checkout service.
func NewService(api CheckoutAPI, cart Cart, logger *slog.Logger) *Service {
	return &Service{
		api:    api,
		cart:   cart,
		logger: logger,
	}
}

// BuyNow starts a single-item checkout session. While anonymous the intent
// is parked and an unauthorized error returned; the caller sends the user
// through login, after which ResumePending picks the intent back up.
func (s *Service) BuyNow(ctx context.Context, menuItemID int64, quantity int) (string, error) {
	if menuItemID <= 0 {
		return "", apperrors.InvalidInput("menu item id is required")
	}
	if quantity < 1 {
		return "", apperrors.InvalidInput("quantity must be at least 1")
	}

	if s.cart.State() != cart.StateAuthenticated {
		action := domain.PendingAction{Type: domain.ActionBuyNow, MenuItemID: menuItemID}
		if err := s.cart.ParkAction(ctx, action); err != nil {
			return "", apperrors.Wrap(err, "park buy-now intent")
		}
		return "", apperrors.Unauthorized("login required to check out")
	}

	sessionID, err := s.api.CreateCheckoutSession(ctx, menuItemID, quantity)
	if err != nil {
		return "", apperrors.Wrap(err, "create checkout session")
	}

	s.logger.InfoContext(ctx, "checkout session created",
		slog.Int64("menu_item_id", menuItemID),
		slog.String("session_id", sessionID),
	)
	return sessionID, nil
}

// CheckoutCart starts a checkout session for every line in the server cart.
func (s *Service) CheckoutCart(ctx context.Context) (string, error) {
	if s.cart.State() != cart.StateAuthenticated {
		return "", apperrors.Unauthorized("login required to check out")
	}

	snap := s.cart.Snapshot()
	if len(snap.Lines) == 0 {
		return "", apperrors.InvalidInput("cart is empty")
	}

	items := make([]api.CheckoutItem, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		items = append(items, api.CheckoutItem{
			MenuItemID: line.MenuItem.ID,
			Quantity:   line.Quantity,
		})
	}

	sessionID, err := s.api.CreateMultiCheckoutSession(ctx, items)
	if err != nil {
		return "", apperrors.Wrap(err, "create cart checkout session")
	}

	s.logger.InfoContext(ctx, "cart checkout session created",
		slog.Int("lines", len(items)),
		slog.String("session_id", sessionID),
	)
	return sessionID, nil
}

// ResumePending completes a buy-now intent parked before login. It reports
// false when no such intent exists. Other parked actions are consumed by
// the cart facade at login and never reach here.
func (s *Service) ResumePending(ctx context.Context) (string, bool, error) {
	action, ok, err := s.cart.TakePendingAction(ctx)
	if err != nil {
		return "", false, apperrors.Wrap(err, "take pending action")
	}
	if !ok || action.Type != domain.ActionBuyNow {
		return "", false, nil
	}

	sessionID, err := s.api.CreateCheckoutSession(ctx, action.MenuItemID, 1)
	if err != nil {
		return "", false, apperrors.Wrap(err, "resume buy-now checkout")
	}

	s.logger.InfoContext(ctx, "parked buy-now resumed",
		slog.Int64("menu_item_id", action.MenuItemID),
		slog.String("session_id", sessionID),
	)
	return sessionID, true, nil
}
