package credstore

import (
	"context"

	"github.com/kaushalNeupane10/CloudBite/internal/domain"
)

// Store is the durable key/value persistence for client-side state: the
// token pair, the guest cart list, and any parked pending action. It is the
// only component that writes this state; absent keys yield zero values, not
// errors.
type Store interface {
	// Session returns the stored token pair, or a zero Session if none.
	Session(ctx context.Context) (domain.Session, error)

	// SetSession stores both tokens as a pair.
	SetSession(ctx context.Context, s domain.Session) error

	// ClearSession removes both tokens. The guest cart is deliberately left
	// in place: it outlives logout.
	ClearSession(ctx context.Context) error

	// GuestCart returns the persisted guest cart list, empty if none.
	GuestCart(ctx context.Context) (domain.GuestCart, error)

	// SetGuestCart replaces the persisted guest cart in a single write.
	SetGuestCart(ctx context.Context, cart domain.GuestCart) error

	// PendingAction returns the parked action, if any.
	PendingAction(ctx context.Context) (domain.PendingAction, bool, error)

	// SetPendingAction parks an action to resume after login.
	SetPendingAction(ctx context.Context, a domain.PendingAction) error

	// ClearPendingAction removes the parked action.
	ClearPendingAction(ctx context.Context) error
}
