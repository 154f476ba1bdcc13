package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/kaushalNeupane10/CloudBite/internal/api"
	"github.com/kaushalNeupane10/CloudBite/internal/credstore"
	"github.com/kaushalNeupane10/CloudBite/internal/domain"
)

// State is the facade's session state.
type State int

const (
	// StateAnonymous routes cart operations to the guest manager.
	StateAnonymous State = iota
	// StateAuthenticated routes cart operations to the server manager.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// AuthAPI is the slice of the API client the facade needs for session
// transitions.
type AuthAPI interface {
	Login(ctx context.Context, input api.LoginInput) (domain.Session, error)
	Me(ctx context.Context) (domain.User, error)
}

// Facade is the single entry point for cart operations. It dispatches to
// the guest or server manager based on session state and owns the merge
// protocol that runs at login. Callers never branch on state themselves.
//
// All dependencies are passed in explicitly; there is no ambient session
// singleton. The internal mutex serializes operations so the cross-tab
// subscriber goroutine can reload the guest mirror safely.
type Facade struct {
	mu     sync.Mutex
	state  State
	user   domain.User
	creds  credstore.Store
	auth   AuthAPI
	guest  *GuestManager
	server *ServerManager
	logger *slog.Logger
}

// NewFacade creates a facade in the anonymous state. Call Restore to adopt
// a previously persisted session.
func NewFacade(creds credstore.Store, auth AuthAPI, guest *GuestManager, server *ServerManager, logger *slog.Logger) *Facade {
	return &Facade{
		state:  StateAnonymous,
		creds:  creds,
		auth:   auth,
		guest:  guest,
		server: server,
		logger: logger,
	}
}

// Restore adopts the persisted session at startup: authenticated when stored
// tokens exist and the profile endpoint confirms them, anonymous otherwise.
func (f *Facade) Restore(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	session, err := f.creds.Session(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	if session.Authenticated() {
		user, err := f.auth.Me(ctx)
		if err == nil {
			f.user = user
			f.state = StateAuthenticated
			if err := f.server.Fetch(ctx); err != nil {
				f.logger.WarnContext(ctx, "failed to fetch cart during restore",
					slog.String("error", err.Error()),
				)
			}
			return nil
		}
		f.logger.DebugContext(ctx, "stored session not restorable",
			slog.String("error", err.Error()),
		)
	}

	f.state = StateAnonymous
	return f.guest.Load(ctx)
}

// Login obtains and persists a token pair, runs the merge protocol, and
// transitions to the authenticated state. A merge failure leaves the
// session authenticated and the unmerged guest entries intact.
func (f *Facade) Login(ctx context.Context, username, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	session, err := f.auth.Login(ctx, api.LoginInput{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	// Tokens are persisted as a pair before anything else can fail.
	if err := f.creds.SetSession(ctx, session); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	if user, err := f.auth.Me(ctx); err != nil {
		f.logger.WarnContext(ctx, "failed to fetch user profile after login",
			slog.String("error", err.Error()),
		)
	} else {
		f.user = user
	}

	f.state = StateAuthenticated

	mergeErr := f.mergeGuestCart(ctx)

	// Reconcile with the server's authoritative cart after a full or
	// partial merge.
	if err := f.server.Fetch(ctx); err != nil {
		if mergeErr == nil {
			mergeErr = err
		} else {
			f.logger.WarnContext(ctx, "failed to fetch cart after merge",
				slog.String("error", err.Error()),
			)
		}
	}
	if mergeErr != nil {
		return mergeErr
	}

	f.resumePendingAdd(ctx)

	f.logger.InfoContext(ctx, "logged in",
		slog.String("username", username),
		slog.Int("cart_count", f.server.Count()),
	)
	return nil
}

// mergeGuestCart transfers guest entries into the server cart, one awaited
// call at a time in list order: the server does not tolerate concurrent
// creation of duplicate lines for the same item. On failure the unmerged
// tail is retained so no item is silently lost. Every add of a batch shares
// one idempotency key, so an interrupted merge can be replayed safely.
func (f *Facade) mergeGuestCart(ctx context.Context) error {
	entries := f.guest.List()
	if len(entries) == 0 {
		return nil
	}

	batch := uuid.New().String()
	for i, entry := range entries {
		if err := f.server.Add(ctx, entry.MenuItemID, entry.Quantity, batch); err != nil {
			if rErr := f.guest.Replace(ctx, entries[i:]); rErr != nil {
				f.logger.ErrorContext(ctx, "failed to retain unmerged guest entries",
					slog.String("error", rErr.Error()),
				)
			}
			return fmt.Errorf("merge guest cart item %d: %w", entry.MenuItemID, err)
		}
	}

	if err := f.guest.Clear(ctx); err != nil {
		return fmt.Errorf("clear merged guest cart: %w", err)
	}

	f.logger.InfoContext(ctx, "guest cart merged",
		slog.Int("entries", len(entries)),
		slog.String("batch", batch),
	)
	return nil
}

// resumePendingAdd completes a parked add-to-cart intent after login.
// Buy-now intents are left parked for the checkout layer to take.
func (f *Facade) resumePendingAdd(ctx context.Context) {
	action, ok, err := f.creds.PendingAction(ctx)
	if err != nil {
		f.logger.WarnContext(ctx, "failed to read pending action",
			slog.String("error", err.Error()),
		)
		return
	}
	if !ok || action.Type != domain.ActionAddToCart || !action.Valid() {
		return
	}

	if err := f.server.Add(ctx, action.MenuItemID, 1, ""); err != nil {
		f.logger.WarnContext(ctx, "failed to resume pending add to cart",
			slog.Int64("menu_item_id", action.MenuItemID),
			slog.String("error", err.Error()),
		)
		return
	}
	if err := f.creds.ClearPendingAction(ctx); err != nil {
		f.logger.WarnContext(ctx, "failed to clear pending action",
			slog.String("error", err.Error()),
		)
	}
}

// Logout clears the session pair only: the guest cart outlives logout and
// becomes the active collection again.
func (f *Facade) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.creds.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	f.server.Drop()
	f.user = domain.User{}
	f.state = StateAnonymous

	if err := f.guest.Load(ctx); err != nil {
		return err
	}

	f.logger.InfoContext(ctx, "logged out")
	return nil
}

// Add adds quantity of a menu item to whichever cart is active.
func (f *Facade) Add(ctx context.Context, menuItemID int64, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateAuthenticated {
		return f.server.Add(ctx, menuItemID, quantity, "")
	}
	return f.guest.Add(ctx, menuItemID, quantity)
}

// Remove removes a menu item from whichever cart is active. Removing an
// absent item is a no-op.
func (f *Facade) Remove(ctx context.Context, menuItemID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateAuthenticated {
		return f.server.Remove(ctx, menuItemID)
	}
	return f.guest.Remove(ctx, menuItemID)
}

// UpdateQuantity sets a menu item's quantity in whichever cart is active.
func (f *Facade) UpdateQuantity(ctx context.Context, menuItemID int64, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateAuthenticated {
		return f.server.UpdateQuantity(ctx, menuItemID, quantity)
	}
	return f.guest.UpdateQuantity(ctx, menuItemID, quantity)
}

// Refresh re-fetches the server cart when authenticated and reloads the
// guest mirror otherwise.
func (f *Facade) Refresh(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateAuthenticated {
		return f.server.Fetch(ctx)
	}
	return f.guest.Load(ctx)
}

// Snapshot returns the current cart view: exactly one collection populated.
func (f *Facade) Snapshot() domain.CartSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateAuthenticated {
		return domain.CartSnapshot{Authenticated: true, Lines: f.server.List()}
	}
	return domain.CartSnapshot{Guest: f.guest.List()}
}

// Count returns the item count of the active collection.
func (f *Facade) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateAuthenticated {
		return f.server.Count()
	}
	return f.guest.Count()
}

// State returns the current session state.
func (f *Facade) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// User returns the authenticated user's profile, zero while anonymous.
func (f *Facade) User() domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user
}

// ParkAction persists an intent to resume after the login detour.
func (f *Facade) ParkAction(ctx context.Context, action domain.PendingAction) error {
	if !action.Valid() {
		return fmt.Errorf("invalid pending action %q", action.Type)
	}
	return f.creds.SetPendingAction(ctx, action)
}

// TakePendingAction pops the parked action, if any.
func (f *Facade) TakePendingAction(ctx context.Context) (domain.PendingAction, bool, error) {
	action, ok, err := f.creds.PendingAction(ctx)
	if err != nil || !ok {
		return domain.PendingAction{}, false, err
	}
	if err := f.creds.ClearPendingAction(ctx); err != nil {
		return domain.PendingAction{}, false, err
	}
	return action, true, nil
}

// HandleGuestCartChange is the cross-tab subscriber handler: it replaces the
// guest mirror with the persisted list. While authenticated the notification
// is ignored, the server cart being authoritative.
func (f *Facade) HandleGuestCartChange(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateAnonymous {
		return
	}
	if err := f.guest.Load(ctx); err != nil {
		f.logger.WarnContext(ctx, "failed to reload guest cart after change notification",
			slog.String("error", err.Error()),
		)
	}
}
