package credstore

import (
	"context"
	"sync"

	"github.com/kaushalNeupane10/CloudBite/internal/domain"
)

// MemoryStore implements Store in process memory. It backs tests and
// ephemeral runs where no Redis is configured; state is lost on exit.
type MemoryStore struct {
	mu        sync.Mutex
	session   domain.Session
	guestCart domain.GuestCart
	action    domain.PendingAction
	hasAction bool
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Session(ctx context.Context) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, nil
}

func (s *MemoryStore) SetSession(ctx context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	return nil
}

func (s *MemoryStore) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{}
	return nil
}

func (s *MemoryStore) GuestCart(ctx context.Context) (domain.GuestCart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := make(domain.GuestCart, len(s.guestCart))
	copy(cart, s.guestCart)
	return cart, nil
}

func (s *MemoryStore) SetGuestCart(ctx context.Context, cart domain.GuestCart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guestCart = make(domain.GuestCart, len(cart))
	copy(s.guestCart, cart)
	return nil
}

func (s *MemoryStore) PendingAction(ctx context.Context) (domain.PendingAction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.action, s.hasAction, nil
}

func (s *MemoryStore) SetPendingAction(ctx context.Context, a domain.PendingAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.action = a
	s.hasAction = true
	return nil
}

func (s *MemoryStore) ClearPendingAction(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.action = domain.PendingAction{}
	s.hasAction = false
	return nil
}
