package credstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaushalNeupane10/CloudBite/internal/domain"
)

// The contract below holds for every Store implementation; the memory store
// stands in for Redis, which carries identical semantics per key.

func TestMemoryStore_SessionRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	got, err := s.Session(ctx)
	require.NoError(t, err)
	assert.False(t, got.Authenticated())

	want := domain.Session{AccessToken: "acc", RefreshToken: "ref"}
	require.NoError(t, s.SetSession(ctx, want))

	got, err = s.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMemoryStore_ClearSessionKeepsGuestCart(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.SetSession(ctx, domain.Session{AccessToken: "acc", RefreshToken: "ref"}))
	require.NoError(t, s.SetGuestCart(ctx, domain.GuestCart{{MenuItemID: 1, Quantity: 2}}))

	require.NoError(t, s.ClearSession(ctx))

	session, err := s.Session(ctx)
	require.NoError(t, err)
	assert.Empty(t, session.AccessToken)
	assert.Empty(t, session.RefreshToken)

	cart, err := s.GuestCart(ctx)
	require.NoError(t, err)
	assert.Len(t, cart, 1)
}

func TestMemoryStore_GuestCartAbsentYieldsEmpty(t *testing.T) {
	s := NewMemoryStore()

	cart, err := s.GuestCart(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestMemoryStore_GuestCartCopyOnRead(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.SetGuestCart(ctx, domain.GuestCart{{MenuItemID: 1, Quantity: 2}}))

	cart, err := s.GuestCart(ctx)
	require.NoError(t, err)
	cart[0].Quantity = 99

	again, err := s.GuestCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, again[0].Quantity)
}

func TestMemoryStore_PendingActionLifecycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := s.PendingAction(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := domain.PendingAction{Type: domain.ActionBuyNow, MenuItemID: 7}
	require.NoError(t, s.SetPendingAction(ctx, want))

	got, ok, err := s.PendingAction(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, s.ClearPendingAction(ctx))
	_, ok, err = s.PendingAction(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_KeyNamespace(t *testing.T) {
	s := NewRedisStore(nil, "default")

	assert.Equal(t, "storefront:default:token", s.key(keyToken))
	assert.Equal(t, "storefront:default:guestCart", s.key(keyGuestCart))
}
