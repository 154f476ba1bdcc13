package cart

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaushalNeupane10/CloudBite/internal/credstore"
	"github.com/kaushalNeupane10/CloudBite/internal/domain"
	"github.com/kaushalNeupane10/CloudBite/internal/tabsync"
	apperrors "github.com/kaushalNeupane10/CloudBite/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type failingGuestStore struct {
	credstore.Store
	failWrites bool
}

func (s *failingGuestStore) SetGuestCart(ctx context.Context, items domain.GuestCart) error {
	if s.failWrites {
		return errors.New("storage unavailable")
	}
	return s.Store.SetGuestCart(ctx, items)
}

func newGuestManager(t *testing.T) (*GuestManager, credstore.Store, *tabsync.LocalBus) {
	t.Helper()
	store := credstore.NewMemoryStore()
	bus := tabsync.NewLocalBus()
	m := NewGuestManager(store, tabsync.NewLocalBroadcaster(bus), testLogger())
	require.NoError(t, m.Load(context.Background()))
	return m, store, bus
}

func TestGuestManagerAddMergesExistingEntry(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newGuestManager(t)

	require.NoError(t, m.Add(ctx, 7, 2))
	require.NoError(t, m.Add(ctx, 7, 3))

	assert.Equal(t, domain.GuestCart{{MenuItemID: 7, Quantity: 5}}, m.List())

	persisted, err := store.GuestCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.GuestCart{{MenuItemID: 7, Quantity: 5}}, persisted)
}

func TestGuestManagerAddValidation(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newGuestManager(t)

	err := m.Add(ctx, 0, 1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	err = m.Add(ctx, 7, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	assert.Empty(t, m.List())
}

func TestGuestManagerRemoveAbsentIsNoOp(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newGuestManager(t)
	require.NoError(t, m.Add(ctx, 7, 2))

	require.NoError(t, m.Remove(ctx, 99))

	assert.Equal(t, 2, m.Count())
}

func TestGuestManagerRemove(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newGuestManager(t)
	require.NoError(t, m.Add(ctx, 7, 2))
	require.NoError(t, m.Add(ctx, 9, 1))

	require.NoError(t, m.Remove(ctx, 7))

	assert.Equal(t, domain.GuestCart{{MenuItemID: 9, Quantity: 1}}, m.List())

	persisted, err := store.GuestCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.GuestCart{{MenuItemID: 9, Quantity: 1}}, persisted)
}

func TestGuestManagerUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newGuestManager(t)
	require.NoError(t, m.Add(ctx, 7, 2))

	require.NoError(t, m.UpdateQuantity(ctx, 7, 6))
	assert.Equal(t, 6, m.Count())

	// Absent entry is a no-op.
	require.NoError(t, m.UpdateQuantity(ctx, 99, 3))
	assert.Equal(t, 6, m.Count())

	err := m.UpdateQuantity(ctx, 7, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Equal(t, 6, m.Count())
}

func TestGuestManagerFailedWriteKeepsMirror(t *testing.T) {
	ctx := context.Background()
	store := &failingGuestStore{Store: credstore.NewMemoryStore()}
	bus := tabsync.NewLocalBus()
	m := NewGuestManager(store, tabsync.NewLocalBroadcaster(bus), testLogger())
	require.NoError(t, m.Load(ctx))
	require.NoError(t, m.Add(ctx, 7, 2))

	store.failWrites = true
	err := m.Add(ctx, 9, 1)
	require.Error(t, err)

	// Mirror stays at the last persisted value.
	assert.Equal(t, domain.GuestCart{{MenuItemID: 7, Quantity: 2}}, m.List())
}

func TestGuestManagerBroadcastsMutations(t *testing.T) {
	ctx := context.Background()
	m, _, bus := newGuestManager(t)

	var notified int
	other := tabsync.NewLocalBroadcaster(bus)
	require.NoError(t, other.Subscribe(ctx, func(context.Context) { notified++ }))
	t.Cleanup(func() { _ = other.Close() })

	require.NoError(t, m.Add(ctx, 7, 2))
	require.NoError(t, m.UpdateQuantity(ctx, 7, 3))
	require.NoError(t, m.Remove(ctx, 7))

	assert.Equal(t, 3, notified)
}

func TestGuestManagerLoadReplacesMirror(t *testing.T) {
	ctx := context.Background()
	store := credstore.NewMemoryStore()
	require.NoError(t, store.SetGuestCart(ctx, domain.GuestCart{{MenuItemID: 4, Quantity: 2}}))

	m := NewGuestManager(store, tabsync.NewLocalBroadcaster(tabsync.NewLocalBus()), testLogger())
	require.NoError(t, m.Load(ctx))

	assert.Equal(t, domain.GuestCart{{MenuItemID: 4, Quantity: 2}}, m.List())
}
