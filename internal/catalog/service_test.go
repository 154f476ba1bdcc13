package catalog

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kaushalNeupane10/CloudBite/internal/domain"
	apperrors "github.com/kaushalNeupane10/CloudBite/pkg/errors"
)

type mockMenuAPI struct {
	mock.Mock
}

func (m *mockMenuAPI) MenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]domain.MenuItem)
	return items, args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func menu() []domain.MenuItem {
	return []domain.MenuItem{
		{ID: 1, Title: "Margherita", Price: "9.50"},
		{ID: 2, Title: "Pad Thai", Price: "11.00"},
	}
}

func TestServiceListCachesMenu(t *testing.T) {
	ctx := context.Background()
	api := new(mockMenuAPI)
	api.On("MenuItems", ctx).Return(menu(), nil).Once()

	s := NewService(api, testLogger())

	first, err := s.List(ctx)
	require.NoError(t, err)
	second, err := s.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	api.AssertExpectations(t)
}

func TestServiceReloadBypassesCache(t *testing.T) {
	ctx := context.Background()
	api := new(mockMenuAPI)
	api.On("MenuItems", ctx).Return(menu(), nil).Twice()

	s := NewService(api, testLogger())
	_, err := s.List(ctx)
	require.NoError(t, err)
	_, err = s.Reload(ctx)
	require.NoError(t, err)

	api.AssertExpectations(t)
}

func TestServiceGet(t *testing.T) {
	ctx := context.Background()
	api := new(mockMenuAPI)
	api.On("MenuItems", ctx).Return(menu(), nil).Once()

	s := NewService(api, testLogger())

	item, err := s.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Pad Thai", item.Title)

	_, err = s.Get(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestServiceListPropagatesFetchError(t *testing.T) {
	ctx := context.Background()
	api := new(mockMenuAPI)
	api.On("MenuItems", ctx).Return(nil, errors.New("network down")).Once()

	s := NewService(api, testLogger())
	_, err := s.List(ctx)
	require.Error(t, err)
}
