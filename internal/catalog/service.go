package catalog

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/kaushalNeupane10/CloudBite/internal/domain"
	apperrors "github.com/kaushalNeupane10/CloudBite/pkg/errors"
)

// MenuAPI is the slice of the API client the catalog service needs.
type MenuAPI interface {
	MenuItems(ctx context.Context) ([]domain.MenuItem, error)
}

// Service serves the menu catalog with a short-lived in-memory cache: the
// menu changes rarely and every screen renders from it.
type Service struct {
	api    MenuAPI
	logger *slog.Logger
	cached []domain.MenuItem
}

// NewService creates a catalog service.
func NewService(api MenuAPI, logger *slog.Logger) *Service {
	return &Service{
		api:    api,
		logger: logger,
	}
}

// List returns the full menu, fetching it on first use and serving the
// cached copy afterwards.
func (s *Service) List(ctx context.Context) ([]domain.MenuItem, error) {
	if s.cached != nil {
		return s.cached, nil
	}
	return s.Reload(ctx)
}

// Reload discards the cache and fetches the menu again.
func (s *Service) Reload(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := s.api.MenuItems(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "fetch menu")
	}
	s.cached = items

	s.logger.DebugContext(ctx, "menu loaded", slog.Int("items", len(items)))
	return items, nil
}

// Get returns a single menu item by ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.MenuItem, error) {
	items, err := s.List(ctx)
	if err != nil {
		return domain.MenuItem{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.MenuItem{}, apperrors.NotFound("menu item", strconv.FormatInt(id, 10))
}
