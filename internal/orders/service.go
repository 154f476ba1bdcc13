package orders

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/kaushalNeupane10/CloudBite/internal/domain"
	apperrors "github.com/kaushalNeupane10/CloudBite/pkg/errors"
)

// OrderAPI is the slice of the API client the order service needs.
type OrderAPI interface {
	Orders(ctx context.Context) ([]domain.Order, error)
}

// Service serves the authenticated user's order history.
type Service struct {
	api    OrderAPI
	logger *slog.Logger
}

// NewService creates an order history service.
func NewService(api OrderAPI, logger *slog.Logger) *Service {
	return &Service{
		api:    api,
		logger: logger,
	}
}

// List returns the user's orders as reported by the API.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.api.Orders(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "fetch orders")
	}

	s.logger.DebugContext(ctx, "orders fetched", slog.Int("count", len(orders)))
	return orders, nil
}

// Get returns a single order by ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.Order, error) {
	orders, err := s.List(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	for _, order := range orders {
		if order.ID == id {
			return order, nil
		}
	}
	return domain.Order{}, apperrors.NotFound("order", strconv.FormatInt(id, 10))
}
