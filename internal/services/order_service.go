package services

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/giftscape-studio/storefront-core/internal/errors"
	"github.com/giftscape-studio/storefront-core/internal/models"
	repository "github.com/giftscape-studio/storefront-core/internal/repositories"
	"github.com/giftscape-studio/storefront-core/internal/tracker"
)

// OrderReader is the archive surface the order lifecycle needs.
type OrderReader interface {
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string, page, size int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id string, from, to models.OrderStatus) error
}

// Shipping moves strictly forward; the only sideways edge is a cancellation
// before the parcel leaves the warehouse.
var allowedTransitions = map[models.OrderStatus]models.OrderStatus{
	models.OrderStatusProcessing:     models.OrderStatusShipped,
	models.OrderStatusShipped:        models.OrderStatusOutForDelivery,
	models.OrderStatusOutForDelivery: models.OrderStatusDelivered,
}

type OrderService struct {
	archive OrderReader
	logger  *slog.Logger
}

func NewOrderService(archive OrderReader, logger *slog.Logger) *OrderService {
	return &OrderService{archive: archive, logger: logger}
}

func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {

	order, err := s.archive.GetOrderByID(ctx, id)

	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, apperrors.NotFoundError("order not found")
	}

	if err != nil {
		return nil, apperrors.StorageError("failed to load the order").WithError(err)
	}

	return order, nil
}

func (s *OrderService) List(ctx context.Context, customerID string, page, size int) ([]models.Order, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 10
	}

	orders, total, err := s.archive.ListOrdersByCustomer(ctx, customerID, page, size)
	if err != nil {
		return nil, 0, apperrors.StorageError("failed to list orders").WithError(err)
	}

	return orders, total, nil
}

// Advance moves an order one step along the shipping lifecycle.
func (s *OrderService) Advance(ctx context.Context, id string, to models.OrderStatus) (*models.Order, error) {

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if to == models.OrderStatusCancelled {
		return s.Cancel(ctx, id)
	}

	if allowedTransitions[order.Status] != to {
		return nil, apperrors.ConflictError("order cannot move to the requested status").
			WithDetail(string(order.Status) + " -> " + string(to))
	}

	if err := s.archive.UpdateOrderStatus(ctx, id, order.Status, to); err != nil {

		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, apperrors.ConflictError("order status changed underneath the update")
		}

		return nil, apperrors.StorageError("failed to update the order status").WithError(err)
	}

	order.Status = to

	s.logger.Info("Order status updated", slog.String("order_id", id), slog.String("status", string(to)))

	return order, nil
}

// Cancel is allowed only while the order is still being prepared.
func (s *OrderService) Cancel(ctx context.Context, id string) (*models.Order, error) {

	err := s.archive.UpdateOrderStatus(ctx, id, models.OrderStatusProcessing, models.OrderStatusCancelled)

	if errors.Is(err, repository.ErrStatusConflict) {
		return nil, apperrors.ConflictError("only orders still processing can be cancelled")
	}

	if err != nil {
		return nil, apperrors.StorageError("failed to cancel the order").WithError(err)
	}

	s.logger.Info("Order cancelled", slog.String("order_id", id))

	return s.Get(ctx, id)
}

// Track renders the fulfillment timeline for an order.
func (s *OrderService) Track(ctx context.Context, id string) ([]tracker.Step, error) {

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return tracker.Steps(order.Status), nil
}
