package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/internal/utils"
)

// ErrStatusConflict is returned when a status update names a from-state the
// order is no longer in.
var ErrStatusConflict = errors.New("order is not in the expected status")

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	shippingAddress, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	query := `
		INSERT INTO orders (id, customer_id, status, subtotal, shipping, discount, total, payment_method, shipping_address, items, tracking_id, shipping_provider, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = r.DB.ExecContext(dbCtx, query,
		order.ID, order.CustomerID, order.Status,
		order.Subtotal, order.Shipping, order.Discount, order.Total,
		order.PaymentMethod, shippingAddress, items,
		order.TrackingID, order.ShippingProvider, order.Date)

	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	return nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{ID: id}

	query := `
		SELECT customer_id, status, subtotal, shipping, discount, total, payment_method, shipping_address, items, tracking_id, shipping_provider, created_at
		FROM orders
		WHERE id = $1
	`

	var addressJSON, itemsJSON []byte

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(
		&order.CustomerID, &order.Status,
		&order.Subtotal, &order.Shipping, &order.Discount, &order.Total,
		&order.PaymentMethod, &addressJSON, &itemsJSON,
		&order.TrackingID, &order.ShippingProvider, &order.Date)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	if err := unmarshalOrderPayloads(order, addressJSON, itemsJSON); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *OrderRepository) ListOrdersByCustomer(ctx context.Context, customerID string, page, size int) ([]models.Order, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM orders WHERE customer_id = $1`
	if err := r.DB.QueryRowContext(dbCtx, countQuery, customerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (page - 1) * size

	query := `
		SELECT id, status, subtotal, shipping, discount, total, payment_method, shipping_address, items, tracking_id, shipping_provider, created_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, customerID, size, offset)

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order

	for rows.Next() {

		order := models.Order{CustomerID: customerID}

		var addressJSON, itemsJSON []byte

		err := rows.Scan(&order.ID, &order.Status,
			&order.Subtotal, &order.Shipping, &order.Discount, &order.Total,
			&order.PaymentMethod, &addressJSON, &itemsJSON,
			&order.TrackingID, &order.ShippingProvider, &order.Date)

		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan the orders: %w", err)
		}

		if err := unmarshalOrderPayloads(&order, addressJSON, itemsJSON); err != nil {
			return nil, 0, err
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateOrderStatus moves an order from one status to another. The from-state
// is part of the predicate so lifecycle edges cannot be skipped by a stale
// caller.
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id string, from, to models.OrderStatus) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE orders SET status = $1 WHERE id = $2 AND status = $3
	`

	result, err := r.DB.ExecContext(dbCtx, query, to, id, from)

	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update the order: %w", err)
	}

	if updatedRows == 0 {
		return ErrStatusConflict
	}

	return nil
}

// SeedDemoOrders inserts synthetic fulfillment records, skipping ids that
// already exist.
func (r *OrderRepository) SeedDemoOrders(ctx context.Context, orders []models.Order) error {

	for i := range orders {

		order := &orders[i]

		items, err := json.Marshal(order.Items)
		if err != nil {
			return fmt.Errorf("failed to marshal order items: %w", err)
		}

		shippingAddress, err := json.Marshal(order.ShippingAddress)
		if err != nil {
			return fmt.Errorf("failed to marshal shipping address: %w", err)
		}

		dbCtx, cancel := utils.WithDBTimeout(ctx)

		query := `
			INSERT INTO orders (id, customer_id, status, subtotal, shipping, discount, total, payment_method, shipping_address, items, tracking_id, shipping_provider, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (id) DO NOTHING
		`

		_, err = r.DB.ExecContext(dbCtx, query,
			order.ID, order.CustomerID, order.Status,
			order.Subtotal, order.Shipping, order.Discount, order.Total,
			order.PaymentMethod, shippingAddress, items,
			order.TrackingID, order.ShippingProvider, order.Date)

		cancel()

		if err != nil {
			return fmt.Errorf("failed to seed order %s: %w", order.ID, err)
		}
	}

	return nil
}

func unmarshalOrderPayloads(order *models.Order, addressJSON, itemsJSON []byte) error {

	if len(addressJSON) > 0 && string(addressJSON) != "null" {
		if err := json.Unmarshal(addressJSON, &order.ShippingAddress); err != nil {
			return fmt.Errorf("failed to unmarshal shipping address: %w", err)
		}
	}

	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			return fmt.Errorf("failed to unmarshal order items: %w", err)
		}
	}

	return nil
}
