package repository_test

import (
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/giftscape-studio/storefront-core/internal/models"
	repository "github.com/giftscape-studio/storefront-core/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderRepoTest(t *testing.T) (*repository.OrderRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewOrderRepository(db)
	require.NotNil(t, repo, "NewOrderRepository should return a non-nil repository")

	return repo, mock
}

func sampleOrder() *models.Order {
	return &models.Order{
		ID:         "GSS-12345",
		CustomerID: "alice@example.com",
		Date:       time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC),
		Status:     models.OrderStatusProcessing,
		Items: []models.CartItem{
			{
				ID:       "p1-p1-l",
				Product:  models.Product{ID: "p1", NameKey: "glowFrame", Price: 1299},
				Quantity: 1,
				Variation: &models.ProductVariation{
					ID: "p1-l", NameKey: "glowFrameLarge", Price: 1999,
				},
			},
		},
		Subtotal:      1999,
		Shipping:      50,
		Discount:      199.9,
		Total:         1849.1,
		PaymentMethod: models.PaymentMethodUPI,
		ShippingAddress: &models.ShippingInfo{
			FullName: "Alice", Email: "alice@example.com", Phone: "9999999999",
			Address: "42 Sunset Blvd", City: "Kolkata", Pincode: "700028",
		},
	}
}

func TestOrderRepository_CreateOrder(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	ctx := t.Context()
	order := sampleOrder()

	expectedSQL := regexp.QuoteMeta(`
		INSERT INTO orders (id, customer_id, status, subtotal, shipping, discount, total, payment_method, shipping_address, items, tracking_id, shipping_provider, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`)

	itemsJSON, err := json.Marshal(order.Items)
	require.NoError(t, err)
	addressJSON, err := json.Marshal(order.ShippingAddress)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(expectedSQL).
			WithArgs(order.ID, order.CustomerID, order.Status,
				order.Subtotal, order.Shipping, order.Discount, order.Total,
				order.PaymentMethod, addressJSON, itemsJSON,
				order.TrackingID, order.ShippingProvider, order.Date).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.CreateOrder(ctx, order)

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		dbError := errors.New("database insertion error")
		mock.ExpectExec(expectedSQL).WillReturnError(dbError)

		// Act
		err := repo.CreateOrder(ctx, order)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, dbError)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_GetOrderByID(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	ctx := t.Context()
	order := sampleOrder()

	itemsJSON, err := json.Marshal(order.Items)
	require.NoError(t, err)
	addressJSON, err := json.Marshal(order.ShippingAddress)
	require.NoError(t, err)

	columns := []string{"customer_id", "status", "subtotal", "shipping", "discount", "total", "payment_method", "shipping_address", "items", "tracking_id", "shipping_provider", "created_at"}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT (.+) FROM orders`).
			WithArgs(order.ID).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(order.CustomerID, order.Status, order.Subtotal, order.Shipping, order.Discount, order.Total,
					order.PaymentMethod, addressJSON, itemsJSON, "", "", order.Date))

		// Act
		got, err := repo.GetOrderByID(ctx, order.ID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, order.ID, got.ID)
		assert.Equal(t, models.OrderStatusProcessing, got.Status)
		assert.InDelta(t, 1849.1, got.Total, 0.001)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "p1-p1-l", got.Items[0].ID)
		require.NotNil(t, got.ShippingAddress)
		assert.Equal(t, "Kolkata", got.ShippingAddress.City)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT (.+) FROM orders`).
			WithArgs("GSS-00000").
			WillReturnRows(sqlmock.NewRows(columns))

		// Act
		got, err := repo.GetOrderByID(ctx, "GSS-00000")

		// Assert
		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, repository.ErrOrderNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_ListOrdersByCustomer(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	ctx := t.Context()
	order := sampleOrder()

	itemsJSON, err := json.Marshal(order.Items)
	require.NoError(t, err)
	addressJSON, err := json.Marshal(order.ShippingAddress)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders`).
			WithArgs(order.CustomerID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectQuery(`SELECT (.+) FROM orders`).
			WithArgs(order.CustomerID, 10, 0).
			WillReturnRows(sqlmock.NewRows([]string{"id", "status", "subtotal", "shipping", "discount", "total", "payment_method", "shipping_address", "items", "tracking_id", "shipping_provider", "created_at"}).
				AddRow(order.ID, order.Status, order.Subtotal, order.Shipping, order.Discount, order.Total,
					order.PaymentMethod, addressJSON, itemsJSON, "", "", order.Date))

		// Act
		orders, total, err := repo.ListOrdersByCustomer(ctx, order.CustomerID, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, orders, 1)
		assert.Equal(t, order.ID, orders[0].ID)
		assert.Equal(t, order.CustomerID, orders[0].CustomerID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Count Error", func(t *testing.T) {
		// Arrange
		dbError := errors.New("count failed")
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders`).
			WithArgs(order.CustomerID).
			WillReturnError(dbError)

		// Act
		orders, total, err := repo.ListOrdersByCustomer(ctx, order.CustomerID, 1, 10)

		// Assert
		require.Error(t, err)
		assert.Nil(t, orders)
		assert.Zero(t, total)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_UpdateOrderStatus(t *testing.T) {
	repo, mock := setupOrderRepoTest(t)
	ctx := t.Context()

	expectedSQL := regexp.QuoteMeta(`
		UPDATE orders SET status = $1 WHERE id = $2 AND status = $3
	`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mock.ExpectExec(expectedSQL).
			WithArgs(models.OrderStatusCancelled, "GSS-12345", models.OrderStatusProcessing).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.UpdateOrderStatus(ctx, "GSS-12345", models.OrderStatusProcessing, models.OrderStatusCancelled)

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Wrong From Status", func(t *testing.T) {
		// Arrange: the order already shipped, so the predicate matches nothing
		mock.ExpectExec(expectedSQL).
			WithArgs(models.OrderStatusCancelled, "GSS-12345", models.OrderStatusProcessing).
			WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.UpdateOrderStatus(ctx, "GSS-12345", models.OrderStatusProcessing, models.OrderStatusCancelled)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, repository.ErrStatusConflict)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
