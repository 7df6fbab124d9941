package services_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)

	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)

	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)

	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()

	return args.Error(0)
}

type MockGeminiClient struct {
	mock.Mock
}

func (m *MockGeminiClient) GenerateDescription(ctx context.Context, productName, baseDescription string) (string, error) {
	args := m.Called(ctx, productName, baseDescription)

	return args.String(0), args.Error(1)
}

func (m *MockGeminiClient) RestorePhoto(ctx context.Context, imageData []byte, mimeType string) ([]byte, string, error) {
	args := m.Called(ctx, imageData, mimeType)

	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}

	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	args := m.Called(ctx, req)

	return args.Error(0)
}

type MockOrderArchive struct {
	mock.Mock
}

func (m *MockOrderArchive) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *MockOrderArchive) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderArchive) ListOrdersByCustomer(ctx context.Context, customerID string, page, size int) ([]models.Order, int, error) {
	args := m.Called(ctx, customerID, page, size)

	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]models.Order), args.Int(1), args.Error(2)
}

func (m *MockOrderArchive) UpdateOrderStatus(ctx context.Context, id string, from, to models.OrderStatus) error {
	args := m.Called(ctx, id, from, to)

	return args.Error(0)
}
