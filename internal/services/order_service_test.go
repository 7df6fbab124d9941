package services_test

import (
	"testing"

	apperrors "github.com/giftscape-studio/storefront-core/internal/errors"
	"github.com/giftscape-studio/storefront-core/internal/models"
	repository "github.com/giftscape-studio/storefront-core/internal/repositories"
	"github.com/giftscape-studio/storefront-core/internal/services"
	"github.com/giftscape-studio/storefront-core/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrderService_Advance(t *testing.T) {

	t.Run("Success - One Step Forward", func(t *testing.T) {
		// Arrange
		archive := new(MockOrderArchive)
		archive.On("GetOrderByID", mock.Anything, "GSS-12345").
			Return(&models.Order{ID: "GSS-12345", Status: models.OrderStatusShipped}, nil)
		archive.On("UpdateOrderStatus", mock.Anything, "GSS-12345",
			models.OrderStatusShipped, models.OrderStatusOutForDelivery).Return(nil)

		svc := services.NewOrderService(archive, testLogger())

		// Act
		order, err := svc.Advance(t.Context(), "GSS-12345", models.OrderStatusOutForDelivery)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusOutForDelivery, order.Status)
		archive.AssertExpectations(t)
	})

	t.Run("Failure - Skipping A Step", func(t *testing.T) {
		// Arrange
		archive := new(MockOrderArchive)
		archive.On("GetOrderByID", mock.Anything, "GSS-12345").
			Return(&models.Order{ID: "GSS-12345", Status: models.OrderStatusProcessing}, nil)

		svc := services.NewOrderService(archive, testLogger())

		// Act
		_, err := svc.Advance(t.Context(), "GSS-12345", models.OrderStatusDelivered)

		// Assert
		require.Error(t, err)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeConflict, appErr.Code)
	})

	t.Run("Failure - Moving Backwards", func(t *testing.T) {
		// Arrange
		archive := new(MockOrderArchive)
		archive.On("GetOrderByID", mock.Anything, "GSS-12345").
			Return(&models.Order{ID: "GSS-12345", Status: models.OrderStatusDelivered}, nil)

		svc := services.NewOrderService(archive, testLogger())

		// Act
		_, err := svc.Advance(t.Context(), "GSS-12345", models.OrderStatusShipped)

		// Assert
		require.Error(t, err)
	})
}

func TestOrderService_Cancel(t *testing.T) {

	t.Run("Success - Still Processing", func(t *testing.T) {
		// Arrange
		archive := new(MockOrderArchive)
		archive.On("UpdateOrderStatus", mock.Anything, "GSS-12345",
			models.OrderStatusProcessing, models.OrderStatusCancelled).Return(nil)
		archive.On("GetOrderByID", mock.Anything, "GSS-12345").
			Return(&models.Order{ID: "GSS-12345", Status: models.OrderStatusCancelled}, nil)

		svc := services.NewOrderService(archive, testLogger())

		// Act
		order, err := svc.Cancel(t.Context(), "GSS-12345")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCancelled, order.Status)
	})

	t.Run("Failure - Already Shipped", func(t *testing.T) {
		// Arrange
		archive := new(MockOrderArchive)
		archive.On("UpdateOrderStatus", mock.Anything, "GSS-12345",
			models.OrderStatusProcessing, models.OrderStatusCancelled).
			Return(repository.ErrStatusConflict)

		svc := services.NewOrderService(archive, testLogger())

		// Act
		_, err := svc.Cancel(t.Context(), "GSS-12345")

		// Assert
		require.Error(t, err)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeConflict, appErr.Code)
	})
}

func TestOrderService_Track(t *testing.T) {

	t.Run("Shipped Order Has A Timeline", func(t *testing.T) {
		// Arrange
		archive := new(MockOrderArchive)
		archive.On("GetOrderByID", mock.Anything, "GSS-12345").
			Return(&models.Order{ID: "GSS-12345", Status: models.OrderStatusShipped}, nil)

		svc := services.NewOrderService(archive, testLogger())

		// Act
		steps, err := svc.Track(t.Context(), "GSS-12345")

		// Assert
		require.NoError(t, err)
		require.Len(t, steps, 4)
		assert.Equal(t, tracker.StepActive, steps[1].State)
	})

	t.Run("Cancelled Order Has None", func(t *testing.T) {
		// Arrange
		archive := new(MockOrderArchive)
		archive.On("GetOrderByID", mock.Anything, "GSS-12345").
			Return(&models.Order{ID: "GSS-12345", Status: models.OrderStatusCancelled}, nil)

		svc := services.NewOrderService(archive, testLogger())

		// Act
		steps, err := svc.Track(t.Context(), "GSS-12345")

		// Assert
		require.NoError(t, err)
		assert.Nil(t, steps)
	})

	t.Run("Unknown Order", func(t *testing.T) {
		// Arrange
		archive := new(MockOrderArchive)
		archive.On("GetOrderByID", mock.Anything, "GSS-00000").
			Return(nil, repository.ErrOrderNotFound)

		svc := services.NewOrderService(archive, testLogger())

		// Act
		_, err := svc.Track(t.Context(), "GSS-00000")

		// Assert
		require.Error(t, err)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
	})
}
