package services_test

import (
	"testing"
	"time"

	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/internal/services"
	"github.com/giftscape-studio/storefront-core/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRewardService(t *testing.T) (*services.RewardService, storage.Store) {
	t.Helper()

	store := storage.NewMemoryStore()
	svc := services.NewRewardService(store, nil, time.Second, testLogger())

	return svc, store
}

func TestRewardService_AddPoints(t *testing.T) {

	alice := &models.Identity{Key: "alice@example.com"}

	t.Run("Credits And Accumulates", func(t *testing.T) {
		// Arrange
		svc, _ := newRewardService(t)
		ctx := t.Context()

		// Act
		_, err := svc.AddPoints(ctx, alice, 50)
		require.NoError(t, err)

		points, err := svc.AddPoints(ctx, alice, 25)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 75, points)

		balance, err := svc.Balance(ctx, alice.Key)
		require.NoError(t, err)
		assert.Equal(t, 75, balance)
	})

	t.Run("Balance Never Goes Below Zero", func(t *testing.T) {
		// Arrange
		svc, _ := newRewardService(t)
		ctx := t.Context()

		_, err := svc.AddPoints(ctx, alice, 30)
		require.NoError(t, err)

		// Act
		points, err := svc.AddPoints(ctx, alice, -100)

		// Assert
		require.NoError(t, err)
		assert.Zero(t, points)
	})

	t.Run("Anonymous Target Is A Silent No-Op", func(t *testing.T) {
		// Arrange
		svc, _ := newRewardService(t)

		// Act
		points, err := svc.AddPoints(t.Context(), nil, 50)

		// Assert
		require.NoError(t, err)
		assert.Zero(t, points)
	})

	t.Run("Notifies Subscribers", func(t *testing.T) {
		// Arrange
		svc, _ := newRewardService(t)

		var seen []models.RewardBalance

		svc.Subscribe(func(b models.RewardBalance) {
			seen = append(seen, b)
		})

		// Act
		_, err := svc.AddPoints(t.Context(), alice, 10)

		// Assert
		require.NoError(t, err)
		require.Len(t, seen, 1)
		assert.Equal(t, alice.Key, seen[0].UserID)
		assert.Equal(t, 10, seen[0].Points)
	})
}

func TestRewardService_Balance(t *testing.T) {

	t.Run("Missing Balance Reads As Zero", func(t *testing.T) {
		// Arrange
		svc, _ := newRewardService(t)

		// Act
		points, err := svc.Balance(t.Context(), "nobody@example.com")

		// Assert
		require.NoError(t, err)
		assert.Zero(t, points)
	})

	t.Run("Corrupt Balance Reads As Zero", func(t *testing.T) {
		// Arrange
		svc, store := newRewardService(t)
		ctx := t.Context()

		require.NoError(t, store.Set(ctx, storage.RewardsKey("alice@example.com"), "not-a-number"))

		// Act
		points, err := svc.Balance(ctx, "alice@example.com")

		// Assert
		require.NoError(t, err)
		assert.Zero(t, points)
	})
}
