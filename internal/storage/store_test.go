package storage_test

import (
	"errors"
	"testing"

	"github.com/giftscape-studio/storefront-core/internal/storage"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Get(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := storage.NewRedisStore(client)
	ctx := t.Context()

	t.Run("Hit", func(t *testing.T) {
		// Arrange
		mock.ExpectGet("giftscape:rewards:alice").SetVal("120")

		// Act
		value, ok, err := store.Get(ctx, "giftscape:rewards:alice")

		// Assert
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "120", value)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Miss Is Not An Error", func(t *testing.T) {
		// Arrange
		mock.ExpectGet("giftscape:rewards:bob").RedisNil()

		// Act
		value, ok, err := store.Get(ctx, "giftscape:rewards:bob")

		// Assert
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure", func(t *testing.T) {
		// Arrange
		mock.ExpectGet("giftscape:rewards:carol").SetErr(errors.New("connection reset"))

		// Act
		_, _, err := store.Get(ctx, "giftscape:rewards:carol")

		// Assert
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to get key")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisStore_SetAndDelete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := storage.NewRedisStore(client)
	ctx := t.Context()

	t.Run("Set", func(t *testing.T) {
		// Arrange
		mock.ExpectSet("giftscape:rewards:alice", "170", 0).SetVal("OK")

		// Act
		err := store.Set(ctx, "giftscape:rewards:alice", "170")

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Set Failure", func(t *testing.T) {
		// Arrange
		mock.ExpectSet("giftscape:rewards:alice", "170", 0).SetErr(errors.New("oom"))

		// Act
		err := store.Set(ctx, "giftscape:rewards:alice", "170")

		// Assert
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to set key")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Delete", func(t *testing.T) {
		// Arrange
		mock.ExpectDel("giftscape:session:token").SetVal(1)

		// Act
		err := store.Delete(ctx, "giftscape:session:token")

		// Assert
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMemoryStore(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := t.Context()

	t.Run("Roundtrip", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k", "v"))

		value, ok, err := store.Get(ctx, "k")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v", value)
	})

	t.Run("Delete Then Miss", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k2", "v2"))
		require.NoError(t, store.Delete(ctx, "k2"))

		_, ok, err := store.Get(ctx, "k2")

		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestKeyNamespacing(t *testing.T) {
	assert.Equal(t, "giftscape:wishlist:alice@example.com", storage.WishlistKey("alice@example.com"))
	assert.Equal(t, "giftscape:rewards:alice@example.com", storage.RewardsKey("alice@example.com"))
	assert.Equal(t, "giftscape:users:alice@example.com", storage.UserKey("alice@example.com"))
	assert.Equal(t, "giftscape:session:token", storage.SessionTokenKey())
}
