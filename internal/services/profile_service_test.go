package services_test

import (
	"testing"

	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/internal/services"
	"github.com/giftscape-studio/storefront-core/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(t *testing.T) (*services.ProfileService, storage.Store) {
	t.Helper()

	store := storage.NewMemoryStore()

	return services.NewProfileService(store, testLogger()), store
}

func homeAddress() *models.AddAddressRequest {
	return &models.AddAddressRequest{Type: "Home", Line1: "12 Lake Road", City: "Kolkata", Pincode: "700029"}
}

func workAddress() *models.AddAddressRequest {
	return &models.AddAddressRequest{Type: "Work", Line1: "5 Park Street", City: "Kolkata", Pincode: "700016"}
}

func TestProfileService_Addresses(t *testing.T) {

	const userID = "alice@example.com"

	t.Run("First Address Becomes Default", func(t *testing.T) {
		// Arrange
		svc, _ := newProfileService(t)
		ctx := t.Context()

		// Act
		address, err := svc.AddAddress(ctx, userID, homeAddress())

		// Assert
		require.NoError(t, err)
		assert.True(t, address.IsDefault)
		assert.NotEmpty(t, address.ID)
	})

	t.Run("New Default Clears The Old One", func(t *testing.T) {
		// Arrange
		svc, _ := newProfileService(t)
		ctx := t.Context()

		first, err := svc.AddAddress(ctx, userID, homeAddress())
		require.NoError(t, err)

		req := workAddress()
		req.IsDefault = true

		// Act
		second, err := svc.AddAddress(ctx, userID, req)

		// Assert
		require.NoError(t, err)
		assert.True(t, second.IsDefault)

		addresses, err := svc.Addresses(ctx, userID)
		require.NoError(t, err)

		for _, a := range addresses {
			if a.ID == first.ID {
				assert.False(t, a.IsDefault)
			}
		}
	})

	t.Run("SetDefault Moves The Flag", func(t *testing.T) {
		// Arrange
		svc, _ := newProfileService(t)
		ctx := t.Context()

		_, err := svc.AddAddress(ctx, userID, homeAddress())
		require.NoError(t, err)

		second, err := svc.AddAddress(ctx, userID, workAddress())
		require.NoError(t, err)

		// Act
		require.NoError(t, svc.SetDefaultAddress(ctx, userID, second.ID))

		// Assert
		addresses, err := svc.Addresses(ctx, userID)
		require.NoError(t, err)
		require.Len(t, addresses, 2)

		for _, a := range addresses {
			assert.Equal(t, a.ID == second.ID, a.IsDefault)
		}
	})

	t.Run("SetDefault On Unknown Address Is Not Found", func(t *testing.T) {
		// Arrange
		svc, _ := newProfileService(t)

		// Act
		err := svc.SetDefaultAddress(t.Context(), userID, "missing")

		// Assert
		require.Error(t, err)
	})

	t.Run("Removing The Default Reassigns It", func(t *testing.T) {
		// Arrange
		svc, _ := newProfileService(t)
		ctx := t.Context()

		first, err := svc.AddAddress(ctx, userID, homeAddress())
		require.NoError(t, err)

		_, err = svc.AddAddress(ctx, userID, workAddress())
		require.NoError(t, err)

		// Act
		require.NoError(t, svc.RemoveAddress(ctx, userID, first.ID))

		// Assert
		addresses, err := svc.Addresses(ctx, userID)
		require.NoError(t, err)
		require.Len(t, addresses, 1)
		assert.True(t, addresses[0].IsDefault)
	})

	t.Run("Corrupt Address Book Reads As Empty", func(t *testing.T) {
		// Arrange
		svc, store := newProfileService(t)
		ctx := t.Context()

		require.NoError(t, store.Set(ctx, storage.AddressBookKey(userID), "{{not json"))

		// Act
		addresses, err := svc.Addresses(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, addresses)
	})
}

func TestProfileService_ProfileImage(t *testing.T) {

	const userID = "alice@example.com"

	t.Run("Round Trips And Removes", func(t *testing.T) {
		// Arrange
		svc, _ := newProfileService(t)
		ctx := t.Context()

		const dataURL = "data:image/png;base64,aGVsbG8="

		// Act
		require.NoError(t, svc.SetProfileImage(ctx, userID, dataURL))

		stored, err := svc.ProfileImage(ctx, userID)
		require.NoError(t, err)

		require.NoError(t, svc.RemoveProfileImage(ctx, userID))

		cleared, err := svc.ProfileImage(ctx, userID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, dataURL, stored)
		assert.Empty(t, cleared)
	})
}
