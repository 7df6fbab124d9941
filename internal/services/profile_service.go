package services

import (
	"context"
	"encoding/json"
	"log/slog"

	apperrors "github.com/giftscape-studio/storefront-core/internal/errors"
	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/internal/storage"
	"github.com/google/uuid"
)

// ProfileService keeps the signed-in user's address book and profile image.
// At most one address is the default; marking one default clears the flag on
// every other entry.
type ProfileService struct {
	store  storage.Store
	logger *slog.Logger
}

func NewProfileService(store storage.Store, logger *slog.Logger) *ProfileService {
	return &ProfileService{store: store, logger: logger}
}

func (s *ProfileService) Addresses(ctx context.Context, userID string) ([]models.Address, error) {

	payload, exists, err := s.store.Get(ctx, storage.AddressBookKey(userID))
	if err != nil {
		return nil, apperrors.StorageError("failed to load the address book").WithError(err)
	}

	if !exists {
		return []models.Address{}, nil
	}

	var addresses []models.Address

	if err := json.Unmarshal([]byte(payload), &addresses); err != nil {
		s.logger.Warn("Stored address book is unreadable, starting empty",
			slog.String("user_id", userID), slog.String("error", err.Error()))

		return []models.Address{}, nil
	}

	return addresses, nil
}

func (s *ProfileService) AddAddress(ctx context.Context, userID string, req *models.AddAddressRequest) (*models.Address, error) {

	addresses, err := s.Addresses(ctx, userID)
	if err != nil {
		return nil, err
	}

	address := models.Address{
		ID:        uuid.NewString(),
		Type:      models.AddressType(req.Type),
		Line1:     req.Line1,
		City:      req.City,
		Pincode:   req.Pincode,
		IsDefault: req.IsDefault || len(addresses) == 0,
	}

	if address.IsDefault {
		for i := range addresses {
			addresses[i].IsDefault = false
		}
	}

	addresses = append(addresses, address)

	if err := s.saveAddresses(ctx, userID, addresses); err != nil {
		return nil, err
	}

	return &address, nil
}

func (s *ProfileService) SetDefaultAddress(ctx context.Context, userID, addressID string) error {

	addresses, err := s.Addresses(ctx, userID)
	if err != nil {
		return err
	}

	found := false

	for i := range addresses {
		addresses[i].IsDefault = addresses[i].ID == addressID

		if addresses[i].IsDefault {
			found = true
		}
	}

	if !found {
		return apperrors.NotFoundError("address not found")
	}

	return s.saveAddresses(ctx, userID, addresses)
}

func (s *ProfileService) RemoveAddress(ctx context.Context, userID, addressID string) error {

	addresses, err := s.Addresses(ctx, userID)
	if err != nil {
		return err
	}

	for i := range addresses {
		if addresses[i].ID != addressID {
			continue
		}

		wasDefault := addresses[i].IsDefault
		addresses = append(addresses[:i], addresses[i+1:]...)

		if wasDefault && len(addresses) > 0 {
			addresses[0].IsDefault = true
		}

		return s.saveAddresses(ctx, userID, addresses)
	}

	return apperrors.NotFoundError("address not found")
}

func (s *ProfileService) saveAddresses(ctx context.Context, userID string, addresses []models.Address) error {

	payload, err := json.Marshal(addresses)
	if err != nil {
		return apperrors.InternalError("failed to encode the address book").WithError(err)
	}

	if err := s.store.Set(ctx, storage.AddressBookKey(userID), string(payload)); err != nil {
		return apperrors.StorageError("failed to save the address book").WithError(err)
	}

	return nil
}

// ProfileImage returns the stored avatar as a data URL, or "" when none is set.
func (s *ProfileService) ProfileImage(ctx context.Context, userID string) (string, error) {

	image, exists, err := s.store.Get(ctx, storage.ProfileImageKey(userID))
	if err != nil {
		return "", apperrors.StorageError("failed to load the profile image").WithError(err)
	}

	if !exists {
		return "", nil
	}

	return image, nil
}

func (s *ProfileService) SetProfileImage(ctx context.Context, userID, dataURL string) error {

	if err := s.store.Set(ctx, storage.ProfileImageKey(userID), dataURL); err != nil {
		return apperrors.StorageError("failed to save the profile image").WithError(err)
	}

	return nil
}

func (s *ProfileService) RemoveProfileImage(ctx context.Context, userID string) error {

	if err := s.store.Delete(ctx, storage.ProfileImageKey(userID)); err != nil {
		return apperrors.StorageError("failed to remove the profile image").WithError(err)
	}

	return nil
}
