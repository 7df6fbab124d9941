package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	apperrors "github.com/giftscape-studio/storefront-core/internal/errors"
	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/internal/storage"
	"github.com/google/uuid"
)

// WishlistService saves in-progress designs per owner. Only designs that carry
// an uploaded image are accepted, and the same design saved twice is a no-op;
// identity is the structural fingerprint of the customization, not the product
// alone.
//
// The in-memory copy is authoritative for the session. A failed persistence
// write keeps the entry locally and logs, so a flaky store cannot eat a save.
type WishlistService struct {
	store  storage.Store
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string][]models.WishlistItem
}

func NewWishlistService(store storage.Store, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		store:  store,
		logger: logger,
		cache:  make(map[string][]models.WishlistItem),
	}
}

func (s *WishlistService) Items(ctx context.Context, owner string) []models.WishlistItem {

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.loadLocked(ctx, owner)

	out := make([]models.WishlistItem, len(items))
	copy(out, items)

	return out
}

func (s *WishlistService) loadLocked(ctx context.Context, owner string) []models.WishlistItem {

	if items, ok := s.cache[owner]; ok {
		return items
	}

	payload, exists, err := s.store.Get(ctx, storage.WishlistKey(owner))
	if err != nil {
		s.logger.Warn("Failed to load the wishlist, starting empty",
			slog.String("owner", owner), slog.String("error", err.Error()))

		s.cache[owner] = []models.WishlistItem{}

		return s.cache[owner]
	}

	items := []models.WishlistItem{}

	if exists {
		if err := json.Unmarshal([]byte(payload), &items); err != nil {
			// A corrupted record resets to empty rather than wedging every save.
			s.logger.Warn("Stored wishlist is unreadable, starting empty",
				slog.String("owner", owner), slog.String("error", err.Error()))

			items = []models.WishlistItem{}
		}
	}

	s.cache[owner] = items

	return items
}

func (s *WishlistService) Add(ctx context.Context, owner string, product models.Product, customization models.CustomizationState) (*models.WishlistItem, error) {

	if !customization.HasImage() {
		return nil, apperrors.BadRequestError("only designs with an uploaded image can be saved")
	}

	fingerprint := customization.Fingerprint()

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.loadLocked(ctx, owner)

	for i := range items {
		if items[i].Product.ID == product.ID && items[i].Customization.Fingerprint() == fingerprint {
			return &items[i], nil
		}
	}

	item := models.WishlistItem{
		ID:            uuid.NewString(),
		Product:       product,
		Customization: customization,
	}

	s.cache[owner] = append(items, item)
	s.persistLocked(ctx, owner)

	return &item, nil
}

// Contains reports whether an identical design for the product is already
// saved, using the same identity rule as Add.
func (s *WishlistService) Contains(ctx context.Context, owner, productID string, customization models.CustomizationState) bool {

	if !customization.HasImage() {
		return false
	}

	fingerprint := customization.Fingerprint()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.loadLocked(ctx, owner) {
		if item.Product.ID == productID && item.Customization.Fingerprint() == fingerprint {
			return true
		}
	}

	return false
}

func (s *WishlistService) Remove(ctx context.Context, owner, itemID string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.loadLocked(ctx, owner)

	for i := range items {
		if items[i].ID == itemID {
			s.cache[owner] = append(items[:i], items[i+1:]...)
			s.persistLocked(ctx, owner)

			return nil
		}
	}

	return apperrors.NotFoundError("wishlist item not found")
}

func (s *WishlistService) persistLocked(ctx context.Context, owner string) {

	payload, err := json.Marshal(s.cache[owner])
	if err != nil {
		s.logger.Error("Failed to encode the wishlist", slog.String("owner", owner), slog.String("error", err.Error()))
		return
	}

	if err := s.store.Set(ctx, storage.WishlistKey(owner), string(payload)); err != nil {
		s.logger.Warn("Failed to persist the wishlist, keeping the in-memory copy",
			slog.String("owner", owner), slog.String("error", err.Error()))
	}
}
