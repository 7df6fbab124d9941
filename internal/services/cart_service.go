package services

import (
	"log/slog"
	"sync"

	apperrors "github.com/giftscape-studio/storefront-core/internal/errors"
	"github.com/giftscape-studio/storefront-core/internal/models"
)

// CartService holds one cart per session, in memory. Lines merge on the
// product+variation identity; a later add with a customization attached
// replaces whatever snapshot the line carried before.
type CartService struct {
	mu     sync.Mutex
	carts  map[string]*models.Cart
	logger *slog.Logger
}

func NewCartService(logger *slog.Logger) *CartService {
	return &CartService{carts: make(map[string]*models.Cart), logger: logger}
}

func (s *CartService) Get(sessionID string) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.copyLocked(sessionID)
}

func (s *CartService) copyLocked(sessionID string) models.Cart {

	cart, ok := s.carts[sessionID]
	if !ok {
		return models.Cart{}
	}

	out := models.Cart{Items: make([]models.CartItem, len(cart.Items))}
	copy(out.Items, cart.Items)

	return out
}

func (s *CartService) AddItem(sessionID string, product models.Product, quantity int, variation *models.ProductVariation, customization *models.CustomizationSnapshot) models.Cart {

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		cart = &models.Cart{}
		s.carts[sessionID] = cart
	}

	itemID := models.CartItemID(product.ID, variation)

	for i := range cart.Items {
		if cart.Items[i].ID == itemID {

			cart.Items[i].Quantity += quantity

			if customization != nil {
				cart.Items[i].Customization = customization
			}

			return s.copyLocked(sessionID)
		}
	}

	cart.Items = append(cart.Items, models.CartItem{
		ID:            itemID,
		Product:       product,
		Quantity:      quantity,
		Variation:     variation,
		Customization: customization,
	})

	return s.copyLocked(sessionID)
}

// UpdateQuantity sets a line's quantity. Zero or below removes the line.
func (s *CartService) UpdateQuantity(sessionID, itemID string, quantity int) (models.Cart, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return models.Cart{}, apperrors.NotFoundError("cart item not found")
	}

	for i := range cart.Items {
		if cart.Items[i].ID != itemID {
			continue
		}

		if quantity <= 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		} else {
			cart.Items[i].Quantity = quantity
		}

		return s.copyLocked(sessionID), nil
	}

	return s.copyLocked(sessionID), apperrors.NotFoundError("cart item not found")
}

func (s *CartService) RemoveItem(sessionID, itemID string) (models.Cart, error) {
	return s.UpdateQuantity(sessionID, itemID, 0)
}

func (s *CartService) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
}
