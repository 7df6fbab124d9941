package handlers

import (
	"net/http"

	"github.com/giftscape-studio/storefront-core/internal/api/middleware"
	apperrors "github.com/giftscape-studio/storefront-core/internal/errors"
	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/internal/services"
	"github.com/giftscape-studio/storefront-core/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cart      *services.CartService
	products  *services.ProductService
	validator *validator.Validate
}

func NewCartHandler(cart *services.CartService, products *services.ProductService) *CartHandler {
	return &CartHandler{
		cart:      cart,
		products:  products,
		validator: validator.New(),
	}
}

func (h *CartHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cart := h.cart.Get(middleware.SessionIDFromContext(r.Context()))

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.AddCartItemRequest

		if !decodeJSONBody(w, r, &req) {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		product, err := h.products.ProductByID(req.ProductID)
		if err != nil {
			response.Error(w, err)
			return
		}

		var variation *models.ProductVariation

		if req.VariationID != "" {

			variation = product.Variation(req.VariationID)

			if variation == nil {
				response.Error(w, apperrors.BadRequestError("unknown variation for this product"))
				return
			}
		}

		cart := h.cart.AddItem(middleware.SessionIDFromContext(r.Context()),
			product, req.Quantity, variation, req.Customization)

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.UpdateCartQuantityRequest

		if !decodeJSONBody(w, r, &req) {
			return
		}

		req.ItemID = r.PathValue("itemId")

		if !validateStruct(w, h.validator, req) {
			return
		}

		cart, err := h.cart.UpdateQuantity(middleware.SessionIDFromContext(r.Context()), req.ItemID, req.Quantity)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cart, err := h.cart.RemoveItem(middleware.SessionIDFromContext(r.Context()), r.PathValue("itemId"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}
