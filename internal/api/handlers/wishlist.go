package handlers

import (
	"net/http"

	"github.com/giftscape-studio/storefront-core/internal/api/middleware"
	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/internal/services"
	"github.com/giftscape-studio/storefront-core/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type WishlistHandler struct {
	wishlist  *services.WishlistService
	products  *services.ProductService
	validator *validator.Validate
}

func NewWishlistHandler(wishlist *services.WishlistService, products *services.ProductService) *WishlistHandler {
	return &WishlistHandler{
		wishlist:  wishlist,
		products:  products,
		validator: validator.New(),
	}
}

// owner keys the wishlist to the signed-in user when there is one, so saved
// designs follow the account; a guest's list is keyed to the session.
func owner(r *http.Request) string {

	if identity := middleware.IdentityFromContext(r.Context()); !identity.IsAnonymous() {
		return identity.Key
	}

	return middleware.SessionIDFromContext(r.Context())
}

func (h *WishlistHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.wishlist.Items(r.Context(), owner(r)))
	}
}

func (h *WishlistHandler) Add() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.AddWishlistItemRequest

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

		item, err := h.wishlist.Add(r.Context(), owner(r), product, req.Customization)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, item)
	}
}

func (h *WishlistHandler) Remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if err := h.wishlist.Remove(r.Context(), owner(r), r.PathValue("itemId")); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "removed"})
	}
}
