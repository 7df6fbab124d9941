package handlers

import (
	"net/http"

	"github.com/giftscape-studio/storefront-core/internal/api/middleware"
	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/internal/services"
	"github.com/giftscape-studio/storefront-core/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkout  *services.CheckoutService
	validator *validator.Validate
}

func NewCheckoutHandler(checkout *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkout:  checkout,
		validator: validator.New(),
	}
}

func (h *CheckoutHandler) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		quote := h.checkout.Quote(middleware.SessionIDFromContext(r.Context()))

		response.Success(w, http.StatusOK, quote)
	}
}

func (h *CheckoutHandler) ApplyDiscount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.ApplyDiscountRequest

		if !decodeJSONBody(w, r, &req) {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		quote, err := h.checkout.ApplyDiscount(middleware.SessionIDFromContext(r.Context()), req.Code)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, quote)
	}
}

func (h *CheckoutHandler) Begin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.BeginCheckoutRequest

		if !decodeJSONBody(w, r, &req) {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		ctx := r.Context()

		challengeID, err := h.checkout.Begin(ctx,
			middleware.SessionIDFromContext(ctx),
			middleware.IdentityFromContext(ctx), &req)

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusAccepted, map[string]string{"challenge_id": challengeID})
	}
}

func (h *CheckoutHandler) Confirm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.ConfirmCheckoutRequest

		if !decodeJSONBody(w, r, &req) {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		placed, err := h.checkout.Confirm(r.Context(), middleware.SessionIDFromContext(r.Context()), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, placed)
	}
}

func (h *CheckoutHandler) Abandon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.checkout.Abandon(middleware.SessionIDFromContext(r.Context()), r.PathValue("challengeId"))

		response.Success(w, http.StatusOK, map[string]string{"status": "abandoned"})
	}
}
