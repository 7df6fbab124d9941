package handlers

import (
	"net/http"
	"strings"

	"github.com/giftscape-studio/storefront-core/internal/api/middleware"
	apperrors "github.com/giftscape-studio/storefront-core/internal/errors"
	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/internal/services"
	"github.com/giftscape-studio/storefront-core/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProfileHandler struct {
	profile   *services.ProfileService
	validator *validator.Validate
}

func NewProfileHandler(profile *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profile:   profile,
		validator: validator.New(),
	}
}

func requireIdentity(w http.ResponseWriter, r *http.Request) (*models.Identity, bool) {

	identity := middleware.IdentityFromContext(r.Context())

	if identity.IsAnonymous() {
		response.Error(w, apperrors.UnauthorizedError("sign in to manage your profile"))
		return nil, false
	}

	return identity, true
}

func (h *ProfileHandler) Addresses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		addresses, err := h.profile.Addresses(r.Context(), identity.Key)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, addresses)
	}
}

func (h *ProfileHandler) AddAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		var req models.AddAddressRequest

		if !decodeJSONBody(w, r, &req) {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		address, err := h.profile.AddAddress(r.Context(), identity.Key, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, address)
	}
}

func (h *ProfileHandler) SetDefaultAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		if err := h.profile.SetDefaultAddress(r.Context(), identity.Key, r.PathValue("addressId")); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "default updated"})
	}
}

func (h *ProfileHandler) RemoveAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		if err := h.profile.RemoveAddress(r.Context(), identity.Key, r.PathValue("addressId")); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "removed"})
	}
}

func (h *ProfileHandler) ProfileImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		image, err := h.profile.ProfileImage(r.Context(), identity.Key)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"image": image})
	}
}

func (h *ProfileHandler) SetProfileImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		var req struct {
			Image string `json:"image" validate:"required"`
		}

		if !decodeJSONBody(w, r, &req) {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		if !strings.HasPrefix(req.Image, "data:image/") {
			response.Error(w, apperrors.BadRequestError("profile image must be an image data URL"))
			return
		}

		if err := h.profile.SetProfileImage(r.Context(), identity.Key, req.Image); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "saved"})
	}
}

func (h *ProfileHandler) RemoveProfileImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity, ok := requireIdentity(w, r)
		if !ok {
			return
		}

		if err := h.profile.RemoveProfileImage(r.Context(), identity.Key); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "removed"})
	}
}
