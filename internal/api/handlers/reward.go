package handlers

import (
	"net/http"

	"github.com/giftscape-studio/storefront-core/internal/api/middleware"
	apperrors "github.com/giftscape-studio/storefront-core/internal/errors"
	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/internal/services"
	"github.com/giftscape-studio/storefront-core/internal/utils/response"
)

type RewardHandler struct {
	rewards *services.RewardService
}

func NewRewardHandler(rewards *services.RewardService) *RewardHandler {
	return &RewardHandler{rewards: rewards}
}

func (h *RewardHandler) Balance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity := middleware.IdentityFromContext(r.Context())

		if identity.IsAnonymous() {
			response.Error(w, apperrors.UnauthorizedError("sign in to see your reward points"))
			return
		}

		points, err := h.rewards.Balance(r.Context(), identity.Key)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.RewardBalance{UserID: identity.Key, Points: points})
	}
}
