package handlers

import (
	"log/slog"
	"net/http"

	"github.com/giftscape-studio/storefront-core/internal/api/middleware"
	apperrors "github.com/giftscape-studio/storefront-core/internal/errors"
	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/internal/services"
	"github.com/giftscape-studio/storefront-core/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type SessionHandler struct {
	sessions  *services.SessionService
	referrals *services.ReferralService
	validator *validator.Validate
}

func NewSessionHandler(sessions *services.SessionService, referrals *services.ReferralService) *SessionHandler {
	return &SessionHandler{
		sessions:  sessions,
		referrals: referrals,
		validator: validator.New(),
	}
}

func (h *SessionHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.RegisterRequest

		if !decodeJSONBody(w, r, &req) {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		if err := h.sessions.Register(r.Context(), &req); err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, map[string]string{"email": req.Email})
	}
}

func (h *SessionHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.LoginRequest

		if !decodeJSONBody(w, r, &req) {
			return
		}

		if !validateStruct(w, h.validator, req) {
			return
		}

		resp, err := h.sessions.Login(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("User logged in", slog.String("email", req.Email))

		response.Success(w, http.StatusOK, resp)
	}
}

func (h *SessionHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if err := h.sessions.Logout(r.Context()); err != nil {
			response.Error(w, err)
			return
		}

		// A referral captured for this session dies with it.
		h.referrals.EndSession(middleware.SessionIDFromContext(r.Context()))

		response.Success(w, http.StatusOK, map[string]string{"status": "logged out"})
	}
}

// Me reports the identity of the current session, including the share code
// others can use to credit this user through a referral link.
func (h *SessionHandler) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity := middleware.IdentityFromContext(r.Context())

		if identity.IsAnonymous() {
			response.Error(w, apperrors.UnauthorizedError("not signed in"))
			return
		}

		response.Success(w, http.StatusOK, map[string]string{
			"key":           identity.Key,
			"display_name":  identity.DisplayName,
			"referral_code": services.EncodeCode(identity.Key),
		})
	}
}
