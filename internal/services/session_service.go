package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	apperrors "github.com/giftscape-studio/storefront-core/internal/errors"
	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/internal/storage"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// IdentityResolver reports who the current session belongs to. A nil result
// means the session is anonymous; callers must treat that as a normal state,
// not a failure.
type IdentityResolver interface {
	CurrentIdentity(ctx context.Context) *models.Identity
}

type SessionService struct {
	store  storage.Store
	jwtKey []byte
	logger *slog.Logger
}

func NewSessionService(store storage.Store, jwtKey string, logger *slog.Logger) *SessionService {
	return &SessionService{store: store, jwtKey: []byte(jwtKey), logger: logger}
}

func (s *SessionService) Register(ctx context.Context, req *models.RegisterRequest) error {

	key := storage.UserKey(req.Email)

	if _, exists, err := s.store.Get(ctx, key); err != nil {
		return apperrors.StorageError("failed to check for an existing account").WithError(err)
	} else if exists {
		return apperrors.ConflictError("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.InternalError("failed to hash password").WithError(err)
	}

	user := models.User{Name: req.Name, Email: req.Email, PasswordHash: string(hash)}

	payload, err := json.Marshal(user)
	if err != nil {
		return apperrors.InternalError("failed to encode user").WithError(err)
	}

	if err := s.store.Set(ctx, key, string(payload)); err != nil {
		return apperrors.StorageError("failed to save the account").WithError(err)
	}

	s.logger.Info("New account registered", slog.String("email", req.Email))

	return nil
}

func (s *SessionService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	payload, exists, err := s.store.Get(ctx, storage.UserKey(req.Email))
	if err != nil {
		return nil, apperrors.StorageError("failed to load the account").WithError(err)
	}

	if !exists {
		return nil, apperrors.UnauthorizedError("invalid email or password")
	}

	var user models.User

	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		return nil, apperrors.InternalError("stored account record is unreadable").WithError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.UnauthorizedError("invalid email or password")
	}

	claims := models.Claims{
		Name:  user.Name,
		Email: user.Email,
		User:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return nil, apperrors.InternalError("failed to sign the session token").WithError(err)
	}

	// The active token is published so out-of-band watchers (the reward
	// balance poller) can notice the login.
	if err := s.store.Set(ctx, storage.SessionTokenKey(), token); err != nil {
		s.logger.Warn("Failed to publish the session token", slog.String("error", err.Error()))
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: int(tokenTTL.Seconds()),
	}, nil
}

func (s *SessionService) Logout(ctx context.Context) error {

	if err := s.store.Delete(ctx, storage.SessionTokenKey()); err != nil {
		return apperrors.StorageError("failed to clear the session token").WithError(err)
	}

	return nil
}

// IdentityFromToken decodes a session token into an identity. Every failure
// mode decodes to anonymous; a tampered or expired token must degrade the
// session, never break it.
func (s *SessionService) IdentityFromToken(tokenString string) *models.Identity {

	if tokenString == "" {
		return nil
	}

	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.jwtKey, nil
	})

	if err != nil || !token.Valid {
		return nil
	}

	key := claims.User
	if key == "" {
		key = claims.Email
	}

	if key == "" {
		return nil
	}

	return &models.Identity{Key: key, DisplayName: claims.Name}
}

// CurrentIdentity implements IdentityResolver against the published token.
func (s *SessionService) CurrentIdentity(ctx context.Context) *models.Identity {

	token, exists, err := s.store.Get(ctx, storage.SessionTokenKey())
	if err != nil {
		s.logger.Warn("Failed to read the session token", slog.String("error", err.Error()))
		return nil
	}

	if !exists {
		return nil
	}

	return s.IdentityFromToken(token)
}
