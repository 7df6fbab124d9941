package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/internal/services"
	"github.com/google/uuid"
)

type sessionContextKey string

const (
	sessionIDKey = sessionContextKey("session_id")
	identityKey  = sessionContextKey("identity")

	sessionCookie   = "gss_session"
	sessionIDHeader = "X-Session-ID"
)

// SessionMiddleware resolves a session id for every request and decodes the
// bearer token, if any, into an identity. Decoding is tolerant: a missing,
// malformed or expired token leaves the request anonymous instead of failing
// it. Handlers that truly need a signed-in user check the identity themselves.
type SessionMiddleware struct {
	sessions *services.SessionService
}

func NewSessionMiddleware(sessions *services.SessionService) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

func (m *SessionMiddleware) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		sessionID := resolveSessionID(w, r)

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)

		if identity := m.sessions.IdentityFromToken(bearerToken(r)); identity != nil {
			ctx = context.WithValue(ctx, identityKey, identity)

			requestLogger := LoggerFromContext(ctx).With(slog.String("user", identity.Key))
			ctx = context.WithValue(ctx, loggerKey, requestLogger)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func resolveSessionID(w http.ResponseWriter, r *http.Request) string {

	if id := r.Header.Get(sessionIDHeader); id != "" {
		return id
	}

	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

func bearerToken(r *http.Request) string {

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

// WithSessionID returns a context carrying the session id, for callers that
// sit outside the middleware chain.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// WithIdentity returns a context carrying a signed-in identity.
func WithIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}

	return ""
}

// IdentityFromContext returns the signed-in identity, or nil for an anonymous
// session.
func IdentityFromContext(ctx context.Context) *models.Identity {
	if identity, ok := ctx.Value(identityKey).(*models.Identity); ok {
		return identity
	}

	return nil
}
