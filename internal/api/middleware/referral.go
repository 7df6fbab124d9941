package middleware

import (
	"log/slog"
	"net/http"

	"github.com/giftscape-studio/storefront-core/internal/services"
)

const referralParam = "ref"

// ReferralCapture records an incoming ?ref= code against the session, then
// redirects to the same URL with the parameter stripped so the code is not
// re-captured on refresh or leaked into shared links. Must run after the
// session middleware.
func ReferralCapture(referrals *services.ReferralService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			query := r.URL.Query()

			code := query.Get(referralParam)
			if code == "" || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			sessionID := SessionIDFromContext(r.Context())

			referrals.Capture(sessionID, code)

			LoggerFromContext(r.Context()).Info("Referral parameter stripped",
				slog.String("session_id", sessionID))

			query.Del(referralParam)

			cleaned := *r.URL
			cleaned.RawQuery = query.Encode()

			http.Redirect(w, r, cleaned.String(), http.StatusFound)
		})
	}
}
