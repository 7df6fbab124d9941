package testutils

import (
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/giftscape-studio/storefront-core/internal/api/middleware"
	"github.com/giftscape-studio/storefront-core/internal/models"
)

// TestSessionID is the session id attached to requests built here.
const TestSessionID = "test-session"

func CreateSessionRequest(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	ctx := middleware.WithSessionID(req.Context(), TestSessionID)

	return req.WithContext(ctx)
}

func CreateSignedInRequest(method, target string, body io.Reader, identity *models.Identity, pathParams map[string]string) *http.Request {
	req := CreateSessionRequest(method, target, body, pathParams)

	ctx := middleware.WithIdentity(req.Context(), identity)

	return req.WithContext(ctx)
}
