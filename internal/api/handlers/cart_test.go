package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/giftscape-studio/storefront-core/internal/api/handlers"
	"github.com/giftscape-studio/storefront-core/internal/catalog"
	"github.com/giftscape-studio/storefront-core/internal/services"
	"github.com/giftscape-studio/storefront-core/internal/storage"
	"github.com/giftscape-studio/storefront-core/internal/testutils"
	"github.com/giftscape-studio/storefront-core/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupCartTest() (*services.CartService, *handlers.CartHandler) {
	logger := discardLogger()

	cartService := services.NewCartService(logger)
	productService := services.NewProductService(catalog.Default(), nil, storage.NewMemoryStore(), logger)

	return cartService, handlers.NewCartHandler(cartService, productService)
}

func TestCartHandler_AddItem(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		// Arrange
		_, handler := setupCartTest()

		body, _ := json.Marshal(map[string]any{"product_id": "p4", "quantity": 2})
		req := testutils.CreateSessionRequest("POST", "/api/cart/items", bytes.NewReader(body), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.AddItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("Failure - Unknown Product", func(t *testing.T) {
		// Arrange
		_, handler := setupCartTest()

		body, _ := json.Marshal(map[string]any{"product_id": "nope", "quantity": 1})
		req := testutils.CreateSessionRequest("POST", "/api/cart/items", bytes.NewReader(body), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.AddItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Failure - Missing Quantity", func(t *testing.T) {
		// Arrange
		_, handler := setupCartTest()

		body, _ := json.Marshal(map[string]any{"product_id": "p4"})
		req := testutils.CreateSessionRequest("POST", "/api/cart/items", bytes.NewReader(body), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.AddItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	})

	t.Run("Failure - Unknown Variation", func(t *testing.T) {
		// Arrange
		_, handler := setupCartTest()

		body, _ := json.Marshal(map[string]any{"product_id": "p1", "quantity": 1, "variation_id": "p9-xl"})
		req := testutils.CreateSessionRequest("POST", "/api/cart/items", bytes.NewReader(body), nil)
		recorder := httptest.NewRecorder()

		// Act
		handler.AddItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestCartHandler_UpdateQuantity(t *testing.T) {

	t.Run("Zero Removes The Line", func(t *testing.T) {
		// Arrange
		cartService, handler := setupCartTest()

		product, _ := catalog.Default().ProductByID("p4")
		cartService.AddItem(testutils.TestSessionID, product, 2, nil, nil)

		body, _ := json.Marshal(map[string]any{"quantity": 0})
		req := testutils.CreateSessionRequest("PATCH", "/api/cart/items/p4-default", bytes.NewReader(body),
			map[string]string{"itemId": "p4-default"})
		recorder := httptest.NewRecorder()

		// Act
		handler.UpdateQuantity()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, cartService.Get(testutils.TestSessionID).Items)
	})

	t.Run("Failure - Unknown Item", func(t *testing.T) {
		// Arrange
		_, handler := setupCartTest()

		body, _ := json.Marshal(map[string]any{"quantity": 3})
		req := testutils.CreateSessionRequest("PATCH", "/api/cart/items/ghost", bytes.NewReader(body),
			map[string]string{"itemId": "ghost"})
		recorder := httptest.NewRecorder()

		// Act
		handler.UpdateQuantity()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
