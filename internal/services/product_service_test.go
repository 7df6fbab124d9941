package services_test

import (
	"errors"
	"testing"

	"github.com/giftscape-studio/storefront-core/internal/catalog"
	"github.com/giftscape-studio/storefront-core/internal/i18n"
	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/internal/services"
	"github.com/giftscape-studio/storefront-core/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductService(t *testing.T) (*services.ProductService, *MockGeminiClient, storage.Store) {
	t.Helper()

	ai := new(MockGeminiClient)
	store := storage.NewMemoryStore()
	svc := services.NewProductService(catalog.Default(), ai, store, testLogger())

	return svc, ai, store
}

func englishTranslator() *i18n.Translator {
	return i18n.NewTranslator(catalog.Strings(), i18n.LanguageEnglish)
}

func TestProductService_Description(t *testing.T) {

	t.Run("Generates And Caches", func(t *testing.T) {
		// Arrange
		svc, ai, _ := newProductService(t)
		ctx := t.Context()

		ai.On("GenerateDescription", mock.Anything, "Glow Frame", mock.Anything).
			Return("A luminous keepsake for the people you love.", nil).Once()

		// Act
		first, err := svc.Description(ctx, englishTranslator(), "p1")
		require.NoError(t, err)

		second, err := svc.Description(ctx, englishTranslator(), "p1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "A luminous keepsake for the people you love.", first)
		assert.Equal(t, first, second)
		ai.AssertNumberOfCalls(t, "GenerateDescription", 1)
	})

	t.Run("Falls Back To Base Copy On Generation Failure", func(t *testing.T) {
		// Arrange
		svc, ai, _ := newProductService(t)

		ai.On("GenerateDescription", mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("model unavailable"))

		// Act
		description, err := svc.Description(t.Context(), englishTranslator(), "p1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "A backlit photo frame that makes your memories glow.", description)
	})

	t.Run("Caches Per Language", func(t *testing.T) {
		// Arrange
		svc, ai, _ := newProductService(t)
		ctx := t.Context()

		ai.On("GenerateDescription", mock.Anything, mock.Anything, mock.Anything).
			Return("generated", nil)

		bengali := i18n.NewTranslator(catalog.Strings(), i18n.LanguageBengali)

		// Act
		_, err := svc.Description(ctx, englishTranslator(), "p1")
		require.NoError(t, err)

		_, err = svc.Description(ctx, bengali, "p1")

		// Assert
		require.NoError(t, err)
		ai.AssertNumberOfCalls(t, "GenerateDescription", 2)
	})

	t.Run("Unknown Product Is Not Found", func(t *testing.T) {
		// Arrange
		svc, _, _ := newProductService(t)

		// Act
		_, err := svc.Description(t.Context(), englishTranslator(), "p999")

		// Assert
		require.Error(t, err)
	})
}

func TestProductService_Reviews(t *testing.T) {

	t.Run("Sanitizes Markup And Aggregates Ratings", func(t *testing.T) {
		// Arrange
		svc, _, _ := newProductService(t)

		_, err := svc.AddReview(&models.AddReviewRequest{
			ProductID: "p4",
			UserName:  "Rhea",
			Rating:    5,
			Comment:   "Perfect gift<script>alert(1)</script>",
		})
		require.NoError(t, err)

		_, err = svc.AddReview(&models.AddReviewRequest{
			ProductID: "p4",
			UserName:  "Arjun",
			Rating:    3,
			Comment:   "Print faded a little",
		})
		require.NoError(t, err)

		// Act
		reviews := svc.Reviews("p4")
		product, perr := svc.ProductByID("p4")

		// Assert
		require.NoError(t, perr)
		require.Len(t, reviews, 2)
		assert.Equal(t, "Perfect gift", reviews[0].Comment)
		assert.Equal(t, 2, product.ReviewCount)
		assert.InDelta(t, 4.0, product.AverageRating, 0.001)
	})

	t.Run("Rejects Review For Unknown Product", func(t *testing.T) {
		// Arrange
		svc, _, _ := newProductService(t)

		// Act
		_, err := svc.AddReview(&models.AddReviewRequest{
			ProductID: "p999",
			UserName:  "Rhea",
			Rating:    4,
		})

		// Assert
		require.Error(t, err)
	})

	t.Run("Products Without Reviews Stay Undecorated", func(t *testing.T) {
		// Arrange
		svc, _, _ := newProductService(t)

		// Act
		product, err := svc.ProductByID("p5")

		// Assert
		require.NoError(t, err)
		assert.Zero(t, product.ReviewCount)
		assert.Zero(t, product.AverageRating)
	})
}

func TestProductService_Search(t *testing.T) {

	t.Run("Matches Translated Names", func(t *testing.T) {
		// Arrange
		svc, _, _ := newProductService(t)

		// Act
		results := svc.Search(englishTranslator(), "mug")

		// Assert
		require.Len(t, results, 1)
		assert.Equal(t, "p4", results[0].ID)
	})

	t.Run("Filters By Category", func(t *testing.T) {
		// Arrange
		svc, _, _ := newProductService(t)

		// Act
		results := svc.ProductsByCategory("birthdayGifts")

		// Assert
		require.Len(t, results, 1)
		assert.Equal(t, "p4", results[0].ID)
	})
}
