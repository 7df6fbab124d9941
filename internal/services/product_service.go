package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/giftscape-studio/storefront-core/internal/catalog"
	apperrors "github.com/giftscape-studio/storefront-core/internal/errors"
	"github.com/giftscape-studio/storefront-core/internal/i18n"
	"github.com/giftscape-studio/storefront-core/internal/models"
	"github.com/giftscape-studio/storefront-core/pkg/gemini"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type descriptionCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// ProductService fronts the catalog, generated descriptions and reviews.
type ProductService struct {
	catalog   *catalog.Catalog
	ai        gemini.Client
	cache     descriptionCache
	sanitizer *bluemonday.Policy
	logger    *slog.Logger

	mu      sync.Mutex
	reviews map[string][]models.Review
}

func NewProductService(cat *catalog.Catalog, ai gemini.Client, cache descriptionCache, logger *slog.Logger) *ProductService {
	return &ProductService{
		catalog:   cat,
		ai:        ai,
		cache:     cache,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
		reviews:   make(map[string][]models.Review),
	}
}

func (s *ProductService) Products() []models.Product {
	return s.decorate(s.catalog.Products())
}

func (s *ProductService) ProductsByCategory(categoryKey string) []models.Product {
	return s.decorate(s.catalog.ProductsByCategory(categoryKey))
}

func (s *ProductService) Search(tr *i18n.Translator, query string) []models.Product {
	return s.decorate(s.catalog.Search(tr, query))
}

func (s *ProductService) Categories() map[string]models.Category {
	return s.catalog.Categories()
}

func (s *ProductService) ProductByID(id string) (models.Product, error) {

	product, ok := s.catalog.ProductByID(id)
	if !ok {
		return models.Product{}, apperrors.NotFoundError("product not found")
	}

	s.mu.Lock()
	s.decorateLocked(&product)
	s.mu.Unlock()

	return product, nil
}

// Description returns the marketing copy for a product in the active language.
// The generated text is cached per product and language; when generation fails
// the translated base description is served instead, quietly.
func (s *ProductService) Description(ctx context.Context, tr *i18n.Translator, productID string) (string, error) {

	product, ok := s.catalog.ProductByID(productID)
	if !ok {
		return "", apperrors.NotFoundError("product not found")
	}

	base := tr.T(product.DescriptionKey)

	cacheKey := "giftscape:ai_description:" + productID + ":" + string(tr.Language())

	if cached, exists, err := s.cache.Get(ctx, cacheKey); err == nil && exists {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("Description cache read failed", slog.String("error", err.Error()))
	}

	generated, err := s.ai.GenerateDescription(ctx, tr.T(product.NameKey), base)
	if err != nil {
		s.logger.Warn("Description generation failed, serving base copy",
			slog.String("product_id", productID), slog.String("error", err.Error()))

		return base, nil
	}

	if err := s.cache.Set(ctx, cacheKey, generated); err != nil {
		s.logger.Warn("Description cache write failed", slog.String("error", err.Error()))
	}

	return generated, nil
}

func (s *ProductService) AddReview(req *models.AddReviewRequest) (*models.Review, error) {

	if _, ok := s.catalog.ProductByID(req.ProductID); !ok {
		return nil, apperrors.NotFoundError("product not found")
	}

	review := models.Review{
		ID:        uuid.New(),
		ProductID: req.ProductID,
		UserName:  s.sanitizer.Sanitize(req.UserName),
		Rating:    req.Rating,
		Comment:   s.sanitizer.Sanitize(req.Comment),
		Date:      time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reviews[req.ProductID] = append(s.reviews[req.ProductID], review)

	return &review, nil
}

func (s *ProductService) Reviews(productID string) []models.Review {

	s.mu.Lock()
	defer s.mu.Unlock()

	reviews := s.reviews[productID]

	out := make([]models.Review, len(reviews))
	copy(out, reviews)

	return out
}

func (s *ProductService) decorate(products []models.Product) []models.Product {

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range products {
		s.decorateLocked(&products[i])
	}

	return products
}

// decorateLocked folds the live review aggregates into a catalog copy.
func (s *ProductService) decorateLocked(product *models.Product) {

	reviews := s.reviews[product.ID]
	if len(reviews) == 0 {
		return
	}

	var sum int

	for i := range reviews {
		sum += reviews[i].Rating
	}

	product.ReviewCount = len(reviews)
	product.AverageRating = float64(sum) / float64(len(reviews))
}
