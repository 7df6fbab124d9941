package catalog

import (
	"strings"

	"github.com/giftscape-studio/storefront-core/internal/i18n"
	"github.com/giftscape-studio/storefront-core/internal/models"
)

// Catalog is the immutable product table. It is built once at process start
// and never mutated; accessors hand out copies so callers cannot reach the
// backing slices.
type Catalog struct {
	products   []models.Product
	categories map[string]models.Category
	byID       map[string]int
}

func New(products []models.Product, categories map[string]models.Category) *Catalog {
	c := &Catalog{
		products:   make([]models.Product, len(products)),
		categories: make(map[string]models.Category, len(categories)),
		byID:       make(map[string]int, len(products)),
	}

	copy(c.products, products)

	for key, cat := range categories {
		c.categories[key] = cat
	}

	for i := range c.products {
		c.byID[c.products[i].ID] = i
	}

	return c
}

// Default builds the catalog from the static product configuration.
func Default() *Catalog {
	return New(products, categories)
}

func (c *Catalog) ProductByID(id string) (models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, false
	}

	return cloneProduct(c.products[i]), true
}

func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, 0, len(c.products))
	for i := range c.products {
		out = append(out, cloneProduct(c.products[i]))
	}

	return out
}

func (c *Catalog) ProductsByCategory(categoryKey string) []models.Product {
	var out []models.Product

	for i := range c.products {
		if c.products[i].CategoryKey == categoryKey {
			out = append(out, cloneProduct(c.products[i]))
		}
	}

	return out
}

// Search matches the query against the translated product name and the raw
// name key, case-insensitively.
func (c *Catalog) Search(tr *i18n.Translator, query string) []models.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return c.Products()
	}

	var out []models.Product

	for i := range c.products {
		name := strings.ToLower(tr.T(c.products[i].NameKey))
		if strings.Contains(name, query) || strings.Contains(strings.ToLower(c.products[i].NameKey), query) {
			out = append(out, cloneProduct(c.products[i]))
		}
	}

	return out
}

func (c *Catalog) Categories() map[string]models.Category {
	out := make(map[string]models.Category, len(c.categories))
	for key, cat := range c.categories {
		out[key] = cat
	}

	return out
}

func cloneProduct(p models.Product) models.Product {
	if p.Variations != nil {
		variations := make([]models.ProductVariation, len(p.Variations))
		copy(variations, p.Variations)
		p.Variations = variations
	}

	return p
}
