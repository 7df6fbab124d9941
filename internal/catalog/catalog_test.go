package catalog_test

import (
	"testing"

	"github.com/giftscape-studio/storefront-core/internal/catalog"
	"github.com/giftscape-studio/storefront-core/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ProductByID(t *testing.T) {
	c := catalog.Default()

	t.Run("Known Product", func(t *testing.T) {
		p, ok := c.ProductByID("p1")

		require.True(t, ok)
		assert.Equal(t, "glowFrame", p.NameKey)
		assert.Equal(t, 1299.0, p.Price)
		assert.Len(t, p.Variations, 3)
	})

	t.Run("Unknown Product", func(t *testing.T) {
		_, ok := c.ProductByID("nope")
		assert.False(t, ok)
	})

	t.Run("Returned Copy Is Isolated", func(t *testing.T) {
		p, ok := c.ProductByID("p1")
		require.True(t, ok)

		p.Variations[0].Price = 1

		again, _ := c.ProductByID("p1")
		assert.Equal(t, 1299.0, again.Variations[0].Price, "catalog data must not be mutable through accessor results")
	})
}

func TestCatalog_Listing(t *testing.T) {
	c := catalog.Default()

	t.Run("All Products", func(t *testing.T) {
		assert.Len(t, c.Products(), 6)
	})

	t.Run("By Category", func(t *testing.T) {
		prods := c.ProductsByCategory("oldPhotos")

		require.Len(t, prods, 1)
		assert.Equal(t, "p2", prods[0].ID)
	})

	t.Run("Unknown Category Is Empty", func(t *testing.T) {
		assert.Empty(t, c.ProductsByCategory("gardenGnomes"))
	})
}

func TestCatalog_Search(t *testing.T) {
	c := catalog.Default()
	tr := i18n.NewTranslator(catalog.Strings(), i18n.LanguageEnglish)

	t.Run("Matches Translated Name", func(t *testing.T) {
		prods := c.Search(tr, "mug")

		require.Len(t, prods, 1)
		assert.Equal(t, "p4", prods[0].ID)
	})

	t.Run("Empty Query Returns Everything", func(t *testing.T) {
		assert.Len(t, c.Search(tr, "  "), 6)
	})

	t.Run("No Match", func(t *testing.T) {
		assert.Empty(t, c.Search(tr, "zzz"))
	})
}

func TestProduct_Variation(t *testing.T) {
	c := catalog.Default()
	p, ok := c.ProductByID("p1")
	require.True(t, ok)

	t.Run("Found", func(t *testing.T) {
		v := p.Variation("p1-m")

		require.NotNil(t, v)
		assert.Equal(t, 1599.0, v.Price)
	})

	t.Run("Not Found", func(t *testing.T) {
		assert.Nil(t, p.Variation("p1-xl"))
	})
}
