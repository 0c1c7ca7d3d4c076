package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	products := All()
	assert.Len(t, products, 14)

	// returned slice must not alias the catalog
	products[0].Price = 1
	assert.Equal(t, int64(25000), All()[0].Price)
}

func TestByCategory(t *testing.T) {
	assert.Len(t, ByCategory("coffee"), 5)
	assert.Len(t, ByCategory("tea"), 3)
	assert.Len(t, ByCategory("juice"), 3)
	assert.Len(t, ByCategory("food"), 3)
	assert.Empty(t, ByCategory("sushi"))
}

func TestSearch(t *testing.T) {
	hits := Search("LATTE")
	require.NotEmpty(t, hits)
	for _, p := range hits {
		assert.Contains(t, p.Name, "Latte")
	}

	assert.Empty(t, Search("pho"))
}

func TestFind(t *testing.T) {
	p, ok := Find("cf_1")
	require.True(t, ok)
	assert.Equal(t, "Espresso", p.Name)
	assert.Equal(t, int64(25000), p.Price)

	_, ok = Find("cf_999")
	assert.False(t, ok)
}
