package importer

import (
	"context"
	"strings"
	"testing"

	"azharstore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProducts struct {
	created []domain.Product
}

func (m *memProducts) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	p.ID = int64(len(m.created) + 1)
	m.created = append(m.created, p)
	return &p, nil
}

type memCategories struct {
	categories []domain.Category
}

func (m *memCategories) List(context.Context) ([]domain.Category, error) {
	return m.categories, nil
}

func (m *memCategories) Create(_ context.Context, name string) (*domain.Category, error) {
	c := domain.Category{ID: int64(len(m.categories) + 1), Name: name}
	m.categories = append(m.categories, c)
	return &c, nil
}

const catalog = `{
  "products": [
    {
      "name": "Dates box",
      "description": "Khalas dates",
      "price": "10.500",
      "category": "Food",
      "images": [{"url": "https://cdn.example/dates.jpg", "is_primary": true}],
      "variants": [
        {"name": "Small", "price": "0"},
        {"name": "Large", "price": "18.000"}
      ]
    },
    {
      "name": "Saffron",
      "price": "25",
      "category": "food"
    }
  ]
}`

func TestImportCatalog(t *testing.T) {
	products := &memProducts{}
	categories := &memCategories{}

	imp := NewJSONImporter(strings.NewReader(catalog), products, categories)
	n, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, products.created, 2)

	first := products.created[0]
	assert.Equal(t, "Dates box", first.Name)
	assert.Equal(t, "10.5", first.Price.String())
	require.Len(t, first.Variants, 2)
	assert.True(t, first.Variants[0].Price.IsZero())
	require.Len(t, first.Images, 1)
	assert.True(t, first.Images[0].IsPrimary)

	// category names match case-insensitively, so only one is created
	assert.Len(t, categories.categories, 1)
	require.NotNil(t, products.created[1].CategoryID)
	assert.Equal(t, *first.CategoryID, *products.created[1].CategoryID)
}

func TestImportRejectsBadPrice(t *testing.T) {
	imp := NewJSONImporter(strings.NewReader(`{"products":[{"name":"X","price":"free"}]}`), &memProducts{}, &memCategories{})
	_, err := imp.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad price")
}

func TestImportRejectsMissingName(t *testing.T) {
	imp := NewJSONImporter(strings.NewReader(`{"products":[{"name":" ","price":"1"}]}`), &memProducts{}, &memCategories{})
	_, err := imp.Run(context.Background())
	require.Error(t, err)
}
