package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"azharstore/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAddMergesSamePair(t *testing.T) {
	store := NewStore()
	product := domain.Product{ID: 5, Price: dec("4")}

	require.NoError(t, store.Add("s1", product, nil, 2))
	require.NoError(t, store.Add("s1", product, nil, 3))

	lines := store.Lines("s1")
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 5, store.Count("s1"))
}

func TestAddKeepsVariantsDistinct(t *testing.T) {
	store := NewStore()
	product := domain.Product{ID: 5, Price: dec("4")}
	variant := &domain.ProductVariant{ID: 9, Price: dec("6")}

	require.NoError(t, store.Add("s1", product, nil, 1))
	require.NoError(t, store.Add("s1", product, variant, 1))

	lines := store.Lines("s1")
	require.Len(t, lines, 2)
	assert.True(t, lines[0].UnitPrice.Equal(dec("4")))
	assert.True(t, lines[1].UnitPrice.Equal(dec("6")))
}

func TestAddZeroPriceVariantFallsBack(t *testing.T) {
	store := NewStore()
	product := domain.Product{ID: 1, Price: dec("10")}
	variant := &domain.ProductVariant{ID: 2, Price: decimal.Zero}

	require.NoError(t, store.Add("s1", product, variant, 1))
	assert.True(t, store.Lines("s1")[0].UnitPrice.Equal(dec("10")))
}

func TestUpdateQuantityBelowOneRemoves(t *testing.T) {
	store := NewStore()
	product := domain.Product{ID: 1, Price: dec("2")}
	require.NoError(t, store.Add("s1", product, nil, 2))

	store.UpdateQuantity("s1", 1, nil, 0)
	assert.Empty(t, store.Lines("s1"))
}

func TestTotalPriceExcludesDelivery(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Add("s1", domain.Product{ID: 1, Price: dec("3.500")}, nil, 2))
	require.NoError(t, store.Add("s1", domain.Product{ID: 2, Price: dec("1.250")}, nil, 1))

	assert.True(t, store.TotalPrice("s1").Equal(dec("8.250")))
}

func TestClearAndIsolationBetweenOwners(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Add("a", domain.Product{ID: 1, Price: dec("1")}, nil, 1))
	require.NoError(t, store.Add("b", domain.Product{ID: 1, Price: dec("1")}, nil, 4))

	store.Clear("a")
	assert.Empty(t, store.Lines("a"))
	assert.Equal(t, 4, store.Count("b"))
}
