package pricing

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

func TestComputeTotalsEmptyLines(t *testing.T) {
	got := ComputeTotals(nil, DeliveryContext{Method: domain.MethodDelivery, AreaPrice: dec("2.5")})
	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.DeliveryFee.Equal(dec("2.5")))
	assert.True(t, got.GrandTotal.Equal(dec("2.5")))
}

func TestComputeTotalsPickupHasNoFee(t *testing.T) {
	lines := []Line{{UnitPrice: dec("10"), Quantity: 3}}
	got := ComputeTotals(lines, DeliveryContext{Method: domain.MethodPickup, AreaPrice: dec("5")})
	assert.True(t, got.DeliveryFee.IsZero())
	assert.True(t, got.GrandTotal.Equal(dec("30")))
}

func TestComputeTotalsFreeDeliveryThresholdInclusive(t *testing.T) {
	ctx := DeliveryContext{
		Method:        domain.MethodDelivery,
		AreaPrice:     dec("1.5"),
		FreeThreshold: dec("50"),
	}

	below := ComputeTotals([]Line{{UnitPrice: dec("49.99"), Quantity: 1}}, ctx)
	assert.True(t, below.DeliveryFee.Equal(dec("1.5")), "49.99 is under the threshold")

	at := ComputeTotals([]Line{{UnitPrice: dec("50.00"), Quantity: 1}}, ctx)
	assert.True(t, at.DeliveryFee.IsZero(), "threshold is inclusive")
	assert.True(t, at.GrandTotal.Equal(dec("50.00")))
}

func TestComputeTotalsZeroThresholdDisablesRule(t *testing.T) {
	got := ComputeTotals([]Line{{UnitPrice: dec("1000"), Quantity: 1}}, DeliveryContext{
		Method:    domain.MethodDelivery,
		AreaPrice: dec("2"),
	})
	assert.True(t, got.DeliveryFee.Equal(dec("2")))
}

func TestComputeTotalsIdempotent(t *testing.T) {
	lines := []Line{
		{UnitPrice: dec("3.750"), Quantity: 2},
		{UnitPrice: dec("0.400"), Quantity: 5},
	}
	ctx := DeliveryContext{Method: domain.MethodDelivery, AreaPrice: dec("1.2"), FreeThreshold: dec("20")}

	first := ComputeTotals(lines, ctx)
	second := ComputeTotals(lines, ctx)
	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.DeliveryFee.Equal(second.DeliveryFee))
	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
}

func TestComputeTotalsContractViolations(t *testing.T) {
	require.Panics(t, func() {
		ComputeTotals([]Line{{UnitPrice: dec("-1"), Quantity: 1}}, DeliveryContext{})
	})
	require.Panics(t, func() {
		ComputeTotals([]Line{{UnitPrice: dec("1"), Quantity: 0}}, DeliveryContext{})
	})
	require.Panics(t, func() {
		ComputeTotals(nil, DeliveryContext{AreaPrice: dec("-0.5")})
	})
}

func TestResolveUnitPriceVariantOverride(t *testing.T) {
	product := domain.Product{Price: dec("10")}

	priced := &domain.ProductVariant{Price: dec("12.5")}
	assert.True(t, ResolveUnitPrice(product, priced).Equal(dec("12.5")))

	// A zero variant price means "no override", not a free item.
	free := &domain.ProductVariant{Price: decimal.Zero}
	assert.True(t, ResolveUnitPrice(product, free).Equal(dec("10")))

	assert.True(t, ResolveUnitPrice(product, nil).Equal(dec("10")))
}
