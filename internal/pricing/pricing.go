// Package pricing computes order totals. Every view that shows a subtotal or
// grand total (cart, checkout summary, admin order screens) goes through
// ComputeTotals so the delivery-fee and free-delivery rules live in one place.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"azharstore/internal/domain"
)

// Line is a resolved order line: unit price already picked from the product
// or variant (see ResolveUnitPrice).
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// DeliveryContext carries the delivery inputs of a totals computation.
// AreaPrice is only meaningful when Method is domain.MethodDelivery.
type DeliveryContext struct {
	Method        string
	AreaPrice     decimal.Decimal
	FreeThreshold decimal.Decimal
}

type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// ComputeTotals is pure: same inputs, same outputs. Malformed input (negative
// price, quantity below one) is a bug in the caller and panics rather than
// being clamped.
func ComputeTotals(lines []Line, dc DeliveryContext) Totals {
	if dc.AreaPrice.IsNegative() {
		panic(fmt.Sprintf("pricing: negative area price %s", dc.AreaPrice))
	}
	if dc.FreeThreshold.IsNegative() {
		panic(fmt.Sprintf("pricing: negative free-delivery threshold %s", dc.FreeThreshold))
	}

	subtotal := decimal.Zero
	for i, line := range lines {
		if line.UnitPrice.IsNegative() {
			panic(fmt.Sprintf("pricing: negative unit price %s at line %d", line.UnitPrice, i))
		}
		if line.Quantity < 1 {
			panic(fmt.Sprintf("pricing: quantity %d at line %d", line.Quantity, i))
		}
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	fee := decimal.Zero
	if dc.Method == domain.MethodDelivery {
		// Threshold is inclusive; a zero threshold disables the rule.
		if dc.FreeThreshold.IsPositive() && subtotal.GreaterThanOrEqual(dc.FreeThreshold) {
			fee = decimal.Zero
		} else {
			fee = dc.AreaPrice
		}
	}

	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		GrandTotal:  subtotal.Add(fee),
	}
}

// ResolveUnitPrice picks the price a line is charged at. A selected variant
// overrides the product price only when its own price is positive; a variant
// price of exactly zero falls back to the product price.
func ResolveUnitPrice(product domain.Product, variant *domain.ProductVariant) decimal.Decimal {
	if variant != nil && variant.Price.IsPositive() {
		return variant.Price
	}
	return product.Price
}
