// Package cart holds the in-memory shopping carts. Carts are keyed by an
// opaque owner id (the storefront session) and shared between the product
// grid, product detail page and checkout flow, so every mutation is visible
// to all of them immediately.
package cart

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"azharstore/internal/domain"
	"azharstore/internal/pricing"
)

var ErrQuantityRequired = errors.New("quantity must be positive")

// Line is one distinct product-or-variant entry. The unit price is resolved
// at add time; a variant price of zero falls back to the product price.
type Line struct {
	ProductID int64           `json:"product_id"`
	VariantID *int64          `json:"variant_id,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Store is safe for concurrent use by request handlers. It is constructed
// once and injected; nothing in the codebase reaches for a global cart.
type Store struct {
	mu    sync.Mutex
	carts map[string][]Line
}

func NewStore() *Store {
	return &Store{carts: make(map[string][]Line)}
}

// Add merges into an existing line for the same (product, variant) pair
// instead of duplicating it.
func (s *Store) Add(owner string, product domain.Product, variant *domain.ProductVariant, quantity int) error {
	if quantity <= 0 {
		return ErrQuantityRequired
	}

	var variantID *int64
	if variant != nil {
		id := variant.ID
		variantID = &id
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[owner]
	for i, line := range lines {
		if line.ProductID == product.ID && sameVariant(line.VariantID, variantID) {
			lines[i].Quantity += quantity
			return nil
		}
	}
	s.carts[owner] = append(lines, Line{
		ProductID: product.ID,
		VariantID: variantID,
		Quantity:  quantity,
		UnitPrice: pricing.ResolveUnitPrice(product, variant),
	})
	return nil
}

func (s *Store) Remove(owner string, productID int64, variantID *int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[owner]
	for i, line := range lines {
		if line.ProductID == productID && sameVariant(line.VariantID, variantID) {
			s.carts[owner] = append(lines[:i], lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line quantity; anything below one removes the line
// instead of going negative.
func (s *Store) UpdateQuantity(owner string, productID int64, variantID *int64, quantity int) {
	if quantity < 1 {
		s.Remove(owner, productID, variantID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[owner]
	for i, line := range lines {
		if line.ProductID == productID && sameVariant(line.VariantID, variantID) {
			lines[i].Quantity = quantity
			return
		}
	}
}

func (s *Store) Clear(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, owner)
}

// Lines returns a copy; callers cannot mutate the stored cart through it.
func (s *Store) Lines(owner string) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[owner]
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

func (s *Store) Count(owner string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.carts[owner] {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the cart-level total: the calculator's subtotal with no
// delivery context. Delivery fees are added only inside the checkout flow.
func (s *Store) TotalPrice(owner string) decimal.Decimal {
	return pricing.ComputeTotals(toPricingLines(s.Lines(owner)), pricing.DeliveryContext{}).Subtotal
}

func toPricingLines(lines []Line) []pricing.Line {
	out := make([]pricing.Line, 0, len(lines))
	for _, line := range lines {
		out = append(out, pricing.Line{UnitPrice: line.UnitPrice, Quantity: line.Quantity})
	}
	return out
}

func sameVariant(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
