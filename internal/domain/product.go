package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	StockQuantity *int             `json:"stock_quantity,omitempty"`
	CategoryID    *int64           `json:"category_id,omitempty"`
	Category      *Category        `json:"category,omitempty"`
	Images        []ProductImage   `json:"product_images"`
	Variants      []ProductVariant `json:"product_variants"`
	CreatedAt     time.Time        `json:"created_at"`
}

type ProductImage struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	ImageURL  string    `json:"image_url"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductVariant optionally overrides the product price: a variant price of
// zero means the product price applies.
type ProductVariant struct {
	ID            int64           `json:"id"`
	ProductID     int64           `json:"product_id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity *int            `json:"stock_quantity"`
	ImageURL      *string         `json:"image_url,omitempty"`
}
