package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shipping methods accepted on orders.
const (
	MethodDelivery = "delivery"
	MethodPickup   = "pickup"
)

// Order statuses as used by the admin panel.
const (
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

type Order struct {
	ID             int64           `json:"id"`
	CustomerID     int64           `json:"customer_id"`
	Customer       *Customer       `json:"customer,omitempty"`
	Status         string          `json:"status"`
	ShippingMethod string          `json:"shipping_method"`
	Comments       string          `json:"comments,omitempty"`
	DeliveryAreaID *int64          `json:"delivery_area_id,omitempty"`
	DeliveryArea   *DeliveryArea   `json:"delivery_area,omitempty"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	Items          []OrderItem     `json:"order_items"`
	CreatedAt      time.Time       `json:"created_at"`
}

// OrderItem references either a product or a product variant, never both.
type OrderItem struct {
	ID               int64           `json:"id"`
	OrderID          int64           `json:"order_id"`
	ProductID        *int64          `json:"product_id,omitempty"`
	ProductVariantID *int64          `json:"product_variant_id,omitempty"`
	Quantity         int             `json:"quantity"`
	Product          *Product        `json:"product,omitempty"`
	ProductVariant   *ProductVariant `json:"product_variant,omitempty"`
}
