package domain

import "github.com/shopspring/decimal"

// AppSettings drives storefront behavior. A zero FreeDeliveryThreshold
// disables the free-delivery rule.
type AppSettings struct {
	FreeDeliveryThreshold decimal.Decimal `json:"free_delivery_threshold"`
	DeliveryMessage       string          `json:"delivery_message"`
	PickupMessage         string          `json:"pickup_message"`
}
