package domain

import "github.com/shopspring/decimal"

// DeliveryArea is a named zone with a flat delivery price.
type DeliveryArea struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
