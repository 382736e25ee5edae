package domain

import "time"

// Customer holds the storefront contact and address fields. Addresses are
// Bahrain-style: town plus road/home/block numbers.
type Customer struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	PhoneNumber  string    `json:"phone_number"`
	Town         string    `json:"town,omitempty"`
	AddressRoad  string    `json:"address_road,omitempty"`
	AddressHome  string    `json:"address_home,omitempty"`
	AddressBlock string    `json:"address_block,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
