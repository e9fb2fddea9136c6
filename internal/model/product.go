package model

import "time"

// Product kinds carried by the storefront.
const (
	KindTights  = "tights"
	KindLace    = "lace"
	KindShort   = "short"
	KindThermal = "thermal"
)

type Product struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Sizes       []string  `json:"sizes"`
	Colors      []string  `json:"colors"`
	Stock       int       `json:"stock"`
	Active      bool      `json:"active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PickupLocation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	City        string `json:"city"`
	Street      string `json:"street"`
	PhoneNumber string `json:"phone_number"`
	Active      bool   `json:"active"`
}
