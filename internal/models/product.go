package models

import (
	"math"
	"time"
)

const (
	// DefaultMinStockThreshold is applied when a product is created without a threshold.
	DefaultMinStockThreshold = 5
	// MaxQuantity bounds stock quantities and thresholds to what every backend stores.
	MaxQuantity = math.MaxInt32
)

// Product represents a product entity in the inventory system.
// Owner holds the id of the user that created it; every lookup is scoped by it.
type Product struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Quantity          int       `json:"quantity"`
	Price             float64   `json:"price"`
	MinStockThreshold int       `json:"minStockThreshold"`
	Owner             string    `json:"user"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// IsLowStock reports whether the stock is at or below the product's own threshold.
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.MinStockThreshold
}
