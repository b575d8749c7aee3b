package models

import (
	"time"

	"github.com/google/uuid"
)

// InventorySnapshot is an aggregate of the product inventory at a point in time,
// written by the scheduled snapshot jobs.
type InventorySnapshot struct {
	ID            uuid.UUID `json:"id"`
	Period        string    `json:"period"` // daily, monthly or yearly
	ProductCount  int       `json:"product_count"`
	TotalQuantity int64     `json:"total_quantity"`
	TotalValue    float64   `json:"total_value"`
	TakenAt       time.Time `json:"taken_at"`
}
