package domain

import "time"

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

type Product struct {
	ID          int32   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	DailyRate   float64 `json:"daily_rate"`
	WeeklyRate  float64 `json:"weekly_rate"`
	MonthlyRate float64 `json:"monthly_rate"`
	Deposit     float64 `json:"deposit"`
	// Stock is total owned units; Available is units not currently checked
	// out. Available moves only through atomic increments keyed to return
	// events, so it can drift below Stock but is never guessed at.
	Stock      int32         `json:"stock"`
	Available  int32         `json:"available"`
	VendorID   int32         `json:"vendor_id"`
	VendorName string        `json:"vendor_name,omitempty"`
	Status     ProductStatus `json:"status"`
	CreatedOn  time.Time     `json:"created_on"`
	UpdatedOn  time.Time     `json:"updated_on"`
}

// InventoryDelta is one product-availability adjustment produced by a
// return. Deltas are collected and validated per order before any of them
// is applied, so a bad line item rejects the whole batch.
type InventoryDelta struct {
	ProductID int32
	Delta     int32
}
