package domain

import "time"

type QuotationStatus string

const (
	QuotationStatusDraft     QuotationStatus = "draft"
	QuotationStatusSent      QuotationStatus = "sent"
	QuotationStatusConfirmed QuotationStatus = "confirmed"
	QuotationStatusExpired   QuotationStatus = "expired"
	QuotationStatusCancelled QuotationStatus = "cancelled"
)

type QuotationItem struct {
	ID          int32   `json:"id"`
	ProductID   int32   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int32   `json:"quantity"`
	RentalDays  int32   `json:"rental_days"`
	DailyRate   float64 `json:"daily_rate"`
	Subtotal    float64 `json:"subtotal"`
}

type Quotation struct {
	ID              int32           `json:"id"`
	QuotationNumber string          `json:"quotation_number"`
	CustomerID      int32           `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	Items           []QuotationItem `json:"items"`
	Subtotal        float64         `json:"subtotal"`
	TaxAmount       float64         `json:"tax_amount"`
	DepositAmount   float64         `json:"deposit_amount"`
	TotalAmount     float64         `json:"total_amount"`
	Status          QuotationStatus `json:"status"`
	ValidUntil      *time.Time      `json:"valid_until,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedOn       time.Time       `json:"created_on"`
	UpdatedOn       time.Time       `json:"updated_on"`
}
