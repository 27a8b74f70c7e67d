package domain

import "time"

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusPartial   InvoiceStatus = "partial"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

type InvoiceItem struct {
	ID          int32   `json:"id"`
	ProductName string  `json:"product_name"`
	Quantity    int32   `json:"quantity"`
	RentalDays  int32   `json:"rental_days"`
	DailyRate   float64 `json:"daily_rate"`
	Amount      float64 `json:"amount"`
}

// Invoice is the financial shadow of an order, created 1:1 at order
// creation. BalanceAmount = TotalAmount - PaidAmount is enforced at the
// point of payment.
type Invoice struct {
	ID            int32         `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	OrderID       int32         `json:"order_id"`
	OrderNumber   string        `json:"order_number"`
	CustomerID    int32         `json:"customer_id"`
	CustomerName  string        `json:"customer_name"`
	VendorID      int32         `json:"vendor_id,omitempty"`
	VendorName    string        `json:"vendor_name,omitempty"`
	Items         []InvoiceItem `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	TaxAmount     float64       `json:"tax_amount"`
	TotalAmount   float64       `json:"total_amount"`
	PaidAmount    float64       `json:"paid_amount"`
	BalanceAmount float64       `json:"balance_amount"`
	Status        InvoiceStatus `json:"status"`
	IssueDate     time.Time     `json:"issue_date"`
	DueDate       time.Time     `json:"due_date"`
	CreatedOn     time.Time     `json:"created_on"`
	UpdatedOn     time.Time     `json:"updated_on"`
}

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodUPI          PaymentMethod = "upi"
)

type Payment struct {
	ID            int32         `json:"id"`
	InvoiceID     int32         `json:"invoice_id"`
	InvoiceNumber string        `json:"invoice_number"`
	Amount        float64       `json:"amount"`
	Method        PaymentMethod `json:"method"`
	Reference     string        `json:"reference,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	CreatedOn     time.Time     `json:"created_on"`
}
