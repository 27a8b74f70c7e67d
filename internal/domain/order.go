package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPickedUp  OrderStatus = "picked_up"
	// OrderStatusActive is a legal stored status but no write path in this
	// engine produces it; ProcessPickup always sets picked_up. It is accepted
	// anywhere eligibility is checked so data created by older clients keeps
	// working.
	OrderStatusActive    OrderStatus = "active"
	OrderStatusReturned  OrderStatus = "returned"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderTransitions is the legal forward-transition table for generic status
// updates. Lifecycle operations (pickup, return, cancel) carry their own
// documented semantics and do not consult this table.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPickedUp, OrderStatusPending, OrderStatusCancelled},
	OrderStatusPickedUp:  {OrderStatusActive, OrderStatusReturned, OrderStatusCompleted},
	OrderStatusActive:    {OrderStatusReturned, OrderStatusCompleted},
	OrderStatusReturned:  {OrderStatusCompleted},
}

// CanTransition reports whether a generic status update from one status to
// another is legal. Terminal statuses have no outgoing transitions.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the order can no longer accept quantity
// mutations.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// ReturnEligible reports whether a customer may open a return request
// against an order in this status.
func (s OrderStatus) ReturnEligible() bool {
	return s == OrderStatusPickedUp || s == OrderStatusActive
}

type OrderItem struct {
	ID          int32   `json:"id"`
	ProductID   int32   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int32   `json:"quantity"`
	RentalDays  int32   `json:"rental_days"`
	DailyRate   float64 `json:"daily_rate"`
	Subtotal    float64 `json:"subtotal"`
	// Both counters default to zero and only ever grow.
	PickedUpQuantity int32  `json:"picked_up_quantity"`
	ReturnedQuantity int32  `json:"returned_quantity"`
	Notes            string `json:"notes,omitempty"`
}

// FullyReturned reports whether every ordered unit of this line has come
// back.
func (it OrderItem) FullyReturned() bool {
	return it.ReturnedQuantity >= it.Quantity
}

type Order struct {
	ID          int32  `json:"id"`
	OrderNumber string `json:"order_number"`
	QuotationID *int32 `json:"quotation_id,omitempty"`
	CustomerID  int32  `json:"customer_id"`
	// Name/email snapshots taken at creation time; not refreshed on later
	// profile edits.
	CustomerName     string      `json:"customer_name"`
	CustomerEmail    string      `json:"customer_email"`
	VendorID         int32       `json:"vendor_id,omitempty"`
	VendorName       string      `json:"vendor_name,omitempty"`
	Items            []OrderItem `json:"items"`
	Subtotal         float64     `json:"subtotal"`
	TaxAmount        float64     `json:"tax_amount"`
	DepositAmount    float64     `json:"deposit_amount"`
	TotalAmount      float64     `json:"total_amount"`
	PaidAmount       float64     `json:"paid_amount"`
	Status           OrderStatus `json:"status"`
	PickupDate       *time.Time  `json:"pickup_date,omitempty"`
	ReturnDate       *time.Time  `json:"return_date,omitempty"`
	ActualReturnDate *time.Time  `json:"actual_return_date,omitempty"`
	LateFee          float64     `json:"late_fee"`
	DamageCharges    float64     `json:"damage_charges"`
	Notes            string      `json:"notes,omitempty"`
	CreatedOn        time.Time   `json:"created_on"`
	UpdatedOn        time.Time   `json:"updated_on"`
}

// Item returns the line item for a product, or nil if the order has none.
func (o *Order) Item(productID int32) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i]
		}
	}
	return nil
}

// AllReturned reports whether every line item is fully returned.
func (o *Order) AllReturned() bool {
	for _, it := range o.Items {
		if !it.FullyReturned() {
			return false
		}
	}
	return true
}

// IsOverdue reports whether the order is past its scheduled return date and
// not yet back.
func (o *Order) IsOverdue(now time.Time) bool {
	if o.ReturnDate == nil {
		return false
	}
	if o.Status == OrderStatusReturned || o.Status == OrderStatusCompleted {
		return false
	}
	return o.ReturnDate.Before(now)
}
