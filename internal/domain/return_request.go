package domain

import "time"

type ReturnRequestStatus string

const (
	ReturnRequestStatusPending   ReturnRequestStatus = "pending"
	ReturnRequestStatusApproved  ReturnRequestStatus = "approved"
	ReturnRequestStatusScheduled ReturnRequestStatus = "scheduled"
	ReturnRequestStatusCompleted ReturnRequestStatus = "completed"
	ReturnRequestStatusRejected  ReturnRequestStatus = "rejected"
)

var returnRequestTransitions = map[ReturnRequestStatus][]ReturnRequestStatus{
	ReturnRequestStatusPending:   {ReturnRequestStatusApproved, ReturnRequestStatusRejected},
	ReturnRequestStatusApproved:  {ReturnRequestStatusScheduled, ReturnRequestStatusCompleted},
	ReturnRequestStatusScheduled: {ReturnRequestStatusCompleted},
}

// CanTransition reports whether the workflow may move to the given status.
// Completed and rejected are terminal.
func (s ReturnRequestStatus) CanTransition(to ReturnRequestStatus) bool {
	for _, next := range returnRequestTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type ReturnCondition string

const (
	ConditionExcellent ReturnCondition = "excellent"
	ConditionGood      ReturnCondition = "good"
	ConditionFair      ReturnCondition = "fair"
	ConditionDamaged   ReturnCondition = "damaged"
)

type ReturnReason string

const (
	ReasonNoLongerNeeded   ReturnReason = "no_longer_needed"
	ReasonProjectCompleted ReturnReason = "project_completed"
	ReasonEquipmentIssue   ReturnReason = "equipment_issue"
	ReasonOther            ReturnReason = "other"
)

// ValidReturnReason reports whether the reason is one of the accepted
// enum values.
func ValidReturnReason(r ReturnReason) bool {
	switch r {
	case ReasonNoLongerNeeded, ReasonProjectCompleted, ReasonEquipmentIssue, ReasonOther:
		return true
	}
	return false
}

type ReturnRequestItem struct {
	ID             int32           `json:"id"`
	ProductID      int32           `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       int32           `json:"quantity"`
	ReturnQuantity int32           `json:"return_quantity"`
	Condition      ReturnCondition `json:"condition"`
}

type ReturnRequest struct {
	ID            int32               `json:"id"`
	RequestNumber string              `json:"request_number"`
	OrderID       int32               `json:"order_id"`
	OrderNumber   string              `json:"order_number"`
	CustomerID    int32               `json:"customer_id"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
	VendorID      int32               `json:"vendor_id,omitempty"`
	VendorName    string              `json:"vendor_name,omitempty"`
	Items         []ReturnRequestItem `json:"items"`
	Reason        ReturnReason        `json:"reason"`
	ReasonDetails string              `json:"reason_details,omitempty"`
	PreferredDate *time.Time          `json:"preferred_date,omitempty"`
	Status        ReturnRequestStatus `json:"status"`
	ScheduledDate *time.Time          `json:"scheduled_date,omitempty"`
	CompletedDate *time.Time          `json:"completed_date,omitempty"`
	VendorNotes   string              `json:"vendor_notes,omitempty"`
	CustomerNotes string              `json:"customer_notes,omitempty"`
	RefundAmount  float64             `json:"refund_amount"`
	CreatedOn     time.Time           `json:"created_on"`
	UpdatedOn     time.Time           `json:"updated_on"`
}
