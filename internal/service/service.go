package service

import (
	"context"
	"time"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/utils"
)

// Actor identifies the authenticated caller. Services only consume the id
// and role; name/email snapshots are loaded from the user repository when
// an operation needs them.
type Actor struct {
	UserID int32
	Role   domain.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == domain.RoleAdmin
}

func (a Actor) IsVendor() bool {
	return a.Role == domain.RoleVendor
}

type OrderItemInput struct {
	ProductID  int32   `json:"product_id"`
	Quantity   int32   `json:"quantity"`
	RentalDays int32   `json:"rental_days"`
	DailyRate  float64 `json:"daily_rate"`
	Subtotal   float64 `json:"subtotal"`
}

type CreateOrderInput struct {
	QuotationID   *int32           `json:"quotation_id,omitempty"`
	Items         []OrderItemInput `json:"items"`
	Subtotal      float64          `json:"subtotal"`
	TaxAmount     float64          `json:"tax_amount"`
	DepositAmount float64          `json:"deposit_amount"`
	TotalAmount   float64          `json:"total_amount"`
	PickupDate    *time.Time       `json:"pickup_date,omitempty"`
	ReturnDate    *time.Time       `json:"return_date,omitempty"`
}

// PickupItemInput sets a line's picked-up quantity to an absolute value.
type PickupItemInput struct {
	ProductID        int32 `json:"product_id"`
	PickedUpQuantity int32 `json:"picked_up_quantity"`
}

// ReturnItemInput sets a line's returned quantity to an absolute value.
// The inventory delta is derived from the previously returned quantity.
type ReturnItemInput struct {
	ProductID        int32  `json:"product_id"`
	ReturnedQuantity int32  `json:"returned_quantity"`
	DamageNotes      string `json:"damage_notes,omitempty"`
}

type ProcessReturnInput struct {
	Items         []ReturnItemInput `json:"items,omitempty"`
	LateFee       float64           `json:"late_fee,omitempty"`
	DamageCharges float64           `json:"damage_charges,omitempty"`
	DamageNotes   string            `json:"damage_notes,omitempty"`
}

type ReturnRequestItemInput struct {
	ProductID      int32                  `json:"product_id"`
	ReturnQuantity int32                  `json:"return_quantity"`
	Condition      domain.ReturnCondition `json:"condition,omitempty"`
}

type CreateReturnRequestInput struct {
	OrderID       int32                    `json:"order_id"`
	Items         []ReturnRequestItemInput `json:"items"`
	Reason        domain.ReturnReason      `json:"reason"`
	ReasonDetails string                   `json:"reason_details,omitempty"`
	PreferredDate *time.Time               `json:"preferred_date,omitempty"`
	CustomerNotes string                   `json:"customer_notes,omitempty"`
}

type UpdateReturnRequestInput struct {
	Status        domain.ReturnRequestStatus `json:"status"`
	ScheduledDate *time.Time                 `json:"scheduled_date,omitempty"`
	VendorNotes   string                     `json:"vendor_notes,omitempty"`
	RefundAmount  *float64                   `json:"refund_amount,omitempty"`
}

// UpdateProfileInput patches the caller's own profile. Nil fields are left
// untouched; email and role are not editable here.
type UpdateProfileInput struct {
	Name    *string `json:"name,omitempty"`
	Company *string `json:"company,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// UpdateProductInput patches a catalog entry. Nil fields are left untouched.
// A stock change moves the available counter by the same delta.
type UpdateProductInput struct {
	Name        *string               `json:"name,omitempty"`
	Description *string               `json:"description,omitempty"`
	Category    *string               `json:"category,omitempty"`
	DailyRate   *float64              `json:"daily_rate,omitempty"`
	WeeklyRate  *float64              `json:"weekly_rate,omitempty"`
	MonthlyRate *float64              `json:"monthly_rate,omitempty"`
	Deposit     *float64              `json:"deposit,omitempty"`
	Stock       *int32                `json:"stock,omitempty"`
	Status      *domain.ProductStatus `json:"status,omitempty"`
}

// OrderWithOverdue decorates an order with the derived overdue flag used
// by the return listings.
type OrderWithOverdue struct {
	domain.Order
	IsOverdue bool `json:"is_overdue"`
}

type ChartPoint struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

type EarningsReport struct {
	TotalRevenue float64      `json:"total_revenue"`
	Chart        []ChartPoint `json:"chart"`
}

type OrderService interface {
	CreateOrder(ctx context.Context, actor Actor, input CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, actor Actor, orderID int32) (*domain.Order, error)
	ListOrders(ctx context.Context, actor Actor) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, actor Actor, orderID int32, status domain.OrderStatus, actualReturnDate *time.Time) (*domain.Order, error)
}

type PickupService interface {
	ListPickups(ctx context.Context, actor Actor) ([]domain.Order, error)
	SchedulePickup(ctx context.Context, actor Actor, orderID int32, pickupDate time.Time, pickupTime string) (*domain.Order, error)
	ProcessPickup(ctx context.Context, actor Actor, orderID int32, items []PickupItemInput) (*domain.Order, error)
	CancelPickup(ctx context.Context, actor Actor, orderID int32) (*domain.Order, error)
}

type ReturnService interface {
	ListReturns(ctx context.Context, actor Actor) ([]OrderWithOverdue, error)
	ProcessReturn(ctx context.Context, actor Actor, orderID int32, input ProcessReturnInput) (*domain.Order, error)
	CalculateLateFee(ctx context.Context, actor Actor, orderID int32) (*utils.LateFeeResult, error)
	ListEligibleOrders(ctx context.Context, actor Actor) ([]domain.Order, error)

	CreateReturnRequest(ctx context.Context, actor Actor, input CreateReturnRequestInput) (*domain.ReturnRequest, error)
	GetReturnRequest(ctx context.Context, actor Actor, requestID int32) (*domain.ReturnRequest, error)
	ListMyReturnRequests(ctx context.Context, actor Actor) ([]domain.ReturnRequest, error)
	ListVendorReturnRequests(ctx context.Context, actor Actor) ([]domain.ReturnRequest, error)
	UpdateReturnRequestStatus(ctx context.Context, actor Actor, requestID int32, input UpdateReturnRequestInput) (*domain.ReturnRequest, error)
}

type InvoiceService interface {
	CreateForOrder(ctx context.Context, order *domain.Order) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, actor Actor, invoiceID int32) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, actor Actor) ([]domain.Invoice, error)
	PayInvoice(ctx context.Context, actor Actor, invoiceID int32, method domain.PaymentMethod, notes string) (*domain.Invoice, error)
}

type QuotationService interface {
	CreateQuotation(ctx context.Context, actor Actor, items []OrderItemInput, validUntil *time.Time, notes string) (*domain.Quotation, error)
	GetQuotation(ctx context.Context, actor Actor, quotationID int32) (*domain.Quotation, error)
	ListQuotations(ctx context.Context, actor Actor) ([]domain.Quotation, error)
	UpdateQuotationStatus(ctx context.Context, actor Actor, quotationID int32, status domain.QuotationStatus) error
}

type ProductService interface {
	AddProduct(ctx context.Context, actor Actor, product *domain.Product) error
	GetProduct(ctx context.Context, productID int32) (*domain.Product, error)
	UpdateProduct(ctx context.Context, actor Actor, productID int32, input UpdateProductInput) (*domain.Product, error)
	ListProducts(ctx context.Context, vendorID int32, page, pageSize int32) ([]domain.Product, int32, error)
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string, role domain.UserRole) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, input UpdateProfileInput) (*domain.User, error)
}

type EarningsService interface {
	GetEarnings(ctx context.Context, actor Actor, rng string) (*EarningsReport, error)
}

type EmailService interface {
	SendReturnRequestNotification(ctx context.Context, vendorEmail, customerName, requestNumber, orderNumber string) error
	SendReturnRequestStatusNotification(ctx context.Context, customerEmail, requestNumber string, status domain.ReturnRequestStatus, vendorNotes string) error
	SendReturnReminder(ctx context.Context, customerEmail, orderNumber string, returnDate time.Time, overdue bool) error
}
