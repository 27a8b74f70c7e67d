package service

import (
	"context"
	"fmt"
	"time"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/logger"
	"rentbridge-backend/internal/repository"
	"rentbridge-backend/internal/utils"
)

type returnService struct {
	orderRepo   repository.OrderRepository
	requestRepo repository.ReturnRequestRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
	lateFeeRate float64
}

func NewReturnService(
	orderRepo repository.OrderRepository,
	requestRepo repository.ReturnRequestRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	lateFeeRatePercent float64,
) ReturnService {
	return &returnService{
		orderRepo:   orderRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		lateFeeRate: lateFeeRatePercent,
	}
}

func (s *returnService) ListReturns(ctx context.Context, actor Actor) ([]OrderWithOverdue, error) {
	filter := repository.OrderFilter{
		Statuses: []domain.OrderStatus{
			domain.OrderStatusPickedUp,
			domain.OrderStatusActive,
			domain.OrderStatusReturned,
			domain.OrderStatusCompleted,
		},
		SortBy:    "return_date",
		Ascending: true,
	}
	if !actor.IsAdmin() {
		filter.VendorID = actor.UserID
	}

	orders, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]OrderWithOverdue, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderWithOverdue{Order: o, IsOverdue: o.IsOverdue(now)})
	}
	return out, nil
}

// ProcessReturn closes out an order at the counter. Explicit items carry
// absolute returned quantities; the inventory delta for each line is the
// increase over what was already returned, and lines that do not increase
// contribute nothing. All deltas are validated before any state changes, so
// a bad line rejects the whole batch.
func (s *returnService) ProcessReturn(ctx context.Context, actor Actor, orderID int32, input ProcessReturnInput) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := vendorOwns(actor, order); err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: order is %s", domain.ErrInvalidTransition, order.Status)
	}

	var deltas []domain.InventoryDelta
	if len(input.Items) == 0 {
		for i := range order.Items {
			item := &order.Items[i]
			if newly := item.Quantity - item.ReturnedQuantity; newly > 0 {
				item.ReturnedQuantity = item.Quantity
				deltas = append(deltas, domain.InventoryDelta{ProductID: item.ProductID, Delta: newly})
			}
		}
	} else {
		for _, in := range input.Items {
			item := order.Item(in.ProductID)
			if item == nil {
				return nil, fmt.Errorf("%w: product %d is not on this order", domain.ErrValidation, in.ProductID)
			}
			if in.ReturnedQuantity > item.Quantity {
				return nil, fmt.Errorf("%w: returned quantity %d exceeds ordered %d for product %d",
					domain.ErrValidation, in.ReturnedQuantity, item.Quantity, in.ProductID)
			}
			// Returned counters never move backwards; a repeat of an earlier
			// value is a no-op rather than an error.
			if newly := in.ReturnedQuantity - item.ReturnedQuantity; newly > 0 {
				item.ReturnedQuantity = in.ReturnedQuantity
				deltas = append(deltas, domain.InventoryDelta{ProductID: item.ProductID, Delta: newly})
			}
			if in.DamageNotes != "" {
				item.Notes = in.DamageNotes
			}
		}
	}

	now := time.Now()
	order.Status = domain.OrderStatusCompleted
	order.ActualReturnDate = &now
	if input.LateFee > 0 {
		order.LateFee = input.LateFee
	}
	if input.DamageCharges > 0 {
		order.DamageCharges = input.DamageCharges
	}
	if input.DamageNotes != "" {
		note := "Return notes: " + input.DamageNotes
		if order.Notes != "" {
			note = order.Notes + " " + note
		}
		order.Notes = note
	}

	if err := s.orderRepo.ApplyReturn(ctx, order, deltas); err != nil {
		return nil, fmt.Errorf("failed to apply return: %w", err)
	}
	return order, nil
}

func (s *returnService) CalculateLateFee(ctx context.Context, actor Actor, orderID int32) (*utils.LateFeeResult, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && order.CustomerID != actor.UserID && order.VendorID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if order.ReturnDate == nil {
		return &utils.LateFeeResult{}, nil
	}
	result := utils.CalculateLateFee(order.Items, *order.ReturnDate, time.Now(), s.lateFeeRate)
	return &result, nil
}

func (s *returnService) ListEligibleOrders(ctx context.Context, actor Actor) ([]domain.Order, error) {
	return s.orderRepo.List(ctx, repository.OrderFilter{
		CustomerID: actor.UserID,
		Statuses:   []domain.OrderStatus{domain.OrderStatusPickedUp, domain.OrderStatusActive},
		SortBy:     "return_date",
		Ascending:  true,
	})
}

func (s *returnService) CreateReturnRequest(ctx context.Context, actor Actor, input CreateReturnRequestInput) (*domain.ReturnRequest, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: return request must have at least one item", domain.ErrValidation)
	}
	if !domain.ValidReturnReason(input.Reason) {
		return nil, fmt.Errorf("%w: unknown return reason %q", domain.ErrValidation, input.Reason)
	}

	order, err := s.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if !order.Status.ReturnEligible() {
		return nil, fmt.Errorf("%w: order is %s, returns need a picked-up or active order", domain.ErrInvalidTransition, order.Status)
	}

	req := &domain.ReturnRequest{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerID:    order.CustomerID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		VendorID:      order.VendorID,
		VendorName:    order.VendorName,
		Reason:        input.Reason,
		ReasonDetails: input.ReasonDetails,
		PreferredDate: input.PreferredDate,
		Status:        domain.ReturnRequestStatusPending,
		CustomerNotes: input.CustomerNotes,
	}

	for _, in := range input.Items {
		item := order.Item(in.ProductID)
		if item == nil {
			return nil, fmt.Errorf("%w: product %d is not on order %s", domain.ErrValidation, in.ProductID, order.OrderNumber)
		}
		if in.ReturnQuantity <= 0 || in.ReturnQuantity > item.Quantity {
			return nil, fmt.Errorf("%w: return quantity %d out of range for product %d", domain.ErrValidation, in.ReturnQuantity, in.ProductID)
		}
		cond := in.Condition
		if cond == "" {
			cond = domain.ConditionGood
		}
		req.Items = append(req.Items, domain.ReturnRequestItem{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			ReturnQuantity: in.ReturnQuantity,
			Condition:      cond,
		})
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create return request: %w", err)
	}

	if vendor, err := s.userRepo.GetByID(ctx, order.VendorID); err == nil {
		_ = s.emailSvc.SendReturnRequestNotification(ctx, vendor.Email, order.CustomerName, req.RequestNumber, order.OrderNumber)
	}

	return req, nil
}

func (s *returnService) GetReturnRequest(ctx context.Context, actor Actor, requestID int32) (*domain.ReturnRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && req.CustomerID != actor.UserID && req.VendorID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	return req, nil
}

func (s *returnService) ListMyReturnRequests(ctx context.Context, actor Actor) ([]domain.ReturnRequest, error) {
	return s.requestRepo.ListByCustomer(ctx, actor.UserID)
}

func (s *returnService) ListVendorReturnRequests(ctx context.Context, actor Actor) ([]domain.ReturnRequest, error) {
	return s.requestRepo.ListByVendor(ctx, actor.UserID)
}

// UpdateReturnRequestStatus drives the approval workflow. Completion folds
// the requested quantities back into the order additively and promotes the
// order to returned once every ordered unit is home; the whole fold is one
// transaction and a request can complete at most once.
func (s *returnService) UpdateReturnRequestStatus(ctx context.Context, actor Actor, requestID int32, input UpdateReturnRequestInput) (*domain.ReturnRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && req.VendorID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if !req.Status.CanTransition(input.Status) {
		return nil, fmt.Errorf("%w: cannot move return request from %s to %s", domain.ErrInvalidTransition, req.Status, input.Status)
	}

	if input.ScheduledDate != nil {
		req.ScheduledDate = input.ScheduledDate
	}
	if input.VendorNotes != "" {
		req.VendorNotes = input.VendorNotes
	}
	if input.RefundAmount != nil {
		req.RefundAmount = *input.RefundAmount
	}

	if input.Status != domain.ReturnRequestStatusCompleted {
		req.Status = input.Status
		if err := s.requestRepo.Update(ctx, req); err != nil {
			return nil, fmt.Errorf("failed to update return request: %w", err)
		}
		s.notifyCustomer(ctx, req)
		return req, nil
	}

	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order for return request: %w", err)
	}

	var deltas []domain.InventoryDelta
	for _, ri := range req.Items {
		item := order.Item(ri.ProductID)
		if item == nil {
			continue
		}
		item.ReturnedQuantity += ri.ReturnQuantity
		deltas = append(deltas, domain.InventoryDelta{ProductID: ri.ProductID, Delta: ri.ReturnQuantity})
	}

	now := time.Now()
	req.Status = domain.ReturnRequestStatusCompleted
	req.CompletedDate = &now
	if order.AllReturned() {
		order.Status = domain.OrderStatusReturned
		order.ActualReturnDate = &now
	}

	if err := s.requestRepo.Complete(ctx, req, order, deltas); err != nil {
		return nil, fmt.Errorf("failed to complete return request: %w", err)
	}

	s.notifyCustomer(ctx, req)
	return req, nil
}

func (s *returnService) notifyCustomer(ctx context.Context, req *domain.ReturnRequest) {
	if req.CustomerEmail == "" {
		return
	}
	if err := s.emailSvc.SendReturnRequestStatusNotification(ctx, req.CustomerEmail, req.RequestNumber, req.Status, req.VendorNotes); err != nil {
		logger.Warn("failed to send return request status email", "request", req.RequestNumber, "error", err)
	}
}
