package service

import (
	"context"
	"fmt"
	"time"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/repository"
)

type pickupService struct {
	orderRepo repository.OrderRepository
}

func NewPickupService(orderRepo repository.OrderRepository) PickupService {
	return &pickupService{orderRepo: orderRepo}
}

// vendorOwns gates vendor mutations to the vendor snapshotted on the order.
// Admins pass unconditionally.
func vendorOwns(actor Actor, order *domain.Order) error {
	if actor.IsAdmin() {
		return nil
	}
	if !actor.IsVendor() || order.VendorID != actor.UserID {
		return domain.ErrForbidden
	}
	return nil
}

func (s *pickupService) ListPickups(ctx context.Context, actor Actor) ([]domain.Order, error) {
	filter := repository.OrderFilter{
		Statuses:  []domain.OrderStatus{domain.OrderStatusConfirmed, domain.OrderStatusPickedUp},
		SortBy:    "pickup_date",
		Ascending: true,
	}
	if !actor.IsAdmin() {
		filter.VendorID = actor.UserID
	}
	return s.orderRepo.List(ctx, filter)
}

// SchedulePickup records the agreed pickup slot on the order. It touches
// metadata only; the status does not move until the pickup is processed.
func (s *pickupService) SchedulePickup(ctx context.Context, actor Actor, orderID int32, pickupDate time.Time, pickupTime string) (*domain.Order, error) {
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

	order.PickupDate = &pickupDate
	if pickupTime != "" {
		note := fmt.Sprintf("Scheduled pickup time: %s.", pickupTime)
		if order.Notes != "" {
			note = order.Notes + " " + note
		}
		order.Notes = note
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to schedule pickup: %w", err)
	}
	return order, nil
}

// ProcessPickup hands the equipment over. With no explicit items every line
// is picked up in full; explicit items set absolute picked-up quantities,
// capped at the ordered quantity.
func (s *pickupService) ProcessPickup(ctx context.Context, actor Actor, orderID int32, items []PickupItemInput) (*domain.Order, error) {
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

	if len(items) == 0 {
		for i := range order.Items {
			order.Items[i].PickedUpQuantity = order.Items[i].Quantity
		}
	} else {
		for _, in := range items {
			item := order.Item(in.ProductID)
			if item == nil {
				continue
			}
			if in.PickedUpQuantity < 0 || in.PickedUpQuantity > item.Quantity {
				return nil, fmt.Errorf("%w: picked-up quantity %d out of range for product %d", domain.ErrValidation, in.PickedUpQuantity, in.ProductID)
			}
			item.PickedUpQuantity = in.PickedUpQuantity
		}
	}

	now := time.Now()
	order.Status = domain.OrderStatusPickedUp
	order.PickupDate = &now
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to process pickup: %w", err)
	}
	return order, nil
}

// CancelPickup walks a confirmed order back to pending; anything else still
// open is cancelled outright.
func (s *pickupService) CancelPickup(ctx context.Context, actor Actor, orderID int32) (*domain.Order, error) {
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

	if order.Status == domain.OrderStatusConfirmed {
		order.Status = domain.OrderStatusPending
	} else {
		order.Status = domain.OrderStatusCancelled
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to cancel pickup: %w", err)
	}
	return order, nil
}
