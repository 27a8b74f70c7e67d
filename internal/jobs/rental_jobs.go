package jobs

import (
	"context"
	"time"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/logger"
	"rentbridge-backend/internal/repository"
)

// SendReturnReminders emails customers whose rentals are due back within a
// day or are already overdue. Orders without a scheduled return date are
// skipped.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()

		orders, err := jr.store.OrderRepository.List(ctx, repository.OrderFilter{
			Statuses:  []domain.OrderStatus{domain.OrderStatusPickedUp, domain.OrderStatusActive},
			SortBy:    "return_date",
			Ascending: true,
		})
		if err != nil {
			logger.Error("Failed to list open rentals", "error", err)
			return
		}

		now := time.Now()
		cutoff := now.Add(24 * time.Hour)
		sent := 0
		for _, order := range orders {
			if order.ReturnDate == nil || order.CustomerEmail == "" {
				continue
			}
			if order.ReturnDate.After(cutoff) {
				continue
			}
			overdue := order.ReturnDate.Before(now)
			if err := jr.emailSvc.SendReturnReminder(ctx, order.CustomerEmail, order.OrderNumber, *order.ReturnDate, overdue); err != nil {
				logger.Error("Failed to send return reminder",
					"order", order.OrderNumber,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent return reminders", "count", sent)
	})
}
