package service

import (
	"context"
	"fmt"
	"time"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/repository"
)

type earningsService struct {
	invoiceRepo repository.InvoiceRepository
}

func NewEarningsService(invoiceRepo repository.InvoiceRepository) EarningsService {
	return &earningsService{invoiceRepo: invoiceRepo}
}

// GetEarnings sums paid invoices over the requested range and buckets them
// for charting: weekly buckets for one month, monthly otherwise. Vendors see
// their own revenue; admins see the whole platform.
func (s *earningsService) GetEarnings(ctx context.Context, actor Actor, rng string) (*EarningsReport, error) {
	if !actor.IsVendor() && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	var since time.Time
	switch rng {
	case "1m":
		since = now.AddDate(0, -1, 0)
	case "6m":
		since = now.AddDate(0, -6, 0)
	case "1y":
		since = now.AddDate(-1, 0, 0)
	default:
		return nil, fmt.Errorf("%w: range must be 1m, 6m or 1y", domain.ErrValidation)
	}

	var vendorID int32
	if actor.IsVendor() {
		vendorID = actor.UserID
	}

	invoices, err := s.invoiceRepo.ListPaidSince(ctx, vendorID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list paid invoices: %w", err)
	}

	report := &EarningsReport{}
	buckets := make(map[string]float64)
	for _, inv := range invoices {
		report.TotalRevenue += inv.TotalAmount
		buckets[bucketKey(inv.UpdatedOn, rng)] += inv.TotalAmount
	}

	for _, key := range bucketKeys(since, now, rng) {
		report.Chart = append(report.Chart, ChartPoint{Name: key, Revenue: buckets[key]})
	}
	return report, nil
}

func bucketKey(t time.Time, rng string) string {
	if rng == "1m" {
		year, week := t.ISOWeek()
		return fmt.Sprintf("W%02d %d", week, year)
	}
	return t.Format("Jan 2006")
}

// bucketKeys walks the range in order so the chart has a point for every
// period, including empty ones.
func bucketKeys(since, until time.Time, rng string) []string {
	var keys []string
	seen := make(map[string]bool)
	step := func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
	if rng == "1m" {
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }
	}
	for t := since; !t.After(until); t = step(t) {
		key := bucketKey(t, rng)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	key := bucketKey(until, rng)
	if !seen[key] {
		keys = append(keys, key)
	}
	return keys
}
