package utils

import (
	"math"
	"time"

	"rentbridge-backend/internal/domain"
)

// LateFeeResult is the on-demand overdue assessment for an order. It is a
// pure function of the order's line items and scheduled return date, so it
// is recomputed on every call rather than stored.
type LateFeeResult struct {
	DaysLate  int32   `json:"days_late"`
	LateFee   float64 `json:"late_fee"`
	IsOverdue bool    `json:"is_overdue"`
}

// CalculateLateFee computes the late fee as ratePercent of the order's
// combined daily rate per day late. Days late are counted in started days
// past the scheduled return date.
func CalculateLateFee(items []domain.OrderItem, returnDate, now time.Time, ratePercent float64) LateFeeResult {
	if !now.After(returnDate) {
		return LateFeeResult{}
	}

	daysLate := int32(math.Ceil(now.Sub(returnDate).Hours() / 24))
	var dailyTotal float64
	for _, it := range items {
		dailyTotal += it.DailyRate * float64(it.Quantity)
	}
	fee := math.Round(dailyTotal * ratePercent / 100 * float64(daysLate))

	return LateFeeResult{
		DaysLate:  daysLate,
		LateFee:   fee,
		IsOverdue: daysLate > 0,
	}
}

// QuotationTotals is the derived pricing block for a quotation or order.
type QuotationTotals struct {
	Subtotal      float64
	TaxAmount     float64
	DepositAmount float64
	TotalAmount   float64
}

// ComputeQuotationTotals sums item subtotals, applies the configured tax
// rate, and derives the deposit as depositDays worth of each item's daily
// rate.
func ComputeQuotationTotals(items []domain.QuotationItem, taxRatePercent float64, depositDays int) QuotationTotals {
	var t QuotationTotals
	for _, it := range items {
		t.Subtotal += it.Subtotal
		t.DepositAmount += it.DailyRate * float64(depositDays)
	}
	t.TaxAmount = t.Subtotal * taxRatePercent / 100
	t.TotalAmount = t.Subtotal + t.TaxAmount
	return t
}
