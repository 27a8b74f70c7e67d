package jobs

import (
	"context"

	"rentbridge-backend/internal/logger"
)

// MarkOverdueInvoices flips pending invoices past their due date to overdue.
// The guard on status keeps paid and cancelled invoices untouched no matter
// how often the job runs.
func (jr *JobRunner) MarkOverdueInvoices() {
	jr.runWithRecovery("MarkOverdueInvoices", func() {
		ctx := context.Background()

		result, err := jr.db.ExecContext(ctx,
			`UPDATE invoices
			 SET status = 'overdue', updated_on = NOW()
			 WHERE status = 'pending' AND due_date < NOW()`)
		if err != nil {
			logger.Error("Failed to mark overdue invoices", "error", err)
			return
		}

		rows, _ := result.RowsAffected()
		logger.Info("Marked overdue invoices", "count", rows)
	})
}
