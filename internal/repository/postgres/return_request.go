package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/repository"

	"github.com/lib/pq"
)

type returnRequestRepository struct {
	db *sql.DB
}

func NewReturnRequestRepository(db *sql.DB) repository.ReturnRequestRepository {
	return &returnRequestRepository{db: db}
}

const returnRequestColumns = `id, request_number, order_id, order_number, customer_id, customer_name, customer_email, COALESCE(vendor_id, 0), COALESCE(vendor_name, ''), reason, COALESCE(reason_details, ''), preferred_date, status, scheduled_date, completed_date, COALESCE(vendor_notes, ''), COALESCE(customer_notes, ''), refund_amount, created_on, updated_on`

func scanReturnRequest(row interface{ Scan(...any) error }) (*domain.ReturnRequest, error) {
	rr := &domain.ReturnRequest{}
	err := row.Scan(&rr.ID, &rr.RequestNumber, &rr.OrderID, &rr.OrderNumber, &rr.CustomerID, &rr.CustomerName, &rr.CustomerEmail, &rr.VendorID, &rr.VendorName, &rr.Reason, &rr.ReasonDetails, &rr.PreferredDate, &rr.Status, &rr.ScheduledDate, &rr.CompletedDate, &rr.VendorNotes, &rr.CustomerNotes, &rr.RefundAmount, &rr.CreatedOn, &rr.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: return request", domain.ErrNotFound)
		}
		return nil, err
	}
	return rr, nil
}

// Create pulls the next request number from a dedicated sequence inside the
// insert, so numbering stays dense and collision-free under concurrent
// creation.
func (r *returnRequestRepository) Create(ctx context.Context, rr *domain.ReturnRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO return_requests (request_number, order_id, order_number, customer_id, customer_name, customer_email, vendor_id, vendor_name, reason, reason_details, preferred_date, status, customer_notes, refund_amount, created_on, updated_on)
	          VALUES ('RET-' || lpad(nextval('return_request_numbers')::text, 5, '0'), $1, $2, $3, $4, $5, NULLIF($6, 0), $7, $8, $9, $10, $11, $12, 0, $13, $13)
	          RETURNING id, request_number`
	err = tx.QueryRowContext(ctx, query, rr.OrderID, rr.OrderNumber, rr.CustomerID, rr.CustomerName, rr.CustomerEmail, rr.VendorID, rr.VendorName, rr.Reason, rr.ReasonDetails, rr.PreferredDate, rr.Status, rr.CustomerNotes, time.Now()).Scan(&rr.ID, &rr.RequestNumber)
	if err != nil {
		return err
	}

	itemQuery := `INSERT INTO return_request_items (request_id, product_id, product_name, quantity, return_quantity, condition)
	              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	for i := range rr.Items {
		it := &rr.Items[i]
		if err := tx.QueryRowContext(ctx, itemQuery, rr.ID, it.ProductID, it.ProductName, it.Quantity, it.ReturnQuantity, it.Condition).Scan(&it.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *returnRequestRepository) GetByID(ctx context.Context, id int32) (*domain.ReturnRequest, error) {
	query := `SELECT ` + returnRequestColumns + ` FROM return_requests WHERE id = $1`
	rr, err := scanReturnRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx, []int32{id})
	if err != nil {
		return nil, err
	}
	rr.Items = items[id]
	return rr, nil
}

func (r *returnRequestRepository) loadItems(ctx context.Context, requestIDs []int32) (map[int32][]domain.ReturnRequestItem, error) {
	query := `SELECT id, request_id, product_id, product_name, quantity, return_quantity, condition
	          FROM return_request_items WHERE request_id = ANY($1) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(requestIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int32][]domain.ReturnRequestItem)
	for rows.Next() {
		var it domain.ReturnRequestItem
		var requestID int32
		if err := rows.Scan(&it.ID, &requestID, &it.ProductID, &it.ProductName, &it.Quantity, &it.ReturnQuantity, &it.Condition); err != nil {
			return nil, err
		}
		items[requestID] = append(items[requestID], it)
	}
	return items, rows.Err()
}

func (r *returnRequestRepository) Update(ctx context.Context, rr *domain.ReturnRequest) error {
	query := `UPDATE return_requests SET status=$1, scheduled_date=$2, completed_date=$3, vendor_notes=$4, refund_amount=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, rr.Status, rr.ScheduledDate, rr.CompletedDate, rr.VendorNotes, rr.RefundAmount, time.Now(), rr.ID)
	return err
}

// Complete flips the request to completed and applies the order-side and
// inventory mutations atomically. The status guard makes the completion
// idempotent: whichever writer loses the race sees zero rows and gets
// ErrInvalidTransition instead of double-applying inventory.
func (r *returnRequestRepository) Complete(ctx context.Context, rr *domain.ReturnRequest, order *domain.Order, deltas []domain.InventoryDelta) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE return_requests SET status=$1, scheduled_date=$2, completed_date=$3, vendor_notes=$4, refund_amount=$5, updated_on=$6
	          WHERE id=$7 AND status IN ('pending', 'approved', 'scheduled')`
	res, err := tx.ExecContext(ctx, query, domain.ReturnRequestStatusCompleted, rr.ScheduledDate, rr.CompletedDate, rr.VendorNotes, rr.RefundAmount, time.Now(), rr.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: return request %s already completed", domain.ErrInvalidTransition, rr.RequestNumber)
	}

	if err := saveOrderTx(ctx, tx, order); err != nil {
		return err
	}
	if err := incrementAvailabilityTx(ctx, tx, deltas); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *returnRequestRepository) ListByCustomer(ctx context.Context, customerID int32) ([]domain.ReturnRequest, error) {
	query := `SELECT ` + returnRequestColumns + ` FROM return_requests WHERE customer_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, customerID)
}

func (r *returnRequestRepository) ListByVendor(ctx context.Context, vendorID int32) ([]domain.ReturnRequest, error) {
	query := `SELECT ` + returnRequestColumns + ` FROM return_requests WHERE vendor_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, vendorID)
}

func (r *returnRequestRepository) list(ctx context.Context, query string, arg interface{}) ([]domain.ReturnRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.ReturnRequest
	var ids []int32
	for rows.Next() {
		rr, err := scanReturnRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *rr)
		ids = append(ids, rr.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return requests, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range requests {
		requests[i].Items = items[requests[i].ID]
	}
	return requests, nil
}
