package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/repository"

	"github.com/lib/pq"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, order_number, quotation_id, customer_id, customer_name, customer_email, COALESCE(vendor_id, 0), COALESCE(vendor_name, ''), subtotal, tax_amount, deposit_amount, total_amount, paid_amount, status, pickup_date, return_date, actual_return_date, late_fee, damage_charges, COALESCE(notes, ''), created_on, updated_on`

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	o := &domain.Order{}
	err := row.Scan(&o.ID, &o.OrderNumber, &o.QuotationID, &o.CustomerID, &o.CustomerName, &o.CustomerEmail, &o.VendorID, &o.VendorName, &o.Subtotal, &o.TaxAmount, &o.DepositAmount, &o.TotalAmount, &o.PaidAmount, &o.Status, &o.PickupDate, &o.ReturnDate, &o.ActualReturnDate, &o.LateFee, &o.DamageCharges, &o.Notes, &o.CreatedOn, &o.UpdatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: order", domain.ErrNotFound)
		}
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO orders (order_number, quotation_id, customer_id, customer_name, customer_email, vendor_id, vendor_name, subtotal, tax_amount, deposit_amount, total_amount, paid_amount, status, pickup_date, return_date, late_fee, damage_charges, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, NULLIF($6, 0), $7, $8, $9, $10, $11, $12, $13, $14, $15, 0, 0, $16, $17, $17) RETURNING id`
	now := time.Now()
	err = tx.QueryRowContext(ctx, query, o.OrderNumber, o.QuotationID, o.CustomerID, o.CustomerName, o.CustomerEmail, o.VendorID, o.VendorName, o.Subtotal, o.TaxAmount, o.DepositAmount, o.TotalAmount, o.PaidAmount, o.Status, o.PickupDate, o.ReturnDate, o.Notes, now).Scan(&o.ID)
	if err != nil {
		return err
	}

	itemQuery := `INSERT INTO order_items (order_id, product_id, product_name, quantity, rental_days, daily_rate, subtotal, picked_up_quantity, returned_quantity, notes)
	              VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0, $8) RETURNING id`
	for i := range o.Items {
		it := &o.Items[i]
		if err := tx.QueryRowContext(ctx, itemQuery, o.ID, it.ProductID, it.ProductName, it.Quantity, it.RentalDays, it.DailyRate, it.Subtotal, it.Notes).Scan(&it.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx, []int32{id})
	if err != nil {
		return nil, err
	}
	o.Items = items[id]
	return o, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderIDs []int32) (map[int32][]domain.OrderItem, error) {
	query := `SELECT id, order_id, product_id, product_name, quantity, rental_days, daily_rate, subtotal, picked_up_quantity, returned_quantity, COALESCE(notes, '')
	          FROM order_items WHERE order_id = ANY($1) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int32][]domain.OrderItem)
	for rows.Next() {
		var it domain.OrderItem
		var orderID int32
		if err := rows.Scan(&it.ID, &orderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.RentalDays, &it.DailyRate, &it.Subtotal, &it.PickedUpQuantity, &it.ReturnedQuantity, &it.Notes); err != nil {
			return nil, err
		}
		items[orderID] = append(items[orderID], it)
	}
	return items, rows.Err()
}

func (r *orderRepository) Update(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := saveOrderTx(ctx, tx, o); err != nil {
		return err
	}
	return tx.Commit()
}

// ApplyReturn commits the order mutation and every availability increment
// it implies as one unit. A failure on any item rolls back all of them.
func (r *orderRepository) ApplyReturn(ctx context.Context, o *domain.Order, deltas []domain.InventoryDelta) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := saveOrderTx(ctx, tx, o); err != nil {
		return err
	}
	if err := incrementAvailabilityTx(ctx, tx, deltas); err != nil {
		return err
	}
	return tx.Commit()
}

func saveOrderTx(ctx context.Context, tx *sql.Tx, o *domain.Order) error {
	query := `UPDATE orders SET status=$1, pickup_date=$2, return_date=$3, actual_return_date=$4, late_fee=$5, damage_charges=$6, notes=$7, paid_amount=$8, updated_on=$9 WHERE id=$10`
	if _, err := tx.ExecContext(ctx, query, o.Status, o.PickupDate, o.ReturnDate, o.ActualReturnDate, o.LateFee, o.DamageCharges, o.Notes, o.PaidAmount, time.Now(), o.ID); err != nil {
		return err
	}

	itemQuery := `UPDATE order_items SET picked_up_quantity=$1, returned_quantity=$2, notes=$3 WHERE id=$4`
	for _, it := range o.Items {
		if _, err := tx.ExecContext(ctx, itemQuery, it.PickedUpQuantity, it.ReturnedQuantity, it.Notes, it.ID); err != nil {
			return err
		}
	}
	return nil
}

func incrementAvailabilityTx(ctx context.Context, tx *sql.Tx, deltas []domain.InventoryDelta) error {
	query := `UPDATE products SET available = available + $1, updated_on = $2 WHERE id = $3`
	for _, d := range deltas {
		if d.Delta == 0 {
			continue
		}
		if _, err := tx.ExecContext(ctx, query, d.Delta, time.Now(), d.ProductID); err != nil {
			return err
		}
	}
	return nil
}

var orderSortColumns = map[string]string{
	"created_on":  "created_on",
	"pickup_date": "pickup_date",
	"return_date": "return_date",
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var conds []string
	var args []interface{}

	if filter.CustomerID != 0 {
		args = append(args, filter.CustomerID)
		conds = append(conds, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if filter.VendorID != 0 {
		args = append(args, filter.VendorID)
		conds = append(conds, fmt.Sprintf("vendor_id = $%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, pq.Array(statuses))
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	sortCol, ok := orderSortColumns[filter.SortBy]
	if !ok {
		sortCol = "created_on"
	}
	dir := "DESC"
	if filter.Ascending {
		dir = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortCol, dir)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []int32
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}
