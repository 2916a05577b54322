package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/briochebrew/restaurant-reservation/internal/model"
)

// OrderRepo persists food orders.  Orders are plain CRUD with a generated
// ORD-YYYYMMDD-NNNN identifier drawn from the shared daily sequence table.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns an OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create inserts an order, generating its identifier inside a transaction so
// concurrent creations cannot collide on the sequence number.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	n, err := nextSequenceTx(ctx, tx, SequenceOrders, now)
	if err != nil {
		return err
	}
	o.OrderID = FormatID(SequenceOrders, now, n)

	const q = `INSERT INTO orders (
		order_id, order_type, status, table_number, customer_name,
		customer_phone, delivery_address, delivery_notes, items,
		subtotal, tax, delivery_fee, total, payment_status, requested_waiter
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		o.OrderID, o.OrderType, o.Status, o.TableNumber, o.CustomerName,
		o.CustomerPhone, o.DeliveryAddress, o.DeliveryNotes, o.Items,
		o.Subtotal, o.Tax, o.DeliveryFee, o.Total, o.PaymentStatus, o.RequestedWaiter,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

const orderColumns = `id, order_id, order_type, status, table_number, customer_name,
	customer_phone, delivery_address, delivery_notes, items,
	subtotal, tax, delivery_fee, total, payment_status, payment_method,
	requested_waiter, created_at, updated_at`

func scanOrder(scan func(dest ...interface{}) error) (*model.Order, error) {
	var o model.Order
	var tableNumber sql.NullInt64
	var name, phone, addr, notes, method sql.NullString
	err := scan(
		&o.ID, &o.OrderID, &o.OrderType, &o.Status, &tableNumber, &name,
		&phone, &addr, &notes, &o.Items,
		&o.Subtotal, &o.Tax, &o.DeliveryFee, &o.Total, &o.PaymentStatus, &method,
		&o.RequestedWaiter, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tableNumber.Valid {
		n := int(tableNumber.Int64)
		o.TableNumber = &n
	}
	for _, pair := range []struct {
		src sql.NullString
		dst **string
	}{{name, &o.CustomerName}, {phone, &o.CustomerPhone}, {addr, &o.DeliveryAddress}, {notes, &o.DeliveryNotes}, {method, &o.PaymentMethod}} {
		if pair.src.Valid {
			v := pair.src.String
			*pair.dst = &v
		}
	}
	return &o, nil
}

// GetByID loads an order by its public identifier.
func (r *OrderRepo) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, orderID)
	o, err := scanOrder(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return o, err
}

// List returns orders, optionally filtered by status and type, newest first.
func (r *OrderRepo) List(ctx context.Context, status, orderType string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	var args []interface{}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	if orderType != "" {
		query += ` AND order_type = ?`
		args = append(args, orderType)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// UpdateStatus writes a new order status and, when provided, payment fields.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID, status string, paymentStatus, paymentMethod *string) error {
	query := `UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP`
	args := []interface{}{status}
	if paymentStatus != nil {
		query += `, payment_status = ?`
		args = append(args, *paymentStatus)
	}
	if paymentMethod != nil {
		query += `, payment_method = ?`
		args = append(args, *paymentMethod)
	}
	query += ` WHERE order_id = ?`
	args = append(args, orderID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// Delete removes an order row.
func (r *OrderRepo) Delete(ctx context.Context, orderID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE order_id = ?`, orderID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
