package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/briochebrew/restaurant-reservation/internal/model"
	"github.com/briochebrew/restaurant-reservation/internal/timeslot"
)

// ReservationRepo provides persistence for table reservations.  All timestamp
// fields are stored in UTC.  The availability and booking paths read occupied
// windows through ActiveWindows/ActiveWindowsTx so that both share exactly the
// same view of existing intervals.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// activeWindowsQuery selects the intervals of every reservation on a table
// and date that still counts toward conflict detection.  Terminal statuses
// (cancelled, completed, no_show) release their slot immediately.
const activeWindowsQuery = `SELECT reservation_time, duration_hours
	FROM reservations
	WHERE space_type = ? AND table_id = ? AND reservation_date = ?
	  AND status NOT IN ('cancelled', 'completed', 'no_show')`

type rowQuerier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func scanWindows(rows *sql.Rows, date time.Time) ([]timeslot.Window, error) {
	defer rows.Close()
	var windows []timeslot.Window
	for rows.Next() {
		var clockStr string
		var hours int
		if err := rows.Scan(&clockStr, &hours); err != nil {
			return nil, err
		}
		clock, err := timeslot.ParseClock(clockOf(clockStr))
		if err != nil {
			return nil, err
		}
		windows = append(windows, timeslot.FromDuration(date, clock, hours))
	}
	return windows, rows.Err()
}

func activeWindows(ctx context.Context, q rowQuerier, space, tableID string, date time.Time) ([]timeslot.Window, error) {
	rows, err := q.QueryContext(ctx, activeWindowsQuery, space, tableID, sqlDate(date))
	if err != nil {
		return nil, err
	}
	return scanWindows(rows, date)
}

// ActiveWindows returns the occupied intervals for a table on a date, derived
// from each reservation's start plus its duration in hours.
func (r *ReservationRepo) ActiveWindows(ctx context.Context, space, tableID string, date time.Time) ([]timeslot.Window, error) {
	return activeWindows(ctx, r.db, space, tableID, date)
}

// ActiveWindowsTx is ActiveWindows inside an existing transaction.  The
// booking commit path uses it so the re-check and the insert observe the same
// snapshot under the table-slot lock.
func (r *ReservationRepo) ActiveWindowsTx(ctx context.Context, tx *sql.Tx, space, tableID string, date time.Time) ([]timeslot.Window, error) {
	return activeWindows(ctx, tx, space, tableID, date)
}

// CreateTx inserts a reservation within the given transaction.  The caller is
// responsible for committing or rolling back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations (
		reservation_id, space_type, table_id, table_capacity,
		reservation_date, reservation_time, duration_hours,
		customer_name, customer_phone, customer_email,
		deposit_amount, payment_status, status, booking_source
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.ReservationID, res.Space, res.TableID, res.TableCapacity,
		res.Date, sqlClock(res.Time), res.DurationHours,
		res.CustomerName, res.CustomerPhone, res.CustomerEmail,
		res.DepositAmount, res.PaymentStatus, res.Status, res.BookingSource,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// UpdateStatusTx writes a new status within an existing transaction.  Used by
// the walk-in flow to move a freshly inserted reservation to seated.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, reservationID, status string) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE reservations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE reservation_id = ?`,
		status, reservationID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// UpdateStatus writes a new status for a reservation.  It returns ErrNotFound
// when the identifier is unknown.  Transition legality is enforced by the
// caller against the current status.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, reservationID, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE reservation_id = ?`,
		status, reservationID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// UpdatePayment records a payment status and optional method.
func (r *ReservationRepo) UpdatePayment(ctx context.Context, reservationID, paymentStatus string, paymentMethod *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET payment_status = ?, payment_method = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE reservation_id = ?`,
		paymentStatus, paymentMethod, reservationID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

const reservationColumns = `id, reservation_id, space_type, table_id, table_capacity,
	reservation_date, reservation_time, duration_hours,
	customer_name, customer_phone, customer_email,
	deposit_amount, payment_status, payment_method, status, booking_source,
	created_at, updated_at`

func scanReservation(scan func(dest ...interface{}) error) (*model.Reservation, error) {
	var res model.Reservation
	var date time.Time
	var clock string
	var method sql.NullString
	err := scan(
		&res.ID, &res.ReservationID, &res.Space, &res.TableID, &res.TableCapacity,
		&date, &clock, &res.DurationHours,
		&res.CustomerName, &res.CustomerPhone, &res.CustomerEmail,
		&res.DepositAmount, &res.PaymentStatus, &method, &res.Status, &res.BookingSource,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	res.Date = dateOf(date)
	res.Time = clockOf(clock)
	if method.Valid {
		m := method.String
		res.PaymentMethod = &m
	}
	return &res, nil
}

// GetByID loads a reservation by its public identifier.
func (r *ReservationRepo) GetByID(ctx context.Context, reservationID string) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE reservation_id = ?`, reservationID)
	res, err := scanReservation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return res, err
}

// ReservationFilter narrows List results.  Zero values mean no filtering.
// Date accepts a concrete YYYY-MM-DD value or one of the keywords
// "today", "upcoming", "past".
type ReservationFilter struct {
	Status string
	Date   string
	Space  string
}

// List returns reservations matching the filter.  Rows are ordered the way
// the admin dashboard consumes them: actionable statuses first, then most
// recent date and time.
func (r *ReservationRepo) List(ctx context.Context, f ReservationFilter) ([]model.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1`
	var args []interface{}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	switch f.Date {
	case "", "all":
	case "today":
		query += ` AND reservation_date = CURDATE()`
	case "upcoming":
		query += ` AND reservation_date >= CURDATE()`
	case "past":
		query += ` AND reservation_date < CURDATE()`
	default:
		query += ` AND reservation_date = ?`
		args = append(args, f.Date)
	}
	if f.Space != "" {
		query += ` AND space_type = ?`
		args = append(args, f.Space)
	}
	query += ` ORDER BY
		CASE
			WHEN status = 'confirmed' THEN 1
			WHEN status = 'pending' THEN 2
			WHEN status = 'seated' THEN 3
			ELSE 4
		END,
		reservation_date DESC,
		reservation_time DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

// Delete removes a reservation row.  Normal flow never deletes; this is the
// administrative path for terminal reservations, and the handler verifies the
// status before calling.
func (r *ReservationRepo) Delete(ctx context.Context, reservationID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE reservation_id = ?`, reservationID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
