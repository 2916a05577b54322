package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/briochebrew/restaurant-reservation/internal/model"
	"github.com/briochebrew/restaurant-reservation/internal/timeslot"
)

// BlockRepo persists administrator-imposed table blocks in the
// table_availability table.  Blocks may stack freely; the availability layer
// unions their effect, so no overlap check between blocks is performed here.
type BlockRepo struct {
	db *sql.DB
}

// NewBlockRepo returns a BlockRepo bound to the given database.
func NewBlockRepo(db *sql.DB) *BlockRepo { return &BlockRepo{db: db} }

// Create inserts a block and populates its generated ID.  Range validation
// happens at the handler boundary.
func (r *BlockRepo) Create(ctx context.Context, b *model.Block) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO table_availability
			(space_type, table_id, block_date, block_start_time, block_end_time, reason)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.Space, b.TableID, b.Date, sqlClock(b.StartTime), sqlClock(b.EndTime), b.Reason)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// Delete removes a block by ID.  Existence equals active, so removal is the
// unblock operation.
func (r *BlockRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM table_availability WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// ListByDate returns all blocks on a date, optionally restricted to a space,
// ordered by start time ascending.
func (r *BlockRepo) ListByDate(ctx context.Context, date, space string) ([]model.Block, error) {
	query := `SELECT id, space_type, table_id, block_date, block_start_time, block_end_time, reason, created_at
		FROM table_availability WHERE block_date = ?`
	args := []interface{}{date}
	if space != "" {
		query += ` AND space_type = ?`
		args = append(args, space)
	}
	query += ` ORDER BY block_start_time`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Block, 0)
	for rows.Next() {
		var b model.Block
		var blockDate time.Time
		var start, end string
		var reason sql.NullString
		if err := rows.Scan(&b.ID, &b.Space, &b.TableID, &blockDate, &start, &end, &reason, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Date = dateOf(blockDate)
		b.StartTime = clockOf(start)
		b.EndTime = clockOf(end)
		b.Reason = reason.String
		out = append(out, b)
	}
	return out, rows.Err()
}

// blockWindowsQuery selects the explicit start/end window of every block on
// a table and date.  Unlike reservations, block ends are stored, not derived.
const blockWindowsQuery = `SELECT block_start_time, block_end_time
	FROM table_availability
	WHERE space_type = ? AND table_id = ? AND block_date = ?`

func blockWindows(ctx context.Context, q rowQuerier, space, tableID string, date time.Time) ([]timeslot.Window, error) {
	rows, err := q.QueryContext(ctx, blockWindowsQuery, space, tableID, sqlDate(date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var windows []timeslot.Window
	for rows.Next() {
		var startStr, endStr string
		if err := rows.Scan(&startStr, &endStr); err != nil {
			return nil, err
		}
		start, err := timeslot.ParseClock(clockOf(startStr))
		if err != nil {
			return nil, err
		}
		end, err := timeslot.ParseClock(clockOf(endStr))
		if err != nil {
			return nil, err
		}
		windows = append(windows, timeslot.FromRange(date, start, end))
	}
	return windows, rows.Err()
}

// Windows returns the blocked intervals for a table on a date.
func (r *BlockRepo) Windows(ctx context.Context, space, tableID string, date time.Time) ([]timeslot.Window, error) {
	return blockWindows(ctx, r.db, space, tableID, date)
}

// WindowsTx is Windows inside an existing transaction, used by the booking
// commit re-check.
func (r *BlockRepo) WindowsTx(ctx context.Context, tx *sql.Tx, space, tableID string, date time.Time) ([]timeslot.Window, error) {
	return blockWindows(ctx, tx, space, tableID, date)
}
