package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Sequence scopes for the daily_sequences table.
const (
	SequenceReservations = "RES"
	SequenceOrders       = "ORD"
)

// SequenceRepo hands out gap-free, per-day sequence numbers for the
// human-readable identifiers (RES-YYYYMMDD-NNNN, ORD-YYYYMMDD-NNNN).
// A counter row per (scope, date) is bumped atomically with the
// LAST_INSERT_ID upsert idiom; this replaces the SELECT COUNT(*)+1 approach,
// which races under concurrent creation.
type SequenceRepo struct {
	db *sql.DB
}

// NewSequenceRepo returns a SequenceRepo bound to the given database.
func NewSequenceRepo(db *sql.DB) *SequenceRepo { return &SequenceRepo{db: db} }

// NextTx increments and returns the counter for (scope, date) within the
// given transaction.  The row lock taken by the upsert serializes concurrent
// callers until the transaction ends.
func (r *SequenceRepo) NextTx(ctx context.Context, tx *sql.Tx, scope string, date time.Time) (int, error) {
	return nextSequenceTx(ctx, tx, scope, date)
}

func nextSequenceTx(ctx context.Context, tx *sql.Tx, scope string, date time.Time) (int, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO daily_sequences (scope, seq_date, seq)
		 VALUES (?, ?, LAST_INSERT_ID(1))
		 ON DUPLICATE KEY UPDATE seq = LAST_INSERT_ID(seq + 1)`,
		scope, sqlDate(date))
	if err != nil {
		return 0, err
	}
	n, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// FormatID renders a sequence number as the public date-scoped identifier,
// e.g. RES-20240601-0001.
func FormatID(scope string, date time.Time, n int) string {
	return fmt.Sprintf("%s-%s-%04d", scope, date.Format("20060102"), n)
}
