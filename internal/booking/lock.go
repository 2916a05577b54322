package booking

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// mysqlSlotLocker runs fn inside a transaction guarded by a MySQL named lock.
// GET_LOCK and RELEASE_LOCK must run on the same connection, so the locker
// pins one from the pool for the whole sequence.
type mysqlSlotLocker struct {
	db *sql.DB
}

func (l *mysqlSlotLocker) withSlotLock(ctx context.Context, name string, fn func(tx *sql.Tx) error) error {
	conn, err := l.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	var acquired sql.NullInt64
	row := conn.QueryRowContext(ctx, "SELECT GET_LOCK(?, ?)", name, lockTimeoutSeconds)
	if err := row.Scan(&acquired); err != nil {
		return fmt.Errorf("acquire slot lock: %w", err)
	}
	if !acquired.Valid || acquired.Int64 != 1 {
		return fmt.Errorf("slot lock %s: timed out", name)
	}
	// Release even when the request context is already cancelled, otherwise
	// the lock lingers until the connection is closed.
	defer func() {
		releaseCtx := context.WithoutCancel(ctx)
		if _, err := conn.ExecContext(releaseCtx, "SELECT RELEASE_LOCK(?)", name); err != nil {
			log.Printf("booking: release slot lock %s failed: %v", name, err)
		}
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}
