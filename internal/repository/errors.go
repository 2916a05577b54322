// Package repository implements MySQL persistence for the reservation engine
// and the surrounding CRUD surfaces.  Sentinel errors defined here let
// handlers translate failures into HTTP statuses without inspecting SQL
// details.
package repository

import (
	"errors"
	"time"
)

// ErrNotFound is returned when an update or delete targets a row that does
// not exist.  Handlers translate it into a 404 response.
var ErrNotFound = errors.New("not found")

// sqlDate formats a time.Time for a MySQL DATE column.
func sqlDate(t time.Time) string { return t.Format("2006-01-02") }

// sqlClock normalizes an HH:MM value for a MySQL TIME column.
func sqlClock(s string) string {
	if len(s) == 5 {
		return s + ":00"
	}
	return s
}

// clockOf trims a MySQL TIME value (HH:MM:SS) back to the HH:MM form used
// throughout the API.
func clockOf(s string) string {
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}

// dateOf renders a scanned DATE column as YYYY-MM-DD.
func dateOf(t time.Time) string { return t.Format("2006-01-02") }
