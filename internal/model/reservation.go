package model

import (
	"errors"
	"time"

	"github.com/briochebrew/restaurant-reservation/internal/timeslot"
)

// Reservation statuses.  The terminal set (completed, cancelled, no_show)
// no longer counts toward conflict detection.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusSeated    = "seated"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// Booking sources.
const (
	SourceOnline = "online"
	SourceWalkIn = "walk-in"
)

// ErrInvalidTransition is returned when a status update would jump outside
// the reservation state machine (e.g. completed back to pending).
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrInvalidStatus is returned when a status value is not in the valid set.
var ErrInvalidStatus = errors.New("invalid status")

// transitions is the reservation state machine:
// pending -> confirmed -> seated -> completed, with cancellation branches
// from pending and confirmed, and no_show from confirmed.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusSeated, StatusCancelled, StatusNoShow},
	StatusSeated:    {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

// ValidStatus reports whether s is one of the known reservation statuses.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// TerminalStatus reports whether a status excludes the reservation from
// conflict detection.
func TerminalStatus(s string) bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// CanTransition reports whether moving from one status to another is a legal
// edge of the state machine.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Reservation mirrors the reservations table.  The human-readable
// ReservationID (RES-YYYYMMDD-NNNN) is the public identifier; ID is the
// internal auto-increment key.
type Reservation struct {
	ID            uint64    `json:"-"`
	ReservationID string    `json:"id"`
	Space         string    `json:"spaceType"`
	TableID       string    `json:"tableId"`
	TableCapacity int       `json:"tableCapacity"`
	Date          string    `json:"date"` // YYYY-MM-DD
	Time          string    `json:"time"` // HH:MM
	DurationHours int       `json:"duration"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	CustomerEmail string    `json:"customerEmail"`
	DepositAmount float64   `json:"depositAmount"`
	PaymentStatus string    `json:"paymentStatus"`
	PaymentMethod *string   `json:"paymentMethod"`
	Status        string    `json:"status"`
	BookingSource string    `json:"bookingSource"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Window computes the half-open interval occupied by the reservation.
// The end is duration-derived, unlike blocks whose end is stored explicitly.
func (r *Reservation) Window() (timeslot.Window, error) {
	date, err := timeslot.ParseDate(r.Date)
	if err != nil {
		return timeslot.Window{}, err
	}
	clock, err := timeslot.ParseClock(r.Time)
	if err != nil {
		return timeslot.Window{}, err
	}
	return timeslot.FromDuration(date, clock, r.DurationHours), nil
}
