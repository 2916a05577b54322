// Package booking implements the reservation commit protocol.  A commit
// re-validates availability at write time inside a transaction guarded by a
// MySQL named lock scoped to (space, table, date), closing the race window
// between a client's earlier availability query and its booking submission.
// Two concurrent commits for the same slot therefore serialize: the first
// inserts, the second re-checks against the committed row and is rejected.
package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/briochebrew/restaurant-reservation/internal/availability"
	"github.com/briochebrew/restaurant-reservation/internal/catalog"
	"github.com/briochebrew/restaurant-reservation/internal/model"
	"github.com/briochebrew/restaurant-reservation/internal/queue"
	"github.com/briochebrew/restaurant-reservation/internal/repository"
	"github.com/briochebrew/restaurant-reservation/internal/timeslot"
)

// DefaultDeposit is applied when a booking request does not carry a deposit
// amount.
const DefaultDeposit = 5000

// lockTimeoutSeconds bounds how long a commit waits for the table-slot lock
// before giving up with a storage error.
const lockTimeoutSeconds = 5

// ErrNoLongerAvailable is returned when the commit-time re-check finds the
// slot taken.  This is a legitimate race outcome, not a bug; the caller may
// re-query availability and pick another slot.
var ErrNoLongerAvailable = errors.New("table no longer available")

// ErrMissingField is wrapped with the field name when a required request
// field is absent.
var ErrMissingField = errors.New("missing required field")

// ErrInvalidSource is returned for booking sources outside {online, walk-in}.
var ErrInvalidSource = errors.New("invalid booking source")

// EventPublisher pushes a confirmation event after a successful commit.
// Publishing is best-effort; failures are logged and never fail the booking.
type EventPublisher interface {
	PublishReservationConfirmed(ctx context.Context, ev queue.ReservationConfirmedEvent) error
}

// ReservationStore is the slice of the reservation repository the commit
// protocol needs.  Implemented by repository.ReservationRepo.
type ReservationStore interface {
	ActiveWindowsTx(ctx context.Context, tx *sql.Tx, space, tableID string, date time.Time) ([]timeslot.Window, error)
	CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error
	UpdateStatusTx(ctx context.Context, tx *sql.Tx, reservationID, status string) error
	GetByID(ctx context.Context, reservationID string) (*model.Reservation, error)
	UpdateStatus(ctx context.Context, reservationID, status string) error
}

// BlockStore yields blocked intervals inside the commit transaction.
// Implemented by repository.BlockRepo.
type BlockStore interface {
	WindowsTx(ctx context.Context, tx *sql.Tx, space, tableID string, date time.Time) ([]timeslot.Window, error)
}

// SequenceStore hands out the per-day identifier counter.  Implemented by
// repository.SequenceRepo.
type SequenceStore interface {
	NextTx(ctx context.Context, tx *sql.Tx, scope string, date time.Time) (int, error)
}

// slotLocker serializes commit attempts for one table slot.  fn runs inside a
// transaction that is committed when fn returns nil and rolled back otherwise;
// the lock is held until after the commit outcome is decided.
type slotLocker interface {
	withSlotLock(ctx context.Context, name string, fn func(tx *sql.Tx) error) error
}

// CommitRequest carries everything needed to book a table.
type CommitRequest struct {
	Space         string
	TableID       string
	TableCapacity int
	Date          string // YYYY-MM-DD
	Time          string // HH:MM
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	DepositAmount float64
	BookingSource string
}

// Service executes the commit protocol and reservation status transitions.
type Service struct {
	locker       slotLocker
	catalog      *catalog.Catalog
	reservations ReservationStore
	blocks       BlockStore
	sequences    SequenceStore
	publisher    EventPublisher
}

// New builds a booking Service over the production MySQL stores.  publisher
// may be nil, in which case no events are emitted.
func New(db *sql.DB, cat *catalog.Catalog, reservations *repository.ReservationRepo,
	blocks *repository.BlockRepo, sequences *repository.SequenceRepo, publisher EventPublisher) *Service {
	return &Service{
		locker:       &mysqlSlotLocker{db: db},
		catalog:      cat,
		reservations: reservations,
		blocks:       blocks,
		sequences:    sequences,
		publisher:    publisher,
	}
}

// validate normalizes the request and reports the first input problem.
// All validation runs before any database work.
func (s *Service) validate(req *CommitRequest) (time.Time, time.Duration, error) {
	for _, f := range []struct{ name, value string }{
		{"space", req.Space},
		{"tableId", req.TableID},
		{"date", req.Date},
		{"time", req.Time},
		{"customerName", req.CustomerName},
		{"customerPhone", req.CustomerPhone},
		{"customerEmail", req.CustomerEmail},
	} {
		if f.value == "" {
			return time.Time{}, 0, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	date, err := timeslot.ParseDate(req.Date)
	if err != nil {
		return time.Time{}, 0, err
	}
	clock, err := timeslot.ParseClock(req.Time)
	if err != nil {
		return time.Time{}, 0, err
	}
	table, err := s.catalog.Table(req.Space, req.TableID)
	if err != nil {
		return time.Time{}, 0, err
	}
	// Capacity is captured at booking time; fall back to the catalog value
	// when the client omits it.
	if req.TableCapacity <= 0 {
		req.TableCapacity = table.Capacity
	}
	if req.DepositAmount <= 0 {
		req.DepositAmount = DefaultDeposit
	}
	switch req.BookingSource {
	case "":
		req.BookingSource = model.SourceOnline
	case model.SourceOnline, model.SourceWalkIn:
	default:
		return time.Time{}, 0, ErrInvalidSource
	}
	return date, clock, nil
}

// slotLockName builds the named-lock key serializing commits per table/date.
func slotLockName(space, tableID, date string) string {
	return fmt.Sprintf("table_slot:%s:%s:%s", space, tableID, date)
}

// Commit books the table or rejects the request.  On success it returns the
// stored reservation with its generated RES-YYYYMMDD-NNNN identifier.
func (s *Service) Commit(ctx context.Context, req CommitRequest) (*model.Reservation, error) {
	date, clock, err := s.validate(&req)
	if err != nil {
		return nil, err
	}
	candidate := timeslot.Candidate(date, clock)

	var res *model.Reservation
	err = s.locker.withSlotLock(ctx, slotLockName(req.Space, req.TableID, req.Date), func(tx *sql.Tx) error {
		// Re-check under the lock: the client's availability query is
		// stale by definition, so only this read counts.
		reserved, err := s.reservations.ActiveWindowsTx(ctx, tx, req.Space, req.TableID, date)
		if err != nil {
			return err
		}
		if availability.Conflicts(candidate, reserved) {
			return ErrNoLongerAvailable
		}
		blocked, err := s.blocks.WindowsTx(ctx, tx, req.Space, req.TableID, date)
		if err != nil {
			return err
		}
		if availability.Conflicts(candidate, blocked) {
			return ErrNoLongerAvailable
		}

		seq, err := s.sequences.NextTx(ctx, tx, repository.SequenceReservations, date)
		if err != nil {
			return err
		}

		res = &model.Reservation{
			ReservationID: repository.FormatID(repository.SequenceReservations, date, seq),
			Space:         req.Space,
			TableID:       req.TableID,
			TableCapacity: req.TableCapacity,
			Date:          req.Date,
			Time:          req.Time,
			DurationHours: timeslot.DefaultDurationHours,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
			DepositAmount: req.DepositAmount,
			PaymentStatus: "pending",
			Status:        model.StatusConfirmed,
			BookingSource: req.BookingSource,
		}
		if err := s.reservations.CreateTx(ctx, tx, res); err != nil {
			return err
		}
		// Walk-ins are seated on the spot: enter confirmed, move to
		// seated within the same transaction.
		if req.BookingSource == model.SourceWalkIn {
			if err := s.reservations.UpdateStatusTx(ctx, tx, res.ReservationID, model.StatusSeated); err != nil {
				return err
			}
			res.Status = model.StatusSeated
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishConfirmed(ctx, res)
	return res, nil
}

func (s *Service) publishConfirmed(ctx context.Context, res *model.Reservation) {
	if s.publisher == nil {
		return
	}
	ev := queue.ReservationConfirmedEvent{
		ReservationID: res.ReservationID,
		Space:         res.Space,
		TableID:       res.TableID,
		TableCapacity: res.TableCapacity,
		Date:          res.Date,
		Time:          res.Time,
		DurationHours: res.DurationHours,
		CustomerName:  res.CustomerName,
		BookingSource: res.BookingSource,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishReservationConfirmed(ctx, ev); err != nil {
		log.Printf("booking: publish confirmation for %s failed: %v", res.ReservationID, err)
	}
}

// UpdateStatus applies a status transition, enforcing the state machine:
// pending -> confirmed -> seated -> completed, with cancellation from pending
// or confirmed and no_show from confirmed.  Returns model.ErrInvalidStatus,
// model.ErrInvalidTransition or repository.ErrNotFound.
func (s *Service) UpdateStatus(ctx context.Context, reservationID, newStatus string) error {
	if !model.ValidStatus(newStatus) {
		return model.ErrInvalidStatus
	}
	current, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if !model.CanTransition(current.Status, newStatus) {
		return fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, current.Status, newStatus)
	}
	return s.reservations.UpdateStatus(ctx, reservationID, newStatus)
}

// Cancel is the admin shortcut for moving a reservation to cancelled.
func (s *Service) Cancel(ctx context.Context, reservationID string) error {
	return s.UpdateStatus(ctx, reservationID, model.StatusCancelled)
}
