// Package availability classifies tables as free or taken for a requested
// slot.  It reconciles two independent sources of unavailability — active
// customer reservations and administrator blocks — through the single
// overlap predicate in the timeslot package.  The booking commit path runs
// the same check again inside its transaction, so both paths agree on what
// "free" means.
package availability

import (
	"context"
	"time"

	"github.com/briochebrew/restaurant-reservation/internal/catalog"
	"github.com/briochebrew/restaurant-reservation/internal/timeslot"
)

// ReservationSource yields the occupied intervals of active reservations for
// a table on a date.  Implemented by repository.ReservationRepo.
type ReservationSource interface {
	ActiveWindows(ctx context.Context, space, tableID string, date time.Time) ([]timeslot.Window, error)
}

// BlockSource yields the blocked intervals for a table on a date.
// Implemented by repository.BlockRepo.
type BlockSource interface {
	Windows(ctx context.Context, space, tableID string, date time.Time) ([]timeslot.Window, error)
}

// Result partitions a space's tables for one requested slot.
type Result struct {
	Available []catalog.Table `json:"available"`
	Reserved  []catalog.Table `json:"reserved"`
}

// Service answers availability queries.  It holds no mutable state and reads
// straight from the store on every call; caching here would let a stale
// answer turn into a double booking.
type Service struct {
	catalog      *catalog.Catalog
	reservations ReservationSource
	blocks       BlockSource
}

// New builds an availability Service over the given catalog and interval
// sources.
func New(cat *catalog.Catalog, reservations ReservationSource, blocks BlockSource) *Service {
	return &Service{catalog: cat, reservations: reservations, blocks: blocks}
}

// Query partitions every table of a space into available and reserved for
// the candidate window starting at timeStr on dateStr.  It returns
// catalog.ErrUnknownSpace, timeslot.ErrInvalidDate or timeslot.ErrInvalidTime
// for malformed input.
func (s *Service) Query(ctx context.Context, space, dateStr, timeStr string) (*Result, error) {
	date, err := timeslot.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	clock, err := timeslot.ParseClock(timeStr)
	if err != nil {
		return nil, err
	}
	tables, err := s.catalog.TablesForSpace(space)
	if err != nil {
		return nil, err
	}

	candidate := timeslot.Candidate(date, clock)
	res := &Result{Available: make([]catalog.Table, 0, len(tables)), Reserved: make([]catalog.Table, 0)}
	for _, table := range tables {
		free, err := s.tableFree(ctx, space, table.ID, date, candidate)
		if err != nil {
			return nil, err
		}
		if free {
			res.Available = append(res.Available, table)
		} else {
			res.Reserved = append(res.Reserved, table)
		}
	}
	return res, nil
}

// TableFree reports whether a single table is free for the candidate window
// at (dateStr, timeStr).  The booking handler uses it for pre-validation;
// the authoritative re-check happens inside the commit transaction.
func (s *Service) TableFree(ctx context.Context, space, tableID, dateStr, timeStr string) (bool, error) {
	date, err := timeslot.ParseDate(dateStr)
	if err != nil {
		return false, err
	}
	clock, err := timeslot.ParseClock(timeStr)
	if err != nil {
		return false, err
	}
	if _, err := s.catalog.Table(space, tableID); err != nil {
		return false, err
	}
	return s.tableFree(ctx, space, tableID, date, timeslot.Candidate(date, clock))
}

func (s *Service) tableFree(ctx context.Context, space, tableID string, date time.Time, candidate timeslot.Window) (bool, error) {
	reserved, err := s.reservations.ActiveWindows(ctx, space, tableID, date)
	if err != nil {
		return false, err
	}
	if Conflicts(candidate, reserved) {
		return false, nil
	}
	blocked, err := s.blocks.Windows(ctx, space, tableID, date)
	if err != nil {
		return false, err
	}
	return !Conflicts(candidate, blocked), nil
}

// Conflicts reports whether the candidate window overlaps any existing
// interval.  Reservation and block intervals go through this same function;
// the symmetric candidate window applies to both.
func Conflicts(candidate timeslot.Window, existing []timeslot.Window) bool {
	for _, w := range existing {
		if timeslot.Overlaps(candidate, w) {
			return true
		}
	}
	return false
}
