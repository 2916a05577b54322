package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/briochebrew/restaurant-reservation/internal/catalog"
	"github.com/briochebrew/restaurant-reservation/internal/timeslot"
)

// fakeSource serves canned windows keyed by space/table.
type fakeSource struct {
	windows map[string][]timeslot.Window
	err     error
}

func key(space, tableID string) string { return space + "/" + tableID }

func (f *fakeSource) get(space, tableID string) ([]timeslot.Window, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.windows[key(space, tableID)], nil
}

func (f *fakeSource) ActiveWindows(_ context.Context, space, tableID string, _ time.Time) ([]timeslot.Window, error) {
	return f.get(space, tableID)
}

func (f *fakeSource) Windows(_ context.Context, space, tableID string, _ time.Time) ([]timeslot.Window, error) {
	return f.get(space, tableID)
}

func window(t *testing.T, dateStr, startStr, endStr string) timeslot.Window {
	t.Helper()
	date, err := timeslot.ParseDate(dateStr)
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	start, err := timeslot.ParseClock(startStr)
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	end, err := timeslot.ParseClock(endStr)
	if err != nil {
		t.Fatalf("ParseClock: %v", err)
	}
	return timeslot.FromRange(date, start, end)
}

func newService(reservations, blocks *fakeSource) *Service {
	return New(catalog.Default(), reservations, blocks)
}

func TestQueryValidation(t *testing.T) {
	s := newService(&fakeSource{}, &fakeSource{})
	ctx := context.Background()

	if _, err := s.Query(ctx, "rooftop", "2024-06-01", "18:00"); !errors.Is(err, catalog.ErrUnknownSpace) {
		t.Fatalf("unknown space: got %v", err)
	}
	if _, err := s.Query(ctx, "indoor", "2024-13-01", "18:00"); !errors.Is(err, timeslot.ErrInvalidDate) {
		t.Fatalf("bad date: got %v", err)
	}
	if _, err := s.Query(ctx, "indoor", "2024-06-01", "25:00"); !errors.Is(err, timeslot.ErrInvalidTime) {
		t.Fatalf("bad time: got %v", err)
	}
}

func TestQueryClassifiesReservedTables(t *testing.T) {
	reservations := &fakeSource{windows: map[string][]timeslot.Window{
		key("indoor", "I1"): {window(t, "2024-06-01", "18:00", "20:00")},
	}}
	s := newService(reservations, &fakeSource{})

	res, err := s.Query(context.Background(), "indoor", "2024-06-01", "18:00")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(res.Reserved) != 1 || res.Reserved[0].ID != "I1" {
		t.Fatalf("reserved = %v, want [I1]", res.Reserved)
	}
	if len(res.Available) != 7 {
		t.Fatalf("available count = %d, want 7", len(res.Available))
	}
}

func TestAdminBlockMakesTableReserved(t *testing.T) {
	// O3 has no reservations on 2024-07-04; admin blocks 14:00-16:00.
	blocks := &fakeSource{windows: map[string][]timeslot.Window{
		key("outdoor", "O3"): {window(t, "2024-07-04", "14:00", "16:00")},
	}}
	s := newService(&fakeSource{}, blocks)
	ctx := context.Background()

	// 15:00 candidate [15:00,17:00) overlaps the block.
	res, err := s.Query(ctx, "outdoor", "2024-07-04", "15:00")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(res.Reserved) != 1 || res.Reserved[0].ID != "O3" {
		t.Fatalf("15:00: reserved = %v, want [O3]", res.Reserved)
	}

	// 17:00 candidate [17:00,19:00) starts after the block ends.
	res, err = s.Query(ctx, "outdoor", "2024-07-04", "17:00")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(res.Reserved) != 0 {
		t.Fatalf("17:00: reserved = %v, want none", res.Reserved)
	}
	if len(res.Available) != 10 {
		t.Fatalf("17:00: available = %d, want 10", len(res.Available))
	}
}

func TestBlockCheckUsesSymmetricWindow(t *testing.T) {
	// A block ending exactly when the candidate starts must not conflict:
	// the widened [T-1h, T+2h) guard window would wrongly reject this.
	blocks := &fakeSource{windows: map[string][]timeslot.Window{
		key("indoor", "I1"): {window(t, "2024-06-01", "16:00", "18:00")},
	}}
	s := newService(&fakeSource{}, blocks)

	free, err := s.TableFree(context.Background(), "indoor", "I1", "2024-06-01", "18:00")
	if err != nil {
		t.Fatalf("TableFree: %v", err)
	}
	if !free {
		t.Fatal("booking starting at block end should be allowed")
	}
}

func TestCancelledReservationFreesSlot(t *testing.T) {
	// The reservation source only yields non-terminal reservations, so a
	// cancelled booking simply disappears from the windows.
	s := newService(&fakeSource{}, &fakeSource{})
	free, err := s.TableFree(context.Background(), "lounge", "L2", "2024-06-01", "19:00")
	if err != nil {
		t.Fatalf("TableFree: %v", err)
	}
	if !free {
		t.Fatal("L2 should be free once its reservation is cancelled")
	}
}

func TestTableFreeValidatesTable(t *testing.T) {
	s := newService(&fakeSource{}, &fakeSource{})
	if _, err := s.TableFree(context.Background(), "indoor", "O1", "2024-06-01", "18:00"); !errors.Is(err, catalog.ErrUnknownTable) {
		t.Fatalf("got %v, want ErrUnknownTable", err)
	}
}

func TestSourceErrorsPropagate(t *testing.T) {
	boom := errors.New("connection lost")
	s := newService(&fakeSource{err: boom}, &fakeSource{})
	if _, err := s.Query(context.Background(), "indoor", "2024-06-01", "18:00"); !errors.Is(err, boom) {
		t.Fatalf("got %v, want wrapped source error", err)
	}
}

func TestConflicts(t *testing.T) {
	candidate := window(t, "2024-06-01", "18:00", "20:00")
	if Conflicts(candidate, nil) {
		t.Fatal("no existing intervals should never conflict")
	}
	existing := []timeslot.Window{
		window(t, "2024-06-01", "12:00", "14:00"),
		window(t, "2024-06-01", "19:30", "21:00"),
	}
	if !Conflicts(candidate, existing) {
		t.Fatal("overlapping interval not detected")
	}
}
