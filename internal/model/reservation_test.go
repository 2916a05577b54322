package model

import (
	"testing"
	"time"

	"github.com/briochebrew/restaurant-reservation/internal/timeslot"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusSeated, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusSeated, StatusCompleted, true},
		// Illegal jumps the original design allowed but this engine rejects.
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusNoShow, StatusSeated, false},
		{StatusPending, StatusSeated, false},
		{StatusSeated, StatusCancelled, false},
		{StatusSeated, StatusNoShow, false},
		{StatusCompleted, StatusCompleted, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTerminalStatus(t *testing.T) {
	terminal := []string{StatusCompleted, StatusCancelled, StatusNoShow}
	active := []string{StatusPending, StatusConfirmed, StatusSeated}
	for _, s := range terminal {
		if !TerminalStatus(s) {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range active {
		if TerminalStatus(s) {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestValidStatus(t *testing.T) {
	if !ValidStatus(StatusSeated) {
		t.Fatal("seated rejected")
	}
	if ValidStatus("archived") {
		t.Fatal("unknown status accepted")
	}
}

func TestReservationWindow(t *testing.T) {
	r := Reservation{Date: "2024-06-01", Time: "18:00", DurationHours: 2}
	w, err := r.Window()
	if err != nil {
		t.Fatalf("Window: %v", err)
	}
	if got := w.End.Sub(w.Start); got != 2*time.Hour {
		t.Fatalf("duration = %v, want 2h", got)
	}

	b := Block{Date: "2024-06-01", StartTime: "17:00", EndTime: "20:00"}
	bw, err := b.Window()
	if err != nil {
		t.Fatalf("block Window: %v", err)
	}
	if !timeslot.Overlaps(w, bw) {
		t.Fatal("reservation at 18:00 should overlap block 17:00-20:00")
	}
}
