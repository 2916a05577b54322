package timeslot

import (
	"testing"
	"time"
)

func mustClock(t *testing.T, s string) time.Duration {
	t.Helper()
	d, err := ParseClock(s)
	if err != nil {
		t.Fatalf("ParseClock(%q): %v", s, err)
	}
	return d
}

func TestOverlaps(t *testing.T) {
	date, err := ParseDate("2024-06-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	win := func(start, end string) Window {
		return Window{Start: At(date, mustClock(t, start)), End: At(date, mustClock(t, end))}
	}

	cases := []struct {
		name string
		a, b Window
		want bool
	}{
		{"back to back before", win("10:00", "12:00"), win("09:00", "10:00"), false},
		{"back to back after", win("10:00", "12:00"), win("12:00", "14:00"), false},
		{"one minute overlap", win("10:00", "12:00"), win("11:59", "13:00"), true},
		{"identical start", win("10:00", "12:00"), win("10:00", "10:30"), true},
		{"contained", win("10:00", "12:00"), win("10:30", "11:00"), true},
		{"covering", win("10:30", "11:00"), win("10:00", "12:00"), true},
		{"disjoint", win("10:00", "12:00"), win("14:00", "16:00"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.a, tc.b); got != tc.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			// The predicate is symmetric.
			if got := Overlaps(tc.b, tc.a); got != tc.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v (reversed)", tc.b, tc.a, got, tc.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2024-07-04"); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	for _, s := range []string{"2024-02-30", "04-07-2024", "2024/07/04", "today", ""} {
		if _, err := ParseDate(s); err == nil {
			t.Fatalf("ParseDate(%q) accepted", s)
		}
	}
}

func TestParseClock(t *testing.T) {
	for _, s := range []string{"00:00", "09:30", "18:00", "23:59"} {
		if _, err := ParseClock(s); err != nil {
			t.Fatalf("ParseClock(%q): %v", s, err)
		}
	}
	for _, s := range []string{"24:00", "9:30", "18:60", "18:00:00", "six pm", ""} {
		if _, err := ParseClock(s); err == nil {
			t.Fatalf("ParseClock(%q) accepted", s)
		}
	}
}

func TestFromDurationCrossesMidnight(t *testing.T) {
	date, _ := ParseDate("2024-06-01")
	w := FromDuration(date, mustClock(t, "23:00"), 2)
	if w.End.Day() != 2 {
		t.Fatalf("window should spill into next day, got end %v", w.End)
	}
	next := FromDuration(date.AddDate(0, 0, 1), mustClock(t, "00:30"), 2)
	if !Overlaps(w, next) {
		t.Fatal("late-night window should conflict with early next-day window")
	}
}

func TestCandidateUsesDefaultDuration(t *testing.T) {
	date, _ := ParseDate("2024-06-01")
	w := Candidate(date, mustClock(t, "18:00"))
	if got := w.End.Sub(w.Start); got != DefaultDurationHours*time.Hour {
		t.Fatalf("candidate duration = %v, want %dh", got, DefaultDurationHours)
	}
}
