package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/briochebrew/restaurant-reservation/internal/availability"
	"github.com/briochebrew/restaurant-reservation/internal/catalog"
	"github.com/briochebrew/restaurant-reservation/internal/timeslot"
)

// fakeWindows serves canned occupied intervals keyed by space/table.
type fakeWindows struct {
	windows map[string][]timeslot.Window
}

func (f *fakeWindows) lookup(space, tableID string) []timeslot.Window {
	return f.windows[space+"/"+tableID]
}

func (f *fakeWindows) ActiveWindows(_ context.Context, space, tableID string, _ time.Time) ([]timeslot.Window, error) {
	return f.lookup(space, tableID), nil
}

func (f *fakeWindows) Windows(_ context.Context, space, tableID string, _ time.Time) ([]timeslot.Window, error) {
	return f.lookup(space, tableID), nil
}

func availabilityRequest(t *testing.T, h *AvailabilityHandler, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/availability?"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Query(c); err != nil {
		t.Fatalf("Query handler: %v", err)
	}
	return rec
}

func TestAvailabilityQueryMissingParams(t *testing.T) {
	h := NewAvailabilityHandler(availability.New(catalog.Default(), &fakeWindows{}, &fakeWindows{}))
	rec := availabilityRequest(t, h, "spaceType=indoor&date=2024-06-01")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAvailabilityQueryUnknownSpace(t *testing.T) {
	h := NewAvailabilityHandler(availability.New(catalog.Default(), &fakeWindows{}, &fakeWindows{}))
	rec := availabilityRequest(t, h, "spaceType=rooftop&date=2024-06-01&time=18:00")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAvailabilityQueryPartitionsTables(t *testing.T) {
	date, _ := timeslot.ParseDate("2024-06-01")
	start, _ := timeslot.ParseClock("18:00")
	end, _ := timeslot.ParseClock("20:00")
	reservations := &fakeWindows{windows: map[string][]timeslot.Window{
		"indoor/I1": {timeslot.FromRange(date, start, end)},
	}}
	h := NewAvailabilityHandler(availability.New(catalog.Default(), reservations, &fakeWindows{}))

	rec := availabilityRequest(t, h, "spaceType=indoor&date=2024-06-01&time=18:00")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Available []catalog.Table `json:"available"`
		Reserved  []catalog.Table `json:"reserved"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Reserved) != 1 || body.Reserved[0].ID != "I1" {
		t.Fatalf("reserved = %v, want [I1]", body.Reserved)
	}
	if len(body.Available) != 7 {
		t.Fatalf("available = %d, want 7", len(body.Available))
	}
}
