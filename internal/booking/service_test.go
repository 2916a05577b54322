package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/briochebrew/restaurant-reservation/internal/catalog"
	"github.com/briochebrew/restaurant-reservation/internal/model"
	"github.com/briochebrew/restaurant-reservation/internal/queue"
	"github.com/briochebrew/restaurant-reservation/internal/timeslot"
)

func testService() *Service {
	return New(nil, catalog.Default(), nil, nil, nil, nil)
}

func validRequest() CommitRequest {
	return CommitRequest{
		Space:         "indoor",
		TableID:       "I3",
		Date:          "2024-06-01",
		Time:          "18:00",
		CustomerName:  "Ada Obi",
		CustomerPhone: "+2348012345678",
		CustomerEmail: "ada@example.com",
	}
}

func TestValidateRequiredFields(t *testing.T) {
	s := testService()
	cases := []struct {
		field string
		mut   func(*CommitRequest)
	}{
		{"space", func(r *CommitRequest) { r.Space = "" }},
		{"tableId", func(r *CommitRequest) { r.TableID = "" }},
		{"date", func(r *CommitRequest) { r.Date = "" }},
		{"time", func(r *CommitRequest) { r.Time = "" }},
		{"customerName", func(r *CommitRequest) { r.CustomerName = "" }},
		{"customerPhone", func(r *CommitRequest) { r.CustomerPhone = "" }},
		{"customerEmail", func(r *CommitRequest) { r.CustomerEmail = "" }},
	}
	for _, tc := range cases {
		req := validRequest()
		tc.mut(&req)
		_, _, err := s.validate(&req)
		if !errors.Is(err, ErrMissingField) {
			t.Errorf("%s omitted: got %v, want ErrMissingField", tc.field, err)
		}
	}
}

func TestValidateRejectsMalformedInput(t *testing.T) {
	s := testService()

	req := validRequest()
	req.Date = "01-06-2024"
	if _, _, err := s.validate(&req); !errors.Is(err, timeslot.ErrInvalidDate) {
		t.Errorf("bad date: got %v", err)
	}

	req = validRequest()
	req.Time = "6pm"
	if _, _, err := s.validate(&req); !errors.Is(err, timeslot.ErrInvalidTime) {
		t.Errorf("bad time: got %v", err)
	}

	req = validRequest()
	req.Space = "rooftop"
	if _, _, err := s.validate(&req); !errors.Is(err, catalog.ErrUnknownSpace) {
		t.Errorf("unknown space: got %v", err)
	}

	req = validRequest()
	req.TableID = "O1"
	if _, _, err := s.validate(&req); !errors.Is(err, catalog.ErrUnknownTable) {
		t.Errorf("table from wrong space: got %v", err)
	}

	req = validRequest()
	req.BookingSource = "telepathy"
	if _, _, err := s.validate(&req); !errors.Is(err, ErrInvalidSource) {
		t.Errorf("bad source: got %v", err)
	}
}

func TestValidateAppliesDefaults(t *testing.T) {
	s := testService()
	req := validRequest()

	if _, _, err := s.validate(&req); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if req.BookingSource != model.SourceOnline {
		t.Errorf("source = %q, want online default", req.BookingSource)
	}
	if req.DepositAmount != DefaultDeposit {
		t.Errorf("deposit = %v, want %v", req.DepositAmount, DefaultDeposit)
	}
	// I3 seats 4 in the default layout.
	if req.TableCapacity != 4 {
		t.Errorf("capacity = %d, want catalog fallback 4", req.TableCapacity)
	}

	req = validRequest()
	req.TableCapacity = 2
	req.DepositAmount = 10000
	req.BookingSource = model.SourceWalkIn
	if _, _, err := s.validate(&req); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if req.TableCapacity != 2 || req.DepositAmount != 10000 || req.BookingSource != model.SourceWalkIn {
		t.Errorf("explicit values overridden: %+v", req)
	}
}

func TestValidateParsesSlot(t *testing.T) {
	s := testService()
	req := validRequest()
	date, clock, err := s.validate(&req)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	w := timeslot.Candidate(date, clock)
	if got := w.Start.Format("2006-01-02 15:04"); got != "2024-06-01 18:00" {
		t.Errorf("candidate start = %s", got)
	}
	if got := w.End.Format("15:04"); got != "20:00" {
		t.Errorf("candidate end = %s, want 20:00", got)
	}
}

func TestSlotLockName(t *testing.T) {
	got := slotLockName("indoor", "I3", "2024-06-01")
	if got != "table_slot:indoor:I3:2024-06-01" {
		t.Errorf("lock name = %q", got)
	}
}

func TestCommitRejectsInvalidRequestBeforeStorage(t *testing.T) {
	// db is nil, so reaching the storage layer would panic; validation must
	// short-circuit first.
	s := testService()
	req := validRequest()
	req.Space = ""
	if _, err := s.Commit(context.Background(), req); !errors.Is(err, ErrMissingField) {
		t.Fatalf("got %v, want ErrMissingField", err)
	}
}

// fakeSlotLock stands in for the MySQL named lock: commits still run their
// fn one after another, against a nil transaction the fake stores ignore.
type fakeSlotLock struct{}

func (fakeSlotLock) withSlotLock(_ context.Context, _ string, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

// fakeReservationStore serves the pre-seeded windows plus the windows of
// everything committed through it, so a second commit for the same slot sees
// the first one's row exactly as it would under the real lock.
type fakeReservationStore struct {
	windows []timeslot.Window
	created []*model.Reservation
	seated  []string
}

func (f *fakeReservationStore) ActiveWindowsTx(_ context.Context, _ *sql.Tx, _, _ string, _ time.Time) ([]timeslot.Window, error) {
	out := append([]timeslot.Window(nil), f.windows...)
	for _, r := range f.created {
		w, err := r.Window()
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeReservationStore) CreateTx(_ context.Context, _ *sql.Tx, res *model.Reservation) error {
	f.created = append(f.created, res)
	return nil
}

func (f *fakeReservationStore) UpdateStatusTx(_ context.Context, _ *sql.Tx, reservationID, status string) error {
	if status == model.StatusSeated {
		f.seated = append(f.seated, reservationID)
	}
	return nil
}

func (f *fakeReservationStore) GetByID(_ context.Context, reservationID string) (*model.Reservation, error) {
	for _, r := range f.created {
		if r.ReservationID == reservationID {
			return r, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeReservationStore) UpdateStatus(_ context.Context, reservationID, status string) error {
	r, err := f.GetByID(context.Background(), reservationID)
	if err != nil {
		return err
	}
	r.Status = status
	return nil
}

type fakeBlockStore struct {
	windows []timeslot.Window
}

func (f *fakeBlockStore) WindowsTx(_ context.Context, _ *sql.Tx, _, _ string, _ time.Time) ([]timeslot.Window, error) {
	return f.windows, nil
}

type fakeSequenceStore struct {
	n int
}

func (f *fakeSequenceStore) NextTx(_ context.Context, _ *sql.Tx, _ string, _ time.Time) (int, error) {
	f.n++
	return f.n, nil
}

type fakePublisher struct {
	events []queue.ReservationConfirmedEvent
}

func (f *fakePublisher) PublishReservationConfirmed(_ context.Context, ev queue.ReservationConfirmedEvent) error {
	f.events = append(f.events, ev)
	return nil
}

func commitService(res *fakeReservationStore, blocks *fakeBlockStore, pub EventPublisher) *Service {
	return &Service{
		locker:       fakeSlotLock{},
		catalog:      catalog.Default(),
		reservations: res,
		blocks:       blocks,
		sequences:    &fakeSequenceStore{},
		publisher:    pub,
	}
}

// window builds the half-open interval [date time, +hours) for seeding fakes.
func window(t *testing.T, dateStr, timeStr string, hours int) timeslot.Window {
	t.Helper()
	date, err := timeslot.ParseDate(dateStr)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	clock, err := timeslot.ParseClock(timeStr)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return timeslot.FromDuration(date, clock, hours)
}

func TestCommitCreatesConfirmedReservation(t *testing.T) {
	res := &fakeReservationStore{}
	pub := &fakePublisher{}
	s := commitService(res, &fakeBlockStore{}, pub)

	got, err := s.Commit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got.ReservationID != "RES-20240601-0001" {
		t.Errorf("id = %q, want RES-20240601-0001", got.ReservationID)
	}
	if got.Status != model.StatusConfirmed {
		t.Errorf("status = %q, want confirmed", got.Status)
	}
	if got.DurationHours != timeslot.DefaultDurationHours {
		t.Errorf("duration = %d, want %d", got.DurationHours, timeslot.DefaultDurationHours)
	}
	if got.PaymentStatus != "pending" {
		t.Errorf("payment status = %q, want pending", got.PaymentStatus)
	}
	if len(res.created) != 1 {
		t.Fatalf("created %d rows, want 1", len(res.created))
	}
	if len(pub.events) != 1 || pub.events[0].ReservationID != got.ReservationID {
		t.Errorf("published events = %+v, want one for %s", pub.events, got.ReservationID)
	}
}

func TestCommitRejectsOverlappingReservation(t *testing.T) {
	// An existing 17:00-19:00 booking overlaps the 18:00-20:00 candidate.
	res := &fakeReservationStore{windows: []timeslot.Window{window(t, "2024-06-01", "17:00", 2)}}
	pub := &fakePublisher{}
	s := commitService(res, &fakeBlockStore{}, pub)

	_, err := s.Commit(context.Background(), validRequest())
	if !errors.Is(err, ErrNoLongerAvailable) {
		t.Fatalf("got %v, want ErrNoLongerAvailable", err)
	}
	if len(res.created) != 0 {
		t.Errorf("created %d rows on rejected commit", len(res.created))
	}
	if len(pub.events) != 0 {
		t.Errorf("published %d events on rejected commit", len(pub.events))
	}
}

func TestCommitRejectsBlockedWindow(t *testing.T) {
	blocks := &fakeBlockStore{windows: []timeslot.Window{window(t, "2024-06-01", "19:00", 2)}}
	res := &fakeReservationStore{}
	s := commitService(res, blocks, nil)

	_, err := s.Commit(context.Background(), validRequest())
	if !errors.Is(err, ErrNoLongerAvailable) {
		t.Fatalf("got %v, want ErrNoLongerAvailable", err)
	}
	if len(res.created) != 0 {
		t.Errorf("created %d rows on blocked commit", len(res.created))
	}
}

func TestCommitSerializesSameSlot(t *testing.T) {
	// Two requests race for the same table and slot; the re-check under the
	// lock lets exactly one through.
	res := &fakeReservationStore{}
	s := commitService(res, &fakeBlockStore{}, nil)

	first, err := s.Commit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("first commit: %v", err)
	}
	if _, err := s.Commit(context.Background(), validRequest()); !errors.Is(err, ErrNoLongerAvailable) {
		t.Fatalf("second commit: got %v, want ErrNoLongerAvailable", err)
	}
	if len(res.created) != 1 || res.created[0].ReservationID != first.ReservationID {
		t.Errorf("stored rows = %d, want only %s", len(res.created), first.ReservationID)
	}
}

func TestCommitWalkInEndsSeated(t *testing.T) {
	res := &fakeReservationStore{}
	s := commitService(res, &fakeBlockStore{}, nil)

	req := validRequest()
	req.BookingSource = model.SourceWalkIn
	got, err := s.Commit(context.Background(), req)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got.Status != model.StatusSeated {
		t.Errorf("status = %q, want seated", got.Status)
	}
	if len(res.seated) != 1 || res.seated[0] != got.ReservationID {
		t.Errorf("seated transitions = %v, want [%s] inside the commit", res.seated, got.ReservationID)
	}
}
