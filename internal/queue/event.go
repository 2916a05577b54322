// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a table booking commits.  It
// carries enough detail for downstream consumers to log, notify the floor
// staff, or feed analytics without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID string `json:"reservation_id"`
	Space         string `json:"space_type"`
	TableID       string `json:"table_id"`
	TableCapacity int    `json:"table_capacity"`
	Date          string `json:"reservation_date"`
	Time          string `json:"reservation_time"`
	DurationHours int    `json:"duration_hours"`
	CustomerName  string `json:"customer_name"`
	BookingSource string `json:"booking_source"`
	ConfirmedAt   string `json:"confirmed_at"`
}
