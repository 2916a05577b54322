package model

import (
	"time"

	"github.com/briochebrew/restaurant-reservation/internal/timeslot"
)

// Block is an administrator-created interval during which a table cannot be
// booked (maintenance, private events).  Blocks have no status; existence
// means active, and removal is a hard delete.
type Block struct {
	ID        uint64    `json:"id"`
	Space     string    `json:"spaceType"`
	TableID   string    `json:"tableId"`
	Date      string    `json:"blockDate"`      // YYYY-MM-DD
	StartTime string    `json:"blockStartTime"` // HH:MM
	EndTime   string    `json:"blockEndTime"`   // HH:MM
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// Window computes the block's half-open interval from its stored start and
// end clock values.
func (b *Block) Window() (timeslot.Window, error) {
	date, err := timeslot.ParseDate(b.Date)
	if err != nil {
		return timeslot.Window{}, err
	}
	start, err := timeslot.ParseClock(b.StartTime)
	if err != nil {
		return timeslot.Window{}, err
	}
	end, err := timeslot.ParseClock(b.EndTime)
	if err != nil {
		return timeslot.Window{}, err
	}
	return timeslot.FromRange(date, start, end), nil
}
