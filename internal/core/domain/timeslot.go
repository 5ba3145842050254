package domain

import "errors"

var ErrTimeslotNotFound = errors.New("timeslot not found")

// Timeslot is a bookable time with at most one customer.
// An empty Customer means the slot is open.
type Timeslot struct {
	ID       string `json:"id"`
	Time     string `json:"time"`
	Customer string `json:"customer"`
}

// IsBooked reports whether a customer currently holds the slot.
func (t Timeslot) IsBooked() bool {
	return t.Customer != ""
}

// DefaultTimeslots is the schedule inserted into an empty store at startup.
func DefaultTimeslots() []Timeslot {
	return []Timeslot{
		{Time: "18:00", Customer: ""},
		{Time: "18:30", Customer: "alice"},
		{Time: "19:00", Customer: "bob"},
		{Time: "19:30", Customer: ""},
	}
}
