package domain

import "time"

// BookingAction is the kind of change recorded in the activity log.
type BookingAction string

const (
	ActionBooked    BookingAction = "booked"
	ActionCancelled BookingAction = "cancelled"
)

// BookingEvent is an append-only record of a Book or Cancel.
type BookingEvent struct {
	ID       string        `json:"id"`
	SlotID   string        `json:"slot_id"`
	SlotTime string        `json:"slot_time"`
	Action   BookingAction `json:"action"`
	Customer string        `json:"customer,omitempty"`
	At       time.Time     `json:"at"`
}
