package handler

import (
	"time"

	"github.com/99minutos/slot-booking/internal/core/domain"
)

// --- Form bindings ---

// bookForm carries the customer name exactly as typed; it is not validated.
type bookForm struct {
	Customer string `form:"txtCustomer"`
}

type loginForm struct {
	Name string `form:"name" validate:"required,max=100"`
}

// --- View models ---
// Every page carries LoggedIn for the shared layout navigation.

type homePage struct {
	LoggedIn  bool
	Timeslots []domain.Timeslot
	Reminder  *domain.Timeslot
}

type managePage struct {
	LoggedIn  bool
	Manager   *domain.Manager
	Timeslots []domain.Timeslot
	Activity  []activityRow
}

type loginPage struct {
	LoggedIn bool
}

type activityRow struct {
	At       string
	SlotTime string
	Action   string
	Customer string
}

const activityTimeLayout = "2006-01-02 15:04"

// toActivityRows uses the slot time recorded with each event, falling back to
// the raw slot id when none was recorded.
func toActivityRows(events []domain.BookingEvent) []activityRow {
	rows := make([]activityRow, len(events))
	for i, e := range events {
		label := e.SlotTime
		if label == "" {
			label = e.SlotID
		}
		rows[i] = activityRow{
			At:       formatAt(e.At),
			SlotTime: label,
			Action:   string(e.Action),
			Customer: e.Customer,
		}
	}
	return rows
}

func formatAt(t time.Time) string {
	return t.UTC().Format(activityTimeLayout)
}
