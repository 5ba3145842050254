package domain

import "errors"

var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side state attached to one browser. Both fields are
// loose references resolved against the store when used.
type Session struct {
	ID             string
	ManagerID      string
	ReminderSlotID string
}

// IsNew reports whether the session has never been persisted.
func (s *Session) IsNew() bool {
	return s.ID == ""
}

// HasReminderFor reports whether the pending reminder points at slotID.
func (s *Session) HasReminderFor(slotID string) bool {
	return s.ReminderSlotID != "" && s.ReminderSlotID == slotID
}

// Reset drops every field, including the id.
func (s *Session) Reset() {
	*s = Session{}
}
