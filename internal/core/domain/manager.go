package domain

import "errors"

// DefaultManagerName is the manager created on first startup.
const DefaultManagerName = "admin"

var (
	ErrManagerNotFound = errors.New("manager not found")
	ErrLoginFailed     = errors.New("login failed")
	ErrManagerRequired = errors.New("manager login required")
)

// Manager is a privileged identity allowed to view and cancel bookings.
// Name doubles as the login credential.
type Manager struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
