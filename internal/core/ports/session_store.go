package ports

import (
	"context"

	"github.com/99minutos/slot-booking/internal/core/domain"
)

// SessionStore keeps per-browser state on the server.
type SessionStore interface {
	// Load returns domain.ErrSessionNotFound for unknown or expired ids.
	Load(ctx context.Context, id string) (*domain.Session, error)
	// Save persists the session, assigning an id when it is new.
	Save(ctx context.Context, s *domain.Session) error
	Destroy(ctx context.Context, id string) error
}
