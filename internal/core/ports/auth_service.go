package ports

import (
	"context"

	"github.com/99minutos/slot-booking/internal/core/domain"
)

// AuthService manages the manager identity held in a session.
type AuthService interface {
	Login(ctx context.Context, sess *domain.Session, name string) (*domain.Manager, error)
	Logout(ctx context.Context, sess *domain.Session) error
	RequireManager(ctx context.Context, sess *domain.Session) (*domain.Manager, error)
}
