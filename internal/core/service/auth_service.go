package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/slot-booking/internal/core/domain"
	"github.com/99minutos/slot-booking/internal/core/ports"
)

// AuthService implements manager login by name. There is no secret: any
// visitor who knows a manager name can log in.
type AuthService struct {
	managers ports.ManagerRepository
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewAuthService(managers ports.ManagerRepository, sessions ports.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{managers: managers, sessions: sessions, log: log}
}

func (s *AuthService) Login(ctx context.Context, sess *domain.Session, name string) (*domain.Manager, error) {
	if name == "" {
		return nil, domain.ErrLoginFailed
	}

	m, err := s.managers.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrManagerNotFound) {
			s.log.Info().Str("name", name).Msg("login rejected")
			return nil, domain.ErrLoginFailed
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	sess.ManagerID = m.ID
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("login: save session: %w", err)
	}

	s.log.Info().Str("manager_id", m.ID).Msg("manager logged in")
	return m, nil
}

// Logout drops the whole session, reminder included.
func (s *AuthService) Logout(ctx context.Context, sess *domain.Session) error {
	id := sess.ID
	sess.Reset()
	if id == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, id); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// RequireManager resolves the session's manager against the store. A reference
// to a manager that no longer exists is cleared.
func (s *AuthService) RequireManager(ctx context.Context, sess *domain.Session) (*domain.Manager, error) {
	if sess == nil || sess.ManagerID == "" {
		return nil, domain.ErrManagerRequired
	}

	m, err := s.managers.FindByID(ctx, sess.ManagerID)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, domain.ErrManagerNotFound) {
		return nil, fmt.Errorf("require manager: %w", err)
	}

	sess.ManagerID = ""
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.log.Warn().Err(err).Str("session_id", sess.ID).Msg("failed to clear stale manager")
	}
	return nil, domain.ErrManagerRequired
}
