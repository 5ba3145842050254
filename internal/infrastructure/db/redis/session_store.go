package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/99minutos/slot-booking/internal/core/domain"
)

const (
	defaultSessionTTL = 24 * time.Hour

	fieldManagerID = "manager_id"
	fieldReminder  = "reminder_slot_id"
)

// SessionStore keeps each session as a hash under session:<id>. Every load and
// save renews its TTL, so a session expires only after ttl of inactivity.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore wraps client. ttl <= 0 falls back to defaultSessionTTL.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, domain.ErrSessionNotFound
	}

	key := s.key(id)
	var get *redis.MapStringStringCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.HGetAll(ctx, key)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	fields := get.Val()
	if len(fields) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	return &domain.Session{
		ID:             id,
		ManagerID:      fields[fieldManagerID],
		ReminderSlotID: fields[fieldReminder],
	}, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *domain.Session) error {
	if sess.IsNew() {
		sess.ID = uuid.NewString()
	}

	key := s.key(sess.ID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			fieldManagerID, sess.ManagerID,
			fieldReminder, sess.ReminderSlotID,
		)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Destroy(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}
