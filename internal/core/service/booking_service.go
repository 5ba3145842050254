package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/slot-booking/internal/core/domain"
	"github.com/99minutos/slot-booking/internal/core/ports"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// ActivityPublisher abstracts the asynchronous audit writer.
type ActivityPublisher interface {
	Enqueue(event domain.BookingEvent)
}

// BookingService implements the timeslot use cases. Writes are last-writer-wins:
// booking an occupied slot silently replaces its customer.
type BookingService struct {
	slots    ports.TimeslotRepository
	activity ports.ActivityRepository
	sessions ports.SessionStore
	events   ActivityPublisher
	log      zerolog.Logger
	now      func() time.Time
}

func NewBookingService(
	slots ports.TimeslotRepository,
	activity ports.ActivityRepository,
	sessions ports.SessionStore,
	events ActivityPublisher,
	log zerolog.Logger,
) *BookingService {
	return &BookingService{
		slots:    slots,
		activity: activity,
		sessions: sessions,
		events:   events,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *BookingService) ListTimeslots(ctx context.Context) ([]domain.Timeslot, error) {
	slots, err := s.slots.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list timeslots: %w", err)
	}
	return slots, nil
}

// Book assigns customer to the slot. A pending reminder for the same slot is
// dropped from the caller's session since the slot is no longer open.
func (s *BookingService) Book(ctx context.Context, sess *domain.Session, slotID, customer string) error {
	slot, err := s.slots.UpdateCustomer(ctx, slotID, customer)
	if err != nil {
		return fmt.Errorf("book %s: %w", slotID, err)
	}
	s.publish(slot, domain.ActionBooked)

	if sess != nil && sess.HasReminderFor(slotID) {
		sess.ReminderSlotID = ""
		if err := s.sessions.Save(ctx, sess); err != nil {
			return fmt.Errorf("book %s: clear reminder: %w", slotID, err)
		}
	}

	s.log.Info().Str("slot_id", slotID).Str("customer", customer).Msg("timeslot booked")
	return nil
}

// Cancel frees the slot. Callers are expected to have passed RequireManager.
func (s *BookingService) Cancel(ctx context.Context, slotID string) error {
	slot, err := s.slots.UpdateCustomer(ctx, slotID, "")
	if err != nil {
		return fmt.Errorf("cancel %s: %w", slotID, err)
	}
	s.publish(slot, domain.ActionCancelled)

	s.log.Info().Str("slot_id", slotID).Msg("booking cancelled")
	return nil
}

// SetReminder stores slotID as the session's reminder without checking it.
func (s *BookingService) SetReminder(ctx context.Context, sess *domain.Session, slotID string) error {
	sess.ReminderSlotID = slotID
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("set reminder: %w", err)
	}
	return nil
}

// ResolveReminder returns the reminded slot only while it exists and is open.
// A stale reference is cleared from the session.
func (s *BookingService) ResolveReminder(ctx context.Context, sess *domain.Session) (*domain.Timeslot, error) {
	if sess == nil || sess.ReminderSlotID == "" {
		return nil, nil
	}

	slot, err := s.slots.FindByID(ctx, sess.ReminderSlotID)
	switch {
	case err == nil && !slot.IsBooked():
		return slot, nil
	case err != nil && !errors.Is(err, domain.ErrTimeslotNotFound):
		return nil, fmt.Errorf("resolve reminder: %w", err)
	}

	s.log.Debug().Str("slot_id", sess.ReminderSlotID).Msg("dropping stale reminder")
	sess.ReminderSlotID = ""
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("resolve reminder: %w", err)
	}
	return nil, nil
}

// RecentActivity returns the newest audit events, capped at maxActivityLimit.
func (s *BookingService) RecentActivity(ctx context.Context, limit int) ([]domain.BookingEvent, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	events, err := s.activity.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	return events, nil
}

// publish records the slot as it stands after the change.
func (s *BookingService) publish(slot *domain.Timeslot, action domain.BookingAction) {
	if s.events == nil {
		return
	}
	s.events.Enqueue(domain.BookingEvent{
		SlotID:   slot.ID,
		SlotTime: slot.Time,
		Action:   action,
		Customer: slot.Customer,
		At:       s.now(),
	})
}
