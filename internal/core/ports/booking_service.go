package ports

import (
	"context"

	"github.com/99minutos/slot-booking/internal/core/domain"
)

// BookingService defines the customer and manager use cases on timeslots.
type BookingService interface {
	ListTimeslots(ctx context.Context) ([]domain.Timeslot, error)
	Book(ctx context.Context, sess *domain.Session, slotID, customer string) error
	Cancel(ctx context.Context, slotID string) error
	SetReminder(ctx context.Context, sess *domain.Session, slotID string) error
	// ResolveReminder returns the reminded slot while it is still open, or nil.
	ResolveReminder(ctx context.Context, sess *domain.Session) (*domain.Timeslot, error)
	RecentActivity(ctx context.Context, limit int) ([]domain.BookingEvent, error)
}
