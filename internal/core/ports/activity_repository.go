package ports

import (
	"context"

	"github.com/99minutos/slot-booking/internal/core/domain"
)

// ActivityRepository handles the booking audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.BookingEvent) error
	// ListRecent returns at most limit events, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.BookingEvent, error)
}
