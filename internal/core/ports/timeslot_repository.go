package ports

import (
	"context"

	"github.com/99minutos/slot-booking/internal/core/domain"
)

// TimeslotRepository defines persistence operations for timeslots.
type TimeslotRepository interface {
	// FindAll returns every timeslot in the store's natural order.
	FindAll(ctx context.Context) ([]domain.Timeslot, error)
	FindByID(ctx context.Context, id string) (*domain.Timeslot, error)
	// UpdateCustomer overwrites the customer of the slot with the given id and
	// returns the updated slot. Returns domain.ErrTimeslotNotFound when no slot
	// matches.
	UpdateCustomer(ctx context.Context, id, customer string) (*domain.Timeslot, error)
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, slots []domain.Timeslot) error
}
