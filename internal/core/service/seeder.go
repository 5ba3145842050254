package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/slot-booking/internal/core/domain"
	"github.com/99minutos/slot-booking/internal/core/ports"
)

// Seeder fills empty collections with the initial manager and schedule.
type Seeder struct {
	managers ports.ManagerRepository
	slots    ports.TimeslotRepository
	log      zerolog.Logger
}

func NewSeeder(managers ports.ManagerRepository, slots ports.TimeslotRepository, log zerolog.Logger) *Seeder {
	return &Seeder{managers: managers, slots: slots, log: log}
}

// Seed inserts defaults into each collection that is currently empty. The two
// collections are checked independently, so one failing does not skip the other.
func (s *Seeder) Seed(ctx context.Context) error {
	return errors.Join(s.seedManagers(ctx), s.seedTimeslots(ctx))
}

func (s *Seeder) seedManagers(ctx context.Context) error {
	n, err := s.managers.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed managers: count: %w", err)
	}
	if n > 0 {
		s.log.Debug().Int64("count", n).Msg("managers present, skipping seed")
		return nil
	}

	if _, err := s.managers.Create(ctx, &domain.Manager{Name: domain.DefaultManagerName}); err != nil {
		return fmt.Errorf("seed managers: %w", err)
	}
	s.log.Info().Str("name", domain.DefaultManagerName).Msg("managers seeded")
	return nil
}

func (s *Seeder) seedTimeslots(ctx context.Context) error {
	n, err := s.slots.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed timeslots: count: %w", err)
	}
	if n > 0 {
		s.log.Debug().Int64("count", n).Msg("timeslots present, skipping seed")
		return nil
	}

	defaults := domain.DefaultTimeslots()
	if err := s.slots.InsertMany(ctx, defaults); err != nil {
		return fmt.Errorf("seed timeslots: %w", err)
	}
	s.log.Info().Int("count", len(defaults)).Msg("timeslots seeded")
	return nil
}
