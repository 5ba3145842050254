package service

import (
	"context"
	"fmt"

	"github.com/99minutos/slot-booking/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests.
// ---------------------------------------------------------------------------

type stubTimeslotRepo struct {
	slots     []domain.Timeslot
	countErr  error
	insertErr error
	findErr   error
	inserts   int
}

func newStubTimeslotRepo(slots ...domain.Timeslot) *stubTimeslotRepo {
	r := &stubTimeslotRepo{}
	_ = r.InsertMany(context.Background(), slots)
	r.inserts = 0
	return r
}

func (r *stubTimeslotRepo) FindAll(_ context.Context) ([]domain.Timeslot, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	out := make([]domain.Timeslot, len(r.slots))
	copy(out, r.slots)
	return out, nil
}

func (r *stubTimeslotRepo) FindByID(_ context.Context, id string) (*domain.Timeslot, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, s := range r.slots {
		if s.ID == id {
			clone := s
			return &clone, nil
		}
	}
	return nil, domain.ErrTimeslotNotFound
}

func (r *stubTimeslotRepo) UpdateCustomer(_ context.Context, id, customer string) (*domain.Timeslot, error) {
	for i := range r.slots {
		if r.slots[i].ID == id {
			r.slots[i].Customer = customer
			clone := r.slots[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrTimeslotNotFound
}

func (r *stubTimeslotRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.slots)), r.countErr
}

func (r *stubTimeslotRepo) InsertMany(_ context.Context, slots []domain.Timeslot) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	for _, s := range slots {
		if s.ID == "" {
			s.ID = fmt.Sprintf("slot-%d", len(r.slots)+1)
		}
		r.slots = append(r.slots, s)
	}
	r.inserts++
	return nil
}

// byTime returns the slot with the given label, or a zero value.
func (r *stubTimeslotRepo) byTime(label string) domain.Timeslot {
	for _, s := range r.slots {
		if s.Time == label {
			return s
		}
	}
	return domain.Timeslot{}
}

type stubManagerRepo struct {
	managers []domain.Manager
	findErr  error
}

func (r *stubManagerRepo) FindByName(_ context.Context, name string) (*domain.Manager, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, m := range r.managers {
		if m.Name == name {
			clone := m
			return &clone, nil
		}
	}
	return nil, domain.ErrManagerNotFound
}

func (r *stubManagerRepo) FindByID(_ context.Context, id string) (*domain.Manager, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, m := range r.managers {
		if m.ID == id {
			clone := m
			return &clone, nil
		}
	}
	return nil, domain.ErrManagerNotFound
}

func (r *stubManagerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.managers)), nil
}

func (r *stubManagerRepo) Create(_ context.Context, m *domain.Manager) (*domain.Manager, error) {
	clone := *m
	clone.ID = fmt.Sprintf("mgr-%d", len(r.managers)+1)
	r.managers = append(r.managers, clone)
	return &clone, nil
}

type stubSessionStore struct {
	sessions  map[string]domain.Session
	saveErr   error
	saves     int
	destroyed []string
	nextID    int
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Load(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *stubSessionStore) Save(_ context.Context, sess *domain.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	if sess.ID == "" {
		s.nextID++
		sess.ID = fmt.Sprintf("sess-%d", s.nextID)
	}
	s.sessions[sess.ID] = *sess
	s.saves++
	return nil
}

func (s *stubSessionStore) Destroy(_ context.Context, id string) error {
	delete(s.sessions, id)
	s.destroyed = append(s.destroyed, id)
	return nil
}

type stubActivityRepo struct {
	events    []domain.BookingEvent
	lastLimit int
}

func (r *stubActivityRepo) Insert(_ context.Context, e *domain.BookingEvent) error {
	r.events = append(r.events, *e)
	return nil
}

func (r *stubActivityRepo) ListRecent(_ context.Context, limit int) ([]domain.BookingEvent, error) {
	r.lastLimit = limit
	out := make([]domain.BookingEvent, 0, limit)
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.events[i])
	}
	return out, nil
}

type stubPublisher struct {
	events []domain.BookingEvent
}

func (p *stubPublisher) Enqueue(e domain.BookingEvent) {
	p.events = append(p.events, e)
}
