package handler

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/slot-booking/internal/api/views"
	"github.com/99minutos/slot-booking/internal/core/domain"
)

type stubBookingService struct {
	listFn     func(ctx context.Context) ([]domain.Timeslot, error)
	bookFn     func(ctx context.Context, sess *domain.Session, slotID, customer string) error
	cancelFn   func(ctx context.Context, slotID string) error
	remindFn   func(ctx context.Context, sess *domain.Session, slotID string) error
	resolveFn  func(ctx context.Context, sess *domain.Session) (*domain.Timeslot, error)
	activityFn func(ctx context.Context, limit int) ([]domain.BookingEvent, error)
}

func (s *stubBookingService) ListTimeslots(ctx context.Context) ([]domain.Timeslot, error) {
	return s.listFn(ctx)
}

func (s *stubBookingService) Book(ctx context.Context, sess *domain.Session, slotID, customer string) error {
	return s.bookFn(ctx, sess, slotID, customer)
}

func (s *stubBookingService) Cancel(ctx context.Context, slotID string) error {
	return s.cancelFn(ctx, slotID)
}

func (s *stubBookingService) SetReminder(ctx context.Context, sess *domain.Session, slotID string) error {
	return s.remindFn(ctx, sess, slotID)
}

func (s *stubBookingService) ResolveReminder(ctx context.Context, sess *domain.Session) (*domain.Timeslot, error) {
	if s.resolveFn == nil {
		return nil, nil
	}
	return s.resolveFn(ctx, sess)
}

func (s *stubBookingService) RecentActivity(ctx context.Context, limit int) ([]domain.BookingEvent, error) {
	if s.activityFn == nil {
		return nil, nil
	}
	return s.activityFn(ctx, limit)
}

type stubAuthService struct {
	loginFn   func(ctx context.Context, sess *domain.Session, name string) (*domain.Manager, error)
	logoutFn  func(ctx context.Context, sess *domain.Session) error
	requireFn func(ctx context.Context, sess *domain.Session) (*domain.Manager, error)
}

func (s *stubAuthService) Login(ctx context.Context, sess *domain.Session, name string) (*domain.Manager, error) {
	return s.loginFn(ctx, sess, name)
}

func (s *stubAuthService) Logout(ctx context.Context, sess *domain.Session) error {
	return s.logoutFn(ctx, sess)
}

func (s *stubAuthService) RequireManager(ctx context.Context, sess *domain.Session) (*domain.Manager, error) {
	return s.requireFn(ctx, sess)
}

// newEcho returns an Echo instance with the real renderer and validator.
func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	r, err := views.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e := echo.New()
	e.Renderer = r
	e.Validator = NewValidator()
	return e
}

func newFormContext(e *echo.Echo, method, target string, values url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

var nopLog = zerolog.Nop()

var seeded = []domain.Timeslot{
	{ID: "s1", Time: "18:00"},
	{ID: "s2", Time: "18:30", Customer: "alice"},
}
