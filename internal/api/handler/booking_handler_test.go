package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/99minutos/slot-booking/internal/core/domain"
)

func TestBookingHandler_Home_RendersSlotsAndReminder(t *testing.T) {
	e := newEcho(t)
	stub := &stubBookingService{
		listFn: func(ctx context.Context) ([]domain.Timeslot, error) { return seeded, nil },
		resolveFn: func(ctx context.Context, sess *domain.Session) (*domain.Timeslot, error) {
			return &seeded[0], nil
		},
	}
	h := NewBookingHandler(stub, nopLog)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Home(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{
		"Reminder: the 18:00 timeslot is still available!",
		`action="/book/s1"`,
		`href="/remind/s1"`,
		`href="/login"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, `action="/book/s2"`) {
		t.Errorf("booked slot should not offer a booking form")
	}
}

func TestBookingHandler_Home_ListError(t *testing.T) {
	e := newEcho(t)
	boom := errors.New("store down")
	stub := &stubBookingService{
		listFn: func(ctx context.Context) ([]domain.Timeslot, error) { return nil, boom },
	}
	h := NewBookingHandler(stub, nopLog)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if err := h.Home(c); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestBookingHandler_Book_Success(t *testing.T) {
	e := newEcho(t)
	var gotID, gotCustomer string
	stub := &stubBookingService{
		bookFn: func(ctx context.Context, sess *domain.Session, slotID, customer string) error {
			gotID, gotCustomer = slotID, customer
			return nil
		},
	}
	h := NewBookingHandler(stub, nopLog)

	c, rec := newFormContext(e, http.MethodPost, "/book/s1", url.Values{"txtCustomer": {"carol"}})
	c.SetParamNames("id")
	c.SetParamValues("s1")

	if err := h.Book(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotID != "s1" || gotCustomer != "carol" {
		t.Fatalf("unexpected args: %q %q", gotID, gotCustomer)
	}
	want := `Success, your reservation number is s1. <a href="/">Home</a>`
	if rec.Code != http.StatusOK || rec.Body.String() != want {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
}

func TestBookingHandler_Book_EmptyCustomerIsAccepted(t *testing.T) {
	e := newEcho(t)
	called := false
	stub := &stubBookingService{
		bookFn: func(ctx context.Context, sess *domain.Session, slotID, customer string) error {
			called = true
			if customer != "" {
				t.Fatalf("expected empty customer, got %q", customer)
			}
			return nil
		},
	}
	h := NewBookingHandler(stub, nopLog)

	c, rec := newFormContext(e, http.MethodPost, "/book/s1", url.Values{})
	c.SetParamNames("id")
	c.SetParamValues("s1")

	if err := h.Book(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected booking to go through, got %d", rec.Code)
	}
}

func TestBookingHandler_Book_EscapesID(t *testing.T) {
	e := newEcho(t)
	stub := &stubBookingService{
		bookFn: func(ctx context.Context, sess *domain.Session, slotID, customer string) error { return nil },
	}
	h := NewBookingHandler(stub, nopLog)

	c, rec := newFormContext(e, http.MethodPost, "/book/x", url.Values{"txtCustomer": {"carol"}})
	c.SetParamNames("id")
	c.SetParamValues("<b>x</b>")

	if err := h.Book(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "<b>") {
		t.Fatalf("id was not escaped: %q", rec.Body.String())
	}
}

func TestBookingHandler_Book_UnknownSlotRedirectsHome(t *testing.T) {
	e := newEcho(t)
	stub := &stubBookingService{
		bookFn: func(ctx context.Context, sess *domain.Session, slotID, customer string) error {
			return domain.ErrTimeslotNotFound
		},
	}
	h := NewBookingHandler(stub, nopLog)

	c, rec := newFormContext(e, http.MethodPost, "/book/nope", url.Values{"txtCustomer": {"carol"}})
	c.SetParamNames("id")
	c.SetParamValues("nope")

	if err := h.Book(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestBookingHandler_Remind(t *testing.T) {
	e := newEcho(t)
	var got string
	stub := &stubBookingService{
		remindFn: func(ctx context.Context, sess *domain.Session, slotID string) error {
			got = slotID
			return nil
		},
	}
	h := NewBookingHandler(stub, nopLog)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/remind/s4", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("s4")

	if err := h.Remind(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got != "s4" {
		t.Fatalf("expected reminder for s4, got %q", got)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}
