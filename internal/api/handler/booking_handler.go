package handler

import (
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/slot-booking/internal/api/metrics"
	"github.com/99minutos/slot-booking/internal/api/middleware"
	"github.com/99minutos/slot-booking/internal/api/views"
	"github.com/99minutos/slot-booking/internal/core/domain"
	"github.com/99minutos/slot-booking/internal/core/ports"
)

// BookingHandler serves the customer-facing pages.
type BookingHandler struct {
	service ports.BookingService
	log     zerolog.Logger
}

func NewBookingHandler(service ports.BookingService, log zerolog.Logger) *BookingHandler {
	return &BookingHandler{service: service, log: log}
}

// Home handles GET /: the timeslot list plus the visitor's reminder, if the
// reminded slot is still open.
func (h *BookingHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	sess := middleware.SessionFrom(c)

	slots, err := h.service.ListTimeslots(ctx)
	if err != nil {
		return err
	}

	reminder, err := h.service.ResolveReminder(ctx, sess)
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, views.PageHome, homePage{
		LoggedIn:  sess.ManagerID != "",
		Timeslots: slots,
		Reminder:  reminder,
	})
}

// Book handles POST /book/:id.
func (h *BookingHandler) Book(c echo.Context) error {
	id := c.Param("id")

	var form bookForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	err := h.service.Book(c.Request().Context(), middleware.SessionFrom(c), id, form.Customer)
	if errors.Is(err, domain.ErrTimeslotNotFound) {
		h.log.Warn().Str("slot_id", id).Msg("book: unknown timeslot")
		return c.Redirect(http.StatusFound, "/")
	}
	if err != nil {
		return err
	}

	metrics.BookingsTotal.Inc()
	return c.HTML(http.StatusOK, fmt.Sprintf(
		`Success, your reservation number is %s. <a href="/">Home</a>`, html.EscapeString(id)))
}

// Remind handles GET /remind/:id.
func (h *BookingHandler) Remind(c echo.Context) error {
	if err := h.service.SetReminder(c.Request().Context(), middleware.SessionFrom(c), c.Param("id")); err != nil {
		return err
	}

	metrics.RemindersSetTotal.Inc()
	return c.Redirect(http.StatusFound, "/")
}
