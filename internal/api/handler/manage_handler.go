package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/slot-booking/internal/api/metrics"
	"github.com/99minutos/slot-booking/internal/api/middleware"
	"github.com/99minutos/slot-booking/internal/api/views"
	"github.com/99minutos/slot-booking/internal/core/domain"
	"github.com/99minutos/slot-booking/internal/core/ports"
)

const recentActivityLimit = 20

// ManageHandler serves the manager-only pages. Routes must be wrapped in
// middleware.RequireManager.
type ManageHandler struct {
	service ports.BookingService
	log     zerolog.Logger
}

func NewManageHandler(service ports.BookingService, log zerolog.Logger) *ManageHandler {
	return &ManageHandler{service: service, log: log}
}

// Manage handles GET /manage.
func (h *ManageHandler) Manage(c echo.Context) error {
	ctx := c.Request().Context()

	slots, err := h.service.ListTimeslots(ctx)
	if err != nil {
		return err
	}

	// The activity log is secondary; the page renders without it.
	events, err := h.service.RecentActivity(ctx, recentActivityLimit)
	if err != nil {
		h.log.Warn().Err(err).Msg("recent activity unavailable")
	}

	return c.Render(http.StatusOK, views.PageManage, managePage{
		LoggedIn:  true,
		Manager:   middleware.ManagerFrom(c),
		Timeslots: slots,
		Activity:  toActivityRows(events),
	})
}

// Cancel handles GET /cancel/:id.
func (h *ManageHandler) Cancel(c echo.Context) error {
	id := c.Param("id")

	err := h.service.Cancel(c.Request().Context(), id)
	if errors.Is(err, domain.ErrTimeslotNotFound) {
		h.log.Warn().Str("slot_id", id).Msg("cancel: unknown timeslot")
		return c.Redirect(http.StatusFound, "/manage")
	}
	if err != nil {
		return err
	}

	metrics.CancellationsTotal.Inc()
	return c.HTML(http.StatusOK, `Reservation cancelled. <a href="/manage">Manage Bookings?</a>`)
}
