package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/slot-booking/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends visitors without a manager identity to the login page.
//   - Turns unknown timeslot ids into a redirect back to the page they came from.
//   - Logs unexpected errors internally without leaking details to the client.
//
// Responses are plain text; the application has no JSON surface apart from
// the health probes.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if location, ok := redirectFor(err, log, c); ok {
			_ = c.Redirect(http.StatusFound, location)
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.String(code, msg)
	}
}

func redirectFor(err error, log zerolog.Logger, c echo.Context) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrManagerRequired):
		return "/login", true
	case errors.Is(err, domain.ErrTimeslotNotFound):
		log.Warn().
			Err(err).
			Str("path", c.Request().URL.Path).
			Msg("unknown timeslot")
		if strings.HasPrefix(c.Request().URL.Path, "/cancel") {
			return "/manage", true
		}
		return "/", true
	}
	return "", false
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
