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

type AuthHandler struct {
	authService ports.AuthService
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, views.PageLogin, loginPage{
		LoggedIn: middleware.SessionFrom(c).ManagerID != "",
	})
}

// Login handles POST /login. Any failure sends the visitor back to the form
// without a message.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return h.loginFailed(c)
	}
	if err := c.Validate(&form); err != nil {
		ev := h.log.Debug().Err(err)
		var fe *FormError
		if errors.As(err, &fe) {
			ev = ev.Strs("fields", fe.Fields)
		}
		ev.Msg("login form rejected")
		return h.loginFailed(c)
	}

	_, err := h.authService.Login(c.Request().Context(), middleware.SessionFrom(c), form.Name)
	if errors.Is(err, domain.ErrLoginFailed) {
		return h.loginFailed(c)
	}
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.Redirect(http.StatusFound, "/manage")
}

// Logout handles GET /logout. The session is dropped locally even when the
// store delete fails, so the visitor always ends up logged out.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.SessionFrom(c)); err != nil {
		h.log.Warn().Err(err).Msg("logout: session store delete failed")
	}
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) loginFailed(c echo.Context) error {
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	return c.Redirect(http.StatusFound, "/login")
}
