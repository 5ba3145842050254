package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/slot-booking/internal/core/domain"
	"github.com/99minutos/slot-booking/internal/core/ports"
)

// RequireManager guards manager-only routes. Visitors without a valid manager
// in their session are redirected to loginPath rather than rejected.
func RequireManager(auth ports.AuthService, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m, err := auth.RequireManager(c.Request().Context(), SessionFrom(c))
			if err != nil {
				if errors.Is(err, domain.ErrManagerRequired) {
					return c.Redirect(http.StatusFound, loginPath)
				}
				return err
			}
			c.Set(managerKey, m)
			return next(c)
		}
	}
}

// ManagerFrom returns the manager resolved by RequireManager, or nil.
func ManagerFrom(c echo.Context) *domain.Manager {
	m, _ := c.Get(managerKey).(*domain.Manager)
	return m
}
