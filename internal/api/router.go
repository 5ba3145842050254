package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/99minutos/slot-booking/internal/api/handler"
	"github.com/99minutos/slot-booking/internal/api/middleware"
	"github.com/99minutos/slot-booking/internal/api/views"
	"github.com/99minutos/slot-booking/internal/core/ports"
	"github.com/99minutos/slot-booking/internal/infrastructure/http/handlers"
)

const loginPath = "/login"

// Dependencies is everything NewRouter wires into the Echo instance.
type Dependencies struct {
	Booking  ports.BookingService
	Auth     ports.AuthService
	Session  middleware.SessionConfig
	Renderer echo.Renderer
	// Probes are pinged by the readiness endpoint, keyed by dependency name.
	Probes map[string]handlers.Pinger
	// Registerer and Gatherer back the HTTP metrics and /metrics. Nil means
	// the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = deps.Renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "booking",
		Subsystem:  "http",
		Registerer: deps.Registerer,
	}))
	e.Use(middleware.Session(deps.Session))

	bookingHandler := handler.NewBookingHandler(deps.Booking, deps.Log)
	manageHandler := handler.NewManageHandler(deps.Booking, deps.Log)
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Log)
	requireManager := middleware.RequireManager(deps.Auth, loginPath)

	// --- Customer routes ---
	e.GET("/", bookingHandler.Home)
	e.POST("/book/:id", bookingHandler.Book)
	e.GET("/remind/:id", bookingHandler.Remind)

	// --- Manager routes ---
	e.GET("/manage", manageHandler.Manage, requireManager)
	e.GET("/cancel/:id", manageHandler.Cancel, requireManager)

	// --- Identity routes ---
	e.GET(loginPath, authHandler.LoginPage)
	e.POST(loginPath, authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	e.StaticFS("/css", echo.MustSubFS(views.Static(), "css"))

	// --- Health probes and metrics ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Probes)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: deps.Gatherer,
	}))

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
