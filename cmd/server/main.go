package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/99minutos/slot-booking/internal/api"
	"github.com/99minutos/slot-booking/internal/api/middleware"
	"github.com/99minutos/slot-booking/internal/api/views"
	"github.com/99minutos/slot-booking/internal/core/service"
	mongostore "github.com/99minutos/slot-booking/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/slot-booking/internal/infrastructure/db/redis"
	"github.com/99minutos/slot-booking/internal/infrastructure/http/handlers"
	"github.com/99minutos/slot-booking/internal/infrastructure/queue"
	"github.com/99minutos/slot-booking/internal/pkg/config"
	"github.com/99minutos/slot-booking/pkg/logger"
)

const (
	serviceName     = "slot-booking"
	shutdownTimeout = 15 * time.Second
	seedTimeout     = 30 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	// --- Stores: either one missing is fatal ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb unavailable")
	}
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		log.Warn().Err(err).Msg("ensure indexes")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}

	timeslots := mongostore.NewTimeslotRepository(db)
	managers := mongostore.NewManagerRepository(db)
	activity := mongostore.NewActivityRepository(db)
	sessions := redisstore.NewSessionStore(rdb, cfg.Session.TTL)

	// --- Background activity writer ---
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activity, logger.Component(log, "activity"))
	dispatcher.Start(ctx)

	bookingService := service.NewBookingService(timeslots, activity, sessions, dispatcher, logger.Component(log, "booking"))
	authService := service.NewAuthService(managers, sessions, logger.Component(log, "auth"))

	seedCtx, cancelSeed := context.WithTimeout(ctx, seedTimeout)
	if err := service.NewSeeder(managers, timeslots, logger.Component(log, "seeder")).Seed(seedCtx); err != nil {
		log.Error().Err(err).Msg("seeding incomplete")
	}
	cancelSeed()

	renderer, err := views.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("templates")
	}

	e := api.NewRouter(api.Dependencies{
		Booking: bookingService,
		Auth:    authService,
		Session: middleware.SessionConfig{
			Store:      sessions,
			Secret:     cfg.Session.Secret,
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.IsProduction(),
			Log:        logger.Component(log, "session"),
		},
		Renderer: renderer,
		Probes: map[string]handlers.Pinger{
			"mongodb": mongostore.NewPinger(db),
			"redis":   redisstore.NewPinger(rdb),
		},
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
		Log:        logger.Component(log, "http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	// Requests have drained; flush the activity queue before closing Mongo.
	dispatcher.Stop()
	dispatcher.Wait()

	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect")
	}
	log.Info().Msg("stopped")
}
