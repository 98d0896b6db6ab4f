// cmd/server/server.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtreserve/internal/api"
	"github.com/codr1/courtreserve/internal/api/bookings"
	"github.com/codr1/courtreserve/internal/api/courts"
	"github.com/codr1/courtreserve/internal/booking"
	"github.com/codr1/courtreserve/internal/config"
	"github.com/codr1/courtreserve/internal/db"
	"github.com/codr1/courtreserve/internal/email"
	"github.com/codr1/courtreserve/internal/events"
	"github.com/codr1/courtreserve/internal/notify"
	"github.com/codr1/courtreserve/internal/ratelimit"
	"github.com/codr1/courtreserve/internal/scheduler"
)

// app holds the long-lived collaborators the handlers are initialized with.
type app struct {
	db         *db.DB
	engine     *booking.Engine
	limiter    *ratelimit.Limiter
	publisher  events.Publisher
	dispatcher *notify.Dispatcher
}

func newApp(ctx context.Context, cfg *config.Config, database *db.DB) (*app, error) {
	engineCfg, err := booking.ConfigFromSettings(
		cfg.Booking.OpensAt,
		cfg.Booking.ClosesAt,
		cfg.Booking.LightingFrom,
		cfg.Booking.CancellationLeadHours,
		cfg.Booking.Timezone,
	)
	if err != nil {
		return nil, fmt.Errorf("booking config: %w", err)
	}
	engine, err := booking.NewEngine(database, engineCfg)
	if err != nil {
		return nil, err
	}

	a := &app{db: database, engine: engine, publisher: events.NopPublisher{}}

	var emailer email.EmailSender
	if cfg.Email.Enabled {
		ses, err := email.NewSESClient(ctx, cfg.Email.AccessKeyID, cfg.Email.SecretAccessKey, cfg.Email.Region, cfg.Email.Sender)
		if err != nil {
			return nil, fmt.Errorf("email client: %w", err)
		}
		emailer = ses
	} else {
		log.Info().Msg("Email disabled; booking notifications will not be sent")
	}

	if cfg.Events.Enabled {
		publisher, err := events.NewAMQPPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			return nil, fmt.Errorf("event publisher: %w", err)
		}
		a.publisher = publisher
	}

	if cfg.RateLimit.Enabled {
		a.limiter = ratelimit.New(&ratelimit.Config{
			BookingsPerHour: cfg.RateLimit.BookingsPerHour,
			Burst:           cfg.RateLimit.BookingBurst,
			IdleEvict:       time.Duration(cfg.RateLimit.IdleEvictMinutes) * time.Minute,
		})
	}

	a.dispatcher = notify.NewDispatcher(database.Queries, emailer, a.publisher, engine.Config())

	bookings.InitHandlers(engine, a.limiter, a.dispatcher)
	courts.InitHandlers(database.Queries)

	if cfg.Scheduler.Enabled {
		if err := scheduler.Init(); err != nil {
			return nil, fmt.Errorf("scheduler: %w", err)
		}
		err := scheduler.RegisterReminderJobs(database.Queries, engine, emailer, scheduler.ReminderOptions{
			Cron:        cfg.Scheduler.ReminderCron,
			HoursBefore: cfg.Scheduler.ReminderHoursBefore,
			Window:      time.Duration(cfg.Scheduler.ReminderWindowMinutes) * time.Minute,
		})
		if err != nil {
			return nil, err
		}
		if err := scheduler.Start(); err != nil {
			return nil, fmt.Errorf("scheduler start: %w", err)
		}
	}

	return a, nil
}

func (a *app) Close() {
	if a.limiter != nil {
		a.limiter.Close()
	}
	if err := a.publisher.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close event publisher")
	}
}

func newServer(cfg *config.Config, a *app) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	// Register routes
	registerRoutes(router, a)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, a *app) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.db.PingContext(ctx); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Health check failed")
			http.Error(w, "Database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Catalogue routes
	mux.HandleFunc("GET /api/v1/complexes", courts.HandleListComplexes)
	mux.HandleFunc("GET /api/v1/complexes/{id}/courts", courts.HandleListCourts)

	// Booking routes
	mux.HandleFunc("GET /api/v1/courts/{id}/slots", bookings.HandleFreeSlots)
	mux.HandleFunc("POST /api/v1/bookings", bookings.HandleCreateBooking)
	mux.HandleFunc("GET /api/v1/bookings", bookings.HandleListBookings)
	mux.HandleFunc("POST /api/v1/bookings/{id}/cancel", bookings.HandleCancelBooking)
}
