package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/codr1/courtreserve/internal/booking"
	dbgen "github.com/codr1/courtreserve/internal/db/generated"
	"github.com/codr1/courtreserve/internal/email"
	"github.com/codr1/courtreserve/internal/notify"
)

const (
	reminderJobName    = "cancellation_deadline_reminders"
	reminderJobTimeout = 2 * time.Minute
	windowLayout       = "2006-01-02 15:04"
)

// ReminderOptions controls which bookings are reminded on each run.
type ReminderOptions struct {
	Cron        string
	HoursBefore int           // how long before the cancellation deadline to remind
	Window      time.Duration // width of the start-time window scanned per run
}

// BookingLoader loads a booking with its line items.
type BookingLoader interface {
	GetBooking(ctx context.Context, bookingID int64) (booking.Booking, error)
}

type reminderJob struct {
	queries dbgen.Querier
	loader  BookingLoader
	sender  email.EmailSender
	cfg     booking.Config
	opts    ReminderOptions
}

// RegisterReminderJobs registers the job that emails clients whose free
// cancellation window is about to close.
func RegisterReminderJobs(q dbgen.Querier, engine *booking.Engine, sender email.EmailSender, opts ReminderOptions) error {
	if q == nil || engine == nil {
		return fmt.Errorf("reminder jobs require database and engine")
	}
	if opts.Window <= 0 {
		return fmt.Errorf("reminder window must be greater than 0")
	}

	job := &reminderJob{
		queries: q,
		loader:  engine,
		sender:  sender,
		cfg:     engine.Config(),
		opts:    opts,
	}
	jobLogger := log.With().
		Str("component", "reminders_job").
		Str("job_name", reminderJobName).
		Str("cron", opts.Cron).
		Logger()

	_, err := AddJob(reminderJobName, opts.Cron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reminderJobTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		if sender == nil {
			jobLogger.Debug().Msg("Reminder job skipped: email client not configured")
			return
		}
		if _, err := job.run(ctx, time.Now()); err != nil {
			jobLogger.Error().Err(err).Msg("Reminder job failed")
		}
	}, gocron.WithSingletonMode(gocron.LimitModeWait))
	if err != nil {
		return fmt.Errorf("add reminder job: %w", err)
	}

	jobLogger.Info().Msg("Reminder job registered")
	return nil
}

// run sends a reminder for every confirmed booking whose cancellation
// deadline falls in [now+HoursBefore, now+HoursBefore+Window). It returns
// the number of reminders queued.
func (j *reminderJob) run(ctx context.Context, now time.Time) (int, error) {
	logger := log.Ctx(ctx)

	windowStart, windowEnd := j.window(now)
	rows, err := j.queries.ListBookingsStartingBetween(ctx, dbgen.ListBookingsStartingBetweenParams{
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
	})
	if err != nil {
		return 0, fmt.Errorf("list bookings for reminders: %w", err)
	}

	sent := 0
	for _, row := range rows {
		if !row.ClientEmail.Valid || strings.TrimSpace(row.ClientEmail.String) == "" {
			continue
		}
		b, err := j.loader.GetBooking(ctx, row.ID)
		if err != nil {
			logger.Error().Err(err).Int64("booking_id", row.ID).Msg("Failed to load booking for reminder")
			continue
		}

		bookingLogger := logger.With().Int64("booking_id", row.ID).Logger()
		message := email.BuildReminderEmail(notify.Details(b, row.ClientName, j.cfg))
		email.Send(ctx, j.sender, strings.TrimSpace(row.ClientEmail.String), message, &bookingLogger)
		sent++
	}

	if sent > 0 {
		logger.Info().
			Int("reminders", sent).
			Str("window_start", windowStart).
			Str("window_end", windowEnd).
			Msg("Cancellation reminders queued")
	}
	return sent, nil
}

// window converts the deadline window into booking start bounds in the
// engine's zone, formatted the way bookings are stored.
func (j *reminderJob) window(now time.Time) (string, string) {
	loc := j.cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	start := now.Add(time.Duration(j.opts.HoursBefore)*time.Hour + j.cfg.CancellationLeadTime).In(loc)
	end := start.Add(j.opts.Window)
	return start.Format(windowLayout), end.Format(windowLayout)
}
