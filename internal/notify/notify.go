// Package notify fans committed booking changes out to email and the event
// bus. Delivery failures are logged and never reach the caller.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/courtreserve/internal/booking"
	"github.com/codr1/courtreserve/internal/email"
	"github.com/codr1/courtreserve/internal/events"
)

const publishTimeout = 3 * time.Second

// Dispatcher sends the post-commit side effects of a booking change. Any
// of its collaborators may be nil.
type Dispatcher struct {
	clients   email.ClientLookup
	emailer   email.EmailSender
	publisher events.Publisher
	cfg       booking.Config
	now       func() time.Time
}

func NewDispatcher(clients email.ClientLookup, emailer email.EmailSender, publisher events.Publisher, cfg booking.Config) *Dispatcher {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	now := time.Now
	if cfg.Clock != nil {
		now = cfg.Clock.Now
	}
	return &Dispatcher{
		clients:   clients,
		emailer:   emailer,
		publisher: publisher,
		cfg:       cfg,
		now:       now,
	}
}

func (d *Dispatcher) BookingCreated(ctx context.Context, b booking.Booking) {
	if d == nil {
		return
	}
	logger := log.Ctx(ctx).With().Int64("booking_id", b.ID).Logger()

	msg := email.BuildConfirmationEmail(Details(b, "", d.cfg))
	email.SendToClient(ctx, d.clients, d.emailer, b.ClientID, msg, &logger)

	d.publish(ctx, events.BookingCreated, b)
}

func (d *Dispatcher) BookingCancelled(ctx context.Context, b booking.Booking) {
	if d == nil {
		return
	}
	logger := log.Ctx(ctx).With().Int64("booking_id", b.ID).Logger()

	msg := email.BuildCancellationEmail(Details(b, "", d.cfg))
	email.SendToClient(ctx, d.clients, d.emailer, b.ClientID, msg, &logger)

	d.publish(ctx, events.BookingCancelled, b)
}

func (d *Dispatcher) publish(ctx context.Context, key string, b booking.Booking) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := d.publisher.PublishJSON(pubCtx, key, events.NewBookingEvent(key, b, d.now())); err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			Int64("booking_id", b.ID).
			Str("routing_key", key).
			Msg("Failed to publish booking event")
	}
}

// Details renders a booking for the email templates. The cancellation
// deadline is the booking start minus the lead time, in the engine's zone.
func Details(b booking.Booking, clientName string, cfg booking.Config) email.BookingDetails {
	deadline := cfg.StartsAt(b.Date, b.Start).Add(-cfg.CancellationLeadTime)

	return email.BookingDetails{
		ClientName:           clientName,
		Date:                 booking.FormatDate(b.Date),
		TimeRange:            fmt.Sprintf("%s - %s", b.Start, b.End),
		Courts:               CourtLabel(b.LineItems),
		Total:                email.FormatPriceCents(b.TotalCents),
		Channel:              b.Channel,
		CancellationDeadline: deadline.Format("2006-01-02 15:04 MST"),
	}
}

func CourtLabel(items []booking.LineItem) string {
	if len(items) == 0 {
		return "TBD"
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.CourtName
		if labels[i] == "" {
			labels[i] = fmt.Sprintf("Court %d", item.CourtID)
		}
	}
	return strings.Join(labels, ", ")
}
