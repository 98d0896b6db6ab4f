// Package events publishes booking lifecycle events to a RabbitMQ topic
// exchange.
package events

import (
	"time"

	"github.com/codr1/courtreserve/internal/booking"
)

const (
	BookingCreated   = "booking.created"
	BookingCancelled = "booking.cancelled"
)

// BookingEvent is the JSON payload for both routing keys.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  int64     `json:"booking_id"`
	ClientID   int64     `json:"client_id"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	CourtIDs   []int64   `json:"court_ids"`
	TotalCents int64     `json:"total_cents"`
	Channel    string    `json:"channel"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b booking.Booking, at time.Time) BookingEvent {
	courtIDs := make([]int64, 0, len(b.LineItems))
	for _, item := range b.LineItems {
		courtIDs = append(courtIDs, item.CourtID)
	}
	return BookingEvent{
		Type:       eventType,
		BookingID:  b.ID,
		ClientID:   b.ClientID,
		Date:       booking.FormatDate(b.Date),
		StartTime:  b.Start.String(),
		EndTime:    b.End.String(),
		CourtIDs:   courtIDs,
		TotalCents: b.TotalCents,
		Channel:    b.Channel,
		Status:     string(b.Status),
		OccurredAt: at.UTC(),
	}
}
