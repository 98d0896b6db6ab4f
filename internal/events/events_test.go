package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/codr1/courtreserve/internal/booking"
)

func TestNewBookingEvent(t *testing.T) {
	date, err := booking.ParseDate("2025-06-01")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	at := time.Date(2025, 5, 1, 11, 0, 0, 0, time.FixedZone("UTC+2", 2*60*60))

	event := NewBookingEvent(BookingCreated, booking.Booking{
		ID:         9,
		ClientID:   3,
		Date:       date,
		Start:      booking.At(10, 0),
		End:        booking.At(12, 0),
		Status:     booking.StatusConfirmed,
		Channel:    "web",
		TotalCents: 4400,
		LineItems: []booking.LineItem{
			{CourtID: 6},
			{CourtID: 5},
		},
	}, at)

	raw, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded["type"] != "booking.created" || decoded["date"] != "2025-06-01" {
		t.Fatalf("unexpected payload: %s", raw)
	}
	if decoded["start_time"] != "10:00" || decoded["end_time"] != "12:00" {
		t.Fatalf("unexpected times: %s", raw)
	}
	if decoded["occurred_at"] != "2025-05-01T09:00:00Z" {
		t.Fatalf("expected UTC timestamp, got %v", decoded["occurred_at"])
	}
	courts, ok := decoded["court_ids"].([]any)
	if !ok || len(courts) != 2 || courts[0] != float64(6) {
		t.Fatalf("unexpected court ids: %v", decoded["court_ids"])
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.PublishJSON(context.Background(), BookingCancelled, struct{}{}); err != nil {
		t.Fatalf("PublishJSON: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
