package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/codr1/courtreserve/internal/booking"
	"github.com/codr1/courtreserve/internal/events"
	"github.com/codr1/courtreserve/internal/testutil"
)

type published struct {
	key   string
	event events.BookingEvent
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	event, _ := v.(events.BookingEvent)
	p.events = append(p.events, published{key: key, event: event})
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type recordingSender struct {
	subjects chan string
}

func (s *recordingSender) Send(ctx context.Context, recipient, subject, body string) error {
	s.subjects <- subject
	return nil
}

func sampleBooking(t *testing.T, clientID int64) booking.Booking {
	t.Helper()
	date, err := booking.ParseDate("2025-06-10")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return booking.Booking{
		ID:         4,
		ClientID:   clientID,
		Date:       date,
		Start:      booking.At(10, 0),
		End:        booking.At(11, 0),
		Status:     booking.StatusConfirmed,
		Channel:    "web",
		TotalCents: 1000,
		LineItems:  []booking.LineItem{{CourtID: 5, CourtName: "Court 5"}},
	}
}

func TestDispatcher_BookingCreated(t *testing.T) {
	database := testutil.NewTestDB(t)
	clientID := testutil.SeedClient(t, database, "ana")
	publisher := &recordingPublisher{}
	sender := &recordingSender{subjects: make(chan string, 1)}

	d := NewDispatcher(database.Queries, sender, publisher, booking.DefaultConfig())
	d.BookingCreated(context.Background(), sampleBooking(t, clientID))

	select {
	case subject := <-sender.subjects:
		if subject != "Court Booking Confirmed - 2025-06-10" {
			t.Fatalf("unexpected subject %q", subject)
		}
	case <-time.After(time.Second):
		t.Fatal("expected confirmation email")
	}

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	if len(publisher.events) != 1 || publisher.events[0].key != events.BookingCreated {
		t.Fatalf("unexpected events: %+v", publisher.events)
	}
	if publisher.events[0].event.BookingID != 4 {
		t.Fatalf("unexpected payload: %+v", publisher.events[0].event)
	}
}

func TestDispatcher_PublishFailureIsSwallowed(t *testing.T) {
	publisher := &recordingPublisher{err: errors.New("connection closed")}

	d := NewDispatcher(nil, nil, publisher, booking.DefaultConfig())
	d.BookingCancelled(context.Background(), sampleBooking(t, 3))

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	if len(publisher.events) != 1 || publisher.events[0].key != events.BookingCancelled {
		t.Fatalf("unexpected events: %+v", publisher.events)
	}
}

func TestDetails_CancellationDeadline(t *testing.T) {
	cfg := booking.DefaultConfig()
	details := Details(sampleBooking(t, 3), "Ana", cfg)

	if details.CancellationDeadline != "2025-06-09 10:00 UTC" {
		t.Fatalf("unexpected deadline %q", details.CancellationDeadline)
	}
	if details.TimeRange != "10:00 - 11:00" || details.Courts != "Court 5" || details.Total != "$10.00" {
		t.Fatalf("unexpected details: %+v", details)
	}
}

func TestDetails_DeadlineOnDSTChange(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	cfg := booking.DefaultConfig()
	cfg.Location = newYork

	b := sampleBooking(t, 3)
	if b.Date, err = booking.ParseDate("2025-03-09"); err != nil {
		t.Fatalf("parse date: %v", err)
	}

	// 10:00 EDT on the changeover day minus 24h is 09:00 EST the day before.
	if got := Details(b, "Ana", cfg).CancellationDeadline; got != "2025-03-08 09:00 EST" {
		t.Fatalf("unexpected deadline %q", got)
	}
}

func TestCourtLabel(t *testing.T) {
	if got := CourtLabel(nil); got != "TBD" {
		t.Fatalf("CourtLabel(nil) = %q", got)
	}
	got := CourtLabel([]booking.LineItem{{CourtID: 5, CourtName: "Court 5"}, {CourtID: 8}})
	if got != "Court 5, Court 8" {
		t.Fatalf("CourtLabel = %q", got)
	}
}
