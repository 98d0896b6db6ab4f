package booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/codr1/courtreserve/internal/testutil"
)

func TestCreateBooking_SingleCourt(t *testing.T) {
	f := newFixture(t)
	tariffID := testutil.SeedTariff(t, f.db, f.courtID, 1000, false)

	booking, err := f.engine.CreateBooking(context.Background(), CreateBookingRequest{
		ClientID: f.clientID,
		Date:     mustDate(t, "2025-06-01"),
		Start:    At(10, 0),
		End:      At(12, 0),
		CourtIDs: []int64{f.courtID},
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if booking.ID == 0 || booking.Status != StatusConfirmed {
		t.Fatalf("unexpected booking: %+v", booking)
	}
	if booking.TotalCents != 2000 {
		t.Fatalf("expected total 2000, got %d", booking.TotalCents)
	}
	if booking.Channel != DefaultChannel {
		t.Fatalf("expected default channel, got %q", booking.Channel)
	}
	if !booking.CreatedAt.Equal(f.clock.Now()) {
		t.Fatalf("expected created_at %v, got %v", f.clock.Now(), booking.CreatedAt)
	}
	if len(booking.LineItems) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(booking.LineItems))
	}
	item := booking.LineItems[0]
	if item.CourtName != "Court 5" || item.Hours != 2 || item.SubtotalCents != 2000 || item.TariffID != tariffID {
		t.Fatalf("unexpected line item: %+v", item)
	}

	if n := f.count(t, "SELECT COUNT(*) FROM booking_slots WHERE booking_id = ?", booking.ID); n != 2 {
		t.Fatalf("expected 2 reserved slots, got %d", n)
	}
}

func TestCreateBooking_OverlapRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.SeedTariff(t, f.db, f.courtID, 1000, false)

	if _, err := f.engine.CreateBooking(ctx, CreateBookingRequest{
		ClientID: f.clientID,
		Date:     mustDate(t, "2025-06-01"),
		Start:    At(10, 0),
		End:      At(12, 0),
		CourtIDs: []int64{f.courtID},
	}); err != nil {
		t.Fatalf("first CreateBooking: %v", err)
	}

	_, err := f.engine.CreateBooking(ctx, CreateBookingRequest{
		ClientID: f.clientID,
		Date:     mustDate(t, "2025-06-01"),
		Start:    At(11, 0),
		End:      At(13, 0),
		CourtIDs: []int64{f.courtID},
	})
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
	var slotErr *SlotUnavailableError
	if !errors.As(err, &slotErr) {
		t.Fatalf("expected *SlotUnavailableError, got %T", err)
	}
	if slotErr.CourtID != f.courtID || slotErr.Start != At(11, 0) || slotErr.End != At(12, 0) {
		t.Fatalf("unexpected conflict detail: %+v", slotErr)
	}

	// Back to back is fine.
	if _, err := f.engine.CreateBooking(ctx, CreateBookingRequest{
		ClientID: f.clientID,
		Date:     mustDate(t, "2025-06-01"),
		Start:    At(12, 0),
		End:      At(13, 0),
		CourtIDs: []int64{f.courtID},
	}); err != nil {
		t.Fatalf("adjacent CreateBooking: %v", err)
	}
}

func TestCreateBooking_UnlitFallbackPricing(t *testing.T) {
	f := newFixture(t)
	tariffID := testutil.Exec(t, f.db,
		`INSERT INTO tariffs (court_id, price_cents, requires_lighting, effective_from, is_current)
		 VALUES (?, 1000, 0, '2025-01-01', 1)`, f.courtID)

	booking, err := f.engine.CreateBooking(context.Background(), CreateBookingRequest{
		ClientID: f.clientID,
		Date:     mustDate(t, "2025-06-01"),
		Start:    At(20, 0),
		End:      At(21, 0),
		CourtIDs: []int64{f.courtID},
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	item := booking.LineItems[0]
	if item.SubtotalCents != 1000 || item.TariffID != tariffID {
		t.Fatalf("expected subtotal 1000 with tariff %d, got %+v", tariffID, item)
	}
}

func TestCreateBooking_PricesEachHour(t *testing.T) {
	f := newFixture(t)
	day := testutil.SeedTariff(t, f.db, f.courtID, 1000, false)
	testutil.SeedTariff(t, f.db, f.courtID, 1500, true)

	booking, err := f.engine.CreateBooking(context.Background(), CreateBookingRequest{
		ClientID: f.clientID,
		Date:     mustDate(t, "2025-06-01"),
		Start:    At(17, 0),
		End:      At(21, 0),
		CourtIDs: []int64{f.courtID},
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// 17 and 18 at the day rate, 19 and 20 lit.
	item := booking.LineItems[0]
	if item.SubtotalCents != 5000 || item.Hours != 4 {
		t.Fatalf("expected 4 hours totalling 5000, got %+v", item)
	}
	if item.TariffID != day {
		t.Fatalf("expected reference tariff from the start hour %d, got %d", day, item.TariffID)
	}
}

func TestCreateBooking_MultiCourt(t *testing.T) {
	f := newFixture(t)
	court2 := f.addCourt(t, "Court 6")
	testutil.SeedTariff(t, f.db, f.courtID, 1000, false)
	testutil.SeedTariff(t, f.db, court2, 1200, false)

	booking, err := f.engine.CreateBooking(context.Background(), CreateBookingRequest{
		ClientID: f.clientID,
		Date:     mustDate(t, "2025-06-01"),
		Start:    At(9, 0),
		End:      At(11, 0),
		CourtIDs: []int64{court2, f.courtID, court2},
		Channel:  " phone ",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if booking.TotalCents != 4400 {
		t.Fatalf("expected total 4400, got %d", booking.TotalCents)
	}
	if booking.Channel != "phone" {
		t.Fatalf("expected channel phone, got %q", booking.Channel)
	}
	if len(booking.LineItems) != 2 {
		t.Fatalf("expected duplicate court ids to collapse to 2 line items, got %d", len(booking.LineItems))
	}
	if booking.LineItems[0].CourtID != court2 || booking.LineItems[0].CourtName != "Court 6" {
		t.Fatalf("expected request order preserved, got %+v", booking.LineItems)
	}
}

func TestCreateBooking_AtomicWhenSecondCourtUnavailable(t *testing.T) {
	f := newFixture(t)
	court2 := f.addCourt(t, "Court 6")
	testutil.SeedTariff(t, f.db, f.courtID, 1000, false)
	testutil.SeedTariff(t, f.db, court2, 1000, false)
	testutil.SeedBlackout(t, f.db, court2, "2025-06-01", "10:00", "11:00")

	_, err := f.engine.CreateBooking(context.Background(), CreateBookingRequest{
		ClientID: f.clientID,
		Date:     mustDate(t, "2025-06-01"),
		Start:    At(9, 0),
		End:      At(11, 0),
		CourtIDs: []int64{f.courtID, court2},
	})
	var slotErr *SlotUnavailableError
	if !errors.As(err, &slotErr) || slotErr.CourtID != court2 || slotErr.Start != At(10, 0) {
		t.Fatalf("expected court %d unavailable at 10:00, got %v", court2, err)
	}

	for _, table := range []string{"bookings", "booking_line_items", "booking_slots"} {
		if n := f.count(t, "SELECT COUNT(*) FROM "+table); n != 0 {
			t.Errorf("expected no rows in %s, got %d", table, n)
		}
	}
}

func TestCreateBooking_NoTariffRollsBack(t *testing.T) {
	f := newFixture(t)
	court2 := f.addCourt(t, "Court 6")
	testutil.SeedTariff(t, f.db, f.courtID, 1000, false)

	_, err := f.engine.CreateBooking(context.Background(), CreateBookingRequest{
		ClientID: f.clientID,
		Date:     mustDate(t, "2025-06-01"),
		Start:    At(9, 0),
		End:      At(10, 0),
		CourtIDs: []int64{f.courtID, court2},
	})
	if !errors.Is(err, ErrNoTariffFound) {
		t.Fatalf("expected ErrNoTariffFound, got %v", err)
	}
	if n := f.count(t, "SELECT COUNT(*) FROM bookings"); n != 0 {
		t.Fatalf("expected no bookings, got %d", n)
	}
}

func TestCreateBooking_InvalidRequests(t *testing.T) {
	f := newFixture(t)
	testutil.SeedTariff(t, f.db, f.courtID, 1000, false)
	inactive := f.addCourt(t, "Court 7")
	testutil.Exec(t, f.db, "UPDATE courts SET is_active = 0 WHERE id = ?", inactive)

	valid := func() CreateBookingRequest {
		return CreateBookingRequest{
			ClientID: f.clientID,
			Date:     mustDate(t, "2025-06-01"),
			Start:    At(10, 0),
			End:      At(11, 0),
			CourtIDs: []int64{f.courtID},
		}
	}

	tests := []struct {
		name   string
		modify func(*CreateBookingRequest)
	}{
		{"missing client", func(r *CreateBookingRequest) { r.ClientID = 0 }},
		{"no courts", func(r *CreateBookingRequest) { r.CourtIDs = nil }},
		{"negative court", func(r *CreateBookingRequest) { r.CourtIDs = []int64{-1} }},
		{"missing date", func(r *CreateBookingRequest) { r.Date = time.Time{} }},
		{"empty range", func(r *CreateBookingRequest) { r.End = r.Start }},
		{"reversed range", func(r *CreateBookingRequest) { r.Start, r.End = At(12, 0), At(10, 0) }},
		{"misaligned start", func(r *CreateBookingRequest) { r.Start = At(10, 30); r.End = At(11, 30) }},
		{"partial hour", func(r *CreateBookingRequest) { r.End = At(11, 30) }},
		{"before opening", func(r *CreateBookingRequest) { r.Start = At(7, 0) }},
		{"after closing", func(r *CreateBookingRequest) { r.Start, r.End = At(22, 0), EndOfDay }},
		{"in the past", func(r *CreateBookingRequest) { r.Date = mustDate(t, "2025-04-30") }},
		{"unknown court", func(r *CreateBookingRequest) { r.CourtIDs = []int64{9999} }},
		{"inactive court", func(r *CreateBookingRequest) { r.CourtIDs = []int64{inactive} }},
		{"unknown client", func(r *CreateBookingRequest) { r.ClientID = 9999 }},
		{"channel too long", func(r *CreateBookingRequest) { r.Channel = strings.Repeat("x", maxChannelLength+1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.modify(&req)
			_, err := f.engine.CreateBooking(context.Background(), req)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}

	if n := f.count(t, "SELECT COUNT(*) FROM bookings"); n != 0 {
		t.Fatalf("expected no bookings, got %d", n)
	}
}

func TestCreateBooking_ConcurrentRequestsForSameSlot(t *testing.T) {
	f := newFixture(t)
	testutil.SeedTariff(t, f.db, f.courtID, 1000, false)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
		others    []error
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			// Staggered ranges that all cover 11:00-12:00.
			from := At(10, 0) + TimeOfDay(i%2)*Hour
			_, err := f.engine.CreateBooking(context.Background(), CreateBookingRequest{
				ClientID: f.clientID,
				Date:     mustDate(t, "2025-06-01"),
				Start:    from,
				End:      from + 2*Hour,
				CourtIDs: []int64{f.courtID},
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotUnavailable):
				conflicts++
			default:
				others = append(others, err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	if len(others) > 0 {
		t.Fatalf("unexpected errors: %v", others)
	}
	if succeeded != 1 || conflicts != workers-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", workers-1, succeeded, conflicts)
	}
	if n := f.count(t, "SELECT COUNT(*) FROM bookings WHERE status = 'confirmed'"); n != 1 {
		t.Fatalf("expected 1 confirmed booking, got %d", n)
	}
}

func TestCreateBooking_ChannelLengthCountsTrimmedValue(t *testing.T) {
	f := newFixture(t)
	testutil.SeedTariff(t, f.db, f.courtID, 1000, false)

	channel := strings.Repeat("k", maxChannelLength)
	booking, err := f.engine.CreateBooking(context.Background(), CreateBookingRequest{
		ClientID: f.clientID,
		Date:     mustDate(t, "2025-06-01"),
		Start:    At(10, 0),
		End:      At(11, 0),
		CourtIDs: []int64{f.courtID},
		Channel:  "  " + channel + "  ",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if booking.Channel != channel {
		t.Fatalf("expected trimmed channel, got %q", booking.Channel)
	}
}
