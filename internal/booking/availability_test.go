package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/codr1/courtreserve/internal/testutil"
)

func TestListFreeSlots_EmptyCourt(t *testing.T) {
	f := newFixture(t)

	slots, err := f.engine.ListFreeSlots(context.Background(), f.courtID, mustDate(t, "2025-06-01"))
	if err != nil {
		t.Fatalf("ListFreeSlots: %v", err)
	}
	if len(slots) != 15 {
		t.Fatalf("expected 15 slots, got %d", len(slots))
	}
	if slots[0].Start != At(8, 0) || slots[0].End != At(9, 0) {
		t.Fatalf("unexpected first slot %s-%s", slots[0].Start, slots[0].End)
	}
	last := slots[len(slots)-1]
	if last.Start != At(22, 0) || last.End != At(23, 0) {
		t.Fatalf("unexpected last slot %s-%s", last.Start, last.End)
	}
}

func TestListFreeSlots_ExcludesBookingsAndBlackouts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.SeedTariff(t, f.db, f.courtID, 1000, false)
	testutil.SeedBlackout(t, f.db, f.courtID, "2025-06-01", "15:00", "16:30")

	if _, err := f.engine.CreateBooking(ctx, CreateBookingRequest{
		ClientID: f.clientID,
		Date:     mustDate(t, "2025-06-01"),
		Start:    At(10, 0),
		End:      At(12, 0),
		CourtIDs: []int64{f.courtID},
	}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	slots, err := f.engine.ListFreeSlots(ctx, f.courtID, mustDate(t, "2025-06-01"))
	if err != nil {
		t.Fatalf("ListFreeSlots: %v", err)
	}

	// 10-12 booked, 15-17 touched by the 15:00-16:30 blackout.
	if len(slots) != 11 {
		t.Fatalf("expected 11 slots, got %d: %v", len(slots), slots)
	}
	for _, slot := range slots {
		switch slot.Start {
		case At(10, 0), At(11, 0), At(15, 0), At(16, 0):
			t.Errorf("slot %s-%s should not be free", slot.Start, slot.End)
		}
	}

	// Other dates are unaffected.
	other, err := f.engine.ListFreeSlots(ctx, f.courtID, mustDate(t, "2025-06-02"))
	if err != nil {
		t.Fatalf("ListFreeSlots: %v", err)
	}
	if len(other) != 15 {
		t.Fatalf("expected 15 slots on another date, got %d", len(other))
	}
}

func TestListFreeSlots_CancelledBookingFreesHours(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	testutil.SeedTariff(t, f.db, f.courtID, 1000, false)

	booking, err := f.engine.CreateBooking(ctx, CreateBookingRequest{
		ClientID: f.clientID,
		Date:     mustDate(t, "2025-06-01"),
		Start:    At(18, 0),
		End:      At(19, 0),
		CourtIDs: []int64{f.courtID},
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if ok, err := f.engine.CancelBooking(ctx, booking.ID, f.clientID); err != nil || !ok {
		t.Fatalf("CancelBooking: ok=%v err=%v", ok, err)
	}

	slots, err := f.engine.ListFreeSlots(ctx, f.courtID, mustDate(t, "2025-06-01"))
	if err != nil {
		t.Fatalf("ListFreeSlots: %v", err)
	}
	if len(slots) != 15 {
		t.Fatalf("expected 15 slots after cancellation, got %d", len(slots))
	}
}

func TestListFreeSlots_UnknownCourt(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.ListFreeSlots(context.Background(), 9999, mustDate(t, "2025-06-01"))
	if !errors.Is(err, ErrCourtNotFound) {
		t.Fatalf("expected ErrCourtNotFound, got %v", err)
	}
}

func TestFreeSlots_IsLazyAndRestartable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := mustDate(t, "2025-06-01")
	testutil.SeedTariff(t, f.db, f.courtID, 1000, false)

	seq := f.engine.FreeSlots(ctx, f.courtID, date, At(8, 0), At(23, 0))

	var first Slot
	for slot, err := range seq {
		if err != nil {
			t.Fatalf("FreeSlots: %v", err)
		}
		first = slot
		break
	}
	if first.Start != At(8, 0) {
		t.Fatalf("expected first slot at 08:00, got %s", first.Start)
	}

	if _, err := f.engine.CreateBooking(ctx, CreateBookingRequest{
		ClientID: f.clientID,
		Date:     date,
		Start:    At(8, 0),
		End:      At(9, 0),
		CourtIDs: []int64{f.courtID},
	}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// Ranging again reads the newly committed booking.
	for slot, err := range seq {
		if err != nil {
			t.Fatalf("FreeSlots: %v", err)
		}
		if slot.Start != At(9, 0) {
			t.Fatalf("expected first slot at 09:00 after booking, got %s", slot.Start)
		}
		break
	}
}

func TestFreeSlots_YieldsStorageError(t *testing.T) {
	f := newFixture(t)
	_ = f.db.Close()

	var errs int
	for _, err := range f.engine.FreeSlots(context.Background(), f.courtID, mustDate(t, "2025-06-01"), At(8, 0), At(23, 0)) {
		if err == nil {
			t.Fatal("expected only an error from a closed database")
		}
		if !errors.Is(err, ErrTransient) {
			t.Fatalf("expected ErrTransient, got %v", err)
		}
		errs++
	}
	if errs != 1 {
		t.Fatalf("expected exactly one error, got %d", errs)
	}
}

func TestOverlaps_TouchingRangesDoNotOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := mustDate(t, "2025-06-01")
	testutil.SeedTariff(t, f.db, f.courtID, 1000, false)
	testutil.SeedBlackout(t, f.db, f.courtID, "2025-06-01", "14:00", "15:00")

	if _, err := f.engine.CreateBooking(ctx, CreateBookingRequest{
		ClientID: f.clientID,
		Date:     date,
		Start:    At(10, 0),
		End:      At(12, 0),
		CourtIDs: []int64{f.courtID},
	}); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	q := f.db.Queries
	tests := []struct {
		name       string
		start, end TimeOfDay
		booked     bool
		blackout   bool
	}{
		{"ends at booking start", At(9, 0), At(10, 0), false, false},
		{"starts at booking end", At(12, 0), At(13, 0), false, false},
		{"inside booking", At(10, 30), At(11, 0), true, false},
		{"covers booking", At(9, 0), At(13, 0), true, false},
		{"ends at blackout start", At(13, 0), At(14, 0), false, false},
		{"inside blackout", At(14, 0), At(15, 0), false, true},
		{"starts at blackout end", At(15, 0), At(16, 0), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booked, err := Overlaps(ctx, q, f.courtID, date, tt.start, tt.end)
			if err != nil {
				t.Fatalf("Overlaps: %v", err)
			}
			if booked != tt.booked {
				t.Errorf("Overlaps = %v, want %v", booked, tt.booked)
			}
			blocked, err := BlockedByBlackout(ctx, q, f.courtID, date, tt.start, tt.end)
			if err != nil {
				t.Fatalf("BlockedByBlackout: %v", err)
			}
			if blocked != tt.blackout {
				t.Errorf("BlockedByBlackout = %v, want %v", blocked, tt.blackout)
			}
		})
	}
}
