package booking

import (
	"context"
	"fmt"
	"time"

	dbgen "github.com/codr1/courtreserve/internal/db/generated"
)

// Overlaps reports whether a confirmed booking on the court and date
// intersects [start, end). Ranges that only touch do not overlap.
func Overlaps(ctx context.Context, q dbgen.Querier, courtID int64, date time.Time, start, end TimeOfDay) (bool, error) {
	count, err := q.CountOverlappingBookings(ctx, dbgen.CountOverlappingBookingsParams{
		CourtID:   courtID,
		Date:      FormatDate(date),
		EndTime:   end.String(),
		StartTime: start.String(),
	})
	if err != nil {
		return false, fmt.Errorf("count overlapping bookings: %w", err)
	}
	return count > 0, nil
}

// BlockedByBlackout reports whether an administrative blackout on the court
// and date intersects [start, end).
func BlockedByBlackout(ctx context.Context, q dbgen.Querier, courtID int64, date time.Time, start, end TimeOfDay) (bool, error) {
	count, err := q.CountOverlappingBlackouts(ctx, dbgen.CountOverlappingBlackoutsParams{
		CourtID:   courtID,
		Date:      FormatDate(date),
		EndTime:   end.String(),
		StartTime: start.String(),
	})
	if err != nil {
		return false, fmt.Errorf("count overlapping blackouts: %w", err)
	}
	return count > 0, nil
}

// slotTaken combines both checks; bookings are checked first.
func slotTaken(ctx context.Context, q dbgen.Querier, courtID int64, date time.Time, start, end TimeOfDay) (bool, error) {
	booked, err := Overlaps(ctx, q, courtID, date, start, end)
	if err != nil || booked {
		return booked, err
	}
	return BlockedByBlackout(ctx, q, courtID, date, start, end)
}
