package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dbgen "github.com/codr1/courtreserve/internal/db/generated"
)

// ListBookingsForClient returns every booking of a client, newest first,
// with line items. Cancelled bookings are included.
func (e *Engine) ListBookingsForClient(ctx context.Context, clientID int64) ([]Booking, error) {
	if clientID <= 0 {
		return nil, &RequestError{Rule: "client id must be a positive integer"}
	}

	q := e.db.Queries
	rows, err := q.ListBookingsByClient(ctx, clientID)
	if err != nil {
		return nil, &TransientError{Op: "list bookings", Err: err}
	}

	bookings := make([]Booking, 0, len(rows))
	for _, row := range rows {
		booking, err := withLineItems(ctx, q, row)
		if err != nil {
			return nil, classify("list bookings", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

// GetBooking loads one booking with its line items.
func (e *Engine) GetBooking(ctx context.Context, bookingID int64) (Booking, error) {
	q := e.db.Queries
	row, err := q.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Booking{}, fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
		}
		return Booking{}, &TransientError{Op: "load booking", Err: err}
	}
	booking, err := withLineItems(ctx, q, row)
	if err != nil {
		return Booking{}, classify("load booking", err)
	}
	return booking, nil
}

func withLineItems(ctx context.Context, q dbgen.Querier, row dbgen.Booking) (Booking, error) {
	booking, err := bookingFromRow(row)
	if err != nil {
		return Booking{}, err
	}
	items, err := q.ListBookingLineItems(ctx, row.ID)
	if err != nil {
		return Booking{}, fmt.Errorf("list line items for booking %d: %w", row.ID, err)
	}
	booking.LineItems = lineItemsFromRows(items)
	return booking, nil
}
