package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	appdb "github.com/codr1/courtreserve/internal/db"
	dbgen "github.com/codr1/courtreserve/internal/db/generated"
)

// CancelBooking cancels a confirmed booking owned by clientID.
//
// It returns false with a nil error when the booking belongs to another
// client, ErrNotFound when it does not exist, ErrInvalidState when it is no
// longer confirmed and a PolicyError when it starts within the cancellation
// lead time. Exactly the lead time of notice is enough. On success the
// booking's hours are released; its line items are kept.
func (e *Engine) CancelBooking(ctx context.Context, bookingID, clientID int64) (bool, error) {
	logger := log.Ctx(ctx).With().
		Str("component", "booking_engine").
		Int64("booking_id", bookingID).
		Int64("client_id", clientID).
		Logger()

	if bookingID <= 0 {
		return false, fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
	}

	cancelled := false
	err := e.db.RunInTx(ctx, func(txdb *appdb.DB) error {
		q := txdb.Queries

		row, err := q.GetBooking(ctx, bookingID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("booking %d: %w", bookingID, ErrNotFound)
			}
			return fmt.Errorf("load booking: %w", err)
		}
		if row.ClientID != clientID {
			return nil
		}
		if Status(row.Status) != StatusConfirmed {
			return ErrInvalidState
		}

		booking, err := bookingFromRow(row)
		if err != nil {
			return err
		}
		now := e.clock.Now()
		notice := e.StartsAt(booking.Date, booking.Start).Sub(now)
		if notice < e.cfg.CancellationLeadTime {
			return &PolicyError{Notice: notice, Required: e.cfg.CancellationLeadTime}
		}

		affected, err := q.CancelBooking(ctx, dbgen.CancelBookingParams{
			CancelledAt: sql.NullTime{Time: now.UTC(), Valid: true},
			ID:          bookingID,
		})
		if err != nil {
			return fmt.Errorf("update booking status: %w", err)
		}
		if affected == 0 {
			return ErrInvalidState
		}
		if err := q.ReleaseBookingSlots(ctx, bookingID); err != nil {
			return fmt.Errorf("release booking slots: %w", err)
		}

		cancelled = true
		return nil
	})
	if err != nil {
		err = classify("cancel booking", err)
		if errors.Is(err, ErrTransient) {
			logger.Error().Err(err).Msg("Failed to cancel booking")
		} else {
			logger.Debug().Err(err).Msg("Cancellation rejected")
		}
		return false, err
	}

	if !cancelled {
		logger.Warn().Msg("Cancellation attempted by a client that does not own the booking")
		return false, nil
	}

	logger.Info().Msg("Booking cancelled")
	return true, nil
}
