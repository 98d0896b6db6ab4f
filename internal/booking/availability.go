package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"time"
)

// FreeSlots yields the free one-hour slots of a court between opens and closes,
// in order. Each step queries storage, so a sequence consumed later reflects
// bookings committed in between, and ranging over it again starts afresh.
// On a storage error the sequence yields the error once and stops.
func (e *Engine) FreeSlots(ctx context.Context, courtID int64, date time.Time, opens, closes TimeOfDay) iter.Seq2[Slot, error] {
	return func(yield func(Slot, error) bool) {
		q := e.db.Queries
		for h := opens; h+Hour <= closes; h += Hour {
			taken, err := slotTaken(ctx, q, courtID, date, h, h+Hour)
			if err != nil {
				yield(Slot{}, &TransientError{Op: "list free slots", Err: err})
				return
			}
			if taken {
				continue
			}
			if !yield(Slot{Start: h, End: h + Hour}, nil) {
				return
			}
		}
	}
}

// ListFreeSlots collects the free slots of a court within the configured
// operating hours.
func (e *Engine) ListFreeSlots(ctx context.Context, courtID int64, date time.Time) ([]Slot, error) {
	if _, err := e.db.Queries.GetCourt(ctx, courtID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("court %d: %w", courtID, ErrCourtNotFound)
		}
		return nil, &TransientError{Op: "load court", Err: err}
	}

	slots := make([]Slot, 0, int((e.cfg.ClosesAt-e.cfg.OpensAt)/Hour))
	for slot, err := range e.FreeSlots(ctx, courtID, normalizeDate(date), e.cfg.OpensAt, e.cfg.ClosesAt) {
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
