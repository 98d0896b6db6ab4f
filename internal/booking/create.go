package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appdb "github.com/codr1/courtreserve/internal/db"
	dbgen "github.com/codr1/courtreserve/internal/db/generated"
)

const maxChannelLength = 32

// courtPlan is the priced, availability-checked share of one court in a
// booking request, computed inside the write transaction.
type courtPlan struct {
	court     dbgen.Court
	reference Tariff
	hours     int
	subtotal  int64
}

// CreateBooking books every requested court for [Start, End) on Date.
//
// Each court is walked hour by hour: a clash with a confirmed booking or a
// blackout aborts the whole request with SlotUnavailableError, otherwise the
// hour is priced with ResolveTariff. The booking, its line items and the
// per-hour slot rows are written in one transaction; nothing is persisted
// unless every court succeeds.
func (e *Engine) CreateBooking(ctx context.Context, req CreateBookingRequest) (Booking, error) {
	courtIDs, err := e.validateCreate(req)
	if err != nil {
		return Booking{}, err
	}

	date := normalizeDate(req.Date)
	channel := strings.TrimSpace(req.Channel)
	if channel == "" {
		channel = DefaultChannel
	}

	logger := log.Ctx(ctx).With().
		Str("component", "booking_engine").
		Int64("client_id", req.ClientID).
		Str("date", FormatDate(date)).
		Str("start", req.Start.String()).
		Str("end", req.End.String()).
		Ints64("court_ids", courtIDs).
		Logger()

	var created Booking
	err = e.db.RunInTx(ctx, func(txdb *appdb.DB) error {
		q := txdb.Queries

		plans := make([]courtPlan, 0, len(courtIDs))
		var total int64
		for _, courtID := range courtIDs {
			plan, err := e.planCourt(ctx, q, courtID, date, req.Start, req.End)
			if err != nil {
				return err
			}
			plans = append(plans, plan)
			total += plan.subtotal
		}

		row, err := q.CreateBooking(ctx, dbgen.CreateBookingParams{
			ClientID:   req.ClientID,
			Date:       FormatDate(date),
			StartTime:  req.Start.String(),
			EndTime:    req.End.String(),
			Status:     string(StatusConfirmed),
			Channel:    channel,
			TotalCents: total,
			CreatedAt:  e.clock.Now().UTC(),
		})
		if err != nil {
			if appdb.IsForeignKeyViolation(err) {
				return &RequestError{Rule: fmt.Sprintf("client %d does not exist", req.ClientID)}
			}
			return fmt.Errorf("insert booking: %w", err)
		}

		booking, err := bookingFromRow(row)
		if err != nil {
			return err
		}

		for _, plan := range plans {
			item, err := q.CreateBookingLineItem(ctx, dbgen.CreateBookingLineItemParams{
				BookingID:     row.ID,
				CourtID:       plan.court.ID,
				TariffID:      plan.reference.ID,
				Hours:         int64(plan.hours),
				SubtotalCents: plan.subtotal,
			})
			if err != nil {
				return fmt.Errorf("insert line item for court %d: %w", plan.court.ID, err)
			}
			if err := reserveSlots(ctx, q, row.ID, plan.court.ID, date, req.Start, req.End); err != nil {
				return err
			}
			booking.LineItems = append(booking.LineItems, LineItem{
				ID:            item.ID,
				CourtID:       item.CourtID,
				CourtName:     plan.court.Name,
				TariffID:      item.TariffID,
				Hours:         int(item.Hours),
				SubtotalCents: item.SubtotalCents,
			})
		}

		created = booking
		return nil
	})
	if err != nil {
		err = classify("create booking", err)
		logBookingFailure(logger, err)
		return Booking{}, err
	}

	logger.Info().
		Int64("booking_id", created.ID).
		Int64("total_cents", created.TotalCents).
		Msg("Booking created")
	return created, nil
}

func (e *Engine) validateCreate(req CreateBookingRequest) ([]int64, error) {
	switch {
	case req.ClientID <= 0:
		return nil, &RequestError{Rule: "client id must be a positive integer"}
	case len(req.CourtIDs) == 0:
		return nil, &RequestError{Rule: "at least one court must be selected"}
	case req.Date.IsZero():
		return nil, &RequestError{Rule: "date is required"}
	case !req.Start.Valid() || !req.End.Valid():
		return nil, &RequestError{Rule: "times must fall within the day"}
	case req.End <= req.Start || !req.Start.OnTheHour() || (req.End-req.Start)%Hour != 0:
		return nil, &RequestError{Rule: "bookings must be in 1-hour blocks"}
	case req.Start < e.cfg.OpensAt || req.End > e.cfg.ClosesAt:
		return nil, &RequestError{Rule: fmt.Sprintf("bookings must fall within opening hours %s-%s", e.cfg.OpensAt, e.cfg.ClosesAt)}
	case e.StartsAt(req.Date, req.Start).Before(e.clock.Now()):
		return nil, &RequestError{Rule: "bookings cannot start in the past"}
	}

	if len(strings.TrimSpace(req.Channel)) > maxChannelLength {
		return nil, &RequestError{Rule: fmt.Sprintf("channel must be at most %d characters", maxChannelLength)}
	}

	seen := make(map[int64]struct{}, len(req.CourtIDs))
	courtIDs := make([]int64, 0, len(req.CourtIDs))
	for _, courtID := range req.CourtIDs {
		if courtID <= 0 {
			return nil, &RequestError{Rule: "court ids must be positive integers"}
		}
		if _, ok := seen[courtID]; ok {
			continue
		}
		seen[courtID] = struct{}{}
		courtIDs = append(courtIDs, courtID)
	}
	return courtIDs, nil
}

func (e *Engine) planCourt(ctx context.Context, q dbgen.Querier, courtID int64, date time.Time, start, end TimeOfDay) (courtPlan, error) {
	court, err := q.GetCourt(ctx, courtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return courtPlan{}, &RequestError{Rule: fmt.Sprintf("court %d does not exist", courtID)}
		}
		return courtPlan{}, fmt.Errorf("load court %d: %w", courtID, err)
	}
	if !court.IsActive {
		return courtPlan{}, &RequestError{Rule: fmt.Sprintf("court %d is not accepting bookings", courtID)}
	}

	plan := courtPlan{court: court}
	for h := start; h < end; h += Hour {
		taken, err := slotTaken(ctx, q, courtID, date, h, h+Hour)
		if err != nil {
			return courtPlan{}, err
		}
		if taken {
			return courtPlan{}, &SlotUnavailableError{CourtID: courtID, Start: h, End: h + Hour}
		}

		tariff, err := e.ResolveTariff(ctx, q, courtID, date, h)
		if err != nil {
			return courtPlan{}, err
		}
		if h == start {
			plan.reference = tariff
		}
		plan.subtotal += tariff.PriceCents
		plan.hours++
	}
	return plan, nil
}

// reserveSlots claims one booking_slots row per hour. A primary key clash
// means another transaction holds the hour.
func reserveSlots(ctx context.Context, q dbgen.Querier, bookingID, courtID int64, date time.Time, start, end TimeOfDay) error {
	for h := start; h < end; h += Hour {
		err := q.ReserveBookingSlot(ctx, dbgen.ReserveBookingSlotParams{
			CourtID:   courtID,
			Date:      FormatDate(date),
			Hour:      int64(h.Hour()),
			BookingID: bookingID,
		})
		if err == nil {
			continue
		}
		if appdb.IsUniqueViolation(err) {
			return &SlotUnavailableError{CourtID: courtID, Start: h, End: h + Hour}
		}
		return fmt.Errorf("reserve slot %s on court %d: %w", h, courtID, err)
	}
	return nil
}

func logBookingFailure(logger zerolog.Logger, err error) {
	switch {
	case errors.Is(err, ErrTransient):
		logger.Error().Err(err).Msg("Failed to create booking")
	case errors.Is(err, ErrNoTariffFound):
		logger.Warn().Err(err).Msg("Booking rejected: court has no tariff configured")
	default:
		logger.Debug().Err(err).Msg("Booking rejected")
	}
}
