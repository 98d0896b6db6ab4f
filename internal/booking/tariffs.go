package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	dbgen "github.com/codr1/courtreserve/internal/db/generated"
)

// TariffTier records which lookup produced a tariff.
type TariffTier string

const (
	TierDay             TariffTier = "day"
	TierLit             TariffTier = "lit"
	TierUnlitFallback   TariffTier = "unlit_fallback"
	TierAnyRateFallback TariffTier = "any_rate_fallback"
)

type Tariff struct {
	ID               int64
	CourtID          int64
	PriceCents       int64
	RequiresLighting bool
	EffectiveFrom    string
	IsCurrent        bool
	Tier             TariffTier
}

// ResolveTariff returns the price applying to one hour on a court and date.
//
// Hours at or after the lighting hour look for a current lit tariff first and
// fall back to the current unlit one. When no current tariff matches, the
// newest tariff in effect on the date is used whatever its flags. Only when
// the court has no tariff in effect at all does it fail with
// NoTariffFoundError.
func (e *Engine) ResolveTariff(ctx context.Context, q dbgen.Querier, courtID int64, date time.Time, hour TimeOfDay) (Tariff, error) {
	requiresLighting := hour >= e.cfg.LightingFrom
	effectiveOn := FormatDate(date)

	tier := TierDay
	if requiresLighting {
		tier = TierLit
	}
	row, err := q.GetCurrentTariff(ctx, dbgen.GetCurrentTariffParams{
		CourtID:          courtID,
		RequiresLighting: requiresLighting,
		EffectiveOn:      effectiveOn,
	})

	if errors.Is(err, sql.ErrNoRows) && requiresLighting {
		tier = TierUnlitFallback
		row, err = q.GetCurrentTariff(ctx, dbgen.GetCurrentTariffParams{
			CourtID:          courtID,
			RequiresLighting: false,
			EffectiveOn:      effectiveOn,
		})
	}

	if errors.Is(err, sql.ErrNoRows) {
		tier = TierAnyRateFallback
		row, err = q.GetLatestTariff(ctx, dbgen.GetLatestTariffParams{
			CourtID:     courtID,
			EffectiveOn: effectiveOn,
		})
	}

	if errors.Is(err, sql.ErrNoRows) {
		return Tariff{}, &NoTariffFoundError{CourtID: courtID, Date: date, Hour: hour}
	}
	if err != nil {
		return Tariff{}, fmt.Errorf("resolve tariff for court %d: %w", courtID, err)
	}

	if tier == TierUnlitFallback || tier == TierAnyRateFallback {
		log.Ctx(ctx).Debug().
			Int64("court_id", courtID).
			Str("date", effectiveOn).
			Str("hour", hour.String()).
			Int64("tariff_id", row.ID).
			Str("tier", string(tier)).
			Msg("Tariff resolved through fallback")
	}

	return Tariff{
		ID:               row.ID,
		CourtID:          row.CourtID,
		PriceCents:       row.PriceCents,
		RequiresLighting: row.RequiresLighting,
		EffectiveFrom:    row.EffectiveFrom,
		IsCurrent:        row.IsCurrent,
		Tier:             tier,
	}, nil
}
