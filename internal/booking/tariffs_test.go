package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/codr1/courtreserve/internal/testutil"
)

func TestResolveTariff_FallbackOrder(t *testing.T) {
	ctx := context.Background()
	date := mustDate(t, "2025-06-01")

	t.Run("day hour uses unlit rate", func(t *testing.T) {
		f := newFixture(t)
		unlit := testutil.SeedTariff(t, f.db, f.courtID, 1000, false)
		testutil.SeedTariff(t, f.db, f.courtID, 1500, true)

		tariff, err := f.engine.ResolveTariff(ctx, f.db.Queries, f.courtID, date, At(18, 0))
		if err != nil {
			t.Fatalf("ResolveTariff: %v", err)
		}
		if tariff.ID != unlit || tariff.Tier != TierDay {
			t.Fatalf("expected unlit tariff %d at tier day, got %d at %s", unlit, tariff.ID, tariff.Tier)
		}
	})

	t.Run("lit hour uses lit rate", func(t *testing.T) {
		f := newFixture(t)
		testutil.SeedTariff(t, f.db, f.courtID, 1000, false)
		lit := testutil.SeedTariff(t, f.db, f.courtID, 1500, true)

		tariff, err := f.engine.ResolveTariff(ctx, f.db.Queries, f.courtID, date, At(19, 0))
		if err != nil {
			t.Fatalf("ResolveTariff: %v", err)
		}
		if tariff.ID != lit || tariff.Tier != TierLit || tariff.PriceCents != 1500 {
			t.Fatalf("expected lit tariff %d, got %+v", lit, tariff)
		}
	})

	t.Run("lit hour falls back to unlit rate", func(t *testing.T) {
		f := newFixture(t)
		unlit := testutil.Exec(t, f.db,
			`INSERT INTO tariffs (court_id, price_cents, requires_lighting, effective_from, is_current)
			 VALUES (?, 1000, 0, '2025-01-01', 1)`, f.courtID)

		tariff, err := f.engine.ResolveTariff(ctx, f.db.Queries, f.courtID, date, At(20, 0))
		if err != nil {
			t.Fatalf("ResolveTariff: %v", err)
		}
		if tariff.ID != unlit || tariff.Tier != TierUnlitFallback || tariff.PriceCents != 1000 {
			t.Fatalf("expected unlit fallback %d, got %+v", unlit, tariff)
		}
	})

	t.Run("no current rate falls back to latest effective rate", func(t *testing.T) {
		f := newFixture(t)
		testutil.Exec(t, f.db,
			`INSERT INTO tariffs (court_id, price_cents, requires_lighting, effective_from, is_current)
			 VALUES (?, 800, 0, '2024-01-01', 0)`, f.courtID)
		latest := testutil.Exec(t, f.db,
			`INSERT INTO tariffs (court_id, price_cents, requires_lighting, effective_from, is_current)
			 VALUES (?, 900, 1, '2025-02-01', 0)`, f.courtID)
		// Not yet in effect on the booking date.
		testutil.Exec(t, f.db,
			`INSERT INTO tariffs (court_id, price_cents, requires_lighting, effective_from, is_current)
			 VALUES (?, 5000, 0, '2026-01-01', 0)`, f.courtID)

		tariff, err := f.engine.ResolveTariff(ctx, f.db.Queries, f.courtID, date, At(10, 0))
		if err != nil {
			t.Fatalf("ResolveTariff: %v", err)
		}
		if tariff.ID != latest || tariff.Tier != TierAnyRateFallback {
			t.Fatalf("expected latest tariff %d via any-rate fallback, got %+v", latest, tariff)
		}
	})

	t.Run("newest current rate wins", func(t *testing.T) {
		f := newFixture(t)
		testutil.Exec(t, f.db,
			`INSERT INTO tariffs (court_id, price_cents, requires_lighting, effective_from, is_current)
			 VALUES (?, 1000, 0, '2024-01-01', 1)`, f.courtID)
		newer := testutil.Exec(t, f.db,
			`INSERT INTO tariffs (court_id, price_cents, requires_lighting, effective_from, is_current)
			 VALUES (?, 1200, 0, '2025-03-01', 1)`, f.courtID)

		tariff, err := f.engine.ResolveTariff(ctx, f.db.Queries, f.courtID, date, At(9, 0))
		if err != nil {
			t.Fatalf("ResolveTariff: %v", err)
		}
		if tariff.ID != newer {
			t.Fatalf("expected newest tariff %d, got %d", newer, tariff.ID)
		}
	})

	t.Run("no rate in effect", func(t *testing.T) {
		f := newFixture(t)
		testutil.Exec(t, f.db,
			`INSERT INTO tariffs (court_id, price_cents, requires_lighting, effective_from, is_current)
			 VALUES (?, 1000, 0, '2026-01-01', 1)`, f.courtID)

		_, err := f.engine.ResolveTariff(ctx, f.db.Queries, f.courtID, date, At(10, 0))
		if !errors.Is(err, ErrNoTariffFound) {
			t.Fatalf("expected ErrNoTariffFound, got %v", err)
		}
		var tariffErr *NoTariffFoundError
		if !errors.As(err, &tariffErr) || tariffErr.CourtID != f.courtID || tariffErr.Hour != At(10, 0) {
			t.Fatalf("unexpected error detail: %v", err)
		}
	})
}
