package testutil

import (
	"fmt"
	"testing"

	"github.com/codr1/courtreserve/internal/db"
)

func SeedComplex(t *testing.T, database *db.DB, name string) int64 {
	t.Helper()
	return Exec(t, database, "INSERT INTO complexes (name) VALUES (?)", name)
}

func SeedCourt(t *testing.T, database *db.DB, complexID int64, name string) int64 {
	t.Helper()
	return Exec(t, database,
		"INSERT INTO courts (complex_id, name, court_type, is_active) VALUES (?, ?, 'padel', 1)",
		complexID, name)
}

func SeedClient(t *testing.T, database *db.DB, name string) int64 {
	t.Helper()
	return Exec(t, database,
		"INSERT INTO clients (name, email) VALUES (?, ?)",
		name, fmt.Sprintf("%s@example.com", name))
}

// SeedTariff inserts a current tariff effective from 2000-01-01.
func SeedTariff(t *testing.T, database *db.DB, courtID, priceCents int64, requiresLighting bool) int64 {
	t.Helper()
	return Exec(t, database,
		`INSERT INTO tariffs (court_id, price_cents, requires_lighting, effective_from, is_current)
		 VALUES (?, ?, ?, '2000-01-01', 1)`,
		courtID, priceCents, requiresLighting)
}

func SeedBlackout(t *testing.T, database *db.DB, courtID int64, date, start, end string) int64 {
	t.Helper()
	return Exec(t, database,
		`INSERT INTO blackouts (court_id, date, start_time, end_time, reason)
		 VALUES (?, ?, ?, ?, 'maintenance')`,
		courtID, date, start, end)
}
