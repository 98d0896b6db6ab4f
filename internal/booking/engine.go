// Package booking is the reservation engine: slot availability, overlap
// detection, tariff resolution, atomic booking creation and cancellation.
package booking

import (
	"errors"
	"fmt"
	"time"

	appdb "github.com/codr1/courtreserve/internal/db"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds the engine's business settings.
type Config struct {
	OpensAt              TimeOfDay
	ClosesAt             TimeOfDay
	LightingFrom         TimeOfDay // hours at or after this use the lit tariff
	CancellationLeadTime time.Duration
	Location             *time.Location // zone that booking dates and times are expressed in

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns 08:00-23:00 opening, lit pricing from 19:00 and a
// 24h cancellation lead time in UTC.
func DefaultConfig() Config {
	return Config{
		OpensAt:              At(8, 0),
		ClosesAt:             At(23, 0),
		LightingFrom:         At(19, 0),
		CancellationLeadTime: 24 * time.Hour,
		Location:             time.UTC,
	}
}

// ConfigFromSettings builds a Config from the string settings of the
// application config file.
func ConfigFromSettings(opensAt, closesAt, lightingFrom string, cancellationLeadHours int, timezone string) (Config, error) {
	cfg := DefaultConfig()

	var err error
	if cfg.OpensAt, err = ParseTimeOfDay(opensAt); err != nil {
		return Config{}, fmt.Errorf("opens_at: %w", err)
	}
	if cfg.ClosesAt, err = ParseTimeOfDay(closesAt); err != nil {
		return Config{}, fmt.Errorf("closes_at: %w", err)
	}
	if cfg.LightingFrom, err = ParseTimeOfDay(lightingFrom); err != nil {
		return Config{}, fmt.Errorf("lighting_from: %w", err)
	}
	if cancellationLeadHours < 0 {
		return Config{}, fmt.Errorf("cancellation lead hours must be 0 or greater")
	}
	cfg.CancellationLeadTime = time.Duration(cancellationLeadHours) * time.Hour
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return Config{}, fmt.Errorf("timezone: %w", err)
		}
		cfg.Location = loc
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if !c.OpensAt.OnTheHour() || !c.ClosesAt.OnTheHour() {
		return fmt.Errorf("operating hours must fall on the hour")
	}
	if !c.OpensAt.Valid() || !c.ClosesAt.Valid() || c.ClosesAt <= c.OpensAt {
		return fmt.Errorf("operating hours %s-%s are not a valid range", c.OpensAt, c.ClosesAt)
	}
	if !c.LightingFrom.Valid() {
		return fmt.Errorf("lighting hour %s is out of range", c.LightingFrom)
	}
	if c.CancellationLeadTime < 0 {
		return fmt.Errorf("cancellation lead time must be 0 or greater")
	}
	return nil
}

// Engine serves availability, booking and cancellation requests. It holds no
// mutable state; every call reads the latest committed rows.
type Engine struct {
	db    *appdb.DB
	cfg   Config
	clock Clock
}

func NewEngine(database *appdb.DB, cfg Config) (*Engine, error) {
	if database == nil || database.Queries == nil {
		return nil, errors.New("booking engine requires a database")
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid booking config: %w", err)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	return &Engine{db: database, cfg: cfg, clock: clock}, nil
}

// Config returns the settings the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// StartsAt combines a booking date and time of day into an instant in the
// engine's location.
func (e *Engine) StartsAt(date time.Time, t TimeOfDay) time.Time {
	return e.cfg.StartsAt(date, t)
}

// StartsAt combines a booking date and time of day into a wall-clock time
// in c.Location.
func (c Config) StartsAt(date time.Time, t TimeOfDay) time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), int(t%Hour), 0, 0, loc)
}
