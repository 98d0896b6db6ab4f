package booking

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// TimeOfDay is a wall-clock time in minutes since midnight. 24:00 is valid
// and marks the end of the day.
type TimeOfDay int

const (
	Minute   TimeOfDay = 1
	Hour     TimeOfDay = 60 * Minute
	EndOfDay TimeOfDay = 24 * Hour
)

// At builds a TimeOfDay from an hour and minute.
func At(hour, minute int) TimeOfDay {
	return TimeOfDay(hour)*Hour + TimeOfDay(minute)
}

// ParseTimeOfDay parses HH:MM.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	value = strings.TrimSpace(value)
	if value == "24:00" {
		return EndOfDay, nil
	}
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("time of day must be HH:MM, got %q", value)
	}
	return At(parsed.Hour(), parsed.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Hour returns the hour component.
func (t TimeOfDay) Hour() int {
	return int(t / Hour)
}

// OnTheHour reports whether t has no minute component.
func (t TimeOfDay) OnTheHour() bool {
	return t%Hour == 0
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t <= EndOfDay
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseDate parses YYYY-MM-DD into midnight UTC.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD, got %q", value)
	}
	return parsed, nil
}

// FormatDate renders the calendar date of d as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.Format(dateLayout)
}

// normalizeDate drops the clock and location of d, keeping its calendar date.
func normalizeDate(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
