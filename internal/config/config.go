// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

// BookingConfig holds the reservation engine settings. Times are HH:MM.
type BookingConfig struct {
	OpensAt               string `yaml:"opens_at"`
	ClosesAt              string `yaml:"closes_at"`
	LightingFrom          string `yaml:"lighting_from"`
	CancellationLeadHours int    `yaml:"cancellation_lead_hours"`
	Timezone              string `yaml:"timezone"`
}

type RateLimitConfig struct {
	Enabled          bool `yaml:"enabled"`
	BookingsPerHour  int  `yaml:"bookings_per_hour"`
	BookingBurst     int  `yaml:"booking_burst"`
	IdleEvictMinutes int  `yaml:"idle_evict_minutes"`
}

type EmailConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Region          string `yaml:"region"`
	Sender          string `yaml:"sender"`
	AccessKeyID     string `yaml:"-"` // Loaded from environment
	SecretAccessKey string `yaml:"-"` // Loaded from environment
}

type EventsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exchange string `yaml:"exchange"`
	URL      string `yaml:"-"` // Loaded from environment
}

type SchedulerConfig struct {
	Enabled               bool   `yaml:"enabled"`
	ReminderCron          string `yaml:"reminder_cron"`
	ReminderHoursBefore   int    `yaml:"reminder_hours_before"`
	ReminderWindowMinutes int    `yaml:"reminder_window_minutes"`
}

type Config struct {
	App struct {
		Name            string `yaml:"name"`
		Environment     string `yaml:"environment"`
		Port            int    `yaml:"port"`
		ShutdownTimeout int    `yaml:"shutdown_timeout_seconds"`
	} `yaml:"app"`

	Database  DatabaseConfig  `yaml:"database"`
	Booking   BookingConfig   `yaml:"booking"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	Email     EmailConfig     `yaml:"email"`
	Events    EventsConfig    `yaml:"events"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment
	cfg.Email.AccessKeyID = os.Getenv("SES_ACCESS_KEY_ID")
	cfg.Email.SecretAccessKey = os.Getenv("SES_SECRET_ACCESS_KEY")
	cfg.Events.URL = os.Getenv("AMQP_URL")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML on top of the defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used when a key is absent from the file.
func Default() *Config {
	cfg := &Config{}
	cfg.App.Name = "courtreserve"
	cfg.App.Environment = "development"
	cfg.App.Port = 8080
	cfg.App.ShutdownTimeout = 30
	cfg.Database = DatabaseConfig{Driver: "sqlite", Filename: "data/courtreserve.db"}
	cfg.Booking = BookingConfig{
		OpensAt:               "08:00",
		ClosesAt:              "23:00",
		LightingFrom:          "19:00",
		CancellationLeadHours: 24,
		Timezone:              "UTC",
	}
	cfg.RateLimit = RateLimitConfig{
		Enabled:          true,
		BookingsPerHour:  30,
		BookingBurst:     5,
		IdleEvictMinutes: 60,
	}
	cfg.Events.Exchange = "bookings"
	cfg.Scheduler = SchedulerConfig{
		Enabled:               true,
		ReminderCron:          "*/15 * * * *",
		ReminderHoursBefore:   2,
		ReminderWindowMinutes: 15,
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if err := c.Booking.validate(); err != nil {
		return err
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.BookingsPerHour <= 0 {
			return fmt.Errorf("ratelimit bookings_per_hour must be greater than 0")
		}
		if c.RateLimit.BookingBurst <= 0 {
			return fmt.Errorf("ratelimit booking_burst must be greater than 0")
		}
	}

	if c.Email.Enabled {
		if c.Email.Region == "" || c.Email.Sender == "" {
			return fmt.Errorf("email region and sender are required")
		}
		if c.Email.AccessKeyID == "" || c.Email.SecretAccessKey == "" {
			return fmt.Errorf("email credentials are required when email is enabled")
		}
	}

	if c.Events.Enabled {
		if c.Events.URL == "" {
			return fmt.Errorf("AMQP_URL is required when events are enabled")
		}
		if c.Events.Exchange == "" {
			return fmt.Errorf("events exchange is required")
		}
	}

	if c.Scheduler.Enabled {
		if _, err := cron.ParseStandard(c.Scheduler.ReminderCron); err != nil {
			return fmt.Errorf("invalid scheduler reminder_cron %q: %w", c.Scheduler.ReminderCron, err)
		}
		if c.Scheduler.ReminderHoursBefore < 0 {
			return fmt.Errorf("scheduler reminder_hours_before must be 0 or greater")
		}
		if c.Scheduler.ReminderWindowMinutes <= 0 {
			return fmt.Errorf("scheduler reminder_window_minutes must be greater than 0")
		}
	}

	return nil
}

func (b BookingConfig) validate() error {
	opens, err := parseClock(b.OpensAt, "booking opens_at")
	if err != nil {
		return err
	}
	closes, err := parseClock(b.ClosesAt, "booking closes_at")
	if err != nil {
		return err
	}
	if closes <= opens {
		return fmt.Errorf("booking closes_at must be after opens_at")
	}
	if _, err := parseClock(b.LightingFrom, "booking lighting_from"); err != nil {
		return err
	}
	if b.CancellationLeadHours < 0 {
		return fmt.Errorf("booking cancellation_lead_hours must be 0 or greater")
	}
	if _, err := time.LoadLocation(b.Timezone); err != nil {
		return fmt.Errorf("booking timezone %q: %w", b.Timezone, err)
	}
	return nil
}

// parseClock returns minutes since midnight for an HH:MM value. 24:00 is
// accepted as the end of the day.
func parseClock(value, field string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "24:00" {
		return 24 * 60, nil
	}
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("%s must be HH:MM, got %q", field, value)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}
