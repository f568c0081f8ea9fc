// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/rohitdhavare/my-expenses-tracker/internal/database"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application configuration
type Config struct {
	Env  string `env:"ENV" envDefault:"development"`
	Port string `env:"PORT" envDefault:"8080"`

	Database  database.Config `envPrefix:"DB_"`
	Alerts    AlertConfig     `envPrefix:"ALERT_"`
	Scheduler SchedulerConfig `envPrefix:"SCHEDULER_"`
	AMQP      AMQPConfig      `envPrefix:"AMQP_"`

	location *time.Location
}

// AlertConfig controls how budget and bill alerts are evaluated and worded.
type AlertConfig struct {
	// Timezone is the IANA zone that defines "today" and the reminder
	// hour/minute. "Local" uses the host zone.
	Timezone         string          `env:"TIMEZONE" envDefault:"Local"`
	CurrencySymbol   string          `env:"CURRENCY_SYMBOL" envDefault:"₹"`
	ApproachingRatio decimal.Decimal `env:"APPROACHING_RATIO" envDefault:"0.9"`
	DedupWindow      time.Duration   `env:"DEDUP_WINDOW" envDefault:"24h"`
}

// SchedulerConfig controls the bill reminder sweep. Only one process in a
// deployment should run with Enabled set.
type SchedulerConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"true"`
	Spec    string `env:"SPEC" envDefault:"0 * * * * *"`
}

// AMQPConfig configures optional notification fan-out. An empty URL
// disables publishing.
type AMQPConfig struct {
	URL        string `env:"URL"`
	Exchange   string `env:"EXCHANGE" envDefault:"notifications"`
	RoutingKey string `env:"ROUTING_KEY" envDefault:"notification.created"`
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := Parse(env.Options{})
	if err != nil {
		return nil, err
	}

	appConfig = cfg
	return cfg, nil
}

// Parse builds a Config from the process environment, or from
// opts.Environment when set, and validates it.
func Parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	loc, err := time.LoadLocation(c.Alerts.Timezone)
	if err != nil {
		return fmt.Errorf("invalid ALERT_TIMEZONE %q: %w", c.Alerts.Timezone, err)
	}
	c.location = loc

	if !c.Alerts.ApproachingRatio.IsPositive() || c.Alerts.ApproachingRatio.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("ALERT_APPROACHING_RATIO must be in (0, 1], got %s", c.Alerts.ApproachingRatio)
	}
	if c.Alerts.DedupWindow <= 0 {
		return fmt.Errorf("ALERT_DEDUP_WINDOW must be positive, got %s", c.Alerts.DedupWindow)
	}
	if c.Scheduler.Enabled && c.Scheduler.Spec == "" {
		return fmt.Errorf("SCHEDULER_SPEC must be set when the scheduler is enabled")
	}
	return nil
}

// Location returns the zone alerts are evaluated in.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}
