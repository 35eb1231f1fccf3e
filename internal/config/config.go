// Package config reads the backend configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config is the configuration of the backend.
type Config struct {
	APIURL           string `envconfig:"API_URL" required:"true"`
	GinMode          string `envconfig:"GIN_MODE" default:"release"`
	LogFormat        string `envconfig:"LOG_FORMAT"`
	CORSAllowOrigins string `envconfig:"CORS_ALLOW_ORIGINS"`
	EnablePprof      bool   `envconfig:"ENABLE_PPROF"`
	DataDir          string `envconfig:"DATA_DIR" default:"data"`

	// PostgreSQL is used when DBHost is set, SQLite otherwise
	DBHost     string `envconfig:"DB_HOST"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"habitat_fund"`

	DonationRateLimit      float64 `envconfig:"DONATION_RATE_LIMIT" default:"10"` // Donations per second and client, 0 disables the limit
	DonationRateBurst      int     `envconfig:"DONATION_RATE_BURST" default:"20"`
	MetricsRefreshSchedule string  `envconfig:"METRICS_REFRESH_SCHEDULE" default:"@every 1m"`

	url *url.URL
}

// Load processes the environment into a Config.
func Load() (Config, error) {
	var cfg Config

	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process environment: %w", err)
	}

	if cfg.APIURL == "" {
		return Config{}, errors.New("environment variable API_URL must be set")
	}

	// Links are built by appending paths, so the URL must not end with a slash
	u, err := url.Parse(strings.TrimSuffix(cfg.APIURL, "/"))
	if err != nil {
		return Config{}, fmt.Errorf("environment variable API_URL must be a valid URL: %w", err)
	}
	cfg.url = u

	if cfg.DonationRateLimit < 0 {
		return Config{}, fmt.Errorf("DONATION_RATE_LIMIT must not be negative, got %v", cfg.DonationRateLimit)
	}

	return cfg, nil
}

// URL returns the parsed API_URL.
func (c Config) URL() *url.URL {
	return c.url
}

// Postgres reports if a PostgreSQL database is configured.
func (c Config) Postgres() bool {
	return c.DBHost != ""
}

// PostgresDSN returns the connection string for PostgreSQL.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s", c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

// HumanLogs reports if logs should be written in a human readable format.
//
// If LOG_FORMAT is not set, this defaults to human readable for debug mode
// and JSON otherwise.
func (c Config) HumanLogs(debug bool) bool {
	return c.LogFormat == "human" || (c.LogFormat == "" && debug)
}
