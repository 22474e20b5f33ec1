package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DateFallback controls what the CSV importer does with rows whose
// date cannot be parsed.
type DateFallback string

const (
	// DateFallbackNow stamps unparseable dates with the current time.
	DateFallbackNow DateFallback = "now"
	// DateFallbackReject drops rows with unparseable dates.
	DateFallbackReject DateFallback = "reject"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Artha"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"artha"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"JWT_SECRET" default:""`
		TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"720h"`
	}

	Import struct {
		DateFallback DateFallback `envconfig:"IMPORT_DATE_FALLBACK" default:"now"`
	}

	State struct {
		Path string `envconfig:"STATE_PATH" default:"artha-state.json"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Import.DateFallback != DateFallbackNow && cfg.Import.DateFallback != DateFallbackReject {
		return nil, fmt.Errorf("invalid IMPORT_DATE_FALLBACK: %s", cfg.Import.DateFallback)
	}

	return &cfg, nil
}
