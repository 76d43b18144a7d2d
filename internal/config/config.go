package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment at startup. STORAGE_BACKEND selects
// where mission state blobs live: sqlite, postgres or redis.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath          string        `env:"DB_PATH" envDefault:"data/recon.db"`
	SeedPath        string        `env:"SEED_PATH" envDefault:"data/seeds/places.json"`
	StorageBackend  string        `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	PostgresURL     string        `env:"POSTGRES_URL"`
	RedisURL        string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	WeatherInterval time.Duration `env:"WEATHER_INTERVAL" envDefault:"5m"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	switch cfg.StorageBackend {
	case "sqlite", "postgres", "redis":
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	if cfg.StorageBackend == "postgres" && cfg.PostgresURL == "" {
		return nil, fmt.Errorf("POSTGRES_URL is required when STORAGE_BACKEND=postgres")
	}
	return &cfg, nil
}
