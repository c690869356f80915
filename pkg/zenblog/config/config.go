// Package config resolves the storage mode and connection parameters and
// builds a ready-to-use zenblog.Service from them. The library itself never
// reads ambient configuration; everything flows through the explicit Config
// struct, and the adapter strategy is selected once at construction.
package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdsahadathossenshihab/zenblog/pkg/zenblog"
	"github.com/mdsahadathossenshihab/zenblog/pkg/zenblog/store/localfile"
	"github.com/mdsahadathossenshihab/zenblog/pkg/zenblog/store/memory"
	"github.com/mdsahadathossenshihab/zenblog/pkg/zenblog/store/mongoapi"
	"github.com/mdsahadathossenshihab/zenblog/pkg/zenblog/store/postgres"
	"github.com/mdsahadathossenshihab/zenblog/pkg/zenblog/store/rest"
)

// Storage modes
const (
	ModeMemory   = "memory"
	ModeLocal    = "local"
	ModeMongo    = "mongo"
	ModeRest     = "rest"
	ModePostgres = "postgres"
)

// Config represents runtime configuration for the zenblog service
type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	// Store selection
	Mode string `env:"STORE_MODE" env-default:"memory"`

	// Remote modes (mongo, rest)
	Endpoint string `env:"STORE_ENDPOINT"`
	APIKey   string `env:"STORE_API_KEY"`

	// Mongo Data API parameters
	DataSource string `env:"MONGODB_DATA_SOURCE" env-default:"Cluster0"`
	Database   string `env:"MONGODB_DATABASE" env-default:"zenblog"`
	Collection string `env:"MONGODB_COLLECTION" env-default:"posts"`

	// Local mode; also the read fallback for remote modes
	DataDir string `env:"DATA_DIR" env-default:"./data"`

	// Postgres mode
	DatabaseURL string `env:"DATABASE_URL"`

	// Event logging
	EnableEventLogging bool `env:"ENABLE_EVENT_LOGGING" env-default:"true"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected mode has the parameters it needs.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeMemory:
	case ModeLocal:
		if c.DataDir == "" {
			return fmt.Errorf("%w: DATA_DIR is required for local mode", zenblog.ErrInvalidConfig)
		}
	case ModeMongo:
		if c.Endpoint == "" {
			return fmt.Errorf("%w: STORE_ENDPOINT is required for mongo mode", zenblog.ErrInvalidConfig)
		}
		if c.APIKey == "" {
			return fmt.Errorf("%w: STORE_API_KEY is required for mongo mode", zenblog.ErrInvalidConfig)
		}
	case ModeRest:
		if c.Endpoint == "" {
			return fmt.Errorf("%w: STORE_ENDPOINT is required for rest mode", zenblog.ErrInvalidConfig)
		}
	case ModePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for postgres mode", zenblog.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store mode %q", zenblog.ErrInvalidConfig, c.Mode)
	}
	return nil
}

// BuildService constructs a zenblog.Service from the configuration. Remote
// modes get the local file store wired in as an explicit read fallback, so a
// network outage degrades to the last locally known data instead of an empty
// dashboard.
func (c *Config) BuildService(logger *slog.Logger) (zenblog.Service, error) {
	store, err := c.buildStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build store: %w", err)
	}

	options := []zenblog.Option{
		zenblog.WithStore(store),
		zenblog.WithLogger(logger),
	}

	if c.Mode == ModeMongo || c.Mode == ModeRest {
		fallback, err := localfile.New(localfile.Config{Dir: c.DataDir})
		if err != nil {
			return nil, fmt.Errorf("failed to build fallback store: %w", err)
		}
		options = append(options, zenblog.WithFallbackStore(fallback))
	}

	if c.EnableEventLogging {
		options = append(options, zenblog.WithEventSink(zenblog.NewLoggingEventSink(logger)))
	}

	return zenblog.New(options...)
}

// buildStore selects the adapter strategy for the configured mode.
func (c *Config) buildStore() (zenblog.Store, error) {
	switch c.Mode {
	case ModeMemory:
		return memory.New(), nil

	case ModeLocal:
		return localfile.New(localfile.Config{Dir: c.DataDir})

	case ModeMongo:
		return mongoapi.New(mongoapi.Config{
			Endpoint:   c.Endpoint,
			APIKey:     c.APIKey,
			DataSource: c.DataSource,
			Database:   c.Database,
			Collection: c.Collection,
		})

	case ModeRest:
		return rest.New(rest.Config{
			Endpoint: c.Endpoint,
			Token:    c.APIKey,
		})

	case ModePostgres:
		pool, err := pgxpool.New(context.Background(), c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		return postgres.NewWithPool(pool), nil

	default:
		return nil, fmt.Errorf("%w: unknown store mode %q", zenblog.ErrInvalidConfig, c.Mode)
	}
}
