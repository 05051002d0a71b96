// Package config loads service configuration from the environment.
//
// Values are read from an optional .env file (joho/godotenv) and then from
// process environment variables. Real environment variables always win over
// the .env file.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers accepted by DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the root configuration of the booking service.
type Config struct {
	Service   ServiceConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Logging   LoggingConfig
	Tracing   TracingConfig
	Profiling ProfilingConfig
	Shutdown  ShutdownConfig
}

type ServiceConfig struct {
	Name    string `env:"SERVICE_NAME" envDefault:"booking-service"`
	Version string `env:"SERVICE_VERSION" envDefault:"dev"`
	Env     string `env:"ENV" envDefault:"development"`
	Port    string `env:"PORT" envDefault:"8080"`

	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
}

type DatabaseConfig struct {
	Driver   string `env:"DB_DRIVER" envDefault:"postgres"`
	URL      string `env:"DATABASE_URL"`
	MaxConns int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	MinConns int32  `env:"DB_MIN_CONNS" envDefault:"1"`
	// Migrate runs the embedded goose migrations on startup.
	Migrate bool `env:"DB_MIGRATE" envDefault:"true"`
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET"`
	Expiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
}

type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

type TracingConfig struct {
	Enabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	Endpoint   string  `env:"OTEL_COLLECTOR_ENDPOINT" envDefault:"localhost:4318"`
	SampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"0.1"`
}

type ProfilingConfig struct {
	Enabled  bool   `env:"PROFILING_ENABLED" envDefault:"false"`
	Endpoint string `env:"PYROSCOPE_ENDPOINT" envDefault:"http://localhost:4040"`
}

type ShutdownConfig struct {
	Timeout             time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ReadinessDrainDelay time.Duration `env:"READINESS_DRAIN_DELAY" envDefault:"5s"`
}

// Load reads the .env file when present and parses the environment.
func Load() (*Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Service.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Service.Port)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver)
	}

	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("JWT_EXPIRATION must be positive, got %s", c.JWT.Expiration)
	}

	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be within [0,1], got %v", c.Tracing.SampleRate)
	}

	return nil
}
