package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "booking-service", cfg.Service.Name)
	assert.Equal(t, "8080", cfg.Service.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, 10*time.Second, cfg.Shutdown.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Service.ReadHeaderTimeout)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("JWT_EXPIRATION", "90m")
	t.Setenv("OTEL_SAMPLE_RATE", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Service.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 90*time.Minute, cfg.JWT.Expiration)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRate)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Service:  ServiceConfig{Port: "8080"},
			Database: DatabaseConfig{Driver: DriverMemory},
			JWT:      JWTConfig{Secret: "s", Expiration: time.Hour},
			Tracing:  TracingConfig{SampleRate: 0.5},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Service.Port = "http" }, wantErr: "invalid PORT"},
		{name: "port out of range", mutate: func(c *Config) { c.Service.Port = "70000" }, wantErr: "invalid PORT"},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: "unknown DB_DRIVER"},
		{name: "postgres without url", mutate: func(c *Config) { c.Database.Driver = DriverPostgres }, wantErr: "DATABASE_URL"},
		{name: "missing secret", mutate: func(c *Config) { c.JWT.Secret = "" }, wantErr: "JWT_SECRET"},
		{name: "zero expiration", mutate: func(c *Config) { c.JWT.Expiration = 0 }, wantErr: "JWT_EXPIRATION"},
		{name: "sample rate", mutate: func(c *Config) { c.Tracing.SampleRate = 1.5 }, wantErr: "OTEL_SAMPLE_RATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
