package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teran1416/InventarioApp/internal/config"
)

func load(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()
	return config.Load(pflag.NewFlagSet("test", pflag.ContinueOnError), args)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, "inventario", cfg.AppName)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, config.DriverMongo, cfg.Storage.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "inventario", cfg.Mongo.Database)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 720*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 24*time.Hour, cfg.Alerts.SummaryInterval)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("INVENTARIO_STORAGE_DRIVER", "memory")
	t.Setenv("INVENTARIO_HTTP_ADDR", ":9090")
	t.Setenv("INVENTARIO_JWT_TTL", "2h")
	t.Setenv("INVENTARIO_REDIS_ENABLED", "true")

	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, config.DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "env: production\nstorage:\n  driver: postgres\npostgres:\n  url: postgres://localhost/inventario\njwt:\n  secret: s3cret\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := load(t, "--config", path)
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, config.DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://localhost/inventario", cfg.Postgres.URL)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := load(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		cfg, err := load(t)
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown driver", func(c *config.Config) { c.Storage.Driver = "sqlite" }},
		{"postgres without url", func(c *config.Config) { c.Storage.Driver = config.DriverPostgres }},
		{"mongo without uri", func(c *config.Config) { c.Mongo.URI = "" }},
		{"production without secret", func(c *config.Config) { c.Env = "production" }},
		{"non-positive ttl", func(c *config.Config) { c.JWT.TTL = 0 }},
		{"non-positive digest interval", func(c *config.Config) { c.Alerts.SummaryInterval = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
