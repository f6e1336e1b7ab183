package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[server]
http_port = 9090

[storage]
driver = "mongo"

[schedule]
opening_time = "9:00 AM"
closing_time = "8:00 PM"
timezone = "America/New_York"

[pricing]
surcharge_cents = 250
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("DATABASE_PASSWORD", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, DriverMongo, cfg.Storage.Driver)
	assert.Equal(t, "9:00 AM", cfg.Schedule.OpeningTime)
	assert.Equal(t, int64(250), cfg.Pricing.SurchargeCents)
	assert.Equal(t, "sk_test_123", cfg.Payments.SecretKey)
	assert.Equal(t, "s3cret", cfg.Database.Password)

	// Значения по умолчанию сохраняются для незаданных полей
	assert.Equal(t, 30, cfg.Schedule.StepMinutes)
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "8:00 AM", cfg.Schedule.OpeningTime)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = "sqlite"
	cfg.Payments.PendingTTLMinutes = 10

	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "storage.driver")
	assert.Contains(t, err.Error(), "pending_ttl_minutes")

	cfg = Default()
	cfg.Reaper.IntervalSeconds = 0
	assert.ErrorContains(t, cfg.Validate(), "reaper.interval_seconds")

	cfg.Reaper.Enabled = false
	assert.NoError(t, cfg.Validate())
}

func TestAllowedOriginsFromEnv(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://studio.example.com,https://admin.example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://studio.example.com", "https://admin.example.com"}, cfg.Server.AllowedOrigins)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", c.DSN())
}
