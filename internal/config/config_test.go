package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
dbname = "clinic"

[clinic]
timezone = "UTC"
open_time = "08:00"
close_time = "18:00"
cancellation_lead_hours = 4

[booking]
reject_siblings_on_validate = true
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "08:00", cfg.Clinic.Hours().Open.String())
	assert.Equal(t, 4*time.Hour, cfg.Policy().CancellationLead)
	assert.True(t, cfg.Policy().RejectSiblingsOnValidate)
	assert.Equal(t, 3, cfg.Booking.SerializableRetries)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
[clinic]
timezone = "UTC"
`)
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REDIS_URL", "redis://user:pw@cache:6380")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, "user", cfg.Redis.Username)
	assert.Equal(t, "pw", cfg.Redis.Password)
	assert.Contains(t, cfg.Database.DSN(), "port=6543")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	t.Setenv("DB_PORT", "abc")
	_, err = Load(writeConfig(t, ""))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "clinic opens after closing", mutate: func(c *Config) { c.Clinic.OpenTime, c.Clinic.CloseTime = "16:00", "07:00" }},
		{name: "bad clinic time", mutate: func(c *Config) { c.Clinic.OpenTime = "7am" }},
		{name: "unknown timezone", mutate: func(c *Config) { c.Clinic.Timezone = "Mars/Olympus" }},
		{name: "zero port", mutate: func(c *Config) { c.Server.HTTPPort = 0 }},
		{name: "negative lead", mutate: func(c *Config) { c.Clinic.CancellationLeadHours = -1 }},
		{name: "no retries", mutate: func(c *Config) { c.Booking.SerializableRetries = 0 }},
		{name: "redis without ttl", mutate: func(c *Config) { c.Redis.Enabled, c.Redis.LockTTLMs = true, 0 }},
	}

	require.NoError(t, Default().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
