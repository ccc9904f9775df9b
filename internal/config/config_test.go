package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[storage]
driver = "memory"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, domain.DefaultClinicHours(), cfg.Clinic.ClinicHours())
	assert.False(t, cfg.ProviderDirectory.Enabled)
}

func TestLoad_ClinicSection(t *testing.T) {
	path := writeConfig(t, `
[clinic]
day_start = "09:00"
day_end = "13:00"
slot_duration_minutes = 30
default_max_capacity = 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	hours := cfg.Clinic.ClinicHours()
	assert.Equal(t, "09:00", hours.DayStart.String())
	assert.Equal(t, "13:00", hours.DayEnd.String())
	assert.Equal(t, 30, hours.SlotDurationMinutes)
	assert.Equal(t, 2, hours.DefaultMaxCapacity)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "broken toml", content: "[server\nhttp_port = 1"},
		{name: "unknown driver", content: "[storage]\ndriver = \"mongo\""},
		{name: "reversed clinic day", content: "[clinic]\nday_start = \"18:00\"\nday_end = \"08:00\""},
		{name: "zero capacity", content: "[clinic]\ndefault_max_capacity = 0"},
		{name: "directory without url", content: "[provider_directory]\nenabled = true"},
		{name: "bad port", content: "[server]\nhttp_port = 70000"},
		{name: "negative rate limit", content: "[server]\nrate_limit_rps = -1"},
		{name: "rate limit without burst", content: "[server]\nrate_limit_rps = 2\nrate_limit_burst = 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5433, User: "clinic", Password: "p@ss", DBName: "scheduler", SSLMode: "disable"}
	assert.Equal(t, "postgres://clinic:p%40ss@db:5433/scheduler?sslmode=disable", db.DSN())
}
