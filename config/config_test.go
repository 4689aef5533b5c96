package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "propdiary.db", cfg.DatabasePath)
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.Equal(t, time.Hour, cfg.SweepInterval)
}

func TestLoad_JSONOverridesDefaults(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"database_path":  "/var/lib/propdiary/data.db",
		"retention_days": 14,
		"sweep_interval": "15m",
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/propdiary/data.db", cfg.DatabasePath)
	assert.Equal(t, 14, cfg.RetentionDays)
	assert.Equal(t, 15*time.Minute, cfg.SweepInterval)
}

func TestLoad_PartialJSONKeepsDefaults(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"retention_days": 7,
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "propdiary.db", cfg.DatabasePath, "unset keys keep their defaults")
	assert.Equal(t, 7, cfg.RetentionDays)
	assert.Equal(t, time.Hour, cfg.SweepInterval)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{ this is not valid json`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
