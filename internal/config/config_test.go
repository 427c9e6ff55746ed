package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "ENV", "LOG_LEVEL", "SCHEMA_PATH", "MODEL_PATH", "MODEL_URL",
	"MODEL_TIMEOUT", "MODEL_RPS", "MODEL_BURST", "STATIONS_CSV", "STATIONS_DB_URL",
	"STATIONS_REFRESH", "API_RPS", "API_BURST", "CORS_ORIGINS", "YEAR_MIN", "YEAR_MAX",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "model_columns.json", cfg.SchemaPath)
	assert.Equal(t, "pollution_model.json", cfg.ModelPath)
	assert.Empty(t, cfg.ModelURL)
	assert.Equal(t, 10*time.Second, cfg.ModelTimeout)
	assert.Equal(t, time.Duration(0), cfg.StationsRefresh)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 2000, cfg.YearMin)
	assert.Equal(t, 2100, cfg.YearMax)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("MODEL_URL", "http://model:8000")
	t.Setenv("MODEL_TIMEOUT", "2s")
	t.Setenv("API_RPS", "2.5")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("YEAR_MAX", "not a number")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://model:8000", cfg.ModelURL)
	assert.Equal(t, 2*time.Second, cfg.ModelTimeout)
	assert.Equal(t, 2.5, cfg.APIRPS)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 2100, cfg.YearMax)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STATIONS_CSV", "env.csv")

	cfg, err := Load([]string{"-port", "7070", "-stations", "flag.csv", "-stations-refresh", "5m"})
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "flag.csv", cfg.StationsCSV)
	assert.Equal(t, 5*time.Minute, cfg.StationsRefresh)

	_, err = Load([]string{"-unknown"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("whatever"))
}
