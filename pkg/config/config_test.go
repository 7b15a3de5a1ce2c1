package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	// Check defaults
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "./data", cfg.Data.Dir)
	assert.Equal(t, 100*time.Millisecond, cfg.Render.NavLayoutDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Render.RankingDelay)
	assert.Equal(t, 200*time.Millisecond, cfg.Render.ResizeDelay)
	assert.Equal(t, "janus", cfg.Style.HighlightMarker)
	assert.Equal(t, "CSI", cfg.Style.BenchmarkPrefix)
}

func TestLoadMatchesDefault(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "DATA_DIR", "DATA_BASE_URL", "FETCH_TIMEOUT",
		"NAV_LAYOUT_DELAY", "RANKING_DELAY", "RESIZE_DELAY", "HIGHLIGHT_MARKER", "BENCHMARK_PREFIX",
		"WS_EVENT_RATE", "WS_EVENT_BURST", "LOG_LEVEL", "LOG_FORMAT", "METRICS_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithCustomValues(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("DATA_BASE_URL", "http://cdn.local/data/")
	t.Setenv("RANKING_DELAY", "1s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WS_EVENT_RATE", "5.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "http://cdn.local/data", cfg.Data.BaseURL)
	assert.Equal(t, "http://cdn.local/data", cfg.DataRoot())
	assert.Equal(t, time.Second, cfg.Render.RankingDelay)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5.5, cfg.Session.EventRate)
}

func TestValidateInvalidEnv(t *testing.T) {
	t.Setenv("ENV", "invalid")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "no data root", mutate: func(c *Config) { c.Data.Dir = "" }, wantErr: true},
		{name: "base url only", mutate: func(c *Config) { c.Data.Dir = ""; c.Data.BaseURL = "http://x" }},
		{name: "negative delay", mutate: func(c *Config) { c.Render.ResizeDelay = -time.Millisecond }, wantErr: true},
		{name: "zero delay", mutate: func(c *Config) { c.Render.NavLayoutDelay = 0 }},
		{name: "empty marker", mutate: func(c *Config) { c.Style.HighlightMarker = "" }, wantErr: true},
		{name: "zero rate", mutate: func(c *Config) { c.Session.EventRate = 0 }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Data.FetchTimeout = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "2h")
	assert.Equal(t, 2*time.Hour, getEnvAsDuration("TEST_DURATION", "1h"))

	t.Setenv("TEST_DURATION", "garbage")
	assert.Equal(t, time.Hour, getEnvAsDuration("TEST_DURATION", "1h"))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "100")
	assert.Equal(t, 100, getEnvAsInt("TEST_INT", 50))

	t.Setenv("TEST_INT", "abc")
	assert.Equal(t, 50, getEnvAsInt("TEST_INT", 50))
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	assert.True(t, getEnvAsBool("TEST_BOOL", false))
}
