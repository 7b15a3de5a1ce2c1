package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the dashboard server
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Datasets
	Data DataConfig

	// Render timing
	Render RenderConfig

	// Chart styling rules
	Style StyleConfig

	// WebSocket sessions
	Session SessionConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
}

// DataConfig describes where the precomputed JSON datasets live.
// BaseURL wins over Dir when both are set.
type DataConfig struct {
	Dir          string
	BaseURL      string
	FetchTimeout time.Duration
}

// RenderConfig holds the deferred-step delays of the event-type detail view
type RenderConfig struct {
	NavLayoutDelay time.Duration // 레이아웃 완료 대기 후 NAV 차트
	RankingDelay   time.Duration // 랭킹 개요 렌더 지연
	ResizeDelay    time.Duration // 차트 resize 지연
}

// StyleConfig holds the name-matching rules used by every chart and table
type StyleConfig struct {
	HighlightMarker string
	BenchmarkPrefix string
}

// SessionConfig holds per-session UI event limits
type SessionConfig struct {
	EventRate  float64
	EventBurst int
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		Data: DataConfig{
			Dir:          getEnv("DATA_DIR", "./data"),
			BaseURL:      strings.TrimRight(getEnv("DATA_BASE_URL", ""), "/"),
			FetchTimeout: getEnvAsDuration("FETCH_TIMEOUT", "10s"),
		},

		Render: RenderConfig{
			NavLayoutDelay: getEnvAsDuration("NAV_LAYOUT_DELAY", "100ms"),
			RankingDelay:   getEnvAsDuration("RANKING_DELAY", "500ms"),
			ResizeDelay:    getEnvAsDuration("RESIZE_DELAY", "200ms"),
		},

		Style: StyleConfig{
			HighlightMarker: getEnv("HIGHLIGHT_MARKER", "janus"),
			BenchmarkPrefix: getEnv("BENCHMARK_PREFIX", "CSI"),
		},

		Session: SessionConfig{
			EventRate:  getEnvAsFloat("WS_EVENT_RATE", 20),
			EventBurst: getEnvAsInt("WS_EVENT_BURST", 40),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration Load would produce with an empty environment.
// Tests and the headless check command start from here.
func Default() *Config {
	return &Config{
		Port: "8090",
		Env:  "development",
		Data: DataConfig{
			Dir:          "./data",
			FetchTimeout: 10 * time.Second,
		},
		Render: RenderConfig{
			NavLayoutDelay: 100 * time.Millisecond,
			RankingDelay:   500 * time.Millisecond,
			ResizeDelay:    200 * time.Millisecond,
		},
		Style: StyleConfig{
			HighlightMarker: "janus",
			BenchmarkPrefix: "CSI",
		},
		Session: SessionConfig{
			EventRate:  20,
			EventBurst: 40,
		},
		LogLevel:       "info",
		LogFormat:      "json",
		MetricsEnabled: true,
	}
}

// DataRoot returns the configured dataset location for display
func (c *Config) DataRoot() string {
	if c.Data.BaseURL != "" {
		return c.Data.BaseURL
	}
	return c.Data.Dir
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Data.Dir == "" && c.Data.BaseURL == "" {
		return fmt.Errorf("DATA_DIR or DATA_BASE_URL is required")
	}

	if c.Data.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}

	if c.Render.NavLayoutDelay < 0 || c.Render.RankingDelay < 0 || c.Render.ResizeDelay < 0 {
		return fmt.Errorf("render delays must not be negative")
	}

	if c.Style.HighlightMarker == "" || c.Style.BenchmarkPrefix == "" {
		return fmt.Errorf("HIGHLIGHT_MARKER and BENCHMARK_PREFIX must not be empty")
	}

	if c.Session.EventRate <= 0 || c.Session.EventBurst <= 0 {
		return fmt.Errorf("WS_EVENT_RATE and WS_EVENT_BURST must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
