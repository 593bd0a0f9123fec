package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Version            string
	Port               string
	RedisURL           string
	CORSAllowedOrigins []string
	SeedDemoData       bool
	Obs                ObsConfig
	Checkout           CheckoutConfig
	Report             ReportConfig
}

// ObsConfig groups logging, metrics and tracing settings.
type ObsConfig struct {
	LogFormat        string
	LogLevel         string
	MetricsNamespace string
	EnablePrometheus bool
	EnableTracing    bool
	TracingExporter  string
	OTLPEndpoint     string
	SamplingRatio    float64
}

// CheckoutConfig tunes the checkout endpoint.
type CheckoutConfig struct {
	LockTTL   time.Duration
	RateLimit string
}

// ReportConfig tunes the report cache.
type ReportConfig struct {
	CacheTTL time.Duration
}

// Load reads configuration from environment variables and optional .env files.
// Redis is optional: without REDIS_URL locks, rate limits and caches stay in process.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Version:            strings.TrimSpace(k.String("APP_VERSION")),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		RedisURL:           strings.TrimSpace(k.String("REDIS_URL")),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		SeedDemoData:       parseBool(valueOrDefault(k.String("SEED_DEMO_DATA"), "true")),
		Obs: ObsConfig{
			LogFormat:        valueOrDefault(k.String("OBS_LOG_FORMAT"), "json"),
			LogLevel:         valueOrDefault(k.String("OBS_LOG_LEVEL"), "info"),
			MetricsNamespace: valueOrDefault(k.String("OBS_METRICS_NAMESPACE"), "toko_checkout"),
			EnablePrometheus: parseBool(valueOrDefault(k.String("OBS_ENABLE_PROMETHEUS"), "true")),
			EnableTracing:    parseBool(k.String("OBS_ENABLE_TRACING")),
			TracingExporter:  strings.ToLower(valueOrDefault(k.String("OBS_TRACING_EXPORTER"), "otlp")),
			OTLPEndpoint:     strings.TrimSpace(k.String("OBS_OTLP_ENDPOINT")),
		},
		Checkout: CheckoutConfig{
			LockTTL:   parseDuration(k.String("CHECKOUT_LOCK_TTL"), "10s"),
			RateLimit: valueOrDefault(k.String("CHECKOUT_RATE_LIMIT"), "30-M"),
		},
		Report: ReportConfig{
			CacheTTL: parseDuration(k.String("REPORT_CACHE_TTL"), "30s"),
		},
	}

	ratio, err := parseFloat(k.String("OBS_TRACING_SAMPLING_RATIO"), 1)
	if err != nil {
		return nil, fmt.Errorf("OBS_TRACING_SAMPLING_RATIO: %w", err)
	}
	if ratio < 0 || ratio > 1 {
		return nil, errors.New("OBS_TRACING_SAMPLING_RATIO must be between 0 and 1")
	}
	cfg.Obs.SamplingRatio = ratio

	switch cfg.Obs.TracingExporter {
	case "otlp", "none":
	default:
		return nil, fmt.Errorf("OBS_TRACING_EXPORTER %q is not supported", cfg.Obs.TracingExporter)
	}

	if cfg.Checkout.LockTTL <= 0 {
		return nil, errors.New("CHECKOUT_LOCK_TTL must be positive")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// ServiceVersion prefers APP_VERSION and falls back to the version stamped
// into the binary at build time.
func (c *Config) ServiceVersion(build string) string {
	if c.Version != "" {
		return c.Version
	}
	return build
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "production" || env == "prod"
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseFloat(value string, fallback float64) (float64, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
