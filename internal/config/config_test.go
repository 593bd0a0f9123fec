package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-checkout/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"PORT":                       "",
		"REDIS_URL":                  "",
		"OBS_TRACING_SAMPLING_RATIO": "",
		"CHECKOUT_LOCK_TTL":          "",
		"CHECKOUT_RATE_LIMIT":        "",
		"REPORT_CACHE_TTL":           "",
		"SEED_DEMO_DATA":             "",
		"APP_VERSION":                "",
		"OBS_TRACING_EXPORTER":       "",
	})
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Empty(t, cfg.Version)
	require.Equal(t, "dev", cfg.ServiceVersion("dev"))
	require.Equal(t, "otlp", cfg.Obs.TracingExporter)
	require.Empty(t, cfg.RedisURL)
	require.True(t, cfg.SeedDemoData)
	require.Equal(t, 1.0, cfg.Obs.SamplingRatio)
	require.Equal(t, 10*time.Second, cfg.Checkout.LockTTL)
	require.Equal(t, "30-M", cfg.Checkout.RateLimit)
	require.Equal(t, 30*time.Second, cfg.Report.CacheTTL)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"APP_ENV":                    "production",
		"PORT":                       ":9000",
		"CORS_ALLOWED_ORIGINS":       "https://a.example, https://b.example ,",
		"OBS_ENABLE_TRACING":         "yes",
		"OBS_TRACING_SAMPLING_RATIO": "0.25",
		"REPORT_CACHE_TTL":           "bogus",
		"SEED_DEMO_DATA":             "false",
		"APP_VERSION":                " 1.4.2 ",
		"OBS_TRACING_EXPORTER":       "NONE",
	})
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
	require.Equal(t, ":9000", cfg.HTTPAddr())
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	require.True(t, cfg.Obs.EnableTracing)
	require.Equal(t, 0.25, cfg.Obs.SamplingRatio)
	require.Equal(t, 30*time.Second, cfg.Report.CacheTTL)
	require.False(t, cfg.SeedDemoData)
	require.Equal(t, "1.4.2", cfg.ServiceVersion("dev"))
	require.Equal(t, "none", cfg.Obs.TracingExporter)
}

func TestLoadRejectsUnknownTracingExporter(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{"OBS_TRACING_EXPORTER": "zipkin"})
	require.ErrorContains(t, err, "OBS_TRACING_EXPORTER")
}

func TestLoadRejectsBadSamplingRatio(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{"OBS_TRACING_SAMPLING_RATIO": "2"})
	require.Error(t, err)
	_, err = config.LoadForTests(map[string]string{"OBS_TRACING_SAMPLING_RATIO": "abc"})
	require.Error(t, err)
}
