package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServices(t *testing.T) {
	t.Run("single service", func(t *testing.T) {
		services, err := ParseServices("http")
		require.NoError(t, err)
		assert.True(t, services[ServiceModeHTTP])
		assert.False(t, services[ServiceModeWorker])
	})

	t.Run("multiple services with spaces", func(t *testing.T) {
		services, err := ParseServices("http, worker")
		require.NoError(t, err)
		assert.True(t, services[ServiceModeHTTP])
		assert.True(t, services[ServiceModeWorker])
	})

	t.Run("invalid service name", func(t *testing.T) {
		_, err := ParseServices("http,scheduler")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scheduler")
	})

	t.Run("empty string", func(t *testing.T) {
		_, err := ParseServices("")
		require.Error(t, err)
	})

	t.Run("only separators", func(t *testing.T) {
		_, err := ParseServices(", ,")
		require.Error(t, err)
	})
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.Features.EnableParsers)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.URI)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "http", cfg.Services)
	assert.True(t, cfg.IsHTTPServerEnabled())
	assert.False(t, cfg.IsWorkerEnabled())
	assert.Equal(t, 4, cfg.Worker.Concurrency)
	assert.Equal(t, 24*time.Hour, cfg.Worker.ResultTTL)
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVICES", "http,worker")
	t.Setenv("FEATURES_ENABLE_PARSERS", "false")
	t.Setenv("WORKER_CONCURRENCY", "8")
	t.Setenv("DB_NAME", "docparse_test")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.Features.EnableParsers)
	assert.True(t, cfg.IsWorkerEnabled())
	assert.Equal(t, 8, cfg.Worker.Concurrency)
	assert.Equal(t, "docparse_test", cfg.Postgres.Name)
}

func TestWorkerConfig_Sanitize(t *testing.T) {
	w := WorkerConfig{
		Concurrency:       0,
		ClaimTimeout:      time.Millisecond,
		ParseTimeout:      0,
		HeartbeatInterval: 10 * time.Second,
		HeartbeatTTL:      time.Second, // below the interval
		PromoteInterval:   0,
		ResultTTL:         0,
	}
	w.Sanitize()

	assert.Equal(t, 1, w.Concurrency)
	assert.Equal(t, time.Second, w.ClaimTimeout)
	assert.Equal(t, time.Second, w.ParseTimeout)
	assert.Equal(t, 30*time.Second, w.HeartbeatTTL, "TTL stretched past the interval")
	assert.Equal(t, 100*time.Millisecond, w.PromoteInterval)
	assert.Equal(t, time.Minute, w.ResultTTL)
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	c := ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "   "}
	c.Sanitize()
	assert.False(t, c.IsEnabled(), "blank address disables metrics")

	c = ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "127.0.0.1:8125"}
	c.Sanitize()
	assert.True(t, c.IsEnabled())
}

func TestAppConfig_DevModeFallback(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()
	assert.True(t, cfg.IsDev)
}
