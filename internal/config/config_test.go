package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("HOUREI_HTTP_PORT", "9090")
	t.Setenv("HOUREI_MAX_RETRIES", "5")
	t.Setenv("HOUREI_RETRY_BASE_DELAY", "500ms")
	t.Setenv("HOUREI_USE_PROXY", "true")
	t.Setenv("HOUREI_ALLOWED_PROXY_HOSTS", "laws.e-gov.go.jp, example.org")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.RetryBaseDelay)
	assert.True(t, cfg.UseProxy)
	assert.Equal(t, []string{"laws.e-gov.go.jp", "example.org"}, cfg.AllowedHosts())
	assert.Equal(t, ":9090", cfg.GetHTTPAddr())
}

func TestDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "https://laws.e-gov.go.jp/api/2/", cfg.UpstreamBaseURL)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 300*time.Millisecond, cfg.RetryBaseDelay)
	assert.Equal(t, 5*time.Minute, cfg.SearchCacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.DetailCacheTTL)
	assert.False(t, cfg.UseProxy)
}

func TestResolveDefaultsRejectsInvalidValues(t *testing.T) {
	cfg := NewForTesting()

	cfg.HTTPPort = -1
	assert.Error(t, cfg.ResolveDefaults())

	cfg = NewForTesting()
	cfg.UpstreamBaseURL = "not a url"
	assert.Error(t, cfg.ResolveDefaults())

	cfg = NewForTesting()
	cfg.MaxRetries = -1
	assert.Error(t, cfg.ResolveDefaults())

	cfg = NewForTesting()
	cfg.RetryBaseDelay = 0
	assert.Error(t, cfg.ResolveDefaults())
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := NewForTesting()
	assert.True(t, cfg.IsTesting())
	assert.False(t, cfg.IsProduction())
}
