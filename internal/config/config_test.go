package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.False(t, cfg.UseHeadlessBrowser)
	assert.Empty(t, cfg.PlatformAPIURL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("PLATFORM_API_URL", "https://platform.example/api")
	t.Setenv("ENABLE_VARIANT_FALLBACK", "true")
	t.Setenv("USER_AGENT", "storefront-test")

	cfg, err := Load()
	require.NoError(t, err)

	extractorConfig := cfg.ExtractorConfig()
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 3*time.Second, extractorConfig.Timeout)
	assert.Equal(t, "https://platform.example/api", extractorConfig.PlatformAPIURL)
	assert.True(t, extractorConfig.EnableVariantFallback)
	assert.Equal(t, "storefront-test", extractorConfig.UserAgent)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "API_PORT", "70000"},
		{"bad duration", "HTTP_TIMEOUT", "soon"},
		{"zero timeout", "HTTP_TIMEOUT", "0s"},
		{"negative retries", "HTTP_MAX_RETRIES", "-1"},
		{"relative platform url", "PLATFORM_API_URL", "/api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestExtractorConfig_KeepsDefaultUserAgent(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.ExtractorConfig().UserAgent, "Mozilla/5.0")
}
