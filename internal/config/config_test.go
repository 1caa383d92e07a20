package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, ":8081", cfg.Addr())
	assert.Equal(t, DefaultRateLimit, cfg.RequestsPerMinute)
	assert.Equal(t, DefaultWriteRateLimit, cfg.WritesPerMinute)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.CORSOrigins)
	assert.True(t, cfg.AccessLog)
	assert.False(t, cfg.TrustProxyHeaders)
	assert.NotEmpty(t, cfg.JWTSecret, "a development secret is filled in")
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"DATABASE_URL":          "postgres://x",
		"PORT":                  "9000",
		"JWT_SECRET":            "s3cret",
		"LOG_LEVEL":             "DEBUG",
		"LOG_FORMAT":            "text",
		"LOG_FILE":              "/tmp/ignite.log",
		"RATE_LIMIT_PER_MINUTE": "0",
		"CORS_ORIGINS":          " http://a.test , ,http://b.test",
		"IGNITE_API_URL":        "https://api.example.com/",
		"IGNITE_TOKEN":          " tok ",
		"REQUEST_TIMEOUT":       "3s",
		"ACCESS_LOG":            "false",
		"TRUST_PROXY_HEADERS":   "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, "postgres://x", cfg.DatabaseURL)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "/tmp/ignite.log", cfg.LogFile)
	assert.Zero(t, cfg.RequestsPerMinute)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, "tok", cfg.Token)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.AccessLog)
	assert.True(t, cfg.TrustProxyHeaders)
}

func TestFromEnv_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"RATE_LIMIT_PER_MINUTE": "lots",
		"REQUEST_TIMEOUT":       "-1s",
		"JWT_TTL":               "forever",
		"ACCESS_LOG":            "maybe",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := FromEnv(envMap(map[string]string{key: value}))
			require.ErrorIs(t, err, ErrInvalidValue)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("IGNITE_TEST_PORT_UNUSED=1\nPORT=7070\n"), 0o600))

	t.Setenv("PORT", "")
	require.NoError(t, os.Unsetenv("PORT"))
	t.Cleanup(func() { _ = os.Unsetenv("IGNITE_TEST_PORT_UNUSED") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}
