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

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"listen_addr":                     "www.example:9000",
		"database_dsn":                    "memory://",
		"access_token_secret":             "a-secret",
		"refresh_token_secret":            "r-secret",
		"access_token_validity_duration":  "30s",
		"refresh_token_validity_duration": "24h",
		"cors_origin":                     "https://board.example",
		"environment":                     "production",
		"api_prefix":                      "/v1",
		"log_level":                       "debug",
		"bcrypt_cost":                     12,
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJSON(cfg, []string{"-config", path}))

		assert.Equal(t, "www.example:9000", cfg.ListenAddr)
		assert.Equal(t, "memory://", cfg.DatabaseDSN)
		assert.Equal(t, "a-secret", cfg.AccessTokenSecret)
		assert.Equal(t, "r-secret", cfg.RefreshTokenSecret)
		assert.Equal(t, 30*time.Second, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 24*time.Hour, cfg.RefreshTokenValidityDuration)
		assert.Equal(t, "https://board.example", cfg.CORSOrigin)
		assert.Equal(t, "production", cfg.Environment)
		assert.Equal(t, "/v1", cfg.APIPrefix)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 12, cfg.BcryptCost)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		want := *cfg

		require.NoError(t, parseJSON(cfg, []string{"-a", ":1"}))
		assert.Equal(t, want, *cfg)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"log_level": "warn"})
		cfg := &Config{}
		cfg.LoadDefaults()

		require.NoError(t, parseJSON(cfg, []string{"-c", partial}))
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, ":3000", cfg.ListenAddr)
		assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		require.Error(t, parseJSON(&Config{}, []string{"-c", bad}))
	})

	t.Run("missing file → error", func(t *testing.T) {
		require.Error(t, parseJSON(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}))
	})
}
