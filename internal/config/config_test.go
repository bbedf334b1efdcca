package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentcal/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONTENTCAL_ADDR", "CONTENTCAL_STATIC_DIR", "CONTENTCAL_STORAGE_URL",
		"CONTENTCAL_KEY_VERSION", "CONTENTCAL_LOG_LEVEL", "GEMINI_API_KEY",
		"CONTENTCAL_AI_MODEL", "CONTENTCAL_AI_BASE_URL", "CONTENTCAL_AI_TIMEOUT",
		"CONTENTCAL_AI_RPM", "CONTENTCAL_CALENDAR_YEAR",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contentcal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "web/dist", cfg.Server.StaticDir)
	assert.Equal(t, "sqlite://data/contentcal.db", cfg.Storage.URL)
	assert.Equal(t, "v6", cfg.Storage.KeyVersion)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.AI.APIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.AI.Model)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 15, cfg.AI.RequestsPerMinute)

	plan := cfg.YearPlan()
	assert.Equal(t, 2026, plan.Year)
	assert.Equal(t, time.February, plan.FirstMonth)
	assert.Equal(t, time.December, plan.LastMonth)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
server:
  addr: ":9000"
storage:
  url: "memory://"
ai:
  timeout: 5s
  requests_per_minute: 60
calendar:
  year: 2027
  first_month: 1
`)
	t.Setenv("CONTENTCAL_ADDR", ":7000")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Addr, "environment wins over file")
	assert.Equal(t, "web/dist", cfg.Server.StaticDir, "unset keys keep defaults")
	assert.Equal(t, "memory://", cfg.Storage.URL)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 60, cfg.AI.RequestsPerMinute)
	assert.Equal(t, time.January, cfg.YearPlan().FirstMonth)

	ac := cfg.Assistant()
	assert.Equal(t, "secret", ac.APIKey)
	assert.Equal(t, 5*time.Second, ac.Timeout)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)

	cases := map[string]string{
		"log level":    "log:\n  level: loud\n",
		"month order":  "calendar:\n  first_month: 6\n  last_month: 3\n",
		"key version":  "storage:\n  key_version: \"v 6\"\n",
		"base url":     "ai:\n  base_url: \"not a url\"\n",
		"zero timeout": "ai:\n  timeout: 0s\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, body))
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	_, err := config.Load(writeFile(t, "server: [\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrInvalid)
}
