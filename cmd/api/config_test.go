package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentinsight.dev/dashboard/internal/appconf"
	"studentinsight.dev/dashboard/internal/students"
)

func noEnv(string) string { return "" }

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(nil, noEnv, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.app.Port)
	assert.Equal(t, appconf.Development, cfg.app.Env)
	assert.Equal(t, []string{"test"}, cfg.app.ApiKeys)
	assert.Equal(t, 100, cfg.app.RateLimit)
	assert.Equal(t, students.PolicyCollect, cfg.dataset.ScorePolicy)
	assert.Equal(t, "testdata/students.csv", cfg.dataset.SourceURL)
	assert.Equal(t, "gemini-2.0-flash", cfg.summarizer.Model)
	assert.Empty(t, cfg.summarizer.APIKey)
}

func TestParseConfigFlags(t *testing.T) {
	getenv := func(key string) string {
		if key == "GEMINI_API_KEY" {
			return "secret"
		}
		return ""
	}

	cfg, err := parseConfig([]string{
		"-port", "8080",
		"-env", "production",
		"-api-keys", " a, b ,,c",
		"-score-policy", "mean",
		"-dataset-url", "https://example.com/students.csv",
		"-dataset-timeout", "5s",
	}, getenv, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.app.Port)
	assert.Equal(t, appconf.Production, cfg.app.Env)
	assert.Equal(t, appconf.Production, cfg.dataset.Env)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.app.ApiKeys)
	assert.Equal(t, students.PolicyMean, cfg.dataset.ScorePolicy)
	assert.Equal(t, 5*time.Second, cfg.dataset.Timeout)
	assert.Equal(t, "secret", cfg.summarizer.APIKey)
}

func TestParseConfigRejectsUnknownPolicy(t *testing.T) {
	_, err := parseConfig([]string{"-score-policy", "median"}, noEnv, io.Discard)
	assert.Error(t, err)
}

func TestParseConfigFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9000
env: test
api_keys: [mentor, advisor]
dataset:
  url: https://example.com/exam.csv
  score_policy: sum
  timeout: 30s
summarizer:
  model: gemini-2.5-flash
  temperature: 0.1
`), 0o600))

	cfg, err := parseConfig([]string{"-config", path, "-port", "7000"}, noEnv, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.app.Port, "explicit flags win over the file")
	assert.Equal(t, appconf.Test, cfg.app.Env)
	assert.Equal(t, []string{"mentor", "advisor"}, cfg.app.ApiKeys)
	assert.Equal(t, "https://example.com/exam.csv", cfg.dataset.SourceURL)
	assert.Equal(t, students.PolicySum, cfg.dataset.ScorePolicy)
	assert.Equal(t, 30*time.Second, cfg.dataset.Timeout)
	assert.Equal(t, "gemini-2.5-flash", cfg.summarizer.Model)
	assert.InDelta(t, 0.1, cfg.summarizer.Temperature, 1e-6)
}

func TestParseConfigMissingFile(t *testing.T) {
	_, err := parseConfig([]string{"-config", "/nonexistent/dashboard.yaml"}, noEnv, io.Discard)
	assert.Error(t, err)
}
