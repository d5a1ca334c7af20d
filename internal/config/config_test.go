package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replicate/keepsake-site/internal/foundation/errors"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("ANALYSIS_COLAB_URL", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "keepsake-site.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, DefaultDebounce, cfg.Preview.Debounce.Std())
	assert.True(t, cfg.Monitoring.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Monitoring.Metrics.Path)
	assert.Equal(t, "/health", cfg.Monitoring.Health.Path)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Empty(t, cfg.Links.AnalysisNotebookURL)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("ANALYSIS_COLAB_URL", "https://colab.example/nb")
	t.Setenv("SITE_PORT", "9000")

	path := writeFile(t, t.TempDir(), "config.yaml", `
site:
  base_url: https://keepsake.ai
links:
  analysis_notebook_url: ${ANALYSIS_COLAB_URL}
server:
  port: ${SITE_PORT}
monitoring:
  metrics:
    enabled: false
logging:
  level: DEBUG
  format: json
preview:
  debounce: 50ms
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://colab.example/nb", cfg.Links.AnalysisNotebookURL)
	assert.Equal(t, map[string]string{"ANALYSIS_COLAB_URL": "https://colab.example/nb"}, cfg.ContentVars())
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.False(t, cfg.Monitoring.Metrics.Enabled)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, 50*time.Millisecond, cfg.Preview.Debounce.Std())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "server:\n  listen: 1\n"},
		{"bad port", "server:\n  port: 70000\n"},
		{"bad duration", "preview:\n  debounce: soon\n"},
		{"relative base url", "site:\n  base_url: keepsake.ai\n"},
		{"metrics path", "monitoring:\n  metrics:\n    path: metrics\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.yaml", tt.body)
			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
		})
	}
}

func TestLoadEnv_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "KEEPSAKE_SITE_A=from-file\nKEEPSAKE_SITE_B=\"quoted\"\n")
	t.Setenv("KEEPSAKE_SITE_A", "from-env")
	t.Setenv("KEEPSAKE_SITE_B", "")
	require.NoError(t, os.Unsetenv("KEEPSAKE_SITE_B"))

	loaded, err := LoadEnv(envFile, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, []string{envFile}, loaded)
	assert.Equal(t, "from-env", os.Getenv("KEEPSAKE_SITE_A"))
	assert.Equal(t, "quoted", os.Getenv("KEEPSAKE_SITE_B"))
}

func TestNormalizeLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel("warning"))
	assert.Equal(t, LogLevelError, NormalizeLogLevel(" error "))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
}

func TestNewLogger(t *testing.T) {
	l := LoggingConfig{Level: LogLevelWarn, Format: LogFormatText}
	logger := l.NewLogger(os.Stderr, false)
	assert.False(t, logger.Enabled(t.Context(), -4))
	assert.True(t, l.NewLogger(os.Stderr, true).Enabled(t.Context(), -4))
}
