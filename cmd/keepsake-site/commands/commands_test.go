package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replicate/keepsake-site/internal/config"
	"github.com/replicate/keepsake-site/internal/content"
	"github.com/replicate/keepsake-site/internal/foundation/errors"
	"github.com/replicate/keepsake-site/internal/metrics"
	"github.com/replicate/keepsake-site/internal/page"
	"github.com/replicate/keepsake-site/internal/site"
)

const singleFeature = `
sections:
  - region: features
    id: features
    heading: Features
    features:
      - id: alpha
        heading: Alpha
        body: First feature.
`

func TestSiteOptions_ContentOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Content.Path = "from-config.yaml"
	cfg.Site.BaseURL = "https://keepsake.ai"

	opts := siteOptions(cfg, "", nil)
	assert.Equal(t, "from-config.yaml", opts.ContentPath)
	assert.Equal(t, "https://keepsake.ai", opts.Render.BaseURL)
	assert.NotNil(t, opts.Render.Highlighter)

	opts = siteOptions(cfg, "flag.yaml", nil)
	assert.Equal(t, "flag.yaml", opts.ContentPath)
}

func TestNewMetrics(t *testing.T) {
	cfg := config.Default()
	reg, rec := newMetrics(cfg)
	require.NotNil(t, reg)
	assert.IsType(t, &metrics.PrometheusRecorder{}, rec)

	cfg.Monitoring.Metrics.Enabled = false
	reg, rec = newMetrics(cfg)
	assert.Nil(t, reg)
	assert.Equal(t, metrics.NoopRecorder{}, rec)
}

func TestPrintOutline_PlainWriter(t *testing.T) {
	var buf bytes.Buffer
	err := printOutline(&buf, []page.Heading{
		{Ordinal: "01", Title: "Version control for machine learning", Region: content.RegionInfo},
		{Ordinal: "08", Title: "Features", Region: content.RegionFeatures},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "01  Version control for machine learning  (info)", lines[0])
	assert.Equal(t, "08  Features  (features)", lines[1])
}

func TestRunCheck_EmbeddedPage(t *testing.T) {
	st, err := site.New(site.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runCheck(&buf, st))
	assert.Contains(t, buf.String(), "0 unresolved in navigation")
}

func TestRunCheck_FeatureAnchorsResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "home.yaml")
	require.NoError(t, os.WriteFile(path, []byte(singleFeature), 0o600))

	st, err := site.New(site.Options{ContentPath: path})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runCheck(&buf, st))
	assert.Contains(t, buf.String(), "0 unresolved in navigation")
}

func TestSeedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content", "home.yaml")

	require.NoError(t, seedContent(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content.DefaultSource(), data)

	require.NoError(t, os.WriteFile(path, []byte(singleFeature), 0o600))
	require.NoError(t, seedContent(path))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, singleFeature, string(data), "existing files are left alone")
}

func TestSeedContent_UnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	err := seedContent(filepath.Join(blocker, "home.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestCLI_AfterApply(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("server:\n  port: 9090\nlogging:\n  level: debug\n"), 0o600))

	cli := &CLI{Config: cfgPath, EnvFile: []string{filepath.Join(dir, "missing.env")}}
	g := &Global{}
	require.NoError(t, cli.AfterApply(g))
	require.NotNil(t, g.Config)
	require.NotNil(t, g.Logger)
	assert.Equal(t, 9090, g.Config.Server.Port)
}
