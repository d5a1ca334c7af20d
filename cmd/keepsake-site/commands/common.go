package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/replicate/keepsake-site/internal/config"
	"github.com/replicate/keepsake-site/internal/highlight"
	"github.com/replicate/keepsake-site/internal/logfields"
	"github.com/replicate/keepsake-site/internal/metrics"
	"github.com/replicate/keepsake-site/internal/page"
	"github.com/replicate/keepsake-site/internal/site"
)

// Global is shared state prepared once flags are parsed.
type Global struct {
	Logger *slog.Logger
	Config *config.Config
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"keepsake-site.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	EnvFile []string         `name:"env-file" help:"Environment files to load (defaults to .env and .env.local)" type:"path"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve    ServeCmd    `cmd:"" help:"Serve the homepage over HTTP"`
	Preview  PreviewCmd  `cmd:"" help:"Serve the homepage with live reload while editing a content file"`
	Generate GenerateCmd `cmd:"" help:"Export the homepage as a static directory"`
	Outline  OutlineCmd  `cmd:"" help:"Print the numbered section outline"`
	Check    CheckCmd    `cmd:"" help:"Render the homepage and verify its in-page anchors"`
}

// AfterApply runs after flag parsing: loads env files, configuration and sets up logging once.
func (c *CLI) AfterApply(g *Global) error {
	loaded, envErr := config.LoadEnv(c.EnvFile...)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	g.Config = cfg
	g.Logger = cfg.Logging.NewLogger(os.Stderr, c.Verbose)
	slog.SetDefault(g.Logger)

	for _, f := range loaded {
		slog.Debug("Loaded environment file", logfields.File(f))
	}
	if envErr != nil {
		slog.Warn("Failed to load environment file", logfields.Error(envErr))
	}
	return nil
}

// siteOptions maps configuration onto a site, with an optional content override.
func siteOptions(cfg *config.Config, contentPath string, recorder metrics.Recorder) site.Options {
	if contentPath == "" {
		contentPath = cfg.Content.Path
	}
	return site.Options{
		ContentPath: contentPath,
		Vars:        cfg.ContentVars(),
		Recorder:    recorder,
		Render: page.Options{
			BaseURL:     cfg.Site.BaseURL,
			Highlighter: highlight.New(cfg.Site.HighlightStyle),
		},
	}
}

// newMetrics returns a registry and recorder when metrics are enabled.
func newMetrics(cfg *config.Config) (*prom.Registry, metrics.Recorder) {
	if !cfg.Monitoring.Metrics.Enabled {
		return nil, metrics.NoopRecorder{}
	}
	reg := prom.NewRegistry()
	return reg, metrics.NewPrometheusRecorder(reg)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
