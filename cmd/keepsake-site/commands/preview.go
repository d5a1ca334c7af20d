package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/replicate/keepsake-site/internal/content"
	"github.com/replicate/keepsake-site/internal/foundation/errors"
	"github.com/replicate/keepsake-site/internal/logfields"
	"github.com/replicate/keepsake-site/internal/preview"
	"github.com/replicate/keepsake-site/internal/server/httpserver"
	"github.com/replicate/keepsake-site/internal/site"
)

// DefaultPreviewContent is seeded with the embedded copy when no content file exists.
const DefaultPreviewContent = "content/home.yaml"

// PreviewCmd serves the homepage and reloads browsers when the content file changes.
type PreviewCmd struct {
	Content string `short:"f" help:"Content file to watch" type:"path"`
	Port    int    `short:"p" help:"Preview port (overrides preview.port)"`
}

func (p *PreviewCmd) Run(g *Global, _ *CLI) error {
	cfg := g.Config
	path := p.Content
	if path == "" {
		path = cfg.Content.Path
	}
	if path == "" {
		path = DefaultPreviewContent
	}
	if err := seedContent(path); err != nil {
		return err
	}
	port := cfg.Preview.Port
	if p.Port != 0 {
		port = p.Port
	}

	reg, recorder := newMetrics(cfg)
	st, err := site.New(siteOptions(cfg, path, recorder))
	if err != nil {
		return err
	}

	hub := preview.NewHub(recorder)
	hub.Seed(st.Hash())
	defer hub.Shutdown()

	srv, err := httpserver.New(st, httpserver.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Host, port),
		ImagesDir:   cfg.Assets.ImagesDir,
		HealthPath:  cfg.Monitoring.Health.Path,
		MetricsPath: cfg.Monitoring.Metrics.Path,
		Registry:    reg,
		Recorder:    recorder,
		LiveReload:  hub,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	watcher, err := preview.NewWatcher(path, st, hub, cfg.Preview.Debounce.Std())
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to start content watcher").Build()
	}
	if err := watcher.Start(ctx); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to start content watcher").Build()
	}
	defer func() { _ = watcher.Stop() }()

	if err := srv.Start(ctx); err != nil {
		return err
	}
	fmt.Printf("Previewing %s at http://%s/\n", path, srv.Addr())

	<-ctx.Done()
	slog.Info("Shutting down preview")
	hub.Shutdown()
	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer stopCancel()
	return srv.Stop(stopCtx)
}

// seedContent writes the embedded page copy to path if it does not exist yet.
func seedContent(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create content directory").
			WithContext("path", path).
			Build()
	}
	if err := os.WriteFile(path, content.DefaultSource(), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to seed content file").
			WithContext("path", path).
			Build()
	}
	slog.Info("Seeded content file from the built-in homepage", logfields.File(path))
	return nil
}
