package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/replicate/keepsake-site/internal/server/httpserver"
	"github.com/replicate/keepsake-site/internal/site"
)

// ServeCmd serves the homepage until interrupted.
type ServeCmd struct {
	Host    string `help:"Listen host (overrides server.host)"`
	Port    int    `short:"p" help:"Listen port (overrides server.port)"`
	Content string `help:"Content override file (overrides content.path)" type:"path"`
}

func (s *ServeCmd) Run(g *Global, _ *CLI) error {
	cfg := g.Config
	if s.Host != "" {
		cfg.Server.Host = s.Host
	}
	if s.Port != 0 {
		cfg.Server.Port = s.Port
	}

	reg, recorder := newMetrics(cfg)
	st, err := site.New(siteOptions(cfg, s.Content, recorder))
	if err != nil {
		return err
	}

	srv, err := httpserver.New(st, httpserver.Options{
		Addr:        cfg.Addr(),
		ImagesDir:   cfg.Assets.ImagesDir,
		HealthPath:  cfg.Monitoring.Health.Path,
		MetricsPath: cfg.Monitoring.Metrics.Path,
		Registry:    reg,
		Recorder:    recorder,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	if err := srv.Start(ctx); err != nil {
		return err
	}
	fmt.Printf("Serving Keepsake homepage at http://%s/\n", srv.Addr())

	<-ctx.Done()
	slog.Info("Shutting down")
	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer stopCancel()
	return srv.Stop(stopCtx)
}
