package commands

import (
	"context"
	"fmt"

	"github.com/replicate/keepsake-site/internal/export"
	"github.com/replicate/keepsake-site/internal/site"
)

// GenerateCmd writes the homepage as a static directory for CI/CD pipelines.
type GenerateCmd struct {
	Output  string `short:"o" help:"Output directory (overrides output.directory)" type:"path"`
	Clean   bool   `help:"Remove the output directory before writing"`
	Content string `help:"Content override file (overrides content.path)" type:"path"`
	Images  string `help:"Images directory to copy (overrides assets.images_dir)" type:"path"`
}

func (c *GenerateCmd) Run(g *Global, _ *CLI) error {
	cfg := g.Config
	out := cfg.Output.Directory
	if c.Output != "" {
		out = c.Output
	}
	images := cfg.Assets.ImagesDir
	if c.Images != "" {
		images = c.Images
	}

	_, recorder := newMetrics(cfg)
	st, err := site.New(siteOptions(cfg, c.Content, recorder))
	if err != nil {
		return err
	}

	m, err := export.Generate(context.Background(), st, export.Options{
		OutputDir: out,
		Clean:     c.Clean || cfg.Output.Clean,
		ImagesDir: images,
		Recorder:  recorder,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Generated %d files in %s (build %s)\n", len(m.Files), out, m.BuildID)
	return nil
}
