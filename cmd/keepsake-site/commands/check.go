package commands

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/replicate/keepsake-site/internal/foundation/errors"
	"github.com/replicate/keepsake-site/internal/linkcheck"
	"github.com/replicate/keepsake-site/internal/site"
)

// CheckCmd renders the page and verifies that in-page navigation resolves.
type CheckCmd struct {
	Content string `help:"Content override file (overrides content.path)" type:"path"`
}

func (c *CheckCmd) Run(g *Global, _ *CLI) error {
	st, err := site.New(siteOptions(g.Config, c.Content, nil))
	if err != nil {
		return err
	}
	return runCheck(os.Stdout, st)
}

func runCheck(out io.Writer, st *site.Site) error {
	var buf bytes.Buffer
	if err := st.Render(&buf); err != nil {
		return err
	}
	report, err := linkcheck.Check(&buf)
	if err != nil {
		return err
	}

	for _, l := range report.Missing {
		if !l.InNav {
			slog.Warn("Fragment link target is not on this page", slog.String("href", l.URL), slog.String("text", l.Text))
		}
	}
	for _, l := range report.External() {
		slog.Debug("External link", slog.String("href", l.URL), slog.String("tag", l.Tag))
	}

	missing := report.MissingInNav()
	_, _ = fmt.Fprintf(out, "%d links, %d fragment links, %d external, %d unresolved in navigation\n",
		len(report.Links), len(report.Fragments()), len(report.External()), len(missing))
	if len(missing) == 0 {
		return nil
	}

	hrefs := make([]string, 0, len(missing))
	for _, l := range missing {
		hrefs = append(hrefs, l.URL)
	}
	return errors.ValidationError(fmt.Sprintf("%d navigation link(s) do not resolve", len(missing))).
		WithContext("links", hrefs).
		Build()
}
