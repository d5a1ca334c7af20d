package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/replicate/keepsake-site/internal/page"
	"github.com/replicate/keepsake-site/internal/site"
)

// OutlineCmd prints the section outline with its ordinals.
type OutlineCmd struct {
	Content string `help:"Content override file (overrides content.path)" type:"path"`
}

func (o *OutlineCmd) Run(g *Global, _ *CLI) error {
	st, err := site.New(siteOptions(g.Config, o.Content, nil))
	if err != nil {
		return err
	}
	return printOutline(os.Stdout, st.Outline())
}

// printOutline writes "NN  Title" lines. Styling is applied only when out supports it.
func printOutline(out io.Writer, headings []page.Heading) error {
	r := lipgloss.NewRenderer(out)
	ordinalStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	titleStyle := r.NewStyle().Foreground(lipgloss.Color("252"))
	regionStyle := r.NewStyle().Foreground(lipgloss.Color("241"))

	for _, h := range headings {
		if _, err := fmt.Fprintf(out, "%s  %s  %s\n",
			ordinalStyle.Render(h.Ordinal),
			titleStyle.Render(h.Title),
			regionStyle.Render("("+string(h.Region)+")"),
		); err != nil {
			return err
		}
	}
	return nil
}
