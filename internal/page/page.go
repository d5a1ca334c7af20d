// Package page composes the homepage from content records and components.
//
// Every call to Home, Render or Outline owns a fresh ordinal counter, so the
// section labels always start at "01" and follow document order.
package page

import (
	"io"

	g "maragu.dev/gomponents"

	"github.com/replicate/keepsake-site/internal/components"
	"github.com/replicate/keepsake-site/internal/content"
	"github.com/replicate/keepsake-site/internal/highlight"
	"github.com/replicate/keepsake-site/internal/ordinal"
)

// Options controls document-level rendering.
type Options struct {
	BaseURL     string
	LiveReload  bool
	Stylesheets []string
	// Highlighter is shared across renders; nil uses the default style.
	Highlighter *highlight.Highlighter
}

func (o Options) layout() components.LayoutOptions {
	return components.LayoutOptions{
		BaseURL:     o.BaseURL,
		Stylesheets: o.Stylesheets,
		LiveReload:  o.LiveReload,
	}
}

// Heading is an ordinal-labelled section heading.
type Heading struct {
	Ordinal string
	Title   string
	Region  content.Region
	ID      string
}

// Render writes the complete homepage document to w. Only writer errors are returned.
func Render(w io.Writer, p *content.Page, opts Options) error {
	return Home(p, opts).Render(w)
}

// Home returns the composed homepage node tree.
func Home(p *content.Page, opts Options) g.Node {
	b := newBuilder(p, opts)
	return components.Layout(p.Meta, opts.layout(), b.body(p)...)
}

// Outline lists section headings with their ordinals in document order.
func Outline(p *content.Page) []Heading {
	c := ordinal.New()
	out := make([]Heading, 0, len(p.Sections))
	for _, s := range p.Sections {
		out = append(out, Heading{
			Ordinal: c.Next(),
			Title:   s.Heading,
			Region:  s.Region,
			ID:      s.ID,
		})
	}
	return out
}
