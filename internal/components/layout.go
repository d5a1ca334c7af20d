package components

import (
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/replicate/keepsake-site/internal/content"
)

// LayoutOptions carries page-independent document settings.
type LayoutOptions struct {
	// BaseURL, when set, is published as og:url.
	BaseURL string
	// Stylesheets are linked in order after the defaults.
	Stylesheets []string
	// Scripts are loaded with defer after the defaults.
	Scripts []string
	// LiveReload injects the preview reload client.
	LiveReload bool
}

// DefaultStylesheets are served from the embedded static assets.
var DefaultStylesheets = []string{"/static/site.css", "/static/chroma.css"}

// DefaultScripts are served from the embedded static assets.
var DefaultScripts = []string{"/static/site.js"}

// Layout wraps children in the document shell and shared head metadata.
func Layout(meta content.Meta, opts LayoutOptions, children ...g.Node) g.Node {
	stylesheets := append(append([]string{}, DefaultStylesheets...), opts.Stylesheets...)
	scripts := append(append([]string{}, DefaultScripts...), opts.Scripts...)

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(g.Text(meta.Title)),
				Meta(Name("description"), Content(meta.Description)),

				Meta(g.Attr("property", "og:title"), Content(meta.Title)),
				Meta(g.Attr("property", "og:description"), Content(meta.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),
				g.If(opts.BaseURL != "",
					Meta(g.Attr("property", "og:url"), Content(strings.TrimSuffix(opts.BaseURL, "/")+"/")),
				),
				Meta(g.Attr("property", "twitter:card"), Content("summary")),
				Meta(g.Attr("property", "twitter:title"), Content(meta.SocialTitle())),
				Meta(g.Attr("property", "twitter:description"), Content(meta.Description)),

				Link(Rel("icon"), Href("/favicon.ico")),
				g.Map(stylesheets, func(href string) g.Node {
					return Link(Rel("stylesheet"), Href(href))
				}),
			),
			Body(
				g.Group(children),
				g.Map(scripts, func(src string) g.Node {
					return Script(Src(src), Defer())
				}),
				g.If(opts.LiveReload, Script(Src("/static/livereload.js"))),
			),
		),
	})
}
