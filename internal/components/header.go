package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const (
	githubURL  = "https://github.com/replicate/keepsake"
	twitterURL = "https://twitter.com/replicatehq"
)

// PageHeader renders the banner: the navigation bar followed by children.
func PageHeader(class string, children ...g.Node) g.Node {
	return Header(
		g.If(class != "", Class(class)),
		Nav(
			Class("navbar"),
			A(Class("logo"), Href("/"), g.Text("Keepsake")),
			Ul(
				Li(A(Href("/docs"), g.Text("Docs"))),
				Li(A(Href(githubURL), Title("GitHub"), g.Text("GitHub"))),
				Li(A(Href(twitterURL), Title("Twitter"), g.Text("Twitter"))),
			),
		),
		g.Group(children),
	)
}

// PageFooter renders the closing chrome shared by every page.
func PageFooter() g.Node {
	return Footer(
		Nav(
			Ul(
				Li(A(Href("/docs"), g.Text("Docs"))),
				Li(A(Href(githubURL), g.Text("GitHub"))),
				Li(A(Href(twitterURL), g.Text("Twitter"))),
			),
		),
		P(
			Class("license"),
			g.Text("Keepsake is open source under the Apache 2.0 license."),
		),
	)
}
