package page

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/replicate/keepsake-site/internal/components"
	"github.com/replicate/keepsake-site/internal/content"
	"github.com/replicate/keepsake-site/internal/markdown"
	"github.com/replicate/keepsake-site/internal/ordinal"
)

// builder carries per-render state. It must not outlive a single render.
type builder struct {
	counter *ordinal.Counter
	code    *components.CodeBlocks
	prose   *markdown.Renderer
}

func newBuilder(p *content.Page, opts Options) *builder {
	return &builder{
		counter: ordinal.New(),
		code:    components.NewCodeBlocks(opts.Highlighter),
		prose:   markdown.New(markdown.Options{Vars: p.Vars()}),
	}
}

// group is a run of consecutive sections sharing a region.
type group struct {
	region   content.Region
	sections []content.Section
}

func groupSections(sections []content.Section) []group {
	var out []group
	for _, s := range sections {
		if n := len(out); n > 0 && out[n-1].region == s.Region && s.Region != content.RegionFeatures {
			out[n-1].sections = append(out[n-1].sections, s)
			continue
		}
		out = append(out, group{region: s.Region, sections: []content.Section{s}})
	}
	return out
}

// body builds the page in document order. Leading info groups belong to the banner.
func (b *builder) body(p *content.Page) []g.Node {
	groups := groupSections(p.Sections)

	banner := []g.Node{b.hero(p.Hero)}
	for len(groups) > 0 && groups[0].region == content.RegionInfo {
		banner = append(banner, b.group(groups[0]))
		groups = groups[1:]
	}

	nodes := []g.Node{components.PageHeader("homepage", banner...)}
	for _, grp := range groups {
		nodes = append(nodes, b.group(grp))
	}
	return append(nodes, b.closing(p.Closing), components.PageFooter())
}

func (b *builder) hero(h content.Hero) g.Node {
	actions := make([]g.Node, 0, 2*len(h.Actions)+1)
	for _, a := range h.Actions {
		actions = append(actions, link(a), g.Text(" "))
	}
	if h.Badge.Enabled() {
		actions = append(actions, g.El("iframe",
			Src(h.Badge.URL()),
			g.Attr("frameborder", "0"),
			g.Attr("scrolling", "0"),
			g.If(h.Badge.Width > 0, g.Attr("width", strconv.Itoa(h.Badge.Width))),
			g.If(h.Badge.Height > 0, g.Attr("height", strconv.Itoa(h.Badge.Height))),
			Title("GitHub"),
		))
	}

	return Section(
		Class("cta"),
		H2(
			g.Text(h.Lead),
			g.If(h.Joiner != "", g.El("abbr", Title(h.JoinerTitle), Span(g.Text(h.Joiner)))),
			g.Text(" "+h.Tail),
		),
		P(actions...),
	)
}

func (b *builder) group(grp group) g.Node {
	if grp.region == content.RegionFeatures {
		return b.features(grp.sections[0])
	}
	var children []g.Node
	for _, s := range grp.sections {
		children = append(children, b.section(s)...)
	}
	return Section(Class(string(grp.region)), g.Group(children))
}

func (b *builder) heading(title string) g.Node {
	return H2(Span(g.Text(b.counter.Next())), g.Text(" "+title))
}

func (b *builder) section(s content.Section) []g.Node {
	text := Div(
		g.If(s.ID != "", ID(s.ID)),
		b.heading(s.Heading),
		b.markdown(s.Body),
	)
	if len(s.Code) == 0 {
		return []g.Node{text}
	}

	blocks := make([]g.Node, 0, len(s.Code))
	for _, c := range s.Code {
		blocks = append(blocks, b.code.CodeBlock(c))
	}
	return []g.Node{text, Div(Class("windowChrome"), g.Group(blocks))}
}

func (b *builder) features(s content.Section) g.Node {
	heading := b.heading(s.Heading)

	toc := make([]g.Node, 0, len(s.Features))
	entries := make([]g.Node, 0, len(s.Features))
	for _, f := range s.Features {
		toc = append(toc, Li(A(Href(f.Anchor()), g.Text(f.Title))))
		entries = append(entries, b.feature(f))
	}

	return Section(
		Class("docs homepage"),
		g.If(s.ID != "", ID(s.ID)),
		Nav(Ol(Li(heading, Ol(toc...)))),
		Div(Class("body"), b.markdown(s.Body), g.Group(entries)),
	)
}

func (b *builder) feature(f content.Feature) g.Node {
	nodes := []g.Node{
		H3(ID(f.ID), g.Text(f.Title)),
		b.markdown(f.Body),
	}
	if f.Code != nil {
		nodes = append(nodes, b.code.CodeBlock(*f.Code))
	}
	if f.Image != nil {
		nodes = append(nodes, Img(
			Src(f.Image.Src),
			Alt(f.Image.Alt),
			g.If(f.Image.WidthAttr() != "", g.Attr("width", f.Image.WidthAttr())),
		))
	}
	return g.Group(nodes)
}

func (b *builder) closing(c content.Closing) g.Node {
	primary := c.Primary
	primary.Button = true
	return Section(
		Class("homepage-cta"),
		Div(H2(link(primary))),
		Div(g.Text(c.Separator)),
		Div(link(c.Secondary)),
	)
}

// markdown renders prose; a body that fails to convert is shown as plain text.
func (b *builder) markdown(body string) g.Node {
	if body == "" {
		return g.Text("")
	}
	html, err := b.prose.Render(body)
	if err != nil {
		return P(g.Text(body))
	}
	return g.Raw(html)
}

func link(l content.Link) g.Node {
	href := l.Href
	if href == "" {
		href = "#"
	}
	return A(
		Href(href),
		g.If(l.Button, Class("button")),
		g.Text(l.Label),
	)
}
