package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/replicate/keepsake-site/internal/content"
	"github.com/replicate/keepsake-site/internal/highlight"
)

// CodeBlocks renders code samples with a shared highlighter.
type CodeBlocks struct {
	hl *highlight.Highlighter
}

// NewCodeBlocks returns a renderer using hl, or the default style when hl is nil.
func NewCodeBlocks(hl *highlight.Highlighter) *CodeBlocks {
	if hl == nil {
		hl = highlight.New(highlight.DefaultStyle)
	}
	return &CodeBlocks{hl: hl}
}

// CodeBlock renders a read-only, highlighted listing. The copy button is only
// emitted when the sample allows it; it reads the marker-free source from
// data-source.
func (c *CodeBlocks) CodeBlock(sample content.CodeSample) g.Node {
	source, _ := highlight.StripMarkers(sample.Source)

	body, err := c.hl.HTML(sample.Language, sample.Source)
	var listing g.Node
	if err != nil {
		listing = Pre(Code(g.Text(source)))
	} else {
		listing = g.Raw(body)
	}

	class := "code-block"
	if sample.Class != "" {
		class += " " + sample.Class
	}
	return Div(
		Class(class),
		g.If(sample.Language != "", g.Attr("data-language", sample.Language)),
		g.Attr("data-source", source),
		listing,
		g.If(sample.Copyable(),
			Button(Type("button"), Class("copy"), g.Attr("data-copy"), g.Text("Copy")),
		),
	)
}
