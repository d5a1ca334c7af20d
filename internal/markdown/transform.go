package markdown

import (
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// linkTransformer rewrites destinations after parsing: placeholders are filled,
// empty link destinations become the placeholder href and absolute http(s)
// links open in a new tab.
type linkTransformer struct {
	opts Options
}

func (t linkTransformer) Transform(doc *gmast.Document, _ text.Reader, _ parser.Context) {
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if img, ok := n.(*gmast.Image); ok {
			img.Destination = []byte(ExpandPlaceholders(string(img.Destination), t.opts.Vars))
			return gmast.WalkContinue, nil
		}
		link, ok := n.(*gmast.Link)
		if !ok {
			return gmast.WalkContinue, nil
		}

		dest := strings.TrimSpace(ExpandPlaceholders(string(link.Destination), t.opts.Vars))
		link.Destination = []byte(dest)
		switch {
		case dest == "":
			link.Destination = []byte(t.opts.placeholder())
		case isExternal(dest) && !t.opts.SameTabExternal:
			link.SetAttributeString("target", []byte("_blank"))
			link.SetAttributeString("rel", []byte("noopener"))
		}
		return gmast.WalkContinue, nil
	})
}

func isExternal(dest string) bool {
	lower := strings.ToLower(dest)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
