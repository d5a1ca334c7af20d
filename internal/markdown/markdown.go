package markdown

import (
	"bytes"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Renderer converts Markdown prose to HTML. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer with the link transformer installed.
func New(opts Options) *Renderer {
	md := goldmark.New(
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(linkTransformer{opts: opts}, 100)),
		),
	)
	return &Renderer{md: md}
}

var defaultRenderer = New(Options{})

// Render converts src to HTML using the default options.
func Render(src string) (string, error) {
	return defaultRenderer.Render(src)
}

// Render converts src to HTML. Raw HTML in src is not passed through.
func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// ExtractLinks parses a Markdown body and extracts link-like constructs.
//
// Placeholders in destinations are filled from opts.Vars; the other render-time
// link rewrites are not applied.
func ExtractLinks(body []byte, opts Options) ([]Link, error) {
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: ExpandPlaceholders(string(node.Destination), opts.Vars)})
		case *gmast.Link:
			links = append(links, Link{Kind: LinkKindInline, Destination: ExpandPlaceholders(string(node.Destination), opts.Vars)})
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions are stored in the parse context (not represented as AST nodes).
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: ExpandPlaceholders(string(ref.Destination()), opts.Vars)})
	}

	return links, nil
}
