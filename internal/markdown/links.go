package markdown

// Options controls how Markdown prose is parsed and rendered.
type Options struct {
	// PlaceholderHref replaces empty link destinations. Defaults to "#".
	PlaceholderHref string
	// SameTabExternal disables target="_blank" on absolute http(s) links.
	SameTabExternal bool
	// Vars fills ${NAME} tokens in link and image destinations after parsing,
	// so values are never read as Markdown.
	Vars map[string]string
}

func (o Options) placeholder() string {
	if o.PlaceholderHref == "" {
		return "#"
	}
	return o.PlaceholderHref
}

type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

type Link struct {
	Kind        LinkKind
	Destination string
}
