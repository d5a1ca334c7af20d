// Package highlight renders the homepage code samples with chroma.
//
// Samples may carry "#highlight-start" and "#highlight-end" marker lines. The
// markers are removed and the lines between them are emphasized.
package highlight

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	markerStart = "#highlight-start"
	markerEnd   = "#highlight-end"

	// DefaultStyle is the chroma style used when none is configured.
	DefaultStyle = "github"
)

// Highlighter renders source text to class-annotated HTML.
type Highlighter struct {
	style *chroma.Style
}

// New returns a Highlighter for the named chroma style. Unknown names fall back
// to chroma's default style.
func New(styleName string) *Highlighter {
	if styleName == "" {
		styleName = DefaultStyle
	}
	return &Highlighter{style: styles.Get(styleName)}
}

// StripMarkers removes highlight marker lines from src and returns the cleaned
// text together with the emphasized line ranges (1-based, inclusive) in it.
// An unterminated start marker extends to the last line.
func StripMarkers(src string) (string, [][2]int) {
	lines := strings.Split(src, "\n")
	kept := make([]string, 0, len(lines))
	var ranges [][2]int
	open := 0

	for _, line := range lines {
		switch strings.TrimSpace(line) {
		case markerStart:
			if open == 0 {
				open = len(kept) + 1
			}
			continue
		case markerEnd:
			if open != 0 && len(kept) >= open {
				ranges = append(ranges, [2]int{open, len(kept)})
			}
			open = 0
			continue
		}
		kept = append(kept, line)
	}
	if open != 0 && len(kept) >= open {
		ranges = append(ranges, [2]int{open, len(kept)})
	}
	return strings.Join(kept, "\n"), ranges
}

// lexerFor resolves a language tag, falling back to plain text.
func lexerFor(language string) chroma.Lexer {
	l := lexers.Get(language)
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}

// HTML renders src (markers included) for the given language.
func (h *Highlighter) HTML(language, src string) (string, error) {
	clean, ranges := StripMarkers(src)

	iterator, err := lexerFor(language).Tokenise(nil, clean)
	if err != nil {
		return "", fmt.Errorf("tokenise %s sample: %w", language, err)
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.HighlightLines(ranges),
		chromahtml.TabWidth(4),
	)
	var buf bytes.Buffer
	if err := formatter.Format(&buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("format %s sample: %w", language, err)
	}
	return buf.String(), nil
}

// CSS returns the stylesheet matching the classes emitted by HTML.
func (h *Highlighter) CSS() (string, error) {
	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("write chroma css: %w", err)
	}
	return buf.String(), nil
}
