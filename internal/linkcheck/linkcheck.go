// Package linkcheck inspects rendered HTML for in-page anchors that do not resolve.
// External links are collected but never fetched.
package linkcheck

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/replicate/keepsake-site/internal/foundation/errors"
)

// Link is a link found in a document.
type Link struct {
	URL  string
	Text string
	Tag  string
	// InNav is true for links inside a <nav> element, e.g. the features table of contents.
	InNav bool
}

// Fragment returns the in-page target of the link, or "" if it is not a fragment link.
// A bare "#" is a placeholder and has no target.
func (l *Link) Fragment() string {
	if !strings.HasPrefix(l.URL, "#") {
		return ""
	}
	return strings.TrimPrefix(l.URL, "#")
}

// IsExternal reports whether the link leaves the site.
func (l *Link) IsExternal() bool {
	u, err := url.Parse(l.URL)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// Report is the result of a check.
type Report struct {
	Links []*Link
	IDs   map[string]bool
	// Missing lists fragment links whose target id is absent.
	Missing []*Link
}

// External returns the links that leave the site.
func (r *Report) External() []*Link {
	var out []*Link
	for _, l := range r.Links {
		if l.IsExternal() {
			out = append(out, l)
		}
	}
	return out
}

// MissingInNav returns unresolved fragment links inside navigation.
func (r *Report) MissingInNav() []*Link {
	var out []*Link
	for _, l := range r.Missing {
		if l.InNav {
			out = append(out, l)
		}
	}
	return out
}

// Fragments returns every fragment link with a target.
func (r *Report) Fragments() []*Link {
	var out []*Link
	for _, l := range r.Links {
		if l.Fragment() != "" {
			out = append(out, l)
		}
	}
	return out
}

// Check parses an HTML document and resolves its fragment links against element ids.
func Check(r io.Reader) (*Report, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").
			WithSeverity(errors.SeverityError).
			Build()
	}

	report := &Report{IDs: make(map[string]bool)}
	var walk func(n *html.Node, inNav bool)
	walk = func(n *html.Node, inNav bool) {
		if n.Type == html.ElementNode {
			if id := getAttr(n, "id"); id != "" {
				report.IDs[id] = true
			}
			if n.Data == "nav" {
				inNav = true
			}
			collect(n, inNav, report)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inNav)
		}
	}
	walk(doc, false)

	for _, l := range report.Links {
		if f := l.Fragment(); f != "" && !report.IDs[f] {
			report.Missing = append(report.Missing, l)
		}
	}
	return report, nil
}

func collect(n *html.Node, inNav bool, report *Report) {
	var attr string
	switch n.Data {
	case "a":
		attr = "href"
	case "img", "iframe":
		attr = "src"
	default:
		return
	}
	val := getAttr(n, attr)
	if val == "" {
		return
	}
	text := extractText(n)
	if n.Data == "img" {
		text = getAttr(n, "alt")
	}
	report.Links = append(report.Links, &Link{URL: val, Text: text, Tag: n.Data, InNav: inNav})
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractText(c))
	}
	return strings.TrimSpace(text.String())
}
