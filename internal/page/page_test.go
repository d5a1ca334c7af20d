package page

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replicate/keepsake-site/internal/content"
)

var ordinalPattern = regexp.MustCompile(`<h2><span>(\d{2,})</span>`)

func renderDefault(t *testing.T, vars content.Vars, opts Options) string {
	t.Helper()
	p, err := content.Default(vars)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, p, opts))
	return buf.String()
}

func TestRender_OrdinalsInDocumentOrder(t *testing.T) {
	out := renderDefault(t, nil, Options{})

	var got []string
	for _, m := range ordinalPattern.FindAllStringSubmatch(out, -1) {
		got = append(got, m[1])
	}
	assert.Equal(t, []string{"01", "02", "03", "04", "05", "06", "07", "08"}, got)
	assert.Contains(t, out, "<h2><span>08</span> Features</h2>")
}

func TestRender_EachRenderStartsAtOne(t *testing.T) {
	first := renderDefault(t, nil, Options{})
	second := renderDefault(t, nil, Options{})
	assert.Equal(t, first, second)
	assert.Contains(t, second, "<h2><span>01</span> Never lose your work</h2>")
}

func TestRender_TableOfContentsResolves(t *testing.T) {
	out := renderDefault(t, nil, Options{})

	anchors := regexp.MustCompile(`<li><a href="#(anchor-\d)">`).FindAllStringSubmatch(out, -1)
	require.Len(t, anchors, 6)
	for _, a := range anchors {
		assert.Contains(t, out, `<h3 id="`+a[1]+`">`)
	}
}

func TestRender_NotebookLinks(t *testing.T) {
	t.Run("configured", func(t *testing.T) {
		out := renderDefault(t, content.Vars{"ANALYSIS_COLAB_URL": "https://colab.example/nb"}, Options{})
		assert.Equal(t, 2, strings.Count(out, `href="https://colab.example/nb" target="_blank"`))
	})
	t.Run("value with a space", func(t *testing.T) {
		out := renderDefault(t, content.Vars{"ANALYSIS_COLAB_URL": "https://example.com/notebook (copy).ipynb"}, Options{})
		assert.Equal(t, 2, strings.Count(out, `href="https://example.com/notebook%20(copy).ipynb" target="_blank"`))
		assert.NotContains(t, out, "](")
	})
	t.Run("value with an unbalanced paren", func(t *testing.T) {
		out := renderDefault(t, content.Vars{"ANALYSIS_COLAB_URL": "https://example.com/a)b"}, Options{})
		assert.Equal(t, 2, strings.Count(out, `href="https://example.com/a)b" target="_blank"`))
		assert.Contains(t, out, ">Learn more.</a>")
		assert.NotContains(t, out, "</a>b)")
	})
	t.Run("unset degrades to placeholder", func(t *testing.T) {
		out := renderDefault(t, nil, Options{})
		assert.Contains(t, out, `<a href="#">Learn more.</a>`)
		assert.Contains(t, out, `<a href="#">from within a notebook</a>`)
	})
}

func TestRender_DocumentShell(t *testing.T) {
	out := renderDefault(t, nil, Options{BaseURL: "https://keepsake.ai", LiveReload: true, Stylesheets: []string{"/extra.css"}})

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html><html lang=\"en\">"))
	assert.Contains(t, out, "<title>Keepsake – Version control for machine learning</title>")
	assert.Contains(t, out, `<meta property="twitter:title" content="Keepsake – Version control for ML">`)
	assert.Contains(t, out, `<meta property="og:url" content="https://keepsake.ai/">`)
	assert.Contains(t, out, `href="/extra.css"`)
	assert.Contains(t, out, `/static/livereload.js`)
	assert.Contains(t, out, "<footer>")
}

func TestRender_Hero(t *testing.T) {
	out := renderDefault(t, nil, Options{})

	assert.Contains(t, out, `<header class="homepage">`)
	assert.Contains(t, out, `<abbr title=" and"><span>,</span></abbr> open source`)
	assert.Contains(t, out, `<a href="/docs">Get started</a>`)
	assert.Contains(t, out, `<a href="#manifesto">Get involved</a>`)
	assert.Contains(t, out, `src="https://ghbtns.com/github-btn.html?user=replicate&amp;repo=keepsake&amp;type=star&amp;count=true&amp;size=large"`)

	// the info grid is part of the banner
	header := out[strings.Index(out, "<header"):strings.Index(out, "</header>")]
	assert.Contains(t, header, `<section class="info">`)
	assert.NotContains(t, header, `<section class="terminal">`)
}

func TestRender_CodeBlocks(t *testing.T) {
	out := renderDefault(t, nil, Options{})

	assert.Contains(t, out, `class="code-block sm-hidden"`)
	assert.Contains(t, out, `class="code-block hidden sm-block"`)
	assert.NotContains(t, out, "#highlight-start")
	// the terminal samples opt out of the copy button; the three feature transcripts keep it
	assert.Equal(t, 3, strings.Count(out, "data-copy"))
}

func TestRender_Closing(t *testing.T) {
	out := renderDefault(t, nil, Options{})
	assert.Contains(t, out, `<section class="homepage-cta"><div><h2><a href="/docs" class="button">Get started</a></h2></div><div> or, </div>`)
	assert.Contains(t, out, `<a href="/docs/learn/how-it-works">learn more about how Keepsake works</a>`)
}

func TestOutline(t *testing.T) {
	p, err := content.Default(nil)
	require.NoError(t, err)

	headings := Outline(p)
	require.Len(t, headings, 8)
	assert.Equal(t, Heading{Ordinal: "01", Title: "Never lose your work", Region: content.RegionInfo}, headings[0])
	assert.Equal(t, "04", headings[3].Ordinal)
	assert.Equal(t, content.RegionTerminal, headings[3].Region)
	assert.Equal(t, Heading{Ordinal: "08", Title: "Features", Region: content.RegionFeatures, ID: "features"}, headings[7])
}

func TestGroupSections(t *testing.T) {
	sections := []content.Section{
		{Region: content.RegionInfo}, {Region: content.RegionInfo},
		{Region: content.RegionControl},
		{Region: content.RegionFeatures}, {Region: content.RegionFeatures},
	}
	groups := groupSections(sections)
	require.Len(t, groups, 4)
	assert.Len(t, groups[0].sections, 2)
	assert.Equal(t, content.RegionControl, groups[1].region)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRender_WriterError(t *testing.T) {
	p, err := content.Default(nil)
	require.NoError(t, err)
	assert.Error(t, Render(failingWriter{}, p, Options{}))
}
