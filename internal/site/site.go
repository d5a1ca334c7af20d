// Package site owns the loaded page content and renders it on demand.
package site

import (
	"bytes"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/replicate/keepsake-site/internal/content"
	"github.com/replicate/keepsake-site/internal/foundation/errors"
	"github.com/replicate/keepsake-site/internal/highlight"
	"github.com/replicate/keepsake-site/internal/logfields"
	"github.com/replicate/keepsake-site/internal/metrics"
	"github.com/replicate/keepsake-site/internal/page"
)

// PageName labels homepage renders in metrics.
const PageName = "home"

// Options configures a Site.
type Options struct {
	// ContentPath overrides the embedded page copy.
	ContentPath string
	Vars        content.Vars
	Render      page.Options
	Recorder    metrics.Recorder
}

// Site holds the current page content. Readers render concurrently; Reload
// swaps the content atomically.
type Site struct {
	opts     Options
	recorder metrics.Recorder

	mu     sync.RWMutex
	page   *content.Page
	source []byte
	hash   string
}

// New loads and validates the content.
func New(opts Options) (*Site, error) {
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Render.Highlighter == nil {
		opts.Render.Highlighter = highlight.New(highlight.DefaultStyle)
	}
	s := &Site{opts: opts, recorder: opts.Recorder}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the content source. On failure the previous content is kept.
func (s *Site) Reload() error {
	p, src, err := s.load()
	if err == nil {
		err = content.Validate(p)
	}
	if err != nil {
		s.recorder.IncContentReload(metrics.ResultFailed)
		return err
	}

	hash := content.Hash(src)
	s.mu.Lock()
	s.page, s.source, s.hash = p, src, hash
	s.mu.Unlock()

	s.recorder.IncContentReload(metrics.ResultSuccess)
	slog.Debug("Content loaded", logfields.File(s.sourceName()), logfields.Hash(hash))
	return nil
}

func (s *Site) load() (*content.Page, []byte, error) {
	if s.opts.ContentPath == "" {
		src := content.DefaultSource()
		p, err := content.Load(src, s.opts.Vars)
		return p, src, err
	}
	return content.LoadFile(s.opts.ContentPath, s.opts.Vars)
}

func (s *Site) sourceName() string {
	if s.opts.ContentPath == "" {
		return "embedded"
	}
	return s.opts.ContentPath
}

// Page returns the current content. Callers must not modify it.
func (s *Site) Page() *content.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// Hash identifies the current content source bytes.
func (s *Site) Hash() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hash
}

// ContentPath returns the override file, or "" for the embedded copy.
func (s *Site) ContentPath() string { return s.opts.ContentPath }

// Highlighter returns the shared code highlighter.
func (s *Site) Highlighter() *highlight.Highlighter { return s.opts.Render.Highlighter }

// Render writes the homepage to w. The page is rendered to a buffer first so a
// failed render never leaves a partial document.
func (s *Site) Render(w io.Writer) error {
	return s.RenderWith(w, s.opts.Render)
}

// RenderWith renders using explicit page options.
func (s *Site) RenderWith(w io.Writer, opts page.Options) error {
	start := time.Now()
	var buf bytes.Buffer
	err := page.Render(&buf, s.Page(), opts)
	s.recorder.ObserveRenderDuration(PageName, time.Since(start))
	s.recorder.IncRenderResult(PageName, metrics.ResultFor(err))
	if err != nil {
		return errors.WrapError(err, errors.CategoryRender, "failed to render homepage").Build()
	}
	if _, err := buf.WriteTo(w); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to write homepage").Build()
	}
	return nil
}

// Outline returns the ordinal headings of the current content.
func (s *Site) Outline() []page.Heading {
	return page.Outline(s.Page())
}

// RenderOptions returns the page options used by Render.
func (s *Site) RenderOptions() page.Options { return s.opts.Render }
