// Package httpserver serves the homepage, its static assets and the
// operational endpoints behind a chi router.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/replicate/keepsake-site/internal/assets"
	derrors "github.com/replicate/keepsake-site/internal/foundation/errors"
	"github.com/replicate/keepsake-site/internal/logfields"
	"github.com/replicate/keepsake-site/internal/metrics"
	smw "github.com/replicate/keepsake-site/internal/server/middleware"
	"github.com/replicate/keepsake-site/internal/site"
	"github.com/replicate/keepsake-site/internal/version"
)

// Options configures the routes a Server exposes.
type Options struct {
	Addr string
	// ImagesDir is served under /images when set.
	ImagesDir string

	HealthPath string
	// MetricsPath is mounted only when Registry is non-nil.
	MetricsPath string
	Registry    *prom.Registry
	Recorder    metrics.Recorder

	// LiveReload is mounted at /livereload and enables the reload client in pages.
	LiveReload http.Handler
}

// Server wires the site to HTTP.
type Server struct {
	site         *site.Site
	opts         Options
	static       assets.Bundle
	errorAdapter *derrors.HTTPErrorAdapter
	router       chi.Router

	httpServer *http.Server
	ln         net.Listener
}

// New constructs a server and its routes.
func New(st *site.Site, opts Options) (*Server, error) {
	if opts.HealthPath == "" {
		opts.HealthPath = "/health"
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}

	bundle, err := assets.Build(st.Highlighter())
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to build static assets").Build()
	}

	s := &Server{
		site:         st,
		opts:         opts,
		static:       bundle,
		errorAdapter: derrors.NewHTTPErrorAdapter(slog.Default()),
	}
	s.router = s.buildRouter()
	return s, nil
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(smw.Chain(slog.Default(), s.errorAdapter, s.opts.Recorder))

	r.Get("/", s.handleHome)
	r.Get(s.opts.HealthPath, s.handleHealth)
	r.Get("/static/*", s.handleStatic)

	if s.opts.Registry != nil {
		r.Handle(s.opts.MetricsPath, metrics.HTTPHandler(s.opts.Registry))
	}
	if s.opts.ImagesDir != "" {
		r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(s.opts.ImagesDir))))
	}
	if s.opts.LiveReload != nil {
		r.Get("/livereload", s.opts.LiveReload.ServeHTTP)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.errorAdapter.WriteErrorResponse(w, r, derrors.NotFoundError("page not found").
			WithContext("path", r.URL.Path).
			Build())
	})
	return r
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	opts := s.site.RenderOptions()
	opts.LiveReload = s.opts.LiveReload != nil

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.site.RenderWith(w, opts); err != nil {
		s.errorAdapter.WriteErrorResponse(w, r, err)
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Content string `json:"content_hash"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:  "ok",
		Version: version.Version,
		Content: s.site.Hash(),
	})
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	name := path.Clean(chi.URLParam(r, "*"))
	data, ok := s.static[name]
	if !ok {
		s.errorAdapter.WriteErrorResponse(w, r, derrors.NotFoundError("static file not found").
			WithContext("path", r.URL.Path).
			Build())
		return
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(data)
}

// Start binds the listen address and serves in the background. Binding errors
// are returned directly so callers fail fast.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryNetwork, fmt.Sprintf("failed to listen on %s", s.opts.Addr)).
			Fatal().
			Build()
	}
	s.ln = ln
	s.httpServer = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server stopped", logfields.Error(err))
		}
	}()
	slog.Info("HTTP server started", logfields.Addr(ln.Addr().String()))
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.opts.Addr
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
