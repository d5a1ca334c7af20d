// Package export writes the homepage and its assets as a static directory.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/replicate/keepsake-site/internal/assets"
	"github.com/replicate/keepsake-site/internal/foundation/errors"
	"github.com/replicate/keepsake-site/internal/logfields"
	"github.com/replicate/keepsake-site/internal/metrics"
	"github.com/replicate/keepsake-site/internal/site"
)

// ManifestName is written at the root of every export.
const ManifestName = "manifest.json"

// Options configures a static export.
type Options struct {
	OutputDir string
	// Clean removes OutputDir before writing.
	Clean bool
	// ImagesDir is copied to images/ when set.
	ImagesDir string
	Recorder  metrics.Recorder
	// Now is used for GeneratedAt; nil means time.Now.
	Now func() time.Time
}

// Manifest describes one export.
type Manifest struct {
	BuildID     string    `json:"build_id"`
	GeneratedAt time.Time `json:"generated_at"`
	ContentHash string    `json:"content_hash"`
	Files       []string  `json:"files"`
}

// Generate renders the site into opts.OutputDir and writes the manifest.
func Generate(ctx context.Context, st *site.Site, opts Options) (*Manifest, error) {
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	start := time.Now()
	m, err := generate(ctx, st, opts)
	opts.Recorder.ObserveExportDuration(time.Since(start), metrics.ResultFor(err))
	return m, err
}

func generate(ctx context.Context, st *site.Site, opts Options) (*Manifest, error) {
	if opts.OutputDir == "" {
		return nil, errors.ValidationError("output directory is required").Build()
	}
	if opts.Clean {
		if err := checkCleanTarget(opts.OutputDir); err != nil {
			return nil, err
		}
		if err := os.RemoveAll(opts.OutputDir); err != nil {
			return nil, fsError(err, "failed to clean output directory", opts.OutputDir)
		}
	}

	w := &writer{root: opts.OutputDir}

	var page bytes.Buffer
	if err := st.Render(&page); err != nil {
		return nil, err
	}
	if err := w.write("index.html", page.Bytes()); err != nil {
		return nil, err
	}

	bundle, err := assets.Build(st.Highlighter())
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to build static assets").Build()
	}
	for _, name := range bundle.Names() {
		if name == "livereload.js" {
			continue
		}
		if err := w.write(filepath.Join("static", name), bundle[name]); err != nil {
			return nil, err
		}
	}

	if opts.ImagesDir != "" {
		if err := w.copyTree(ctx, opts.ImagesDir, "images"); err != nil {
			return nil, err
		}
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	sort.Strings(w.files)
	m := &Manifest{
		BuildID:     uuid.NewString(),
		GeneratedAt: now().UTC(),
		ContentHash: st.Hash(),
		Files:       w.files,
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to encode manifest").Build()
	}
	if err := w.write(ManifestName, append(data, '\n')); err != nil {
		return nil, err
	}

	slog.Info("Static export complete",
		logfields.Output(opts.OutputDir),
		logfields.BuildID(m.BuildID),
		logfields.Hash(m.ContentHash),
		slog.Int("files", len(m.Files)))
	return m, nil
}

// checkCleanTarget refuses to remove the filesystem root, the working
// directory or any directory containing it.
func checkCleanTarget(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fsError(err, "failed to resolve output directory", dir)
	}
	wd, err := os.Getwd()
	if err != nil {
		return fsError(err, "failed to resolve working directory", dir)
	}
	rel, err := filepath.Rel(abs, wd)
	contains := err == nil && (rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))))
	if filepath.Dir(abs) == abs || contains {
		return errors.ValidationError("refusing to clean output directory").
			WithContext("path", dir).
			WithContext("resolved", abs).
			Build()
	}
	return nil
}

type writer struct {
	root  string
	files []string
}

func (w *writer) write(rel string, data []byte) error {
	dst := filepath.Join(w.root, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return fsError(err, "failed to create directory", filepath.Dir(dst))
	}
	if err := os.WriteFile(dst, data, 0o600); err != nil {
		return fsError(err, "failed to write file", dst)
	}
	if rel != ManifestName {
		w.files = append(w.files, filepath.ToSlash(rel))
	}
	return nil
}

func (w *writer) copyTree(ctx context.Context, src, prefix string) error {
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fsError(err, "failed to read images directory", p)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return fsError(err, "failed to resolve image path", p)
		}
		data, err := readFile(p)
		if err != nil {
			return err
		}
		return w.write(filepath.Join(prefix, rel), data)
	})
}

func readFile(p string) ([]byte, error) {
	f, err := os.Open(filepath.Clean(p))
	if err != nil {
		return nil, fsError(err, "failed to open file", p)
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fsError(err, "failed to read file", p)
	}
	return data, nil
}

func fsError(err error, msg, path string) error {
	return errors.WrapError(err, errors.CategoryFileSystem, msg).
		WithContext("path", path).
		Build()
}
