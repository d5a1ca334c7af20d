package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replicate/keepsake-site/internal/content"
	"github.com/replicate/keepsake-site/internal/foundation/errors"
	"github.com/replicate/keepsake-site/internal/site"
)

func newSite(t *testing.T) *site.Site {
	t.Helper()
	st, err := site.New(site.Options{})
	require.NoError(t, err)
	return st
}

func TestGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "public")
	images := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(images, "notebook.png"), []byte("nb"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(images, "inference.png"), []byte("inf"), 0o600))

	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m, err := Generate(context.Background(), newSite(t), Options{
		OutputDir: out,
		ImagesDir: images,
		Now:       func() time.Time { return fixed },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"images/inference.png",
		"images/notebook.png",
		"index.html",
		"static/chroma.css",
		"static/site.css",
		"static/site.js",
	}, m.Files)
	_, err = uuid.Parse(m.BuildID)
	require.NoError(t, err)
	assert.Equal(t, content.Hash(content.DefaultSource()), m.ContentHash)

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(index), "<!DOCTYPE html>"))
	assert.NotContains(t, string(index), "livereload")

	raw, err := os.ReadFile(filepath.Join(out, ManifestName))
	require.NoError(t, err)
	var onDisk Manifest
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.Equal(t, m.BuildID, onDisk.BuildID)
	assert.True(t, fixed.Equal(onDisk.GeneratedAt))
}

func TestGenerate_Clean(t *testing.T) {
	out := t.TempDir()
	stale := filepath.Join(out, "stale.html")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o600))

	_, err := Generate(context.Background(), newSite(t), Options{OutputDir: out})
	require.NoError(t, err)
	assert.FileExists(t, stale)

	first, err := Generate(context.Background(), newSite(t), Options{OutputDir: out, Clean: true})
	require.NoError(t, err)
	assert.NoFileExists(t, stale)

	second, err := Generate(context.Background(), newSite(t), Options{OutputDir: out, Clean: true})
	require.NoError(t, err)
	assert.NotEqual(t, first.BuildID, second.BuildID)
	assert.Equal(t, first.ContentHash, second.ContentHash)
}

func TestGenerate_CleanRefusesWorkingDirectory(t *testing.T) {
	wd := filepath.Join(t.TempDir(), "project")
	require.NoError(t, os.MkdirAll(wd, 0o750))
	keep := filepath.Join(wd, "keepsake-site.yaml")
	require.NoError(t, os.WriteFile(keep, []byte("server: {}\n"), 0o600))
	t.Chdir(wd)

	for _, dir := range []string{".", "./", wd, filepath.Dir(wd), string(filepath.Separator)} {
		t.Run(dir, func(t *testing.T) {
			_, err := Generate(context.Background(), newSite(t), Options{OutputDir: dir, Clean: true})
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
			assert.FileExists(t, keep)
		})
	}

	_, err := Generate(context.Background(), newSite(t), Options{OutputDir: "public", Clean: true})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(wd, "public", "index.html"))
	assert.FileExists(t, keep)
}

func TestGenerate_Errors(t *testing.T) {
	_, err := Generate(context.Background(), newSite(t), Options{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, err = Generate(context.Background(), newSite(t), Options{
		OutputDir: t.TempDir(),
		ImagesDir: filepath.Join(t.TempDir(), "missing"),
	})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}
