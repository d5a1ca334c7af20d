package site

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replicate/keepsake-site/internal/content"
	"github.com/replicate/keepsake-site/internal/metrics"
)

type countingRecorder struct {
	metrics.NoopRecorder
	mu      sync.Mutex
	renders map[metrics.ResultLabel]int
	reloads map[metrics.ResultLabel]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		renders: map[metrics.ResultLabel]int{},
		reloads: map[metrics.ResultLabel]int{},
	}
}

func (r *countingRecorder) IncRenderResult(_ string, result metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders[result]++
}

func (r *countingRecorder) IncContentReload(result metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloads[result]++
}

const overrideContent = `
meta:
  title: Override
sections:
  - region: info
    heading: First
  - region: control
    heading: Second
`

func TestSite_EmbeddedContent(t *testing.T) {
	rec := newCountingRecorder()
	s, err := New(Options{Recorder: rec})
	require.NoError(t, err)

	assert.Equal(t, content.Hash(content.DefaultSource()), s.Hash())
	assert.Len(t, s.Outline(), 8)

	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf))
	assert.Contains(t, buf.String(), "<span>08</span> Features")
	assert.Equal(t, 1, rec.renders[metrics.ResultSuccess])
	assert.Equal(t, 1, rec.reloads[metrics.ResultSuccess])
}

func TestSite_ConcurrentRendersEachStartAtOne(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	outs := make([]string, 8)
	for i := range outs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var buf bytes.Buffer
			assert.NoError(t, s.Render(&buf))
			outs[i] = buf.String()
		}(i)
	}
	wg.Wait()

	for _, out := range outs {
		assert.Equal(t, outs[0], out)
		assert.Equal(t, 1, strings.Count(out, "<span>01</span>"))
	}
}

func TestSite_ReloadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "home.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overrideContent), 0o600))

	rec := newCountingRecorder()
	s, err := New(Options{ContentPath: path, Recorder: rec})
	require.NoError(t, err)
	assert.Equal(t, "Override", s.Page().Meta.Title)
	first := s.Hash()

	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(overrideContent, "Override", "Changed", 1)), 0o600))
	require.NoError(t, s.Reload())
	assert.Equal(t, "Changed", s.Page().Meta.Title)
	assert.NotEqual(t, first, s.Hash())

	// broken content keeps the last good page
	require.NoError(t, os.WriteFile(path, []byte("sections: [\n"), 0o600))
	require.Error(t, s.Reload())
	assert.Equal(t, "Changed", s.Page().Meta.Title)
	assert.Equal(t, 1, rec.reloads[metrics.ResultFailed])
	assert.Equal(t, 2, rec.reloads[metrics.ResultSuccess])
}

func TestSite_MissingOverride(t *testing.T) {
	_, err := New(Options{ContentPath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}
