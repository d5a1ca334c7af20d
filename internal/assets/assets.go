// Package assets holds the static files served next to the homepage.
package assets

import (
	"embed"
	"io/fs"
	"path"
	"sort"

	"github.com/replicate/keepsake-site/internal/highlight"
)

//go:embed static
var static embed.FS

// ChromaCSS is the generated highlighting stylesheet name.
const ChromaCSS = "chroma.css"

// Static returns the embedded static directory rooted at its files.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Bundle is the full set of static files, keyed by name under /static/.
type Bundle map[string][]byte

// Build collects the embedded files and the chroma stylesheet for hl.
func Build(hl *highlight.Highlighter) (Bundle, error) {
	out := Bundle{}
	err := fs.WalkDir(Static(), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(Static(), p)
		if err != nil {
			return err
		}
		out[path.Clean(p)] = data
		return nil
	})
	if err != nil {
		return nil, err
	}

	css, err := hl.CSS()
	if err != nil {
		return nil, err
	}
	out[ChromaCSS] = []byte(css)
	return out, nil
}

// Names returns the bundle's file names in sorted order.
func (b Bundle) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
