package content

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/replicate/keepsake-site/internal/foundation/errors"
	"github.com/replicate/keepsake-site/internal/markdown"
)

//go:embed home.yaml
var defaultSource []byte

// Vars supplies values for ${NAME} placeholders. Missing names expand to "".
type Vars map[string]string

func (v Vars) expand(s string) string {
	return markdown.ExpandPlaceholders(s, v)
}

// DefaultSource returns the embedded homepage copy.
func DefaultSource() []byte {
	return bytes.Clone(defaultSource)
}

// Default parses the embedded homepage copy.
func Default(vars Vars) (*Page, error) {
	return Load(defaultSource, vars)
}

// Load parses YAML page records and expands placeholders in link and image fields.
// Prose keeps its ${NAME} tokens; they are filled in link destinations after the
// Markdown is parsed (see Vars). Code samples are literal and never expanded.
func Load(data []byte, vars Vars) (*Page, error) {
	var p Page
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, errors.WrapError(err, errors.CategoryContent, "failed to parse page content").
			Fatal().
			UserAction().
			Build()
	}
	p.vars = vars
	p.expand(vars)
	return &p, nil
}

// LoadFile reads and parses a content override file.
func LoadFile(path string, vars Vars) (*Page, []byte, error) {
	// #nosec G304 -- path comes from the operator's configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.WrapError(err, errors.CategoryFileSystem, fmt.Sprintf("failed to read content file %s", path)).
			WithContext("path", path).
			Build()
	}
	p, err := Load(data, vars)
	if err != nil {
		return nil, nil, err
	}
	return p, data, nil
}

// Hash returns the hex sha256 of raw content bytes.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (p *Page) expand(vars Vars) {
	for i := range p.Hero.Actions {
		p.Hero.Actions[i].Href = vars.expand(p.Hero.Actions[i].Href)
	}
	for i := range p.Sections {
		s := &p.Sections[i]
		for j := range s.Features {
			f := &s.Features[j]
			if f.Image != nil {
				f.Image.Src = vars.expand(f.Image.Src)
			}
		}
	}
	p.Closing.Primary.Href = vars.expand(p.Closing.Primary.Href)
	p.Closing.Secondary.Href = vars.expand(p.Closing.Secondary.Href)
}
