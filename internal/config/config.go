// Package config loads the site configuration from YAML.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/replicate/keepsake-site/internal/foundation/errors"
)

// Config is the complete site configuration.
type Config struct {
	Site       SiteConfig       `yaml:"site"`
	Links      LinksConfig      `yaml:"links"`
	Content    ContentConfig    `yaml:"content"`
	Assets     AssetsConfig     `yaml:"assets"`
	Server     ServerConfig     `yaml:"server"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	Preview    PreviewConfig    `yaml:"preview"`
	Output     OutputConfig     `yaml:"output"`
}

// SiteConfig holds document-level settings.
type SiteConfig struct {
	BaseURL        string `yaml:"base_url,omitempty"`
	HighlightStyle string `yaml:"highlight_style,omitempty"`
}

// LinksConfig holds outbound link targets injected into the page copy.
type LinksConfig struct {
	// AnalysisNotebookURL feeds ${ANALYSIS_COLAB_URL}. Empty renders as "#".
	AnalysisNotebookURL string `yaml:"analysis_notebook_url"`
}

// ContentConfig selects the page copy. An empty path uses the embedded copy.
type ContentConfig struct {
	Path string `yaml:"path,omitempty"`
}

// AssetsConfig points at image files served under /images.
type AssetsConfig struct {
	ImagesDir string `yaml:"images_dir,omitempty"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

type MonitoringConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
	Health  HealthConfig  `yaml:"health"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type HealthConfig struct {
	Path string `yaml:"path"`
}

type PreviewConfig struct {
	Port     int      `yaml:"port"`
	Debounce Duration `yaml:"debounce"`
}

type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"`
}

// Duration is a time.Duration that unmarshals from strings such as "300ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Load reads configuration from path. A missing file yields the defaults.
// Environment variables are expanded before parsing.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	// #nosec G304 -- path is provided by the operator
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", path).
			Build()
	}

	if err := Parse(data, cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config file").
			WithContext("path", path).
			Build()
	}
	return cfg, nil
}

// Parse expands environment variables in data and decodes it over cfg.
func Parse(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}
	applyDefaults(cfg)
	return Validate(cfg)
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ContentVars returns the placeholder values for the page copy.
func (c *Config) ContentVars() map[string]string {
	return map[string]string{
		"ANALYSIS_COLAB_URL": c.Links.AnalysisNotebookURL,
	}
}
