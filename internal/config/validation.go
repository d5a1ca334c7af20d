package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/replicate/keepsake-site/internal/foundation/errors"
)

// Validate checks a configuration after defaults are applied.
func Validate(cfg *Config) error {
	var problems []string

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port %d out of range", cfg.Server.Port))
	}
	if cfg.Preview.Port < 1 || cfg.Preview.Port > 65535 {
		problems = append(problems, fmt.Sprintf("preview.port %d out of range", cfg.Preview.Port))
	}
	if cfg.Preview.Debounce < 0 {
		problems = append(problems, "preview.debounce must not be negative")
	}
	for _, route := range [][2]string{
		{"monitoring.metrics.path", cfg.Monitoring.Metrics.Path},
		{"monitoring.health.path", cfg.Monitoring.Health.Path},
	} {
		if !strings.HasPrefix(route[1], "/") {
			problems = append(problems, fmt.Sprintf("%s must start with /", route[0]))
		}
	}
	if cfg.Site.BaseURL != "" {
		if u, err := url.Parse(cfg.Site.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, fmt.Sprintf("site.base_url %q is not an absolute URL", cfg.Site.BaseURL))
		}
	}
	if cfg.Links.AnalysisNotebookURL != "" {
		if _, err := url.Parse(cfg.Links.AnalysisNotebookURL); err != nil {
			problems = append(problems, fmt.Sprintf("links.analysis_notebook_url: %v", err))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.ConfigError("invalid configuration: " + strings.Join(problems, "; ")).
		WithContext("problems", problems).
		Build()
}
