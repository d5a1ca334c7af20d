package config

import (
	"os"
	"time"
)

const (
	DefaultHost            = "127.0.0.1"
	DefaultPort            = 8080
	DefaultPreviewPort     = 1313
	DefaultDebounce        = 300 * time.Millisecond
	DefaultShutdownTimeout = 10 * time.Second
	DefaultOutputDir       = "./public"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{
		Links: LinksConfig{AnalysisNotebookURL: os.Getenv("ANALYSIS_COLAB_URL")},
		Monitoring: MonitoringConfig{
			Metrics: MetricsConfig{Enabled: true},
		},
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = Duration(DefaultShutdownTimeout)
	}
	if cfg.Preview.Port == 0 {
		cfg.Preview.Port = DefaultPreviewPort
	}
	if cfg.Preview.Debounce == 0 {
		cfg.Preview.Debounce = Duration(DefaultDebounce)
	}
	if cfg.Monitoring.Metrics.Path == "" {
		cfg.Monitoring.Metrics.Path = "/metrics"
	}
	if cfg.Monitoring.Health.Path == "" {
		cfg.Monitoring.Health.Path = "/health"
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDir
	}
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
}
