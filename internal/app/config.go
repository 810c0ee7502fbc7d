package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/spectrumgo/internal/config"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
	transports = []string{"", config.TransportLocal, config.TransportSocketIO}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPaths are .hcl/.yaml files or directories containing them.
	ConfigPaths []string

	LogFormat string
	LogLevel  string
	// Trace installs a stdout span exporter for the lifetime of a run.
	Trace bool

	// Transport, when set, replaces the transport named by the bootstrap
	// section of the configuration.
	Transport string
	// CoordinatorURL and Job fill in the socketio transport settings when
	// the configuration does not provide them.
	CoordinatorURL string
	Job            string
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ConfigPaths) == 0 {
		return nil, errors.New("at least one configuration path is required")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log-level %q: must be one of %v", cfg.LogLevel, logLevels)
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if !slices.Contains(transports, cfg.Transport) {
		return nil, fmt.Errorf("invalid transport %q: must be 'local' or 'socketio'", cfg.Transport)
	}
	return &cfg, nil
}
