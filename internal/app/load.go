package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/specialistvlad/spectrumgo/internal/config"
	"github.com/specialistvlad/spectrumgo/internal/ctxlog"
	"github.com/specialistvlad/spectrumgo/internal/hcl"
	"github.com/specialistvlad/spectrumgo/internal/yamlcfg"
)

// formatLoader dispatches each path to the loader for its format. A
// directory is read by every loader, each picking up its own extensions.
type formatLoader struct {
	hcl  config.Loader
	yaml config.Loader
}

// NewLoader returns a config.Loader that accepts both HCL and YAML files.
func NewLoader() config.Loader {
	return &formatLoader{hcl: hcl.NewLoader(), yaml: yamlcfg.NewLoader()}
}

func (l *formatLoader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := &config.Model{}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		var loaders []config.Loader
		switch {
		case info.IsDir():
			loaders = []config.Loader{l.hcl, l.yaml}
		case slices.Contains(yamlcfg.Extensions, filepath.Ext(path)):
			loaders = []config.Loader{l.yaml}
		default:
			loaders = []config.Loader{l.hcl}
		}

		for _, loader := range loaders {
			part, err := loader.Load(ctx, path)
			if err != nil {
				return nil, err
			}
			model.Merge(part)
		}
		logger.Debug("Configuration path loaded.", "path", path, "dir", info.IsDir())
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return model, nil
}
