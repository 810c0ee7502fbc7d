package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/spectrumgo/internal/config"
	"github.com/specialistvlad/spectrumgo/internal/ctxlog"
	"github.com/specialistvlad/spectrumgo/internal/fsutil"
	"github.com/specialistvlad/spectrumgo/internal/schema"
)

// Extension is the file suffix the loader picks up when walking directories.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses every .hcl file found under paths and merges their blocks, in
// path order, into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &config.Model{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		part, err := l.decode(ctx, file, hclFile.Body)
		if err != nil {
			return nil, err
		}
		model.Merge(part)
	}

	logger.Debug("HCL loading complete.", "spectra", len(model.Spectra), "units", len(model.Units))
	return model, nil
}

// Parse decodes a single in-memory HCL document.
func (l *Loader) Parse(ctx context.Context, filename string, src []byte) (*config.Model, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return l.decode(ctx, filename, hclFile.Body)
}

func (l *Loader) decode(ctx context.Context, file string, body hcl.Body) (*config.Model, error) {
	var root schema.File
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}

	model := &config.Model{}
	for i, s := range root.Spectra {
		spec, err := l.translateSpectrum(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("%s: spectrum %q: %w", file, s.Model, err)
		}
		spec.Source = fmt.Sprintf("%s#%d", file, i)
		model.Spectra = append(model.Spectra, spec)
	}
	for _, u := range root.Units {
		model.Units = append(model.Units, translateUnit(u))
	}
	if root.Bootstrap != nil {
		b, err := translateBootstrap(root.Bootstrap)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		model.Bootstrap = b
	}
	return model, nil
}
