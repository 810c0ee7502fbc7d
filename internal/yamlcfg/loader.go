// Package yamlcfg provides a YAML implementation of the config.Loader
// interface. It accepts the same content as the HCL loader, laid out as
// top-level `spectra`, `units` and `bootstrap` keys.
package yamlcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/spectrumgo/internal/accessor"
	"github.com/specialistvlad/spectrumgo/internal/capability"
	"github.com/specialistvlad/spectrumgo/internal/config"
	"github.com/specialistvlad/spectrumgo/internal/ctxlog"
	"github.com/specialistvlad/spectrumgo/internal/fsutil"
)

// Extensions are the file suffixes picked up when walking directories.
var Extensions = []string{".yaml", ".yml"}

// File is the root structure of a YAML configuration file.
type File struct {
	Spectra   []SpectrumDef `yaml:"spectra"`
	Units     []UnitDef     `yaml:"units"`
	Bootstrap *BootstrapDef `yaml:"bootstrap"`
}

// SpectrumDef defines one spectrum entry. Parameter groups are kept as raw
// mapping nodes so their source order survives decoding.
type SpectrumDef struct {
	Model         string             `yaml:"model"`
	Scale         float64            `yaml:"scale"`
	Inputs        map[string]float64 `yaml:"inputs"`
	Dimensionless yaml.Node          `yaml:"dimensionless"`
	Mass          yaml.Node          `yaml:"mass"`
	Mass2         yaml.Node          `yaml:"mass2"`
	Run           []float64          `yaml:"run"`
	ConvertMasses *bool              `yaml:"convert_masses"`
}

// UnitDef defines a capability unit.
type UnitDef struct {
	Name         string          `yaml:"name"`
	Capabilities []CapabilityDef `yaml:"capabilities"`
}

// CapabilityDef defines one capability of a unit.
type CapabilityDef struct {
	Name         string          `yaml:"name"`
	Type         string          `yaml:"type"`
	Dependencies []DependencyDef `yaml:"dependencies"`
}

// DependencyDef is a (name, type) requirement.
type DependencyDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// BootstrapDef selects the process group transport.
type BootstrapDef struct {
	Transport string `yaml:"transport"`
	URL       string `yaml:"url"`
	Job       string `yaml:"job"`
	Size      int    `yaml:"size"`
	Namespace string `yaml:"namespace"`
	Timeout   string `yaml:"timeout"`
}

// Loader reads YAML configuration files.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses every YAML file found under paths and merges them in order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, Extensions...)
	if err != nil {
		return nil, err
	}

	model := &config.Model{}
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		part, err := l.Parse(ctx, path, content)
		if err != nil {
			return nil, err
		}
		model.Merge(part)
	}

	logger.Debug("YAML loading complete.", "files", len(files), "spectra", len(model.Spectra), "units", len(model.Units))
	return model, nil
}

// Parse decodes a single in-memory YAML document. Unknown keys are rejected.
func (l *Loader) Parse(ctx context.Context, filename string, content []byte) (*config.Model, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	model := &config.Model{}
	for i, def := range file.Spectra {
		s, err := translateSpectrum(def)
		if err != nil {
			return nil, fmt.Errorf("%s: spectrum %q: %w", filename, def.Model, err)
		}
		s.Source = fmt.Sprintf("%s#%d", filename, i)
		model.Spectra = append(model.Spectra, s)
	}
	for _, def := range file.Units {
		model.Units = append(model.Units, translateUnit(def))
	}
	if file.Bootstrap != nil {
		b, err := translateBootstrap(*file.Bootstrap)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		model.Bootstrap = b
	}
	ctxlog.FromContext(ctx).Debug("Parsed YAML document.", "file", filename, "spectra", len(model.Spectra))
	return model, nil
}

func translateSpectrum(def SpectrumDef) (*config.Spectrum, error) {
	out := &config.Spectrum{
		Model:         def.Model,
		Scale:         def.Scale,
		Inputs:        make(map[string]float64, len(def.Inputs)),
		Run:           def.Run,
		ConvertMasses: def.ConvertMasses,
	}
	for k, v := range def.Inputs {
		out.Inputs[k] = v
	}

	groups := []struct {
		node *yaml.Node
		tag  accessor.Tag
	}{
		{&def.Dimensionless, accessor.Dimensionless},
		{&def.Mass, accessor.Mass},
		{&def.Mass2, accessor.MassSquared},
	}
	for _, g := range groups {
		params, err := decodeGroup(g.node, g.tag)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", g.tag, err)
		}
		out.Params = append(out.Params, params...)
	}
	return out, nil
}

// decodeGroup walks a mapping node pair by pair. Each value is a number or
// a list of number lists.
func decodeGroup(node *yaml.Node, tag accessor.Tag) ([]*config.Param, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", node.Line)
	}

	var out []*config.Param
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		p := &config.Param{Key: key.Value, Tag: tag}
		switch val.Kind {
		case yaml.ScalarNode:
			if err := val.Decode(&p.Value); err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", val.Line, key.Value, err)
			}
		case yaml.SequenceNode:
			if err := val.Decode(&p.Matrix); err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", val.Line, key.Value, err)
			}
			if len(p.Matrix) == 0 {
				return nil, fmt.Errorf("line %d: %s: matrix has no rows", val.Line, key.Value)
			}
		default:
			return nil, fmt.Errorf("line %d: %s: expected a number or a matrix", val.Line, key.Value)
		}
		out = append(out, p)
	}
	return out, nil
}

func translateUnit(def UnitDef) capability.Unit {
	out := capability.Unit{Name: def.Name}
	for _, c := range def.Capabilities {
		entry := capability.Capability{Name: c.Name, Type: c.Type}
		for _, d := range c.Dependencies {
			entry.Dependencies = append(entry.Dependencies, capability.Dependency{Name: d.Name, Type: d.Type})
		}
		out.Capabilities = append(out.Capabilities, entry)
	}
	return out
}

func translateBootstrap(def BootstrapDef) (*config.Bootstrap, error) {
	out := &config.Bootstrap{
		Transport: def.Transport,
		URL:       def.URL,
		Job:       def.Job,
		Size:      def.Size,
		Namespace: def.Namespace,
	}
	if def.Timeout != "" {
		d, err := time.ParseDuration(def.Timeout)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: invalid timeout %q: %w", def.Timeout, err)
		}
		out.Timeout = d
	}
	return out, nil
}
