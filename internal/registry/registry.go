package registry

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/specialistvlad/spectrumgo/internal/capability"
	"github.com/specialistvlad/spectrumgo/internal/ctxlog"
	"github.com/specialistvlad/spectrumgo/internal/spectrum"
)

// Module is implemented by every backend module.
type Module interface {
	Register(r *Registry)
}

// RegisteredBackend holds the Go parts of a backend type.
type RegisteredBackend struct {
	Description string
	// New returns a default-constructed store.
	New func() spectrum.Backend
	// Inputs returns the inputs the default store was produced from.
	Inputs func() spectrum.Inputs
}

// Registry holds backend factories and declared units for one application
// instance.
type Registry struct {
	backends map[string]*RegisteredBackend
	units    []capability.Unit
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{backends: make(map[string]*RegisteredBackend)}
}

// Load creates a registry and registers every module into it.
func Load(ctx context.Context, modules ...Module) *Registry {
	r := New()
	for _, m := range modules {
		m.Register(r)
	}
	ctxlog.FromContext(ctx).Debug("Registry loaded.", "backends", len(r.backends), "units", len(r.units))
	return r
}

// RegisterBackend registers a backend factory under name.
func (r *Registry) RegisterBackend(name string, b *RegisteredBackend) {
	if _, exists := r.backends[name]; exists {
		panic(fmt.Sprintf("backend with name '%s' already registered", name))
	}
	if b == nil || b.New == nil {
		panic(fmt.Sprintf("backend '%s' registered without a constructor", name))
	}
	slog.Debug("Registering backend.", "name", name)
	r.backends[name] = b
}

// RegisterUnit records a functional unit declared by a module.
func (r *Registry) RegisterUnit(u capability.Unit) {
	for _, existing := range r.units {
		if existing.Name == u.Name {
			panic(fmt.Sprintf("unit with name '%s' already registered", u.Name))
		}
	}
	slog.Debug("Registering functional unit.", "name", u.Name, "capabilities", len(u.Capabilities))
	r.units = append(r.units, u)
}

// Backends lists registered backend names in sorted order.
func (r *Registry) Backends() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Backend returns a registered backend.
func (r *Registry) Backend(name string) (*RegisteredBackend, bool) {
	b, ok := r.backends[name]
	return b, ok
}

// Units returns the units declared by modules, in registration order.
func (r *Registry) Units() []capability.Unit {
	return slices.Clone(r.units)
}

// NewSpectrum builds a facade over a default store of the named backend.
// Overrides are merged into the recorded inputs, later maps winning.
func (r *Registry) NewSpectrum(name string, overrides ...map[string]float64) (*spectrum.Spectrum, error) {
	b, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q; registered: %v", name, r.Backends())
	}
	inputs := spectrum.Inputs{Model: name}
	if b.Inputs != nil {
		inputs = b.Inputs()
	}
	for _, o := range overrides {
		if len(o) == 0 {
			continue
		}
		if inputs.Values == nil {
			inputs.Values = make(map[string]float64, len(o))
		}
		maps.Copy(inputs.Values, o)
	}
	return spectrum.New(b.New(), inputs), nil
}
