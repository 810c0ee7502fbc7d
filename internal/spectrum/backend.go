package spectrum

import (
	"context"
	"maps"
	"slices"

	"github.com/specialistvlad/spectrumgo/internal/accessor"
	"github.com/specialistvlad/spectrumgo/internal/physical"
	"github.com/specialistvlad/spectrumgo/internal/running"
)

// Backend is one concrete solver representation. Implementations live in the
// modules tree and are selected when the facade is constructed.
type Backend interface {
	running.Runner

	// Model names the backend type; it is also the accessor map name.
	Model() string
	// Params returns the shared accessor map bound to this backend's store.
	Params() accessor.Table
	// Limits returns the validated running range.
	Limits() running.Limits
	// CalculateSpectrum runs the backend's spectrum kernel on the current
	// store and returns the raw observables. It must not modify running
	// parameters.
	CalculateSpectrum(ctx context.Context) (physical.Snapshot, error)
	// Clone deep-copies the store.
	Clone() Backend
}

// Inputs is the provenance of a backend store: the named values it was
// produced from.
type Inputs struct {
	Model  string
	Values map[string]float64
}

// Clone deep-copies the inputs.
func (in Inputs) Clone() Inputs {
	out := Inputs{Model: in.Model}
	if in.Values != nil {
		out.Values = maps.Clone(in.Values)
	}
	return out
}

// Keys lists input names in sorted order.
func (in Inputs) Keys() []string {
	return slices.Sorted(maps.Keys(in.Values))
}

// Value returns a named input.
func (in Inputs) Value(name string) (float64, bool) {
	v, ok := in.Values[name]
	return v, ok
}
