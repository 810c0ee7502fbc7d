package config

import (
	"time"

	"github.com/specialistvlad/spectrumgo/internal/accessor"
	"github.com/specialistvlad/spectrumgo/internal/capability"
)

// Transport names accepted in the bootstrap section.
const (
	TransportLocal    = "local"
	TransportSocketIO = "socketio"
)

// Model is the unified, format-agnostic representation of the entire
// application configuration.
type Model struct {
	Spectra   []*Spectrum
	Units     []capability.Unit
	Bootstrap *Bootstrap
}

// Spectrum describes one facade to build: which backend, the input
// configuration it records, parameter overrides and the scales to visit.
type Spectrum struct {
	Model string
	// Scale, when non-zero, replaces the backend's default scale before any
	// override is applied.
	Scale  float64
	Inputs map[string]float64
	Params []*Param
	// Run lists target scales in GeV, visited in order.
	Run []float64
	// ConvertMasses overrides the facade default when set.
	ConvertMasses *bool
	// Source is the file and line the entry came from, for diagnostics.
	Source string
}

// Param is a single override. Matrix is nil for a scalar.
type Param struct {
	Key    string
	Tag    accessor.Tag
	Value  float64
	Matrix [][]float64
}

// IsMatrix reports whether the override addresses a whole matrix.
func (p *Param) IsMatrix() bool { return p.Matrix != nil }

// Bootstrap selects and configures the process group transport.
type Bootstrap struct {
	Transport string
	URL       string
	Job       string
	Size      int
	Namespace string
	Timeout   time.Duration
}
