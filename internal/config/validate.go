package config

import (
	"errors"
	"fmt"
	"math"
)

// Validate checks the model for structural mistakes a loader cannot catch on
// its own. All problems are reported together.
func (m *Model) Validate() error {
	var errs []error
	for i, s := range m.Spectra {
		name := fmt.Sprintf("spectrum %d (%s)", i, s.Model)
		if s.Source != "" {
			name += " at " + s.Source
		}
		if s.Model == "" {
			errs = append(errs, fmt.Errorf("%s: model name is required", name))
		}
		if s.Scale < 0 || math.IsNaN(s.Scale) || math.IsInf(s.Scale, 0) {
			errs = append(errs, fmt.Errorf("%s: scale must be a positive finite number, got %g", name, s.Scale))
		}
		for j, q := range s.Run {
			if !(q > 0) || math.IsInf(q, 0) {
				errs = append(errs, fmt.Errorf("%s: run[%d] must be a positive finite scale, got %g", name, j, q))
			}
		}
		for _, p := range s.Params {
			if !p.IsMatrix() {
				continue
			}
			for r, row := range p.Matrix {
				if len(row) != len(p.Matrix) {
					errs = append(errs, fmt.Errorf("%s: %s.%s row %d has %d columns, want %d",
						name, p.Tag, p.Key, r+1, len(row), len(p.Matrix)))
				}
			}
		}
	}
	if b := m.Bootstrap; b != nil {
		switch b.Transport {
		case "", TransportLocal:
		case TransportSocketIO:
			if b.URL == "" {
				errs = append(errs, errors.New("bootstrap: socketio transport requires url"))
			}
			if b.Job == "" {
				errs = append(errs, errors.New("bootstrap: socketio transport requires job"))
			}
		default:
			errs = append(errs, fmt.Errorf("bootstrap: unknown transport %q", b.Transport))
		}
		if b.Size < 0 {
			errs = append(errs, fmt.Errorf("bootstrap: size must not be negative, got %d", b.Size))
		}
	}
	return errors.Join(errs...)
}

// Merge appends the contents of other into m. A later bootstrap section
// replaces an earlier one.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Spectra = append(m.Spectra, other.Spectra...)
	m.Units = append(m.Units, other.Units...)
	if other.Bootstrap != nil {
		m.Bootstrap = other.Bootstrap
	}
}
