// Package mssm is the MSSM backend: DR-bar running parameters with one-loop
// RGEs and a tree-level mass spectrum.
package mssm

import (
	"github.com/specialistvlad/spectrumgo/internal/capability"
	"github.com/specialistvlad/spectrumgo/internal/registry"
	"github.com/specialistvlad/spectrumgo/internal/spectrum"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the backend and the unit that exports it.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterBackend(Model, &registry.RegisteredBackend{
		Description: "MSSM DR-bar parameters, one-loop RGEs, tree-level spectrum",
		New:         func() spectrum.Backend { return New() },
		Inputs:      DefaultInputs,
	})
	r.RegisterUnit(capability.Unit{
		Name: "SpecBit_MSSM",
		Capabilities: []capability.Capability{
			{
				Name: "MSSM_spectrum",
				Type: "Spectrum",
				Dependencies: []capability.Dependency{
					{Name: "SMINPUTS", Type: "SMInputs"},
				},
			},
		},
	})
}
