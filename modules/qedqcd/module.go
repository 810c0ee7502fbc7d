// Package qedqcd is the low-energy Standard Model backend: MS-bar gauge
// couplings and fermion masses below the top threshold, run with one-loop
// QED and QCD with five active flavours.
package qedqcd

import (
	"github.com/specialistvlad/spectrumgo/internal/capability"
	"github.com/specialistvlad/spectrumgo/internal/registry"
	"github.com/specialistvlad/spectrumgo/internal/spectrum"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the backend and the unit providing SM inputs.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterBackend(Model, &registry.RegisteredBackend{
		Description: "SM MS-bar couplings and masses, one-loop QED x QCD",
		New:         func() spectrum.Backend { return New() },
		Inputs:      DefaultInputs,
	})
	r.RegisterUnit(capability.Unit{
		Name: "SpecBit_SM",
		Capabilities: []capability.Capability{
			{Name: "SMINPUTS", Type: "SMInputs"},
			{
				Name: "qedqcd_subspectrum",
				Type: "SubSpectrum",
				Dependencies: []capability.Dependency{
					{Name: "SMINPUTS", Type: "SMInputs"},
				},
			},
		},
	})
}
