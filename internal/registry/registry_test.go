package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/spectrumgo/internal/capability"
	"github.com/specialistvlad/spectrumgo/internal/registry"
	"github.com/specialistvlad/spectrumgo/internal/spectrum"
	"github.com/specialistvlad/spectrumgo/modules/mssm"
	"github.com/specialistvlad/spectrumgo/modules/qedqcd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coreRegistry() *registry.Registry {
	return registry.Load(context.Background(), &mssm.Module{}, &qedqcd.Module{})
}

func TestLoad_RegistersBackendsAndUnits(t *testing.T) {
	r := coreRegistry()

	assert.Equal(t, []string{"mssm", "qedqcd"}, r.Backends())
	units := r.Units()
	require.Len(t, units, 2)
	assert.Equal(t, "SpecBit_MSSM", units[0].Name)
}

func TestValidate_CoreModules(t *testing.T) {
	table, err := coreRegistry().Validate(context.Background())

	require.NoError(t, err)
	order, err := table.Order()
	require.NoError(t, err)
	assert.Equal(t, []string{"SMINPUTS", "MSSM_spectrum", "qedqcd_subspectrum"}, order)
}

func TestValidate_ReportsUnresolvedExtraUnits(t *testing.T) {
	extra := capability.Unit{Name: "ExampleBit_A", Capabilities: []capability.Capability{
		{Name: "nevents", Type: "double", Dependencies: []capability.Dependency{{Name: "xsection", Type: "double"}}},
	}}

	_, err := coreRegistry().Validate(context.Background(), extra)

	require.Error(t, err)
	assert.True(t, errors.Is(err, capability.ErrUnresolvedDependency))
	assert.ErrorContains(t, err, "registry validation failed")
}

func TestValidate_ModelNameMismatch(t *testing.T) {
	r := registry.New()
	r.RegisterBackend("wrong", &registry.RegisteredBackend{New: func() spectrum.Backend { return mssm.New() }})

	_, err := r.Validate(context.Background())

	assert.ErrorContains(t, err, "store reports model 'mssm'")
}

func TestRegisterBackend_Panics(t *testing.T) {
	r := coreRegistry()

	assert.Panics(t, func() { (&mssm.Module{}).Register(r) }, "duplicate backend")
	assert.Panics(t, func() { r.RegisterBackend("empty", &registry.RegisteredBackend{}) }, "missing constructor")
}

func TestNewSpectrum(t *testing.T) {
	r := coreRegistry()

	s, err := r.NewSpectrum("qedqcd")
	require.NoError(t, err)
	assert.Equal(t, "qedqcd", s.Model())
	alphaS, ok := s.Inputs().Value("alphaS")
	assert.True(t, ok)
	assert.Equal(t, 0.1185, alphaS)

	_, err = r.NewSpectrum("nmssm")
	assert.ErrorContains(t, err, `unknown backend "nmssm"`)
}

func TestNewSpectrum_InputOverrides(t *testing.T) {
	r := coreRegistry()

	s, err := r.NewSpectrum("mssm", map[string]float64{"m0": 300}, nil, map[string]float64{"tanb": 40, "m0": 350})
	require.NoError(t, err)

	m0, _ := s.Inputs().Value("m0")
	tanb, _ := s.Inputs().Value("tanb")
	m12, _ := s.Inputs().Value("m12")
	assert.Equal(t, 350.0, m0)
	assert.Equal(t, 40.0, tanb)
	assert.Equal(t, 500.0, m12, "defaults survive")

	fresh, err := r.NewSpectrum("mssm")
	require.NoError(t, err)
	m0, _ = fresh.Inputs().Value("m0")
	assert.Equal(t, 125.0, m0, "overrides do not leak into later spectra")
}
