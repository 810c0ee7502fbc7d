package spectrum_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/specialistvlad/spectrumgo/internal/accessor"
	"github.com/specialistvlad/spectrumgo/internal/physical"
	"github.com/specialistvlad/spectrumgo/internal/running"
	"github.com/specialistvlad/spectrumgo/internal/specerr"
	"github.com/specialistvlad/spectrumgo/internal/spectrum"
	"github.com/specialistvlad/spectrumgo/modules/mssm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// toyBackend is a two-parameter store with a fixed kernel, small enough for
// golden output.
type toyBackend struct {
	scale    float64
	g        float64
	m2       [2][2]float64
	failCalc bool
}

var toyMap = accessor.Once("toy", func(m *accessor.Map[*toyBackend]) error {
	if err := m.Scalar("g", accessor.Dimensionless,
		func(s *toyBackend) float64 { return s.g },
		func(s *toyBackend, v float64) { s.g = v }); err != nil {
		return err
	}
	return m.Matrix("m2", 2, accessor.MassSquared,
		func(s *toyBackend, i, j int) float64 { return s.m2[i][j] },
		func(s *toyBackend, i, j int, v float64) { s.m2[i][j] = v })
})

func newToy() *toyBackend {
	return &toyBackend{scale: 100, g: 0.5, m2: [2][2]float64{{4e4, 0}, {0, -2500}}}
}

func (s *toyBackend) Model() string          { return "toy" }
func (s *toyBackend) Scale() float64         { return s.scale }
func (s *toyBackend) SetScale(q float64)     { s.scale = q }
func (s *toyBackend) Params() accessor.Table { return accessor.Bind(toyMap(), s) }
func (s *toyBackend) Limits() running.Limits { return running.Limits{HardUpper: 1e4} }

func (s *toyBackend) Clone() spectrum.Backend {
	c := *s
	return &c
}

func (s *toyBackend) RunToScale(q float64) error {
	s.g *= 1 + 0.01*math.Log(q/s.scale)
	s.scale = q
	return nil
}

func (s *toyBackend) CalculateSpectrum(context.Context) (physical.Snapshot, error) {
	if s.failCalc {
		return physical.Snapshot{}, errors.New("kernel failed")
	}
	var snap physical.Snapshot
	snap.Add("MX", physical.Fermion, -200*s.g)
	snap.AddFamily("MS", physical.Boson, s.m2[1][1], s.m2[0][0])
	return snap, nil
}

func TestPrint_Golden(t *testing.T) {
	// --- Arrange ---
	s := spectrum.New(newToy(), spectrum.Inputs{})

	// --- Act ---
	before := s.String()
	require.NoError(t, s.CalculateSpectrum(context.Background()))
	after := s.String()

	// --- Assert ---
	header := `Running parameters (toy) at Q = 1.000000e+02 GeV
  g = 5.000000e-01
  m2(1,1) = 4.000000e+04
  m2(1,2) = 0.000000e+00
  m2(2,1) = 0.000000e+00
  m2(2,2) = -2.500000e+03
----------------------------------------
Physical parameters:
----------------------------------------
`
	assert.Equal(t, header+"  (not computed)\n", before)
	assert.Equal(t, header+`  MX = -1.000000e+02
  MS(1) = -5.000000e+01
  MS(2) = 2.000000e+02
`, after)
}

func TestSpectrum_SetGetRoundTrip(t *testing.T) {
	rv := mssm.NewSpectrum().Running()

	require.NoError(t, rv.SetMassSquared("mq2", 1.2e6, 2, 3))
	v, err := rv.GetMassSquared("mq2", 2, 3)

	require.NoError(t, err)
	assert.Equal(t, 1.2e6, v)
}

func TestSpectrum_PhysicalViewIsStale(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	s := mssm.NewSpectrum()
	require.NoError(t, s.CalculateSpectrum(ctx))

	// --- Act ---
	require.NoError(t, s.Running().SetMass("MassG", 2000))
	require.NoError(t, s.RunToScale(ctx, 1e4))

	// --- Assert ---
	stale, err := s.Physical().PoleMass("MGluino")
	require.NoError(t, err)
	assert.Equal(t, 1114.45, stale)

	require.NoError(t, s.CalculateSpectrum(ctx))
	fresh, err := s.Physical().PoleMass("MGluino")
	require.NoError(t, err)
	assert.NotEqual(t, 1114.45, fresh)
	massG, _ := s.Running().GetMass("MassG")
	assert.Equal(t, massG, fresh)
}

func TestSpectrum_CloneIsIndependent(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	orig := mssm.NewSpectrum()
	require.NoError(t, orig.CalculateSpectrum(ctx))

	// --- Act ---
	cp := orig.Clone()
	require.NoError(t, cp.Running().SetDimensionless("g1", 0.5))
	require.NoError(t, cp.RunToScale(ctx, 1e3))

	// --- Assert ---
	g1, _ := orig.Running().GetDimensionless("g1")
	assert.Equal(t, 0.468171, g1)
	assert.Equal(t, mssm.MZ, orig.Running().Scale())
	assert.Equal(t, 1e3, cp.Running().Scale())
	assert.NotEqual(t, orig.ID(), cp.ID())

	// The copy starts with the same derived observables and diverges only on
	// its own recompute.
	assert.True(t, cp.Physical().Computed())
	cp.SetConvertMasses(false)
	require.NoError(t, cp.CalculateSpectrum(ctx))
	assert.True(t, orig.Physical().Converted())
	assert.False(t, cp.Physical().Converted())
}

func TestWrap_CopiesBackendAndInputs(t *testing.T) {
	// --- Arrange ---
	backend := mssm.New()
	inputs := mssm.DefaultInputs()

	// --- Act ---
	s := spectrum.Wrap(backend, inputs)
	backend.SetScale(1e5)
	inputs.Values["m0"] = -1

	// --- Assert ---
	assert.Equal(t, mssm.MZ, s.Running().Scale())
	in := s.Inputs()
	m0, ok := in.Value("m0")
	require.True(t, ok)
	assert.Equal(t, 125.0, m0)

	in.Values["m0"] = -2
	again, _ := s.Inputs().Value("m0")
	assert.Equal(t, 125.0, again, "Inputs must return a copy")
	assert.Equal(t, []string{"A0", "m0", "m12", "signMu", "tanb"}, in.Keys())
}

func TestNew_DefaultsInputsModel(t *testing.T) {
	s := spectrum.New(newToy(), spectrum.Inputs{})

	assert.Equal(t, "toy", s.Inputs().Model)
	assert.Equal(t, "toy", s.Model())
	assert.True(t, s.ConvertMasses())
}

func TestSetConvertMasses_AffectsOnlyLaterCalculations(t *testing.T) {
	ctx := context.Background()
	s := spectrum.New(newToy(), spectrum.Inputs{})
	require.NoError(t, s.CalculateSpectrum(ctx))

	s.SetConvertMasses(false)
	mx, _ := s.Physical().PoleMass("MX")
	assert.Equal(t, -100.0, mx)

	require.NoError(t, s.CalculateSpectrum(ctx))
	mx, _ = s.Physical().PoleMass("MX")
	assert.Equal(t, 100.0, mx)
}

func TestCalculateSpectrum_FailureKeepsPreviousView(t *testing.T) {
	ctx := context.Background()
	toy := newToy()
	s := spectrum.New(toy, spectrum.Inputs{})
	require.NoError(t, s.CalculateSpectrum(ctx))

	toy.failCalc = true
	err := s.CalculateSpectrum(ctx)

	assert.ErrorContains(t, err, "calculate toy spectrum: kernel failed")
	mx, err := s.Physical().PoleMass("MX")
	require.NoError(t, err)
	assert.Equal(t, -100.0, mx)
}

func TestSpectrum_Tracing(t *testing.T) {
	// --- Arrange ---
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	s := spectrum.New(newToy(), spectrum.Inputs{})
	ctx := context.Background()

	// --- Act ---
	require.NoError(t, s.CalculateSpectrum(ctx))
	err := s.RunToScale(ctx, 1e6)

	// --- Assert ---
	require.True(t, errors.Is(err, specerr.ErrScaleOutOfValidatedRange))
	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "spectrum.CalculateSpectrum", spans[0].Name())
	assert.Equal(t, "spectrum.RunToScale", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.True(t, strings.Contains(spans[1].Status().Description, "validated range"))
}
