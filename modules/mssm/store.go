package mssm

import (
	"github.com/specialistvlad/spectrumgo/internal/accessor"
	"github.com/specialistvlad/spectrumgo/internal/running"
	"github.com/specialistvlad/spectrumgo/internal/spectrum"
)

// Model is the backend name used for the accessor map and the registry.
const Model = "mssm"

// MZ is the Z pole mass in GeV; default stores are defined there.
const MZ = 91.1876

// pars is the running content of a store: the DR-bar parameters of the
// MSSM in GUT normalisation for g1.
type pars struct {
	g1, g2, g3 float64
	yu, yd, ye mat3
	mu         float64
	vd, vu     float64

	tyu, tyd, tye mat3
	bmu           float64

	mq2, ml2, md2, mu2, me2 mat3
	mHd2, mHu2              float64
	massB, massWB, massG    float64
}

// Store is the MSSM backend store.
type Store struct {
	scale float64
	p     pars
}

var _ spectrum.Backend = (*Store)(nil)

// New returns a store holding the benchmark point at MZ.
func New() *Store {
	return &Store{scale: MZ, p: benchmark()}
}

// NewEmpty returns a store with every parameter zero at scale q, for
// callers that fill it through the running view.
func NewEmpty(q float64) *Store {
	return &Store{scale: q}
}

func benchmark() pars {
	return pars{
		yu: diag3(1.26136e-05, 0.00667469, 0.857849),
		yd: diag3(0.000242026, 0.00529911, 0.193602),
		ye: diag3(2.84161e-05, 0.00587557, 0.10199),
		mu: 627.164,
		g1: 0.468171,
		g2: 0.642353,
		g3: 1.06459,
		vd: 25.0944,
		vu: 242.968,

		tyu: diag3(-0.0144387, -7.64037, -759.305),
		tyd: diag3(-0.336207, -7.36109, -250.124),
		tye: diag3(-0.00825134, -1.70609, -29.4466),
		bmu: 52140.8,

		mq2:  diag3(1.03883e+06, 1.03881e+06, 879135),
		ml2:  diag3(124856, 124853, 124142),
		mHd2: 92436.9,
		mHu2: -380337,
		md2:  diag3(954454, 954439, 934727),
		mu2:  diag3(963422, 963400, 656621),
		me2:  diag3(49215.8, 49210.9, 47759.2),

		massB:  210.328,
		massWB: 389.189,
		massG:  1114.45,
	}
}

// DefaultInputs are the CMSSM boundary values the benchmark point belongs to.
func DefaultInputs() spectrum.Inputs {
	return spectrum.Inputs{
		Model: Model,
		Values: map[string]float64{
			"m0":     125,
			"m12":    500,
			"tanb":   10,
			"signMu": 1,
			"A0":     0,
		},
	}
}

// NewSpectrum returns a facade over the benchmark store.
func NewSpectrum() *spectrum.Spectrum {
	return spectrum.New(New(), DefaultInputs())
}

func (s *Store) Model() string { return Model }

func (s *Store) Scale() float64 { return s.scale }

func (s *Store) SetScale(q float64) { s.scale = q }

func (s *Store) Params() accessor.Table { return accessor.Bind(paramMap(), s) }

// Limits spans the electroweak scale to the Planck scale; above the GUT
// scale results are flagged.
func (s *Store) Limits() running.Limits {
	return running.Limits{HardLower: 1, SoftLower: 50, SoftUpper: 2e16, HardUpper: 1.22e19}
}

func (s *Store) Clone() spectrum.Backend {
	c := *s
	return &c
}
