package qedqcd

import (
	"context"
	"errors"
	"math"

	"github.com/specialistvlad/spectrumgo/internal/accessor"
	"github.com/specialistvlad/spectrumgo/internal/ctxlog"
	"github.com/specialistvlad/spectrumgo/internal/physical"
	"github.com/specialistvlad/spectrumgo/internal/rge"
	"github.com/specialistvlad/spectrumgo/internal/running"
	"github.com/specialistvlad/spectrumgo/internal/spectrum"
)

// Model is the backend name.
const Model = "qedqcd"

const (
	// MZ is the Z pole mass in GeV.
	MZ = 91.1876
	// MW is the W pole mass in GeV.
	MW = 80.385
	// MTop is the top pole mass in GeV; above it five-flavour running is
	// flagged.
	MTop = 173.34
	// MBottom is mb(mb) in GeV; below it five-flavour running is flagged.
	MBottom = 4.18
)

const (
	up = iota
	down
	strange
	charm
	bottom
	top
	numQuarks
)

const (
	electron = iota
	muon
	tau
	numLeptons
)

var quarkCharge = [numQuarks]float64{2.0 / 3, -1.0 / 3, -1.0 / 3, 2.0 / 3, -1.0 / 3, 2.0 / 3}

// Store holds MS-bar quantities at one scale.
type Store struct {
	scale   float64
	alphaS  float64
	alphaEM float64
	quarks  [numQuarks]float64
	leptons [numLeptons]float64
}

var _ spectrum.Backend = (*Store)(nil)

// New returns a store with the reference values at MZ.
func New() *Store {
	return &Store{
		scale:   MZ,
		alphaS:  0.1185,
		alphaEM: 1 / 127.944,
		quarks:  [numQuarks]float64{1.27e-3, 2.76e-3, 0.0552, 0.619, 2.855, 171.7},
		leptons: [numLeptons]float64{0.000486570161, 0.102718, 1.74624},
	}
}

// DefaultInputs are the SLHA SMINPUTS the reference store was built from.
func DefaultInputs() spectrum.Inputs {
	return spectrum.Inputs{
		Model: Model,
		Values: map[string]float64{
			"alphainv": 127.944,
			"GF":       1.1663787e-5,
			"alphaS":   0.1185,
			"mZ":       MZ,
			"mBmB":     MBottom,
			"mT":       MTop,
			"mTau":     1.77682,
		},
	}
}

// NewSpectrum returns a facade over the reference store.
func NewSpectrum() *spectrum.Spectrum {
	return spectrum.New(New(), DefaultInputs())
}

var paramMap = accessor.Once[*Store](Model, fillCouplings, fillMasses)

func fillCouplings(m *accessor.Map[*Store]) error {
	return errors.Join(
		m.Scalar("alphaS", accessor.Dimensionless,
			func(s *Store) float64 { return s.alphaS },
			func(s *Store, v float64) { s.alphaS = v }),
		m.Scalar("alphaEM", accessor.Dimensionless,
			func(s *Store) float64 { return s.alphaEM },
			func(s *Store, v float64) { s.alphaEM = v }),
	)
}

func fillMasses(m *accessor.Map[*Store]) error {
	var errs []error
	for i, key := range []string{"mU", "mD", "mS", "mC", "mB", "mT"} {
		errs = append(errs, m.Scalar(key, accessor.Mass,
			func(s *Store) float64 { return s.quarks[i] },
			func(s *Store, v float64) { s.quarks[i] = v }))
	}
	for i, key := range []string{"mE", "mMu", "mTau"} {
		errs = append(errs, m.Scalar(key, accessor.Mass,
			func(s *Store) float64 { return s.leptons[i] },
			func(s *Store, v float64) { s.leptons[i] = v }))
	}
	zero := func(*Store) float64 { return 0 }
	errs = append(errs,
		m.Scalar("mGluon", accessor.Mass, zero, nil),
		m.Scalar("mPhoton", accessor.Mass, zero, nil),
	)
	return errors.Join(errs...)
}

func (s *Store) Model() string { return Model }

func (s *Store) Scale() float64 { return s.scale }

func (s *Store) SetScale(q float64) { s.scale = q }

func (s *Store) Params() accessor.Table { return accessor.Bind(paramMap(), s) }

func (s *Store) Limits() running.Limits {
	return running.Limits{HardLower: 1, SoftLower: MBottom, SoftUpper: MTop, HardUpper: 1e3}
}

func (s *Store) Clone() spectrum.Backend {
	c := *s
	return &c
}

const numPars = 2 + numQuarks + numLeptons

func (s *Store) pack() []float64 {
	y := make([]float64, 0, numPars)
	y = append(y, s.alphaS, s.alphaEM)
	y = append(y, s.quarks[:]...)
	return append(y, s.leptons[:]...)
}

func (s *Store) unpack(y []float64) {
	s.alphaS, s.alphaEM = y[0], y[1]
	copy(s.quarks[:], y[2:2+numQuarks])
	copy(s.leptons[:], y[2+numQuarks:])
}

// rges is one-loop QCD and QED running in t = ln Q with five flavours.
var rges = rge.Func(func(_ float64, y, dydt []float64) {
	const nf = 5
	as, ae := y[0], y[1]
	beta0 := 11 - 2.0*nf/3
	// Sum of Nc Q^2 over the light quarks and charged leptons.
	const chargeSum = 20.0 / 3

	dydt[0] = -beta0 * as * as / (2 * math.Pi)
	dydt[1] = 2 * chargeSum * ae * ae / (3 * math.Pi)
	for i := range numQuarks {
		q := quarkCharge[i]
		m := y[2+i]
		dydt[2+i] = -m * (2*as/math.Pi + 3*q*q*ae/(2*math.Pi))
	}
	for i := range numLeptons {
		dydt[2+numQuarks+i] = -y[2+numQuarks+i] * 3 * ae / (2 * math.Pi)
	}
})

// RunToScale evolves couplings and masses to target atomically.
func (s *Store) RunToScale(target float64) error {
	y := s.pack()
	if _, err := rge.Run(rges, y, s.scale, target, rge.DefaultOptions()); err != nil {
		return err
	}
	s.unpack(y)
	s.scale = target
	return nil
}

// CalculateSpectrum converts the running masses at the current scale to
// one-loop pole masses. Gauge boson masses are fixed inputs.
func (s *Store) CalculateSpectrum(ctx context.Context) (physical.Snapshot, error) {
	if !(s.alphaS > 0) || !(s.alphaEM > 0) {
		return physical.Snapshot{}, errors.New("qedqcd: couplings must be positive")
	}
	qcd := 1 + 4*s.alphaS/(3*math.Pi)
	qed := 1 + s.alphaEM/math.Pi

	var snap physical.Snapshot
	snap.Add("MZ", physical.Boson, MZ*MZ)
	snap.Add("MW", physical.Boson, MW*MW)
	snap.Add("MGluon", physical.Boson, 0)
	snap.Add("MPhoton", physical.Boson, 0)
	snap.Add("MT", physical.Fermion, s.quarks[top]*qcd)
	snap.Add("MB", physical.Fermion, s.quarks[bottom]*qcd)
	snap.AddFamily("MLepton", physical.Fermion,
		s.leptons[electron]*qed, s.leptons[muon]*qed, s.leptons[tau]*qed)

	ctxlog.FromContext(ctx).Debug("QEDxQCD pole masses evaluated.", "scale", s.scale)
	return snap, nil
}
