package mssm

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/specialistvlad/spectrumgo/internal/ctxlog"
	"github.com/specialistvlad/spectrumgo/internal/physical"
	"gonum.org/v1/gonum/mat"
)

// CalculateSpectrum evaluates tree-level masses from the current store. Boson
// entries are squared masses; fermion entries are signed masses.
func (s *Store) CalculateSpectrum(ctx context.Context) (physical.Snapshot, error) {
	p := s.p
	v := p.vev()
	if !(v > 0) {
		return physical.Snapshot{}, fmt.Errorf("mssm: vacuum expectation value must be positive, got %g", v)
	}

	gy := math.Sqrt(3.0/5) * p.g1
	g2 := p.g2
	sb, cb := p.vu/v, p.vd/v
	if !(sb*cb > 0) {
		return physical.Snapshot{}, fmt.Errorf("mssm: tan(beta) is undefined for vd = %g, vu = %g; both must be positive", p.vd, p.vu)
	}
	cos2b := cb*cb - sb*sb
	mz2 := (gy*gy + g2*g2) * v * v / 4
	mw2 := g2 * g2 * v * v / 4
	sw2 := gy * gy / (gy*gy + g2*g2)

	var snap physical.Snapshot
	snap.Add("MW", physical.Boson, mw2)
	snap.Add("MZ", physical.Boson, mz2)
	snap.Add("MGluino", physical.Fermion, p.massG)

	chi, err := symEigen([][]float64{
		{p.massB, 0, -gy * p.vd / 2, gy * p.vu / 2},
		{0, p.massWB, g2 * p.vd / 2, -g2 * p.vu / 2},
		{-gy * p.vd / 2, g2 * p.vd / 2, 0, -p.mu},
		{gy * p.vu / 2, -g2 * p.vu / 2, -p.mu, 0},
	})
	if err != nil {
		return physical.Snapshot{}, fmt.Errorf("mssm: neutralinos: %w", err)
	}
	snap.AddFamily("MChi", physical.Fermion, chi...)
	cha, err := charginos(p.massWB, p.mu, g2*p.vu/math.Sqrt2, g2*p.vd/math.Sqrt2)
	if err != nil {
		return physical.Snapshot{}, fmt.Errorf("mssm: charginos: %w", err)
	}
	snap.AddFamily("MCha", physical.Fermion, cha...)

	dterm := func(t3, q float64) float64 { return (t3 - q*sw2) * mz2 * cos2b }
	for _, sf := range []struct {
		key             string
		mL2, mR2, y, ty mat3
		vOwn, vOther    float64
		t3, charge      float64
	}{
		{"MSu", p.mq2, p.mu2, p.yu, p.tyu, p.vu, p.vd, 0.5, 2.0 / 3},
		{"MSd", p.mq2, p.md2, p.yd, p.tyd, p.vd, p.vu, -0.5, -1.0 / 3},
		{"MSe", p.ml2, p.me2, p.ye, p.tye, p.vd, p.vu, -0.5, -1},
	} {
		masses, err := sfermions(sf.mL2, sf.mR2, sf.y, sf.ty, sf.vOwn, sf.vOther, p.mu, dterm(sf.t3, sf.charge), dterm(0, sf.charge))
		if err != nil {
			return physical.Snapshot{}, fmt.Errorf("mssm: %s: %w", sf.key, err)
		}
		snap.AddFamily(sf.key, physical.Boson, masses...)
	}

	sv := make([]float64, 3)
	for i := range sv {
		sv[i] = p.ml2[i][i] + dterm(0.5, 0)
	}
	slices.Sort(sv)
	snap.AddFamily("MSv", physical.Boson, sv...)

	ma2 := p.bmu / (sb * cb)
	r := math.Sqrt((ma2+mz2)*(ma2+mz2) - 4*ma2*mz2*cos2b*cos2b)
	snap.AddFamily("Mhh", physical.Boson, (ma2+mz2-r)/2, (ma2+mz2+r)/2)
	snap.Add("MAh", physical.Boson, ma2)
	snap.Add("MHpm", physical.Boson, ma2+mw2)

	ctxlog.FromContext(ctx).Debug("MSSM tree-level spectrum evaluated.", "scale", s.scale, "mA2", ma2)
	return snap, nil
}

// charginos returns the singular values of [[m2, xu], [xd, mu]], lightest
// first. The lighter one carries the sign of det.
func charginos(m2, mu, xu, xd float64) ([]float64, error) {
	return singular2(mat.NewDense(2, 2, []float64{m2, xu, xd, mu}))
}

// sfermions returns the six squared masses of one sfermion type, ignoring
// flavour mixing: per generation, the left-right 2x2 block is diagonalised.
func sfermions(mL2, mR2, y, ty mat3, vOwn, vOther, mu, dL, dR float64) ([]float64, error) {
	out := make([]float64, 0, 6)
	for i := range 3 {
		mf := y[i][i] * vOwn / math.Sqrt2
		ll := mL2[i][i] + mf*mf + dL
		rr := mR2[i][i] + mf*mf + dR
		lr := (ty[i][i]*vOwn - mu*y[i][i]*vOther) / math.Sqrt2
		lo, hi, err := sym2(ll, lr, rr)
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", i+1, err)
		}
		out = append(out, lo, hi)
	}
	slices.Sort(out)
	return out, nil
}
