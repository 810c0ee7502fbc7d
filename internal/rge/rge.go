package rge

import (
	"fmt"
	"math"

	"github.com/specialistvlad/spectrumgo/internal/specerr"
)

// System is the right-hand side of an RGE system.
type System interface {
	// Derivs writes dy/dt at t = ln(Q) into dydt. It must not retain y or dydt.
	Derivs(t float64, y, dydt []float64)
}

// Func adapts a plain function to System.
type Func func(t float64, y, dydt []float64)

func (f Func) Derivs(t float64, y, dydt []float64) { f(t, y, dydt) }

// Options tune the integrator.
type Options struct {
	// Tolerance is the accepted relative error per step.
	Tolerance float64
	// MaxSteps bounds the number of attempted steps.
	MaxSteps int
	// InitialStep is the first step size in ln(Q).
	InitialStep float64
	// MaxAbs is the magnitude above which a value counts as diverged.
	MaxAbs float64
}

// DefaultOptions returns the options used by the bundled backends.
func DefaultOptions() Options {
	return Options{
		Tolerance:   1e-10,
		MaxSteps:    200000,
		InitialStep: 0.05,
		MaxAbs:      1e30,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Tolerance <= 0 {
		o.Tolerance = d.Tolerance
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = d.MaxSteps
	}
	if o.InitialStep <= 0 {
		o.InitialStep = d.InitialStep
	}
	if o.MaxAbs <= 0 {
		o.MaxAbs = d.MaxAbs
	}
	return o
}

// Stats reports on a completed run.
type Stats struct {
	Steps    int
	Rejected int
}

const minStep = 1e-12

// Run integrates y from scale from to scale to (both in GeV, positive).
// On success y holds the values at to.
func Run(sys System, y []float64, from, to float64, opts Options) (Stats, error) {
	var stats Stats
	if !(from > 0) || !(to > 0) || math.IsInf(from, 0) || math.IsInf(to, 0) {
		return stats, fmt.Errorf("rge: scales must be positive and finite, got %g -> %g", from, to)
	}
	opts = opts.withDefaults()

	t0, t1 := math.Log(from), math.Log(to)
	if t0 == t1 {
		return stats, nil
	}

	n := len(y)
	w := newWorkspace(n)
	cur := append([]float64(nil), y...)
	// Errors are measured against the largest magnitude each component has
	// reached, so components crossing zero do not stall the step control.
	ref := make([]float64, n)
	for i, v := range cur {
		ref[i] = math.Max(math.Abs(v), 1e-8)
	}
	t := t0
	span := t1 - t0
	dir := math.Copysign(1, span)
	h := dir * math.Min(opts.InitialStep, math.Abs(span))

	for (t1-t)*dir > 0 {
		if stats.Steps >= opts.MaxSteps {
			return stats, divergence("step budget of %d exhausted at Q=%g", opts.MaxSteps, math.Exp(t))
		}
		stats.Steps++

		last := false
		if (t+h-t1)*dir >= 0 {
			h = t1 - t
			last = true
		}

		w.step(sys, t, cur, h, w.full)
		w.step(sys, t, cur, h/2, w.mid)
		w.step(sys, t+h/2, w.mid, h/2, w.half)

		errEst := 0.0
		for i := 0; i < n; i++ {
			d := math.Abs(w.half[i]-w.full[i]) / math.Max(ref[i], math.Abs(w.half[i]))
			if math.IsNaN(d) {
				errEst = d
				break
			}
			errEst = math.Max(errEst, d)
		}
		if math.IsNaN(errEst) || math.IsInf(errEst, 0) {
			return stats, divergence("non-finite derivative at Q=%g", math.Exp(t))
		}

		if errEst > opts.Tolerance {
			stats.Rejected++
			h *= math.Max(0.1, 0.9*math.Pow(opts.Tolerance/errEst, 0.2))
			if math.Abs(h) < minStep {
				return stats, divergence("step size underflow at Q=%g", math.Exp(t))
			}
			continue
		}

		for i := 0; i < n; i++ {
			v := w.half[i] + (w.half[i]-w.full[i])/15
			if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > opts.MaxAbs {
				return stats, divergence("component %d ran away (%g) at Q=%g", i, v, math.Exp(t+h))
			}
			cur[i] = v
			ref[i] = math.Max(ref[i], math.Abs(v))
		}
		if last {
			t = t1
			break
		}
		t += h

		grow := 4.0
		if errEst > 0 {
			grow = math.Min(4, 0.9*math.Pow(opts.Tolerance/errEst, 0.2))
		}
		h *= math.Max(grow, 1)
	}

	copy(y, cur)
	return stats, nil
}

func divergence(format string, args ...any) error {
	return fmt.Errorf("%w: %s", specerr.ErrIntegrationDivergence, fmt.Sprintf(format, args...))
}

type workspace struct {
	k1, k2, k3, k4, tmp []float64
	full, mid, half     []float64
}

func newWorkspace(n int) *workspace {
	mk := func() []float64 { return make([]float64, n) }
	return &workspace{
		k1: mk(), k2: mk(), k3: mk(), k4: mk(), tmp: mk(),
		full: mk(), mid: mk(), half: mk(),
	}
}

// step performs one classical RK4 step from (t, y) with size h into out.
func (w *workspace) step(sys System, t float64, y []float64, h float64, out []float64) {
	n := len(y)
	sys.Derivs(t, y, w.k1)
	for i := 0; i < n; i++ {
		w.tmp[i] = y[i] + h/2*w.k1[i]
	}
	sys.Derivs(t+h/2, w.tmp, w.k2)
	for i := 0; i < n; i++ {
		w.tmp[i] = y[i] + h/2*w.k2[i]
	}
	sys.Derivs(t+h/2, w.tmp, w.k3)
	for i := 0; i < n; i++ {
		w.tmp[i] = y[i] + h*w.k3[i]
	}
	sys.Derivs(t+h, w.tmp, w.k4)
	for i := 0; i < n; i++ {
		out[i] = y[i] + h/6*(w.k1[i]+2*w.k2[i]+2*w.k3[i]+w.k4[i])
	}
}
