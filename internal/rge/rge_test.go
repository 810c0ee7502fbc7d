package rge

import (
	"errors"
	"math"
	"testing"

	"github.com/specialistvlad/spectrumgo/internal/specerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// one-loop gauge running with constant coefficient: exact inverse-square solution.
func gaugeSystem(b float64) System {
	return Func(func(_ float64, y, dydt []float64) {
		for i, g := range y {
			dydt[i] = b * g * g * g / (16 * math.Pi * math.Pi)
		}
	})
}

func exactGauge(g0, b, t float64) float64 {
	return 1 / math.Sqrt(1/(g0*g0)-2*b*t/(16*math.Pi*math.Pi))
}

func TestRun_MatchesAnalyticGaugeRunning(t *testing.T) {
	y := []float64{0.468171}
	b := 33.0 / 5.0

	stats, err := Run(gaugeSystem(b), y, 91.1876, 1e15, DefaultOptions())
	require.NoError(t, err)
	assert.Greater(t, stats.Steps, 0)

	want := exactGauge(0.468171, b, math.Log(1e15/91.1876))
	assert.InDelta(t, want, y[0], 1e-8)
}

func TestRun_SameScaleIsNoop(t *testing.T) {
	y := []float64{1, 2, 3}
	stats, err := Run(gaugeSystem(1), y, 100, 100, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Steps)
	assert.Equal(t, []float64{1, 2, 3}, y)
}

func TestRun_Deterministic(t *testing.T) {
	a := []float64{0.6, 0.7, 1.1}
	b := append([]float64(nil), a...)
	_, errA := Run(gaugeSystem(-3), a, 91.1876, 5e3, DefaultOptions())
	_, errB := Run(gaugeSystem(-3), b, 91.1876, 5e3, DefaultOptions())
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestRun_DivergenceLeavesInputUntouched(t *testing.T) {
	// dy/dt = y^2 blows up at t = 1/y0.
	blowUp := Func(func(_ float64, y, dydt []float64) { dydt[0] = y[0] * y[0] })
	y := []float64{1}

	_, err := Run(blowUp, y, 1, math.Exp(5), DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, specerr.ErrIntegrationDivergence), "got %v", err)
	assert.Equal(t, []float64{1}, y)
}

func TestRun_StepBudget(t *testing.T) {
	y := []float64{0.5}
	_, err := Run(gaugeSystem(1), y, 10, 1e16, Options{MaxSteps: 2, InitialStep: 0.01})
	require.Error(t, err)
	assert.True(t, errors.Is(err, specerr.ErrIntegrationDivergence))
	assert.Contains(t, err.Error(), "step budget")
	assert.Equal(t, []float64{0.5}, y)
}

func TestRun_NonFiniteDerivative(t *testing.T) {
	nan := Func(func(_ float64, _ []float64, dydt []float64) { dydt[0] = math.NaN() })
	_, err := Run(nan, []float64{1}, 10, 20, Options{})
	assert.True(t, errors.Is(err, specerr.ErrIntegrationDivergence))
}

func TestRun_RejectsBadScales(t *testing.T) {
	_, err := Run(gaugeSystem(1), []float64{1}, 0, 10, Options{})
	assert.Error(t, err)
	_, err = Run(gaugeSystem(1), []float64{1}, 10, math.Inf(1), Options{})
	assert.Error(t, err)
}

func TestRun_RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := rapid.Float64Range(0.3, 1.1).Draw(t, "g")
		decades := rapid.Float64Range(-1, 14).Draw(t, "decades")
		target := 91.1876 * math.Pow(10, decades)

		y := []float64{g}
		if _, err := Run(gaugeSystem(1), y, 91.1876, target, DefaultOptions()); err != nil {
			t.Fatalf("up: %v", err)
		}
		if _, err := Run(gaugeSystem(1), y, target, 91.1876, DefaultOptions()); err != nil {
			t.Fatalf("down: %v", err)
		}
		if math.Abs(y[0]-g) > 1e-7 {
			t.Fatalf("round trip drifted: %v -> %v", g, y[0])
		}
	})
}
