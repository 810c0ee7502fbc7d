package physical

import (
	"errors"
	"math"
	"testing"

	"github.com/specialistvlad/spectrumgo/internal/specerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() Snapshot {
	var s Snapshot
	s.Add("MGluino", Fermion, 1180.5)
	s.AddFamily("MChi", Fermion, 205.1, -395.2, -640.7, 655.3)
	s.Add("MHpm", Boson, 500.0*500.0)
	s.Add("MTachyon", Boson, -100)
	return s
}

func TestPoleMass_BeforeCompute(t *testing.T) {
	v := New()
	assert.False(t, v.Computed())
	_, err := v.PoleMass("MGluino")
	require.Error(t, err)
	assert.True(t, errors.Is(err, specerr.ErrUnknownParameter))
	assert.Contains(t, err.Error(), "not computed")
}

func TestPoleMass_Lookup(t *testing.T) {
	v := New()
	require.NoError(t, v.Compute(sampleSnapshot(), true))

	m, err := v.PoleMass("MGluino")
	require.NoError(t, err)
	assert.Equal(t, 1180.5, m)

	chi2, err := v.PoleMass("MChi", 2)
	require.NoError(t, err)
	assert.Equal(t, -395.2, chi2)

	hpm, err := v.PoleMass("MHpm")
	require.NoError(t, err)
	assert.InDelta(t, 500.0, hpm, 1e-12)

	n, ok := v.Multiplicity("MChi")
	assert.True(t, ok)
	assert.Equal(t, 4, n)
	assert.Equal(t, []string{"MGluino", "MChi", "MHpm", "MTachyon"}, v.Keys())
}

func TestPoleMass_Errors(t *testing.T) {
	v := New()
	require.NoError(t, v.Compute(sampleSnapshot(), false))

	_, err := v.PoleMass("MSquirrel")
	assert.True(t, errors.Is(err, specerr.ErrUnknownParameter))

	_, err = v.PoleMass("MChi", 5)
	assert.True(t, errors.Is(err, specerr.ErrIndexOutOfRange))

	_, err = v.PoleMass("MChi", 0)
	assert.True(t, errors.Is(err, specerr.ErrIndexOutOfRange))

	_, err = v.PoleMass("MChi")
	assert.True(t, errors.Is(err, specerr.ErrBadAccessPattern))

	_, err = v.PoleMass("MGluino", 1)
	assert.True(t, errors.Is(err, specerr.ErrBadAccessPattern))
}

func TestCompute_Convention(t *testing.T) {
	signed := New()
	require.NoError(t, signed.Compute(sampleSnapshot(), true))
	plain := New()
	require.NoError(t, plain.Compute(sampleSnapshot(), false))

	s, _ := signed.PoleMass("MChi", 3)
	p, _ := plain.PoleMass("MChi", 3)
	assert.Equal(t, -640.7, s)
	assert.Equal(t, 640.7, p)

	s, _ = signed.PoleMass("MTachyon")
	p, _ = plain.PoleMass("MTachyon")
	assert.Equal(t, -10.0, s)
	assert.Equal(t, 10.0, p)

	assert.True(t, signed.Converted())
	assert.False(t, plain.Converted())
}

func TestReconvert_UsesStoredSnapshot(t *testing.T) {
	v := New()
	snap := sampleSnapshot()
	require.NoError(t, v.Compute(snap, true))

	// mutate the caller's copy; the view must not notice
	snap.Families[1].Values[2] = 1

	require.NoError(t, v.Reconvert(false))
	m, err := v.PoleMass("MChi", 3)
	require.NoError(t, err)
	assert.Equal(t, 640.7, m)
	assert.False(t, v.Converted())

	assert.Error(t, New().Reconvert(true))
}

func TestCompute_ReplacesWholesale(t *testing.T) {
	v := New()
	require.NoError(t, v.Compute(sampleSnapshot(), true))

	var next Snapshot
	next.Add("MZ", Boson, 91.1876*91.1876)
	require.NoError(t, v.Compute(next, true))

	_, err := v.PoleMass("MGluino")
	assert.True(t, errors.Is(err, specerr.ErrUnknownParameter), "old entries must be gone")
	mz, err := v.PoleMass("MZ")
	require.NoError(t, err)
	assert.InDelta(t, 91.1876, mz, 1e-12)
}

func TestCompute_RejectsMalformed(t *testing.T) {
	v := New()
	require.NoError(t, v.Compute(sampleSnapshot(), true))

	var dup Snapshot
	dup.Add("MZ", Boson, 1)
	dup.Add("MZ", Boson, 2)
	err := v.Compute(dup, true)
	assert.True(t, errors.Is(err, specerr.ErrDuplicateRegistration))

	bad := Snapshot{Families: []Family{{Key: "MX", Values: []float64{1, 2}}}}
	assert.Error(t, v.Compute(bad, true))

	m, err := v.PoleMass("MGluino")
	require.NoError(t, err, "previous map survives a failed compute")
	assert.Equal(t, 1180.5, m)
}

func TestCompute_RejectsNonFinite(t *testing.T) {
	testCases := []struct {
		name    string
		snap    func() Snapshot
		wantMsg string
	}{
		{"infinite boson", func() Snapshot {
			var s Snapshot
			s.Add("MAh", Boson, math.Inf(1))
			return s
		}, `"MAh"`},
		{"NaN in a family", func() Snapshot {
			var s Snapshot
			s.AddFamily("Mhh", Boson, math.NaN(), 8000)
			return s
		}, `"Mhh"(1)`},
		{"negative infinite fermion", func() Snapshot {
			var s Snapshot
			s.AddFamily("MChi", Fermion, 100, math.Inf(-1))
			return s
		}, `"MChi"(2)`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			v := New()
			require.NoError(t, v.Compute(sampleSnapshot(), true))

			// Act
			err := v.Compute(tc.snap(), false)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNonFinite)
			assert.Contains(t, err.Error(), tc.wantMsg)
			assert.Equal(t, []string{"MGluino", "MChi", "MHpm", "MTachyon"}, v.Keys(), "failed compute keeps the previous map")
			assert.True(t, v.Converted())
		})
	}
}

func TestClone_SharesImmutableMap(t *testing.T) {
	v := New()
	require.NoError(t, v.Compute(sampleSnapshot(), true))
	c := v.Clone()

	var next Snapshot
	next.Add("MGluino", Fermion, 1)
	require.NoError(t, v.Compute(next, true))

	m, err := c.PoleMass("MGluino")
	require.NoError(t, err)
	assert.Equal(t, 1180.5, m)
	assert.False(t, math.IsNaN(m))
}
