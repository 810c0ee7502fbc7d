package accessor

import (
	"errors"
	"sync"
	"testing"

	"github.com/specialistvlad/spectrumgo/internal/specerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type toyStore struct {
	g1  float64
	mq2 [3][3]float64
	mz  float64
}

func fillToy(m *Map[*toyStore]) error {
	if err := m.Scalar("g1", Dimensionless,
		func(s *toyStore) float64 { return s.g1 },
		func(s *toyStore, v float64) { s.g1 = v }); err != nil {
		return err
	}
	if err := m.Matrix("mq2", 3, MassSquared,
		func(s *toyStore, i, j int) float64 { return s.mq2[i][j] },
		func(s *toyStore, i, j int, v float64) { s.mq2[i][j] = v }); err != nil {
		return err
	}
	return m.Scalar("MZ", Mass, func(s *toyStore) float64 { return s.mz }, nil)
}

func newToyTable(t *testing.T) (Table, *toyStore) {
	t.Helper()
	m := NewMap[*toyStore]("toy")
	require.NoError(t, fillToy(m))
	s := &toyStore{g1: 0.5, mz: 91.1876}
	s.mq2[0][1] = 12
	return Bind(m, s), s
}

func TestRegister_Duplicate(t *testing.T) {
	m := NewMap[*toyStore]("toy")
	require.NoError(t, fillToy(m))

	err := m.Scalar("g1", Dimensionless, func(s *toyStore) float64 { return 0 }, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, specerr.ErrDuplicateRegistration))
	assert.Equal(t, 3, m.Len(), "failed registration must not add an entry")
}

func TestRegister_Invalid(t *testing.T) {
	m := NewMap[*toyStore]("toy")
	assert.Error(t, m.Matrix("bad", 0, Mass, func(*toyStore, int, int) float64 { return 0 }, nil))
	assert.Error(t, m.Scalar("nogetter", Mass, nil, nil))
	assert.Equal(t, 0, m.Len())
}

func TestKeys_RegistrationOrder(t *testing.T) {
	tbl, _ := newToyTable(t)
	assert.Equal(t, []string{"g1", "mq2", "MZ"}, tbl.Keys())
	assert.Equal(t, "toy", tbl.Model())
}

func TestResolve(t *testing.T) {
	tbl, _ := newToyTable(t)

	testCases := []struct {
		name    string
		key     string
		indices []int
		wantErr error
	}{
		{"scalar ok", "g1", nil, nil},
		{"matrix ok", "mq2", []int{3, 3}, nil},
		{"unknown key", "mqL2", []int{1, 1}, specerr.ErrUnknownParameter},
		{"scalar with indices", "g1", []int{1}, specerr.ErrBadAccessPattern},
		{"scalar with two indices", "g1", []int{1, 1}, specerr.ErrBadAccessPattern},
		{"matrix with one index", "mq2", []int{1}, specerr.ErrBadAccessPattern},
		{"matrix without indices", "mq2", nil, specerr.ErrBadAccessPattern},
		{"row too large", "mq2", []int{4, 1}, specerr.ErrIndexOutOfRange},
		{"column zero", "mq2", []int{1, 0}, specerr.ErrIndexOutOfRange},
		{"arity checked before range", "mq2", []int{7}, specerr.ErrBadAccessPattern},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := tbl.Resolve("get", tc.key, tc.indices...)
			if tc.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tc.key, p.Key)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestGetSet_OneBasedIndices(t *testing.T) {
	tbl, s := newToyTable(t)

	v, err := tbl.Get("get", "mq2", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 12.0, v)

	require.NoError(t, tbl.Set("set", "mq2", 7, 3, 1))
	assert.Equal(t, 7.0, s.mq2[2][0])

	require.NoError(t, tbl.Set("set", "g1", 0.25))
	assert.Equal(t, 0.25, s.g1)
}

func TestSet_FailureLeavesStoreUntouched(t *testing.T) {
	tbl, s := newToyTable(t)
	before := *s

	assert.True(t, errors.Is(tbl.Set("set", "mq2", 1, 4, 4), specerr.ErrIndexOutOfRange))
	assert.True(t, errors.Is(tbl.Set("set", "MZ", 1), specerr.ErrBadAccessPattern))
	assert.True(t, errors.Is(tbl.Set("set", "nope", 1), specerr.ErrUnknownParameter))
	assert.Equal(t, before, *s)

	p, ok := tbl.Param("MZ")
	require.True(t, ok)
	assert.True(t, p.ReadOnly)
}

func TestOnce_BuildsExactlyOnce(t *testing.T) {
	calls := 0
	var mu sync.Mutex
	get := Once("toy-once", func(m *Map[*toyStore]) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return fillToy(m)
	})

	var wg sync.WaitGroup
	maps := make([]*Map[*toyStore], 16)
	for i := range maps {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			maps[i] = get()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
	for _, m := range maps {
		assert.Same(t, maps[0], m)
	}
	assert.Contains(t, Built(), "toy-once")
}

func TestOnce_FillerFailurePanics(t *testing.T) {
	get := Once("toy-broken", fillToy, fillToy)
	assert.Panics(t, func() { get() })
	assert.Panics(t, func() { get() }, "broken map keeps failing")
}

func TestTag_String(t *testing.T) {
	assert.Equal(t, "dimensionless", Dimensionless.String())
	assert.Equal(t, "mass", Mass.String())
	assert.Equal(t, "mass2", MassSquared.String())
	assert.Equal(t, "3x3", Shape{N: 3}.String())
	assert.Equal(t, "scalar", Shape{}.String())
}
