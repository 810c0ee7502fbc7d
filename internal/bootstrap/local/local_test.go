package local

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/specialistvlad/spectrumgo/internal/bootstrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SingleRank(t *testing.T) {
	tr := New()

	c, err := tr.Init(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, c.Size())
	assert.Equal(t, 0, c.Rank())
	_, err = tr.Init(context.Background())
	assert.Error(t, err)
}

func TestDuplicate_AllRanksShareNewContext(t *testing.T) {
	// --- Arrange ---
	const n = 4
	ranks := NewWorld(n)
	ids := make([]string, n)
	var wg sync.WaitGroup

	// --- Act ---
	for i, tr := range ranks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reg := bootstrap.NewRegistry()
			world, err := reg.Init(context.Background(), tr)
			if !assert.NoError(t, err) {
				return
			}
			dup, err := world.Duplicate(context.Background())
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, i, dup.Rank())
			assert.Equal(t, n, dup.Size())
			ids[i] = dup.ContextID()
		}()
	}
	wg.Wait()

	// --- Assert ---
	for i := 1; i < n; i++ {
		assert.Equal(t, ids[0], ids[i])
	}
	assert.NotEqual(t, "world", ids[0])
}

func TestDuplicate_SuccessiveCallsGetDistinctContexts(t *testing.T) {
	tr := New()
	c, err := tr.Init(context.Background())
	require.NoError(t, err)

	a, err := c.Duplicate(context.Background())
	require.NoError(t, err)
	b, err := c.Duplicate(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, a.ContextID(), b.ContextID())
}

func TestDuplicate_MissingRankBlocksUntilContextEnds(t *testing.T) {
	ranks := NewWorld(2)
	c, err := ranks[0].Init(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Duplicate(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAbort_IsVisibleToAllRanks(t *testing.T) {
	ranks := NewWorld(2)

	require.NoError(t, ranks[1].Abort(context.Background(), 3, "boom"))
	require.NoError(t, ranks[0].Abort(context.Background(), 4, "later"))

	code, reason, ok := ranks[0].Aborted()
	assert.True(t, ok)
	assert.Equal(t, 3, code)
	assert.Equal(t, "boom", reason)
}
