// Package local provides in-process transports: a single-process world and
// an n-rank world whose ranks run as goroutines, for exercising collectives
// without a network.
package local

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/specialistvlad/spectrumgo/internal/bootstrap"
	"github.com/specialistvlad/spectrumgo/internal/ctxlog"
)

// world is the state shared by all ranks.
type world struct {
	size int

	mu      sync.Mutex
	rounds  map[string]*round
	aborted bool
	code    int
	reason  string
}

// round is one pending collective call.
type round struct {
	arrived int
	done    chan struct{}
	id      string
}

// Transport is one rank's view of a local world.
type Transport struct {
	w    *world
	rank int

	mu       sync.Mutex
	joined   bool
	finished bool
}

var _ bootstrap.Transport = (*Transport)(nil)

// New returns a single-process world.
func New() *Transport {
	return NewWorld(1)[0]
}

// NewWorld returns n transports forming one world, indexed by rank.
func NewWorld(n int) []*Transport {
	if n < 1 {
		panic(fmt.Sprintf("local world size must be positive, got %d", n))
	}
	w := &world{size: n, rounds: make(map[string]*round)}
	out := make([]*Transport, n)
	for i := range out {
		out[i] = &Transport{w: w, rank: i}
	}
	return out
}

// Init joins the world. Joining twice is an error.
func (t *Transport) Init(ctx context.Context) (bootstrap.Communicator, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.joined {
		return nil, errors.New("local transport: rank already joined")
	}
	t.joined = true
	ctxlog.FromContext(ctx).Debug("Local transport joined.", "rank", t.rank, "size", t.w.size)
	return &comm{w: t.w, rank: t.rank, id: "world"}, nil
}

// Abort records the abort for every rank of the world.
func (t *Transport) Abort(ctx context.Context, code int, reason string) error {
	t.w.mu.Lock()
	defer t.w.mu.Unlock()
	if !t.w.aborted {
		t.w.aborted, t.w.code, t.w.reason = true, code, reason
	}
	ctxlog.FromContext(ctx).Error("Local world aborted.", "rank", t.rank, "code", code, "reason", reason)
	return nil
}

// Finalize marks this rank finished.
func (t *Transport) Finalize(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.finished = true
	return nil
}

// Aborted reports whether any rank aborted the world, with the first code
// and reason.
func (t *Transport) Aborted() (code int, reason string, ok bool) {
	t.w.mu.Lock()
	defer t.w.mu.Unlock()
	return t.w.code, t.w.reason, t.w.aborted
}

// Finalized reports whether Finalize was called on this rank.
func (t *Transport) Finalized() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finished
}

type comm struct {
	w    *world
	rank int
	id   string
	// seq numbers this rank's collective calls on the context, so the nth
	// call of every rank meets in the same round.
	seq int
}

func (c *comm) Size() int         { return c.w.size }
func (c *comm) Rank() int         { return c.rank }
func (c *comm) ContextID() string { return c.id }

// Duplicate blocks until every rank has made the matching call, or ctx ends.
func (c *comm) Duplicate(ctx context.Context) (bootstrap.Communicator, error) {
	key := fmt.Sprintf("%s/%d", c.id, c.seq)
	c.seq++

	w := c.w
	w.mu.Lock()
	r, ok := w.rounds[key]
	if !ok {
		r = &round{done: make(chan struct{})}
		w.rounds[key] = r
	}
	r.arrived++
	if r.arrived == w.size {
		r.id = uuid.NewString()
		delete(w.rounds, key)
		close(r.done)
	}
	w.mu.Unlock()

	select {
	case <-r.done:
		return &comm{w: w, rank: c.rank, id: r.id}, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for %d ranks on %s: %w", w.size, key, ctx.Err())
	}
}
