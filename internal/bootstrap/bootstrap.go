package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/specialistvlad/spectrumgo/internal/ctxlog"
	"github.com/specialistvlad/spectrumgo/internal/specerr"
)

// Callback is a start-up hook run once the world group exists.
type Callback func(ctx context.Context, world *ProcessGroup) error

// Executed records a callback that ran successfully.
type Executed struct {
	Name string
	// Site is the file:line of the Register call.
	Site string
}

// CallbackError reports a failing start-up callback.
type CallbackError struct {
	Name string
	Site string
	Err  error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("startup callback %q registered at %s failed: %v", e.Name, e.Site, e.Err)
}

func (e *CallbackError) Unwrap() error { return e.Err }

// ErrRegistrationClosed is returned by Register once Init has started.
var ErrRegistrationClosed = errors.New("startup callback registration is closed")

type entry struct {
	name string
	site string
	fn   Callback
}

// Registry holds start-up callbacks and the initialization state of one
// process. Most programs use the package-level functions, which operate on a
// process-wide Registry.
type Registry struct {
	mu        sync.Mutex
	entries   []entry
	started   bool
	executed  []Executed
	world     *ProcessGroup
	transport Transport
	finalized bool
}

// NewRegistry returns an empty, uninitialized registry.
func NewRegistry() *Registry { return &Registry{} }

var std = NewRegistry()

// Register adds a callback to the process-wide registry.
func Register(name string, fn Callback) error { return std.register(name, fn, 2) }

// Init initializes the process-wide registry. See Registry.Init.
func Init(ctx context.Context, t Transport) (*ProcessGroup, error) { return std.Init(ctx, t) }

// Register adds a callback to run during Init, after those already
// registered.
func (r *Registry) Register(name string, fn Callback) error { return r.register(name, fn, 2) }

func (r *Registry) register(name string, fn Callback, skip int) error {
	site := "unknown"
	if _, file, line, ok := runtime.Caller(skip); ok {
		site = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	if fn == nil {
		return fmt.Errorf("startup callback %q registered at %s without a function", name, site)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return fmt.Errorf("%w: %q at %s", ErrRegistrationClosed, name, site)
	}
	r.entries = append(r.entries, entry{name: name, site: site, fn: fn})
	return nil
}

// Init joins the world group through t and runs the registered callbacks in
// order. A second call returns ErrAlreadyInitialized. If a callback fails or
// panics the group is aborted through t and the *CallbackError is returned.
func (r *Registry) Init(ctx context.Context, t Transport) (*ProcessGroup, error) {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return nil, fmt.Errorf("bootstrap: %w", specerr.ErrAlreadyInitialized)
	}
	r.started = true
	r.transport = t
	entries := append([]entry(nil), r.entries...)
	r.mu.Unlock()

	logger := ctxlog.FromContext(ctx)
	comm, err := t.Init(ctx)
	if err != nil {
		logger.Error("Transport initialization failed.", "error", err)
		return nil, fmt.Errorf("bootstrap: initialize transport: %w", err)
	}
	world := NewProcessGroup(comm)
	logger = logger.With("rank", world.Rank())
	logger.Info("Process group initialized.", "size", world.Size(), "context", world.ContextID())

	r.mu.Lock()
	r.world = world
	r.mu.Unlock()

	for _, e := range entries {
		logger.Debug("Running startup callback.", "name", e.name, "site", e.site)
		if err := runCallback(ctx, e, world); err != nil {
			cbErr := &CallbackError{Name: e.name, Site: e.site, Err: err}
			logger.Error("Startup callback failed; aborting process group.", "name", e.name, "site", e.site, "error", err)
			if abortErr := t.Abort(ctx, 1, cbErr.Error()); abortErr != nil {
				return nil, errors.Join(cbErr, fmt.Errorf("abort: %w", abortErr))
			}
			return nil, cbErr
		}
		r.mu.Lock()
		r.executed = append(r.executed, Executed{Name: e.name, Site: e.site})
		r.mu.Unlock()
	}

	logger.Debug("Startup callbacks complete.", "count", len(entries))
	return world, nil
}

func runCallback(ctx context.Context, e entry, world *ProcessGroup) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return e.fn(ctx, world)
}

// Finalize leaves the group. It is a no-op before a successful Init and on
// repeated calls.
func (r *Registry) Finalize(ctx context.Context) error {
	r.mu.Lock()
	if r.world == nil || r.finalized {
		r.mu.Unlock()
		return nil
	}
	r.finalized = true
	t := r.transport
	r.mu.Unlock()

	ctxlog.FromContext(ctx).Debug("Finalizing process group.")
	return t.Finalize(ctx)
}

// Initialized reports whether Init has been called.
func (r *Registry) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

// World returns the world group, or nil before a successful Init.
func (r *Registry) World() *ProcessGroup {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.world
}

// Size is the world size, or 0 before Init.
func (r *Registry) Size() int {
	if w := r.World(); w != nil {
		return w.Size()
	}
	return 0
}

// Rank is this process's world rank, or -1 before Init.
func (r *Registry) Rank() int {
	if w := r.World(); w != nil {
		return w.Rank()
	}
	return -1
}

// Executed lists callbacks that have run, in order.
func (r *Registry) Executed() []Executed {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Executed(nil), r.executed...)
}

// Finalize finalizes the process-wide registry.
func Finalize(ctx context.Context) error { return std.Finalize(ctx) }

// Size returns the process-wide world size.
func Size() int { return std.Size() }

// Rank returns the process-wide world rank.
func Rank() int { return std.Rank() }

// ExecutedCallbacks lists callbacks run by the process-wide registry.
func ExecutedCallbacks() []Executed { return std.Executed() }
