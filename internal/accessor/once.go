package accessor

import (
	"fmt"
	"log/slog"
	"sync"
)

var (
	builtMu sync.Mutex
	built   []string
)

// Once returns a function that builds the named map on first call and hands
// out the same instance afterwards. A failing filler is a programming error
// in the backend and panics, on the first and on every later call.
func Once[S any](name string, fillers ...Filler[S]) func() *Map[S] {
	return sync.OnceValue(func() *Map[S] {
		m := NewMap[S](name)
		for i, fill := range fillers {
			if err := fill(m); err != nil {
				panic(fmt.Errorf("accessor map %q: filler %d failed: %w", name, i, err))
			}
		}
		builtMu.Lock()
		built = append(built, name)
		builtMu.Unlock()
		slog.Debug("Accessor map built.", "backend", name, "entries", m.Len())
		return m
	})
}

// Built lists the names of maps constructed so far in this process, in
// construction order.
func Built() []string {
	builtMu.Lock()
	defer builtMu.Unlock()
	return append([]string(nil), built...)
}
