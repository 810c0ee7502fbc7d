package accessor

import (
	"fmt"
	"log/slog"

	"github.com/specialistvlad/spectrumgo/internal/specerr"
)

// Map is the per-backend-type table of parameter entries.
type Map[S any] struct {
	name    string
	entries map[string]*entry[S]
	order   []string
}

// NewMap creates an empty map for the named backend type.
func NewMap[S any](name string) *Map[S] {
	return &Map[S]{
		name:    name,
		entries: make(map[string]*entry[S]),
	}
}

// Name returns the backend type name.
func (m *Map[S]) Name() string { return m.name }

// Len returns the number of registered entries.
func (m *Map[S]) Len() int { return len(m.order) }

// Keys lists keys in registration order.
func (m *Map[S]) Keys() []string {
	return append([]string(nil), m.order...)
}

// Param returns the declaration of key.
func (m *Map[S]) Param(key string) (Param, bool) {
	e, ok := m.entries[key]
	if !ok {
		return Param{}, false
	}
	return e.param, true
}

// Scalar registers a scalar parameter. A nil set makes it read-only.
func (m *Map[S]) Scalar(key string, tag Tag, get func(S) float64, set func(S, float64)) error {
	if get == nil {
		return fmt.Errorf("accessor %s: scalar %q registered without getter", m.name, key)
	}
	var setFn func(S, int, int, float64)
	if set != nil {
		setFn = func(s S, _, _ int, v float64) { set(s, v) }
	}
	return m.register(key, Shape{}, tag, func(s S, _, _ int) float64 { return get(s) }, setFn)
}

// Matrix registers an n×n matrix parameter. The getter and setter receive
// zero-based indices that have already been range checked.
func (m *Map[S]) Matrix(key string, n int, tag Tag, get func(S, int, int) float64, set func(S, int, int, float64)) error {
	if n <= 0 {
		return fmt.Errorf("accessor %s: matrix %q must have positive size, got %d", m.name, key, n)
	}
	if get == nil {
		return fmt.Errorf("accessor %s: matrix %q registered without getter", m.name, key)
	}
	return m.register(key, Shape{N: n}, tag, get, set)
}

func (m *Map[S]) register(key string, shape Shape, tag Tag, get func(S, int, int) float64, set func(S, int, int, float64)) error {
	if _, exists := m.entries[key]; exists {
		return specerr.New("register", key, nil, specerr.ErrDuplicateRegistration, "backend "+m.name)
	}
	m.entries[key] = &entry[S]{
		param: Param{Key: key, Tag: tag, Shape: shape, ReadOnly: set == nil},
		get:   get,
		set:   set,
	}
	m.order = append(m.order, key)
	slog.Debug("Registered parameter.", "backend", m.name, "key", key, "shape", shape.String(), "tag", tag.String())
	return nil
}

// Resolve validates key and indices against the declaration.
func (m *Map[S]) Resolve(op, key string, indices ...int) (Param, error) {
	e, err := m.resolve(op, key, indices)
	if err != nil {
		return Param{}, err
	}
	return e.param, nil
}

func (m *Map[S]) resolve(op, key string, indices []int) (*entry[S], error) {
	e, ok := m.entries[key]
	if !ok {
		return nil, specerr.New(op, key, indices, specerr.ErrUnknownParameter, "backend "+m.name)
	}
	shape := e.param.Shape
	if len(indices) != shape.Arity() {
		detail := fmt.Sprintf("%s parameter takes %d indices, got %d", shape, shape.Arity(), len(indices))
		return nil, specerr.New(op, key, indices, specerr.ErrBadAccessPattern, detail)
	}
	for _, idx := range indices {
		if idx < 1 || idx > shape.N {
			detail := fmt.Sprintf("valid range is 1..%d", shape.N)
			return nil, specerr.New(op, key, indices, specerr.ErrIndexOutOfRange, detail)
		}
	}
	return e, nil
}

func (m *Map[S]) get(s S, op, key string, indices []int) (float64, error) {
	e, err := m.resolve(op, key, indices)
	if err != nil {
		return 0, err
	}
	i, j := zeroBased(indices)
	return e.get(s, i, j), nil
}

func (m *Map[S]) set(s S, op, key string, v float64, indices []int) error {
	e, err := m.resolve(op, key, indices)
	if err != nil {
		return err
	}
	if e.set == nil {
		return specerr.New(op, key, indices, specerr.ErrBadAccessPattern, "parameter is read-only")
	}
	i, j := zeroBased(indices)
	e.set(s, i, j, v)
	return nil
}

func zeroBased(indices []int) (int, int) {
	if len(indices) != 2 {
		return 0, 0
	}
	return indices[0] - 1, indices[1] - 1
}
