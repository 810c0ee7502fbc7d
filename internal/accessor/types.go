package accessor

import "fmt"

// Tag classifies a parameter by mass dimension.
type Tag int

const (
	Dimensionless Tag = iota
	Mass
	MassSquared
)

func (t Tag) String() string {
	switch t {
	case Dimensionless:
		return "dimensionless"
	case Mass:
		return "mass"
	case MassSquared:
		return "mass2"
	default:
		return fmt.Sprintf("tag(%d)", int(t))
	}
}

// Shape is the declared layout of a parameter. N == 0 is a scalar, N > 0 an
// N×N matrix addressed with indices 1..N.
type Shape struct {
	N int
}

func (s Shape) IsScalar() bool { return s.N == 0 }

// Arity is the number of indices an access must supply.
func (s Shape) Arity() int {
	if s.IsScalar() {
		return 0
	}
	return 2
}

func (s Shape) String() string {
	if s.IsScalar() {
		return "scalar"
	}
	return fmt.Sprintf("%dx%d", s.N, s.N)
}

// Param is the public description of a registered entry.
type Param struct {
	Key      string
	Tag      Tag
	Shape    Shape
	ReadOnly bool
}

type entry[S any] struct {
	param Param
	get   func(s S, i, j int) float64
	set   func(s S, i, j int, v float64)
}

// Filler populates a Map. Fillers must be free of side effects other than
// registering entries; they run exactly once per backend type.
type Filler[S any] func(m *Map[S]) error

// Table is a Map bound to one store instance.
type Table interface {
	// Model names the backend type the table was built for.
	Model() string
	// Keys lists parameter keys in registration order.
	Keys() []string
	// Param looks up the declaration of key without validating an access.
	Param(key string) (Param, bool)
	// Resolve validates an access pattern without touching the store.
	Resolve(op, key string, indices ...int) (Param, error)
	// Get resolves and reads.
	Get(op, key string, indices ...int) (float64, error)
	// Set resolves and writes. Read-only entries fail with ErrBadAccessPattern.
	Set(op, key string, value float64, indices ...int) error
}
