package physical

import (
	"errors"
	"fmt"
	"math"

	"github.com/specialistvlad/spectrumgo/internal/specerr"
)

// ErrNonFinite is returned by Compute when a backend produced NaN or an
// infinite value.
var ErrNonFinite = errors.New("non-finite observable")

type entry struct {
	indexed bool
	values  []float64
}

// derived is immutable once built; views share it freely.
type derived struct {
	snapshot  Snapshot
	converted bool
	order     []string
	entries   map[string]entry
}

// View exposes the most recently computed observables.
type View struct {
	d *derived
}

// New returns an empty view.
func New() *View { return &View{} }

// Compute derives a fresh observable map from snap and replaces the current
// one. On error the current map is kept.
func (v *View) Compute(snap Snapshot, convert bool) error {
	d, err := build(snap.Clone(), convert)
	if err != nil {
		return err
	}
	v.d = d
	return nil
}

// Reconvert rebuilds the map from the stored snapshot under another
// convention, without consulting the backend.
func (v *View) Reconvert(convert bool) error {
	if v.d == nil {
		return fmt.Errorf("%w: physical spectrum not computed", specerr.ErrUnknownParameter)
	}
	return v.Compute(v.d.snapshot, convert)
}

func build(snap Snapshot, convert bool) (*derived, error) {
	d := &derived{
		snapshot:  snap,
		converted: convert,
		entries:   make(map[string]entry, len(snap.Families)),
	}
	for _, f := range snap.Families {
		if _, dup := d.entries[f.Key]; dup {
			return nil, specerr.New("compute_spectrum", f.Key, nil, specerr.ErrDuplicateRegistration, "observable produced twice")
		}
		if len(f.Values) == 0 || (!f.Indexed && len(f.Values) != 1) {
			return nil, fmt.Errorf("compute_spectrum %q: malformed family with %d values", f.Key, len(f.Values))
		}
		values := make([]float64, len(f.Values))
		for i, raw := range f.Values {
			values[i] = present(raw, f.Stats, convert)
			if !finite(raw) || !finite(values[i]) {
				var idx []int
				if f.Indexed {
					idx = []int{i + 1}
				}
				return nil, specerr.New("compute_spectrum", f.Key, idx, ErrNonFinite, fmt.Sprintf("raw value %g", raw))
			}
		}
		d.entries[f.Key] = entry{indexed: f.Indexed, values: values}
		d.order = append(d.order, f.Key)
	}
	return d, nil
}

func present(raw float64, stats Statistics, convert bool) float64 {
	switch stats {
	case Fermion:
		if convert {
			return raw
		}
		return math.Abs(raw)
	default:
		m := math.Sqrt(math.Abs(raw))
		if convert && raw < 0 {
			return -m
		}
		return m
	}
}

// Computed reports whether Compute has succeeded at least once.
func (v *View) Computed() bool { return v.d != nil }

// Converted reports the convention of the current map.
func (v *View) Converted() bool { return v.d != nil && v.d.converted }

// Keys lists observables in production order.
func (v *View) Keys() []string {
	if v.d == nil {
		return nil
	}
	return append([]string(nil), v.d.order...)
}

// Multiplicity returns the number of family members of key; single-valued
// observables report 0.
func (v *View) Multiplicity(key string) (int, bool) {
	if v.d == nil {
		return 0, false
	}
	e, ok := v.d.entries[key]
	if !ok {
		return 0, false
	}
	if !e.indexed {
		return 0, true
	}
	return len(e.values), true
}

// Snapshot returns a copy of the snapshot the current map was derived from.
func (v *View) Snapshot() (Snapshot, bool) {
	if v.d == nil {
		return Snapshot{}, false
	}
	return v.d.snapshot.Clone(), true
}

// PoleMass returns the observable key, or member index (1-based) of an
// indexed family.
func (v *View) PoleMass(key string, index ...int) (float64, error) {
	const op = "get_pole_mass"
	if v.d == nil {
		return 0, specerr.New(op, key, index, specerr.ErrUnknownParameter, "physical spectrum not computed")
	}
	e, ok := v.d.entries[key]
	if !ok {
		return 0, specerr.New(op, key, index, specerr.ErrUnknownParameter, "")
	}
	if !e.indexed {
		if len(index) != 0 {
			return 0, specerr.New(op, key, index, specerr.ErrBadAccessPattern, "observable takes no family index")
		}
		return e.values[0], nil
	}
	if len(index) != 1 {
		return 0, specerr.New(op, key, index, specerr.ErrBadAccessPattern,
			fmt.Sprintf("family observable takes 1 index, got %d", len(index)))
	}
	if index[0] < 1 || index[0] > len(e.values) {
		return 0, specerr.New(op, key, index, specerr.ErrIndexOutOfRange, fmt.Sprintf("valid range is 1..%d", len(e.values)))
	}
	return e.values[index[0]-1], nil
}

// Clone returns a view sharing the current immutable map.
func (v *View) Clone() *View { return &View{d: v.d} }

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
