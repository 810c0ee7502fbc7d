package physical

// Statistics selects how a raw value is turned into a reported mass.
type Statistics int

const (
	// Boson values are squared masses. A negative value is reported as a
	// negative mass under the signed convention.
	Boson Statistics = iota
	// Fermion values are masses whose sign carries a phase. The sign is kept
	// under the signed convention and dropped otherwise.
	Fermion
)

func (s Statistics) String() string {
	if s == Fermion {
		return "fermion"
	}
	return "boson"
}

// Family is one named observable, either a single value or a multiplet
// addressed with a 1-based family index.
type Family struct {
	Key     string
	Stats   Statistics
	Indexed bool
	Values  []float64
}

// Snapshot is the raw output of a backend's spectrum kernel.
type Snapshot struct {
	Families []Family
}

// Add appends a single-valued observable.
func (s *Snapshot) Add(key string, stats Statistics, value float64) {
	s.Families = append(s.Families, Family{Key: key, Stats: stats, Values: []float64{value}})
}

// AddFamily appends an indexed multiplet.
func (s *Snapshot) AddFamily(key string, stats Statistics, values ...float64) {
	s.Families = append(s.Families, Family{Key: key, Stats: stats, Indexed: true, Values: append([]float64(nil), values...)})
}

// Clone deep-copies the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Families: make([]Family, len(s.Families))}
	for i, f := range s.Families {
		f.Values = append([]float64(nil), f.Values...)
		out.Families[i] = f
	}
	return out
}
