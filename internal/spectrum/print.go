package spectrum

import (
	"fmt"
	"io"
	"strings"
)

const rule = "----------------------------------------"

// Print renders running parameters followed by physical parameters. The
// layout is stable and used for golden comparisons.
func (s *Spectrum) Print(w io.Writer) error {
	var b strings.Builder
	rv := s.running

	fmt.Fprintf(&b, "Running parameters (%s) at Q = %.6e GeV\n", s.Model(), rv.Scale())
	for _, key := range rv.Keys() {
		p, _ := rv.Param(key)
		if p.Shape.IsScalar() {
			v, err := rv.Get(p.Tag, key)
			if err != nil {
				return err
			}
			fmt.Fprintf(&b, "  %s = %.6e\n", key, v)
			continue
		}
		for i := 1; i <= p.Shape.N; i++ {
			for j := 1; j <= p.Shape.N; j++ {
				v, err := rv.Get(p.Tag, key, i, j)
				if err != nil {
					return err
				}
				fmt.Fprintf(&b, "  %s(%d,%d) = %.6e\n", key, i, j, v)
			}
		}
	}

	b.WriteString(rule + "\n")
	b.WriteString("Physical parameters:\n")
	b.WriteString(rule + "\n")

	if !s.phys.Computed() {
		b.WriteString("  (not computed)\n")
	}
	for _, key := range s.phys.Keys() {
		n, _ := s.phys.Multiplicity(key)
		if n == 0 {
			v, err := s.phys.PoleMass(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(&b, "  %s = %.6e\n", key, v)
			continue
		}
		for k := 1; k <= n; k++ {
			v, err := s.phys.PoleMass(key, k)
			if err != nil {
				return err
			}
			fmt.Fprintf(&b, "  %s(%d) = %.6e\n", key, k, v)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// String returns the Print rendering.
func (s *Spectrum) String() string {
	var b strings.Builder
	if err := s.Print(&b); err != nil {
		return fmt.Sprintf("spectrum %s: %v", s.Model(), err)
	}
	return b.String()
}
