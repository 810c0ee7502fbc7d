package running

import (
	"fmt"
	"math"

	"github.com/specialistvlad/spectrumgo/internal/specerr"
)

// Limits describe the scale range a backend has been validated for. A zero
// bound is unbounded.
type Limits struct {
	HardLower float64
	SoftLower float64
	SoftUpper float64
	HardUpper float64
}

// Check returns an error when q lies outside the hard bounds and reports
// whether it lies outside the soft bounds.
func (l Limits) Check(q float64) (outsideSoft bool, err error) {
	if !(q > 0) || math.IsInf(q, 0) {
		return false, fmt.Errorf("%w: scale must be positive and finite, got %g", specerr.ErrScaleOutOfValidatedRange, q)
	}
	if l.HardLower > 0 && q < l.HardLower {
		return false, fmt.Errorf("%w: %g GeV is below hard lower limit %g GeV", specerr.ErrScaleOutOfValidatedRange, q, l.HardLower)
	}
	if l.HardUpper > 0 && q > l.HardUpper {
		return false, fmt.Errorf("%w: %g GeV is above hard upper limit %g GeV", specerr.ErrScaleOutOfValidatedRange, q, l.HardUpper)
	}
	if l.SoftLower > 0 && q < l.SoftLower {
		return true, nil
	}
	if l.SoftUpper > 0 && q > l.SoftUpper {
		return true, nil
	}
	return false, nil
}
