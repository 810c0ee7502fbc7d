package mssm

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// symEigen returns the eigenvalues of the symmetric matrix a, sorted by
// absolute value. a is not modified.
func symEigen(a [][]float64) ([]float64, error) {
	n := len(a)
	data := make([]float64, 0, n*n)
	for i, row := range a {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(row), n)
		}
		data = append(data, row...)
	}

	var es mat.EigenSym
	if !es.Factorize(mat.NewSymDense(n, data), false) {
		return nil, errors.New("symmetric eigendecomposition did not converge")
	}
	out := es.Values(nil)
	sort.SliceStable(out, func(i, j int) bool { return math.Abs(out[i]) < math.Abs(out[j]) })
	return out, nil
}

// sym2 returns the eigenvalues of [[a, b], [b, d]] in ascending order.
func sym2(a, b, d float64) (lo, hi float64, err error) {
	var es mat.EigenSym
	if !es.Factorize(mat.NewSymDense(2, []float64{a, b, b, d}), false) {
		return 0, 0, errors.New("2x2 eigendecomposition did not converge")
	}
	v := es.Values(nil)
	return v[0], v[1], nil
}

// singular2 returns the singular values of the 2x2 matrix a, lightest first.
// The lighter one carries the sign of det(a).
func singular2(a *mat.Dense) ([]float64, error) {
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDNone) {
		return nil, errors.New("singular value decomposition did not converge")
	}
	v := svd.Values(nil)
	return []float64{math.Copysign(v[1], mat.Det(a)), v[0]}, nil
}
