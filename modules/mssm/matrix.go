package mssm

import "gonum.org/v1/gonum/mat"

// mat3 is a real 3x3 matrix in generation space. It is stored by value so
// copying a parameter set copies its matrices; arithmetic goes through
// mat.Dense.
type mat3 [3][3]float64

func diag3(a, b, c float64) mat3 {
	return mat3{{a, 0, 0}, {0, b, 0}, {0, 0, c}}
}

func (a mat3) dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		a[0][0], a[0][1], a[0][2],
		a[1][0], a[1][1], a[1][2],
		a[2][0], a[2][1], a[2][2],
	})
}

func fromDense(m mat.Matrix) mat3 {
	var out mat3
	for i := range 3 {
		for j := range 3 {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

func (a mat3) T() mat3 { return fromDense(a.dense().T()) }

func (a mat3) Mul(b mat3) mat3 {
	var out mat.Dense
	out.Mul(a.dense(), b.dense())
	return fromDense(&out)
}

func (a mat3) Add(bs ...mat3) mat3 {
	sum := a.dense()
	for _, b := range bs {
		sum.Add(sum, b.dense())
	}
	return fromDense(sum)
}

func (a mat3) Scale(k float64) mat3 {
	d := a.dense()
	d.Scale(k, d)
	return fromDense(d)
}

// AddDiag adds k times the identity.
func (a mat3) AddDiag(k float64) mat3 {
	d := a.dense()
	d.Add(d, mat.NewDiagDense(3, []float64{k, k, k}))
	return fromDense(d)
}

func (a mat3) Trace() float64 { return mat.Trace(a.dense()) }

// sandwich returns l * m * r.
func sandwich(l, m, r mat3) mat3 {
	var out mat.Dense
	out.Product(l.dense(), m.dense(), r.dense())
	return fromDense(&out)
}
