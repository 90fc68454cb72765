package gonumExtensions

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Eye returns the (n by n) identity matrix
func Eye(n int) *mat.Dense {
	res := mat.NewDense(n, n, nil)
	for index := 0; index < n; index++ {
		res.Set(index, index, 1)
	}
	return res
}

// NANORINF checks if there are any NAN or INF in matrix
func NANORINF(matrix mat.Matrix) bool {
	m, n := matrix.Dims()
	for row := 0; row < m; row++ {
		for col := 0; col < n; col++ {
			if math.IsNaN(matrix.At(row, col)) || math.IsInf(matrix.At(row, col), 0) {
				return true
			}
		}
	}
	return false
}

// MaxAbs returns the largest absolute entry of matrix. An empty matrix has
// MaxAbs 0.
func MaxAbs(matrix mat.Matrix) float64 {
	var res float64
	m, n := matrix.Dims()
	for row := 0; row < m; row++ {
		for col := 0; col < n; col++ {
			res = math.Max(res, math.Abs(matrix.At(row, col)))
		}
	}
	return res
}

// Scale divides every entry of matrix by scale in place
//
// m = m / scale
func Scale(m *mat.Dense, scale float64) {
	if IsEmpty(m) {
		return
	}
	m.Apply(func(_, _ int, v float64) float64 { return v / scale }, m)
}

// ScaleVec divides every entry of v by scale in place.
func ScaleVec(v *mat.VecDense, scale float64) {
	if IsEmpty(v) {
		return
	}
	for index := 0; index < v.Len(); index++ {
		v.SetVec(index, v.AtVec(index)/scale)
	}
}

// ShiftVec subtracts shift from every entry of v in place.
func ShiftVec(v *mat.VecDense, shift float64) {
	for index := 0; index < v.Len(); index++ {
		v.SetVec(index, v.AtVec(index)-shift)
	}
}

// RoundVec rounds every entry of v to the nearest integer, halves away from zero.
func RoundVec(v *mat.VecDense) {
	for index := 0; index < v.Len(); index++ {
		v.SetVec(index, math.Round(v.AtVec(index)))
	}
}

// Diff returns the consecutive differences v[i+1] - v[i].
func Diff(v mat.Vector) []float64 {
	if v.Len() < 2 {
		return nil
	}
	res := make([]float64, v.Len()-1)
	for index := range res {
		res[index] = v.AtVec(index+1) - v.AtVec(index)
	}
	return res
}

// IsEmpty reports whether a matrix has no entries. gonum refuses to build
// zero sized Dense values, so nil and zero value receivers count as empty.
func IsEmpty(matrix mat.Matrix) bool {
	switch m := matrix.(type) {
	case nil:
		return true
	case *mat.Dense:
		if m == nil || m.IsEmpty() {
			return true
		}
	case *mat.VecDense:
		if m == nil || m.IsEmpty() {
			return true
		}
	}
	r, c := matrix.Dims()
	return r == 0 || c == 0
}

// Rows returns the number of rows of matrix, zero for an empty one.
func Rows(matrix mat.Matrix) int {
	if IsEmpty(matrix) {
		return 0
	}
	r, _ := matrix.Dims()
	return r
}

// SameShape reports whether a and b have identical dimensions.
func SameShape(a, b mat.Matrix) bool {
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	return ra == rb && ca == cb
}
