package data

import (
	"github.com/hammal/deepk/gonumExtensions"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Split is a state matrix together with its time indices.
//
// X has shape (number of samples, number of states) and T holds one time index
// per row of X. A Split with nil X and T carries no samples, which is how an
// absent validation or test set is expressed.
type Split struct {
	X *mat.Dense
	T *mat.VecDense
}

// NewSplit returns a Split without copying X and T.
func NewSplit(X *mat.Dense, T *mat.VecDense) Split {
	return Split{X: X, T: T}
}

// FromRows converts a slice of rows and a slice of time indices into a Split.
// Empty input yields an empty Split.
func FromRows(x [][]float64, t []float64) (Split, error) {
	var s Split
	if len(x) > 0 {
		n := len(x[0])
		if n == 0 {
			return Split{}, errors.Wrap(ErrRaggedRows, "row 0 is empty")
		}
		data := make([]float64, 0, len(x)*n)
		for row := range x {
			if len(x[row]) != n {
				return Split{}, errors.Wrapf(ErrRaggedRows, "row %d has %d entries, expected %d", row, len(x[row]), n)
			}
			data = append(data, x[row]...)
		}
		s.X = mat.NewDense(len(x), n, data)
	}
	if len(t) > 0 {
		s.T = mat.NewVecDense(len(t), append([]float64(nil), t...))
	}
	return s, nil
}

// Rows returns the split as a slice of rows and a slice of time indices.
func (s Split) Rows() ([][]float64, []float64) {
	var (
		x [][]float64
		t []float64
	)
	if !s.Empty() {
		r, c := s.X.Dims()
		x = make([][]float64, r)
		for row := range x {
			x[row] = make([]float64, c)
			mat.Row(x[row], row, s.X)
		}
	}
	if !gonumExtensions.IsEmpty(s.T) {
		t = make([]float64, s.T.Len())
		for index := range t {
			t[index] = s.T.AtVec(index)
		}
	}
	return x, t
}

// Len returns the number of samples, i.e. rows of X.
func (s Split) Len() int {
	return gonumExtensions.Rows(s.X)
}

// TimeLen returns the number of time indices.
func (s Split) TimeLen() int {
	if gonumExtensions.IsEmpty(s.T) {
		return 0
	}
	return s.T.Len()
}

// States returns the number of columns of X, zero for an empty split.
func (s Split) States() int {
	if s.Empty() {
		return 0
	}
	_, c := s.X.Dims()
	return c
}

// Empty reports whether the split has no samples.
func (s Split) Empty() bool {
	return gonumExtensions.IsEmpty(s.X)
}

// Times returns a copy of the time indices.
func (s Split) Times() []float64 {
	_, t := s.Rows()
	return t
}

// clone returns a deep copy so the handler never mutates caller data.
func (s Split) clone() Split {
	var res Split
	if !gonumExtensions.IsEmpty(s.X) {
		res.X = mat.DenseCopyOf(s.X)
	}
	if !gonumExtensions.IsEmpty(s.T) {
		res.T = mat.VecDenseCopyOf(s.T)
	}
	return res
}
