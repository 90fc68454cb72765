// Package errorfuncs reports how well a DeepKoopman model performs in a more
// human readable way than its loss. All errors are returned in percent.
package errorfuncs

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrShapeMismatch is returned when the reference and the estimate differ in
// shape.
var ErrShapeMismatch = errors.New("matrices differ in shape")

// ANAE computes the Average Normalized Absolute Error between a reference ref
// and an estimate new
//
// ANAE = 100 Avg(|ref - new| / |ref|)
//
// Each absolute deviation is normalized by the corresponding absolute
// reference before averaging, so an ANAE of 10 means a new value is expected
// to be off by about 10% of the actual one. Entries where the reference is 0
// or the ratio is infinite are ignored. Small references are heavily
// penalized.
//
// For
//
// ref = [[-0.1, 0.2, 0], [100, 200, 300]]
// new = [[-0.11, 0.15, 0.01], [105, 210, 285]]
//
// ANAE = Avg(0.01/0.1, 0.05/0.2, 5/100, 10/200, 15/300) = 10%.
//
// If every entry is ignored the result is NaN.
func ANAE(ref, new mat.Matrix) (float64, error) {
	if err := checkShape(ref, new); err != nil {
		return 0, err
	}
	var (
		sum   float64
		count int
	)
	m, n := ref.Dims()
	for row := 0; row < m; row++ {
		for col := 0; col < n; col++ {
			r := ref.At(row, col)
			if r == 0 {
				continue
			}
			ratio := math.Abs(r-new.At(row, col)) / math.Abs(r)
			if math.IsInf(ratio, 0) {
				continue
			}
			sum += ratio
			count++
		}
	}
	if count == 0 {
		return math.NaN(), nil
	}
	return 100 * sum / float64(count), nil
}

func checkShape(ref, new mat.Matrix) error {
	rr, rc := ref.Dims()
	nr, nc := new.Dims()
	if rr != nr || rc != nc {
		return errors.Wrapf(ErrShapeMismatch, "ref is %dx%d, new is %dx%d", rr, rc, nr, nc)
	}
	return nil
}
