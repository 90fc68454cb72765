package errorfuncs

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// NAAE computes the Normalized Average Absolute Error
//
// NAAE = 100 Avg(|ref - new|) / Avg(|ref|)
//
// Averaging before normalizing keeps a few small references from dominating
// the result, at the cost of losing the per entry detail. For the example in
// ANAE, NAAE = 5%.
//
// NAAE is experimental, prefer ANAE.
func NAAE(ref, new mat.Matrix) (float64, error) {
	if err := checkShape(ref, new); err != nil {
		return 0, err
	}
	var dev, abs float64
	m, n := ref.Dims()
	for row := 0; row < m; row++ {
		for col := 0; col < n; col++ {
			dev += math.Abs(ref.At(row, col) - new.At(row, col))
			abs += math.Abs(ref.At(row, col))
		}
	}
	// the common 1/(m n) of both averages cancels
	return 100 * dev / abs, nil
}
