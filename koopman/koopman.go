// Package koopman describes the parts of a DeepKoopman model that the
// evaluation needs: an encoder into a latent space, a decoder back into state
// space and a linear operator evolving latent states in time.
//
// The neural network implementations live outside of this module. The linear
// types in this package implement the interfaces with plain matrices, which is
// enough for linear systems and for testing.
package koopman

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNotSquare         = errors.New("operator is not square")
	ErrNonIntegerStep    = errors.New("discrete operator evolved by a non-integer time")
	ErrDimensionMismatch = errors.New("dimensions don't match")
)

// Encoder maps states, one per row, into encoded states.
type Encoder interface {
	Encode(X mat.Matrix) *mat.Dense
}

// Decoder maps encoded states, one per row, back into states.
type Decoder interface {
	Decode(Y mat.Matrix) *mat.Dense
}

// Evolver moves an encoded state y0 forward by t time units.
type Evolver interface {
	Evolve(y0 mat.Vector, t float64) (*mat.VecDense, error)
}

// Model is a complete DeepKoopman model.
type Model interface {
	Encoder
	Decoder
	Evolver
}
