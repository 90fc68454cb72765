package koopman

import (
	"github.com/hammal/deepk/gonumExtensions"
	"gonum.org/v1/gonum/mat"
)

// LinearMap encodes or decodes by a matrix W
//
// y = W x
//
// applied to each row, i.e. Y = X W^T.
type LinearMap struct {
	W mat.Matrix
}

// Identity returns the LinearMap of the n dimensional identity.
func Identity(n int) LinearMap {
	return LinearMap{W: gonumExtensions.Eye(n)}
}

func (lm LinearMap) apply(X mat.Matrix) *mat.Dense {
	_, n := X.Dims()
	_, nW := lm.W.Dims()
	if n != nW {
		panic(ErrDimensionMismatch)
	}
	var res mat.Dense
	res.Mul(X, lm.W.T())
	return &res
}

func (lm LinearMap) Encode(X mat.Matrix) *mat.Dense {
	return lm.apply(X)
}

func (lm LinearMap) Decode(Y mat.Matrix) *mat.Dense {
	return lm.apply(Y)
}

// LinearModel combines an encoder, a decoder and an evolution operator into a
// Model.
type LinearModel struct {
	Encoder
	Decoder
	Evolver
}

// NewLinearModel returns the Model built from its parts.
func NewLinearModel(enc Encoder, dec Decoder, ev Evolver) *LinearModel {
	return &LinearModel{enc, dec, ev}
}
