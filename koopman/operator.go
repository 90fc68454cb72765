package koopman

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// LinearOperator is a continuous time Koopman operator with generator G
//
// y'(t) = G y(t)
//
// which is solved by
//
// y(t) = e^(Gt) y(0)
//
// for any real t.
type LinearOperator struct {
	G mat.Matrix
}

// NewLinearOperator returns a LinearOperator with generator G.
func NewLinearOperator(G mat.Matrix) (*LinearOperator, error) {
	m, n := G.Dims()
	if m != n {
		return nil, errors.Wrapf(ErrNotSquare, "generator is %dx%d", m, n)
	}
	return &LinearOperator{G: mat.DenseCopyOf(G)}, nil
}

// computeStateTransition computes e^(Gt).
func computeStateTransition(t float64, G mat.Matrix) *mat.Dense {
	var scaled, res mat.Dense
	scaled.Scale(t, G)
	res.Exp(&scaled)
	return &res
}

// Evolve returns e^(Gt) y0.
func (op LinearOperator) Evolve(y0 mat.Vector, t float64) (*mat.VecDense, error) {
	if err := checkState(op.G, y0); err != nil {
		return nil, err
	}
	var res mat.VecDense
	res.MulVec(computeStateTransition(t, op.G), y0)
	return &res, nil
}

// Step returns the one step Koopman matrix e^G.
func (op LinearOperator) Step() *mat.Dense {
	return computeStateTransition(1, op.G)
}

// Order returns the dimension of the encoded space.
func (op LinearOperator) Order() int {
	m, _ := op.G.Dims()
	return m
}

// DiscreteOperator is a discrete time Koopman operator
//
// y(k+1) = K y(k)
//
// which can only be evolved by whole steps.
type DiscreteOperator struct {
	K mat.Matrix
}

// NewDiscreteOperator returns a DiscreteOperator with one step matrix K.
func NewDiscreteOperator(K mat.Matrix) (*DiscreteOperator, error) {
	m, n := K.Dims()
	if m != n {
		return nil, errors.Wrapf(ErrNotSquare, "koopman matrix is %dx%d", m, n)
	}
	return &DiscreteOperator{K: mat.DenseCopyOf(K)}, nil
}

// Evolve returns K^t y0. t must be a non negative integer.
func (op DiscreteOperator) Evolve(y0 mat.Vector, t float64) (*mat.VecDense, error) {
	if err := checkState(op.K, y0); err != nil {
		return nil, err
	}
	if t < 0 || t != math.Trunc(t) {
		return nil, errors.Wrapf(ErrNonIntegerStep, "t = %v", t)
	}
	var (
		power mat.Dense
		res   mat.VecDense
	)
	power.Pow(op.K, int(t))
	res.MulVec(&power, y0)
	return &res, nil
}

// Order returns the dimension of the encoded space.
func (op DiscreteOperator) Order() int {
	m, _ := op.K.Dims()
	return m
}

func checkState(A mat.Matrix, state mat.Vector) error {
	m, _ := A.Dims()
	if state.Len() != m {
		return errors.Wrapf(ErrDimensionMismatch, "state has %d entries, operator order is %d", state.Len(), m)
	}
	return nil
}
