// Package dynamics holds dynamical systems whose Koopman representation is
// known or easy to learn, and samples trajectories from them. They are used to
// produce datasets for DeepKoopman.
package dynamics

import (
	"math"

	"github.com/hammal/deepk/ode"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// System is a continuous time system x'(t) = f(t, x(t)).
type System interface {
	ode.DifferentiableSystem
	// Order returns the dimension of the state space
	Order() int
}

// DiscreteSpectrum is the system
//
// x1'(t) = Mu x1(t)
//
// x2'(t) = Lambda (x2(t) - x1(t)^2)
//
// which has the finite dimensional Koopman invariant subspace (x1, x2, x1^2)
// with eigenvalues Mu, Lambda and 2 Mu.
type DiscreteSpectrum struct {
	Mu, Lambda float64
}

func (ds DiscreteSpectrum) Derivative(t float64, state mat.Vector) mat.Vector {
	x1, x2 := state.AtVec(0), state.AtVec(1)
	return mat.NewVecDense(2, []float64{
		ds.Mu * x1,
		ds.Lambda * (x2 - x1*x1),
	})
}

func (ds DiscreteSpectrum) Order() int {
	return 2
}

// Observables returns the states lifted into the Koopman invariant subspace
// (x1, x2, x1^2), one per row.
func (ds DiscreteSpectrum) Observables(X mat.Matrix) *mat.Dense {
	m, _ := X.Dims()
	res := mat.NewDense(m, 3, nil)
	for row := 0; row < m; row++ {
		x1 := X.At(row, 0)
		res.SetRow(row, []float64{x1, X.At(row, 1), x1 * x1})
	}
	return res
}

// Generator returns the generator of the linear dynamics on the observables
// (x1, x2, x1^2).
func (ds DiscreteSpectrum) Generator() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		ds.Mu, 0, 0,
		0, ds.Lambda, -ds.Lambda,
		0, 0, 2 * ds.Mu,
	})
}

// Pendulum is the nonlinear pendulum
//
// theta''(t) = -sin(theta(t))
//
// with state (theta, theta').
type Pendulum struct{}

func (Pendulum) Derivative(t float64, state mat.Vector) mat.Vector {
	return mat.NewVecDense(2, []float64{
		state.AtVec(1),
		-math.Sin(state.AtVec(0)),
	})
}

func (Pendulum) Order() int {
	return 2
}

// Linear is the linear system x'(t) = A x(t).
type Linear struct {
	A mat.Matrix
}

// NewLinear returns the linear system with state transition matrix A.
func NewLinear(A mat.Matrix) (*Linear, error) {
	m, n := A.Dims()
	if m != n {
		return nil, errors.Errorf("state transition matrix is %dx%d", m, n)
	}
	return &Linear{A}, nil
}

func (l Linear) Derivative(t float64, state mat.Vector) mat.Vector {
	m, _ := l.A.Dims()
	if state.Len() != m {
		panic(errors.New("State vector doesn't match state transition matrix"))
	}
	var res mat.VecDense
	res.MulVec(l.A, state)
	return &res
}

func (l Linear) Order() int {
	m, _ := l.A.Dims()
	return m
}

// Lookup returns a system by name with its default parameters.
func Lookup(name string) (System, error) {
	switch name {
	case "discrete-spectrum":
		return DiscreteSpectrum{Mu: -0.05, Lambda: -1}, nil
	case "pendulum":
		return Pendulum{}, nil
	case "linear":
		// damped rotation
		return &Linear{A: mat.NewDense(2, 2, []float64{-0.1, 1, -1, -0.1})}, nil
	default:
		return nil, errors.Errorf("unknown system %q", name)
	}
}
