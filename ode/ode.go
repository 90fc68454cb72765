// Package ode is a ordinary differential equation library that implements the
// Runge-Kutta methods https://en.wikipedia.org/wiki/Runge–Kutta_methods.
// It is used to produce trajectories of known dynamical systems.
package ode

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrNoConvergence is returned when the adaptive integration cannot reach the
// requested tolerance.
var ErrNoConvergence = errors.New("Maximum number of iterations reached adaptive Runge-Kutta doesn't converge")

// DifferentiableSystem is a system
//
// x'(t) = f(t, x(t))
//
// where Derivative returns f(t, x).
type DifferentiableSystem interface {
	Derivative(t float64, state mat.Vector) mat.Vector
}

// RungeKutta holds the butcherTableau which describes the Runge Kutta method.
type RungeKutta struct {
	Description butcherTableau
}

// Compute makes a single Runge-Kutta step from t = from to t = to starting in
// value = x(from). It returns x(to) and, if the Butcher Tableau allows for it,
// an estimate of the local error. Otherwise the error vector is zero.
func (rk RungeKutta) Compute(from, to float64, value mat.Vector, system DifferentiableSystem) (*mat.VecDense, *mat.VecDense) {
	var tempV mat.VecDense

	// State order
	M := value.Len()
	// The precomputed derivative points
	K := make([]mat.Vector, rk.Description.stages)
	// Step length
	h := to - from
	for index := range K {
		tempV.CloneFromVec(value)
		// Combine previously computed derivate points according to Butcher Tableau.
		for index2, a := range rk.Description.rungeKuttaMatrix[index] {
			tempV.AddScaledVec(&tempV, h*a, K[index2])
		}
		K[index] = system.Derivative(from+h*rk.Description.nodes[index], &tempV)
	}

	res := mat.VecDenseCopyOf(value)
	err := mat.NewVecDense(M, nil)
	// Sum up the different contributions with relevant weights.
	for index, k := range K {
		res.AddScaledVec(res, h*rk.Description.weights[0][index], k)
		// If the Butcher Tableau allows for adaptive error computation
		if len(rk.Description.weights) == 2 {
			err.AddScaledVec(err, h*(rk.Description.weights[1][index]-rk.Description.weights[0][index]), k)
		}
	}
	return res, err
}

// AdaptiveCompute implements an adaptive version which for a
// given error tolerance err. Makes recursive steps such that the local error
// never exceeds the error specification. The result x(to) is returned.
func (rk RungeKutta) AdaptiveCompute(from, to, err float64, value mat.Vector, system DifferentiableSystem) (*mat.VecDense, error) {
	var (
		state, next *mat.VecDense
		errorVector *mat.VecDense
		tnow, tnext float64
		count       int
	)
	// Set max number of iterations
	const maxNumberOfIterations int = 10000

	tnow = from
	state = mat.VecDenseCopyOf(value)

	// Repeat until time to is reached
	for tnow < to {
		tnext = to
		// Repeat until target error is reached
		for {
			next, errorVector = rk.Compute(tnow, tnext, state, system)
			if mat.Norm(errorVector, 1) < err {
				break
			}
			// Half the next integration interval and try again
			tnext = (tnext-tnow)/2. + tnow

			count++
			if count >= maxNumberOfIterations {
				return nil, errors.Wrapf(ErrNoConvergence, "at t = %v", tnow)
			}
		}
		state = next
		tnow = tnext
	}
	return state, nil
}

// Solve integrates system with a fixed step no larger than maxStep and returns
// the states at every time in times, one per row. times must be ascending and
// the first row is initial.
func (rk RungeKutta) Solve(system DifferentiableSystem, initial mat.Vector, times []float64, maxStep float64) (*mat.Dense, error) {
	if len(times) == 0 {
		return nil, errors.New("no times to solve for")
	}
	if maxStep <= 0 {
		return nil, errors.Errorf("step length must be positive, got %v", maxStep)
	}
	res := mat.NewDense(len(times), initial.Len(), nil)
	state := mat.VecDenseCopyOf(initial)
	res.SetRow(0, state.RawVector().Data)
	for index := 1; index < len(times); index++ {
		from, to := times[index-1], times[index]
		if to < from {
			return nil, errors.Errorf("times must be ascending, %v follows %v", to, from)
		}
		steps := int(math.Ceil((to - from) / maxStep))
		for step := 0; step < steps; step++ {
			t0 := from + (to-from)*float64(step)/float64(steps)
			t1 := from + (to-from)*float64(step+1)/float64(steps)
			state, _ = rk.Compute(t0, t1, state, system)
		}
		res.SetRow(index, state.RawVector().Data)
	}
	return res, nil
}

// SolveAdaptive is Solve with AdaptiveCompute between consecutive times, each
// interval kept below the local error tolerance tol. It requires a Butcher
// Tableau with an error estimate, such as NewFehlberg45.
func (rk RungeKutta) SolveAdaptive(system DifferentiableSystem, initial mat.Vector, times []float64, tol float64) (*mat.Dense, error) {
	if len(times) == 0 {
		return nil, errors.New("no times to solve for")
	}
	if len(rk.Description.weights) != 2 {
		return nil, errors.New("Butcher Tableau has no error estimate")
	}
	res := mat.NewDense(len(times), initial.Len(), nil)
	state := mat.VecDenseCopyOf(initial)
	res.SetRow(0, state.RawVector().Data)
	for index := 1; index < len(times); index++ {
		from, to := times[index-1], times[index]
		if to < from {
			return nil, errors.Errorf("times must be ascending, %v follows %v", to, from)
		}
		next, err := rk.AdaptiveCompute(from, to, tol, state, system)
		if err != nil {
			return nil, err
		}
		state = next
		res.SetRow(index, state.RawVector().Data)
	}
	return res, nil
}

// NewRK4 function returns a forth order Runge-Kutta object
func NewRK4() *RungeKutta {
	var temp butcherTableau
	temp.stages = 4
	temp.nodes = []float64{0, 1. / 2., 1. / 2., 1}
	temp.weights = [][]float64{{1. / 6., 1. / 3., 1. / 3., 1. / 6.}}
	temp.rungeKuttaMatrix = [][]float64{
		nil,
		{1. / 2.},
		{0, 1. / 2.},
		{0, 0, 1.},
	}
	rk := RungeKutta{temp}
	return &rk
}

// NewEulerMethod returns a pointer to a Runge-Kutta that does the Euler method.
func NewEulerMethod() *RungeKutta {
	var temp butcherTableau
	temp.stages = 1
	temp.nodes = []float64{0}
	temp.weights = [][]float64{{1}}
	temp.rungeKuttaMatrix = [][]float64{nil}
	rk := RungeKutta{temp}
	return &rk
}

// butcherTableau which describes the approximate solution, see https://en.wikipedia.org/wiki/Runge–Kutta_methods.
type butcherTableau struct {
	stages           int
	weights          [][]float64
	nodes            []float64
	rungeKuttaMatrix [][]float64
}

// NewFehlberg45 implements https://en.wikipedia.org/wiki/Runge%E2%80%93Kutta%E2%80%93Fehlberg_method
func NewFehlberg45() *RungeKutta {
	var temp butcherTableau
	temp.stages = 6
	temp.nodes = []float64{0, 1. / 4., 3. / 8., 12. / 13., 1., 1. / 2.}
	temp.weights = [][]float64{
		{16. / 135., 0, 6656. / 12825., 28561. / 56430., -9. / 50., 2. / 55.},
		{25. / 216., 0, 1408. / 2565., 2197. / 4104., -1. / 5., 0},
	}
	temp.rungeKuttaMatrix = [][]float64{
		nil,
		{1. / 4.},
		{3. / 32., 9. / 32.},
		{1932. / 2197., -7200. / 2197., 7296. / 2197.},
		{439. / 216., -8., 3680. / 513., -845. / 4104.},
		{-8. / 27., 2, -3544. / 2565., 1859. / 4104., -11. / 40.},
	}
	rk := RungeKutta{temp}
	return &rk
}
