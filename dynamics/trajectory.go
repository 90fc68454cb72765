package dynamics

import (
	"github.com/hammal/deepk/ode"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

const (
	// maxStep bounds the integration step used between two samples.
	maxStep = 1e-2
	// tolerance is the local error bound of the adaptive integrator.
	tolerance = 1e-10
)

// Trajectory integrates sys from x0 with RK4 and samples it at times, which
// must be ascending. The states are returned one per row, the first row is x0.
func Trajectory(sys System, x0 []float64, times []float64) (*mat.Dense, error) {
	return TrajectoryWith("rk4", sys, x0, times)
}

// TrajectoryWith is Trajectory using the named integrator: rk4, euler or
// fehlberg45. The first two take fixed steps of at most 1e-2, fehlberg45
// adapts its steps to a local error of 1e-10. An empty name selects rk4.
func TrajectoryWith(integrator string, sys System, x0 []float64, times []float64) (*mat.Dense, error) {
	if len(x0) != sys.Order() {
		return nil, errors.Errorf("initial state has %d entries, system order is %d", len(x0), sys.Order())
	}
	initial := mat.NewVecDense(len(x0), x0)
	switch integrator {
	case "", "rk4":
		return ode.NewRK4().Solve(sys, initial, times, maxStep)
	case "euler":
		return ode.NewEulerMethod().Solve(sys, initial, times, maxStep)
	case "fehlberg45":
		return ode.NewFehlberg45().SolveAdaptive(sys, initial, times, tolerance)
	default:
		return nil, errors.Errorf("unknown integrator %q", integrator)
	}
}

// UniformTimes returns n times start, start+dt, ... .
func UniformTimes(start, dt float64, n int) []float64 {
	res := make([]float64, n)
	for index := range res {
		res[index] = start + float64(index)*dt
	}
	return res
}

// Jitter perturbs every time by offset(index). It mimics the slightly irregular
// sampling DeepKoopman accepts for training data.
func Jitter(times []float64, offset func(index int) float64) []float64 {
	res := make([]float64, len(times))
	for index := range times {
		res[index] = times[index] + offset(index)
	}
	return res
}
