package plotting

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestTrajectories(t *testing.T) {
	n := 50
	times := make([]float64, n)
	truth := mat.NewDense(n, 2, nil)
	pred := mat.NewDense(n, 2, nil)
	for index := range times {
		times[index] = float64(index)
		truth.SetRow(index, []float64{math.Sin(0.2 * times[index]), math.Cos(0.2 * times[index])})
		pred.SetRow(index, []float64{math.Sin(0.21 * times[index]), math.Cos(0.21 * times[index])})
	}

	path := filepath.Join(t.TempDir(), "prediction.png")
	require.NoError(t, Trajectories(times, truth, pred, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestTrajectoriesShapes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prediction.png")
	assert.Error(t, Trajectories([]float64{0, 1}, mat.NewDense(2, 1, nil), mat.NewDense(2, 2, nil), path))
	assert.Error(t, Trajectories([]float64{0}, mat.NewDense(2, 1, nil), mat.NewDense(2, 1, nil), path))
}
