package koopman

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLinearOperatorEvolve(t *testing.T) {
	G := mat.NewDiagDense(2, []float64{-1, 0.5})
	op, err := NewLinearOperator(G)
	require.NoError(t, err)

	y, err := op.Evolve(mat.NewVecDense(2, []float64{1, 2}), 2)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-2), y.AtVec(0), 1e-10)
	assert.InDelta(t, 2*math.E, y.AtVec(1), 1e-10)

	y, err = op.Evolve(mat.NewVecDense(2, []float64{1, 2}), 0)
	require.NoError(t, err)
	assert.InDelta(t, 2, y.AtVec(1), 1e-10)
	assert.Equal(t, 2, op.Order())
}

func TestLinearOperatorStep(t *testing.T) {
	op, err := NewLinearOperator(mat.NewDense(1, 1, []float64{math.Log(2)}))
	require.NoError(t, err)
	assert.InDelta(t, 2, op.Step().At(0, 0), 1e-10)
}

func TestOperatorNotSquare(t *testing.T) {
	_, err := NewLinearOperator(mat.NewDense(2, 3, nil))
	assert.True(t, errors.Is(err, ErrNotSquare))
	_, err = NewDiscreteOperator(mat.NewDense(3, 2, nil))
	assert.True(t, errors.Is(err, ErrNotSquare))
}

func TestDiscreteOperatorEvolve(t *testing.T) {
	swap := mat.NewDense(2, 2, []float64{0, 1, 1, 0})
	op, err := NewDiscreteOperator(swap)
	require.NoError(t, err)
	y0 := mat.NewVecDense(2, []float64{3, 4})

	y, err := op.Evolve(y0, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 3}, y.RawVector().Data)

	y, err = op.Evolve(y0, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4}, y.RawVector().Data)

	_, err = op.Evolve(y0, 0.5)
	assert.True(t, errors.Is(err, ErrNonIntegerStep))
	_, err = op.Evolve(y0, -1)
	assert.True(t, errors.Is(err, ErrNonIntegerStep))
	_, err = op.Evolve(mat.NewVecDense(3, nil), 1)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestLinearMap(t *testing.T) {
	enc := LinearMap{W: mat.NewDense(1, 2, []float64{1, -1})}
	X := mat.NewDense(3, 2, []float64{1, 2, 3, 5, 8, 13})

	Y := enc.Encode(X)
	r, c := Y.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 1, c)
	assert.Equal(t, []float64{-1, -2, -5}, Y.RawMatrix().Data)

	id := Identity(2)
	if !mat.Equal(id.Decode(X), X) {
		t.Errorf("identity changed the states\n%v", mat.Formatted(id.Decode(X)))
	}

	assert.Panics(t, func() { enc.Decode(Y) })
}

func TestLinearModel(t *testing.T) {
	op, err := NewDiscreteOperator(mat.NewDense(1, 1, []float64{2}))
	require.NoError(t, err)
	var model Model = NewLinearModel(Identity(1), Identity(1), op)

	y, err := model.Evolve(mat.NewVecDense(1, []float64{1}), 4)
	require.NoError(t, err)
	assert.Equal(t, 16., y.AtVec(0))
}

func TestLoadLinearModel(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	model, err := LoadLinearModel(write("discrete.json",
		`{"encoder": [[1, 0]], "decoder": [[1], [0]], "koopman": [[0.5]]}`))
	require.NoError(t, err)
	y, err := model.Evolve(mat.NewVecDense(1, []float64{4}), 2)
	require.NoError(t, err)
	assert.Equal(t, 1., y.AtVec(0))

	model, err = LoadLinearModel(write("continuous.json",
		`{"encoder": [[1]], "decoder": [[1]], "generator": [[-1]]}`))
	require.NoError(t, err)
	y, err = model.Evolve(mat.NewVecDense(1, []float64{1}), 0.5)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.5), y.AtVec(0), 1e-10)

	for name, content := range map[string]string{
		"both.json":    `{"encoder": [[1]], "decoder": [[1]], "generator": [[-1]], "koopman": [[1]]}`,
		"neither.json": `{"encoder": [[1]], "decoder": [[1]]}`,
		"order.json":   `{"encoder": [[1], [2]], "decoder": [[1]], "koopman": [[1]]}`,
		"ragged.json":  `{"encoder": [[1, 2], [3]], "decoder": [[1]], "koopman": [[1]]}`,
		"broken.json":  `{"encoder": `,
	} {
		_, err := LoadLinearModel(write(name, content))
		assert.Error(t, err, name)
	}
}
