package koopman

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// modelFile is the JSON layout of a LinearModel. Exactly one of Generator and
// Koopman is set.
type modelFile struct {
	Encoder   [][]float64 `json:"encoder"`
	Decoder   [][]float64 `json:"decoder"`
	Generator [][]float64 `json:"generator,omitempty"`
	Koopman   [][]float64 `json:"koopman,omitempty"`
}

// LoadLinearModel reads a LinearModel from a JSON file with the matrices
// "encoder", "decoder" and either "generator" (continuous time) or "koopman"
// (one step), each given as a list of rows.
func LoadLinearModel(path string) (*LinearModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open model %q", path)
	}
	var mf modelFile
	if err := json.Unmarshal(raw, &mf); err != nil {
		return nil, errors.Wrapf(err, "Failed to decode JSON from model %q", path)
	}

	enc, err := dense("encoder", mf.Encoder)
	if err != nil {
		return nil, err
	}
	dec, err := dense("decoder", mf.Decoder)
	if err != nil {
		return nil, err
	}

	var op interface {
		Evolver
		Order() int
	}
	switch {
	case mf.Generator != nil && mf.Koopman != nil:
		return nil, errors.New("model has both a generator and a koopman matrix")
	case mf.Generator != nil:
		G, err := dense("generator", mf.Generator)
		if err != nil {
			return nil, err
		}
		if op, err = NewLinearOperator(G); err != nil {
			return nil, err
		}
	case mf.Koopman != nil:
		K, err := dense("koopman", mf.Koopman)
		if err != nil {
			return nil, err
		}
		if op, err = NewDiscreteOperator(K); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("model has neither a generator nor a koopman matrix")
	}

	// encoder maps states to the operator's space and the decoder back
	if r, _ := enc.Dims(); r != op.Order() {
		return nil, errors.Wrapf(ErrDimensionMismatch, "encoder has %d rows, operator order is %d", r, op.Order())
	}
	if _, c := dec.Dims(); c != op.Order() {
		return nil, errors.Wrapf(ErrDimensionMismatch, "decoder has %d columns, operator order is %d", c, op.Order())
	}
	return NewLinearModel(LinearMap{enc}, LinearMap{dec}, op), nil
}

func dense(name string, rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.Errorf("%s is empty", name)
	}
	n := len(rows[0])
	data := make([]float64, 0, len(rows)*n)
	for index, row := range rows {
		if len(row) != n {
			return nil, errors.Errorf("%s row %d has %d entries, expected %d", name, index, len(row), n)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), n, data), nil
}
