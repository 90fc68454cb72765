// Package deepk evaluates DeepKoopman models on conditioned time-series data.
//
// A model is evaluated on a split by encoding its states, reconstructing them,
// and predicting all encoded states from the first one with the Koopman
// operator. The reconstruction, linearity and prediction errors are reported
// per split.
package deepk

import (
	"math"

	"github.com/hammal/deepk/data"
	"github.com/hammal/deepk/errorfuncs"
	"github.com/hammal/deepk/koopman"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrEmptySplit is returned when evaluating a split without samples.
var ErrEmptySplit = errors.New("split has no samples")

// Evaluate computes the overall ANAE of model on split.
func Evaluate(split data.Split, model koopman.Model) (errorfuncs.Report, error) {
	return EvaluateWith(errorfuncs.ANAE, split, model)
}

// EvaluateWith computes the overall error of model on split using f.
//
// With X the states and t the time indices of the split
//
// Y = encode(X), Xr = decode(Y)
//
// Ypred[i] = evolve(Y[0], t[i] - t[0]), Xpred = decode(Ypred)
func EvaluateWith(f errorfuncs.Func, split data.Split, model koopman.Model) (errorfuncs.Report, error) {
	p, err := Predict(split, model)
	if err != nil {
		return nil, err
	}
	return errorfuncs.OverallWith(f, split.X, p.Y, p.Xr, p.Ypred, p.Xpred)
}

// Prediction holds the outputs of a model for the states of a split.
type Prediction struct {
	// Encoded states
	Y *mat.Dense
	// Reconstructed states
	Xr *mat.Dense
	// Encoded states evolved from the first one
	Ypred *mat.Dense
	// Decoded Ypred
	Xpred *mat.Dense
}

// Predict runs model on split.
func Predict(split data.Split, model koopman.Model) (*Prediction, error) {
	if split.Empty() {
		return nil, ErrEmptySplit
	}
	if split.Len() != split.TimeLen() {
		return nil, errors.Wrapf(data.ErrLengthMismatch, "%d samples and %d time indices", split.Len(), split.TimeLen())
	}
	var p Prediction
	p.Y = model.Encode(split.X)
	p.Xr = model.Decode(p.Y)

	m, n := p.Y.Dims()
	p.Ypred = mat.NewDense(m, n, nil)
	y0 := mat.VecDenseCopyOf(p.Y.RowView(0))
	t0 := split.T.AtVec(0)
	for row := 0; row < m; row++ {
		y, err := model.Evolve(y0, split.T.AtVec(row)-t0)
		if err != nil {
			return nil, errors.Wrapf(err, "evolving to sample %d", row)
		}
		p.Ypred.SetRow(row, y.RawVector().Data)
	}
	p.Xpred = model.Decode(p.Ypred)
	return &p, nil
}

// Split names used as prefixes in Stats.
const (
	Training   = "tr"
	Validation = "va"
	Testing    = "te"
)

// Stats holds the evaluation results of a model, keyed as
// <split>_<error kind>_<metric>, e.g. te_pred_anae.
type Stats map[string]float64

// Key returns the Stats key of an error kind on a split for a metric.
func Key(split, kind, metric string) string {
	return split + "_" + kind + "_" + metric
}

// Add stores a report for split under metric.
func (s Stats) Add(split, metric string, report errorfuncs.Report) {
	for kind, v := range report {
		s[Key(split, kind, metric)] = v
	}
}

// Round returns a copy of the stats rounded to decimals places.
func (s Stats) Round(decimals int) Stats {
	p := math.Pow(10, float64(decimals))
	res := make(Stats, len(s))
	for k, v := range s {
		res[k] = math.Round(v*p) / p
	}
	return res
}

// EvaluateAll evaluates model with the named metric on every non empty split
// of the handler.
func EvaluateAll(dh *data.DataHandler, model koopman.Model, metric string) (Stats, error) {
	f, err := errorfuncs.Get(metric)
	if err != nil {
		return nil, err
	}
	stats := make(Stats)
	splits := []struct {
		name  string
		split data.Split
	}{
		{Training, dh.Train()},
		{Validation, dh.Validation()},
		{Testing, dh.Test()},
	}
	for _, s := range splits {
		if s.split.Empty() {
			continue
		}
		report, err := EvaluateWith(f, s.split, model)
		if err != nil {
			return nil, errors.Wrapf(err, "split %q", s.name)
		}
		stats.Add(s.name, metric, report)
	}
	return stats, nil
}
