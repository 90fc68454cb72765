package errorfuncs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Keys of a Report.
const (
	Reconstruction = "recon"
	Linearity      = "lin"
	Prediction     = "pred"
)

// Report maps an error kind to its value in percent.
type Report map[string]float64

// Overall computes the errors of a DeepKoopman model:
//
//   - X: input states, i.e. the input to the encoder
//   - Y: encoded states, the output of the encoder
//   - Xr: reconstructed states, the output of the decoder for Y
//   - Ypred: encoded states predicted by evolving a baseline encoded state
//   - Xpred: predicted states, Ypred passed through the decoder
//
// The report holds the reconstruction error between X and Xr, the linearity
// error between Y and Ypred and the prediction error between X and Xpred, all
// computed with ANAE.
func Overall(X, Y, Xr, Ypred, Xpred mat.Matrix) (Report, error) {
	return OverallWith(ANAE, X, Y, Xr, Ypred, Xpred)
}

// OverallWith is Overall using the error function f.
func OverallWith(f Func, X, Y, Xr, Ypred, Xpred mat.Matrix) (Report, error) {
	recon, err := f(X, Xr)
	if err != nil {
		return nil, errors.Wrap(err, Reconstruction)
	}
	lin, err := f(Y, Ypred)
	if err != nil {
		return nil, errors.Wrap(err, Linearity)
	}
	pred, err := f(X, Xpred)
	if err != nil {
		return nil, errors.Wrap(err, Prediction)
	}
	return Report{
		Reconstruction: recon,
		Linearity:      lin,
		Prediction:     pred,
	}, nil
}

func (r Report) String() string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for index, k := range keys {
		parts[index] = fmt.Sprintf("%s=%.3f%%", k, r[k])
	}
	return strings.Join(parts, " ")
}
