// Package data prepares time-series state data for a DeepKoopman model.
//
// A DataHandler takes a training split and optional validation and test
// splits, normalizes the states by a single global scale and rescales the time
// indices so that the training indices read 0, 1, 2, ... .
package data

import (
	"fmt"

	"github.com/hammal/deepk/gonumExtensions"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Options controls how a DataHandler conditions its input.
type Options struct {
	// NormalizeXdata divides every state matrix by the largest absolute value
	// found in the training states.
	NormalizeXdata bool
}

// DefaultOptions returns the options used when nothing else is configured.
func DefaultOptions() Options {
	return Options{NormalizeXdata: true}
}

// DataHandler holds the conditioned training, validation and test data.
//
// The time indices are transformed as
//
// t' = (t - Tshift) / Tscale
//
// and, if normalization is enabled, the states as
//
// X' = X / Xscale
type DataHandler struct {
	Xtr, Xva, Xte *mat.Dense
	Ttr, Tva, Tte *mat.VecDense

	// Largest absolute training state
	Xscale float64
	// First training time index
	Tshift float64
	// Most common spacing between consecutive training time indices
	Tscale float64
	// Frequency table of the shifted training spacings, ordered by spacing
	Dts []Spacing
	// Normalized is true when the states were divided by Xscale
	Normalized bool
}

// NewDataHandler validates and conditions the data. Validation and test splits
// may be empty. The input splits are copied, never modified.
func NewDataHandler(train, validation, test Split, opts Options) (*DataHandler, error) {
	named := []struct {
		split Split
		x, t  string
	}{
		{train, "Xtr", "ttr"},
		{validation, "Xva", "tva"},
		{test, "Xte", "tte"},
	}

	// Check sizes
	for _, s := range named {
		if s.split.Len() != s.split.TimeLen() {
			return nil, errors.Wrapf(ErrLengthMismatch,
				"expected '%s' and '%s' to have same length of 1st dimension, instead found %d and %d",
				s.x, s.t, s.split.Len(), s.split.TimeLen())
		}
	}
	if train.Empty() {
		return nil, errors.Wrap(ErrEmptyTraining, "'Xtr' has no samples")
	}
	for _, s := range named {
		if s.split.Empty() {
			continue
		}
		if s.split.States() != train.States() {
			return nil, errors.Wrapf(ErrDimensionMismatch,
				"expected '%s' to have %d columns like 'Xtr', instead found %d", s.x, train.States(), s.split.States())
		}
		if gonumExtensions.NANORINF(s.split.X) {
			return nil, errors.Wrapf(ErrNonFinite, "'%s'", s.x)
		}
		if gonumExtensions.NANORINF(s.split.T) {
			return nil, errors.Wrapf(ErrNonFinite, "'%s'", s.t)
		}
	}

	tr, va, te := train.clone(), validation.clone(), test.clone()
	dh := &DataHandler{
		Xtr: tr.X, Xva: va.X, Xte: te.X,
		Ttr: tr.T, Tva: va.T, Tte: te.T,
	}

	// Define Xscale, and normalize X data if applicable
	dh.Xscale = gonumExtensions.MaxAbs(dh.Xtr)
	if opts.NormalizeXdata && dh.Xscale != 0 {
		for _, x := range []*mat.Dense{dh.Xtr, dh.Xva, dh.Xte} {
			gonumExtensions.Scale(x, dh.Xscale)
		}
		dh.Normalized = true
	}

	// Shift t data to make ttr start from 0
	dh.Tshift = dh.Ttr.AtVec(0)
	for _, t := range dh.times() {
		gonumExtensions.ShiftVec(t, dh.Tshift)
	}

	// Use the most common spacing as the unit of time
	dh.Dts = NewSpacingTable(gonumExtensions.Diff(dh.Ttr))
	dh.Tscale = MostFrequent(dh.Dts)
	if dh.Tscale <= 0 {
		return nil, errors.Wrapf(ErrIrregularSpacing,
			"training indexes must be in ascending order. Please check 'ttr' = %v", train.Times())
	}
	for _, t := range dh.times() {
		gonumExtensions.ScaleVec(t, dh.Tscale)
	}

	// Ensure that ttr now goes as [0,1,2,...], i.e. no gaps
	gonumExtensions.RoundVec(dh.Ttr)
	for _, dt := range gonumExtensions.Diff(dh.Ttr) {
		if dt != 1 {
			return nil, errors.Wrapf(ErrIrregularSpacing,
				"training indexes cannot be rounded to get equal spacing. Please check 'ttr' = %v", train.Times())
		}
	}

	return dh, nil
}

func (dh *DataHandler) times() []*mat.VecDense {
	res := make([]*mat.VecDense, 0, 3)
	for _, t := range []*mat.VecDense{dh.Ttr, dh.Tva, dh.Tte} {
		if !gonumExtensions.IsEmpty(t) {
			res = append(res, t)
		}
	}
	return res
}

// Train returns the conditioned training split.
func (dh *DataHandler) Train() Split {
	return Split{X: dh.Xtr, T: dh.Ttr}
}

// Validation returns the conditioned validation split, possibly empty.
func (dh *DataHandler) Validation() Split {
	return Split{X: dh.Xva, T: dh.Tva}
}

// Test returns the conditioned test split, possibly empty.
func (dh *DataHandler) Test() Split {
	return Split{X: dh.Xte, T: dh.Tte}
}

func (dh *DataHandler) HasValidation() bool {
	return !dh.Validation().Empty()
}

func (dh *DataHandler) HasTest() bool {
	return !dh.Test().Empty()
}

// Denormalize maps states back to the units of the input data.
func (dh *DataHandler) Denormalize(m mat.Matrix) *mat.Dense {
	res := mat.DenseCopyOf(m)
	if dh.Normalized {
		res.Scale(dh.Xscale, res)
	}
	return res
}

// TimeOf maps a conditioned time index back to the units of the input data.
func (dh *DataHandler) TimeOf(t float64) float64 {
	return t*dh.Tscale + dh.Tshift
}

func (dh *DataHandler) String() string {
	return fmt.Sprintf("DataHandler{train: %d, validation: %d, test: %d, Xscale: %g, tshift: %g, tscale: %g}",
		dh.Train().Len(), dh.Validation().Len(), dh.Test().Len(), dh.Xscale, dh.Tshift, dh.Tscale)
}
