package data

import "github.com/pkg/errors"

// These are the errors returned when a DataHandler cannot be built. They are
// wrapped with a description of the offending input, use errors.Is (or
// errors.Cause) to test for them.
var (
	ErrLengthMismatch    = errors.New("state and time arrays differ in length")
	ErrIrregularSpacing  = errors.New("training indexes are not equally spaced")
	ErrEmptyTraining     = errors.New("training data is empty")
	ErrDimensionMismatch = errors.New("number of states differs between splits")
	ErrNonFinite         = errors.New("data contains NaN or Inf")
	ErrRaggedRows        = errors.New("rows have different lengths")
)
