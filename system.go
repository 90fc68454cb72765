package deepk

import "github.com/hammal/deepk/data"

// Summary struct contains the parameters of the conditioned data a model was
// evaluated on
type Summary struct {
	// Normalization divisor of the states
	Xscale float64
	// Offset making training time start at zero
	Tshift float64
	// Time unit
	Tscale float64
	// Whether the states were divided by Xscale
	Normalized bool
	// Number of states
	NumberOfStates int
	// Number of samples per split
	TrainingSamples   int
	ValidationSamples int
	TestSamples       int
}

// Summarize returns the Summary of a DataHandler.
func Summarize(dh *data.DataHandler) Summary {
	return Summary{
		Xscale:            dh.Xscale,
		Tshift:            dh.Tshift,
		Tscale:            dh.Tscale,
		Normalized:        dh.Normalized,
		NumberOfStates:    dh.Train().States(),
		TrainingSamples:   dh.Train().Len(),
		ValidationSamples: dh.Validation().Len(),
		TestSamples:       dh.Test().Len(),
	}
}
