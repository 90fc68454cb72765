package main

import (
	"fmt"

	"github.com/hammal/deepk/data"
	"github.com/hammal/deepk/dynamics"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	genSystem  string
	genX0      []float64
	genSamples int
	genTest    int
	genStart   float64
	genDt      float64
	genJitter  float64
	genShare   float64
	genSeed    int64
	genMethod  string
	genOut     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Sample a dataset from a known dynamical system",
	Long: `Integrates a dynamical system and writes a JSON dataset with keys Xtr, ttr and,
if --test is positive, Xte and tte. A share of the training indices is
perturbed by up to --jitter times the spacing to mimic slightly irregular
sampling. Most spacings must stay exact for the data to be usable.

Systems: discrete-spectrum, pendulum, linear.
Integrators: rk4, euler, fehlberg45 (adaptive).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := generateOptions{
			System: genSystem, X0: genX0, Samples: genSamples, Test: genTest,
			Start: genStart, Dt: genDt, Jitter: genJitter, JitterShare: genShare, Seed: genSeed, Integrator: genMethod,
		}
		if err := generate(opts, genOut); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d training and %d test samples to %s\n", genSamples, genTest, genOut)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&genSystem, "system", "discrete-spectrum", "Dynamical system to sample")
	generateCmd.Flags().Float64SliceVar(&genX0, "x0", []float64{0.5, 0.9}, "Initial state")
	generateCmd.Flags().IntVarP(&genSamples, "samples", "n", 100, "Number of training samples")
	generateCmd.Flags().IntVar(&genTest, "test", 20, "Number of test samples following the training samples")
	generateCmd.Flags().Float64Var(&genStart, "start", 0, "Time of the first sample")
	generateCmd.Flags().Float64Var(&genDt, "dt", 0.1, "Sample spacing")
	generateCmd.Flags().Float64Var(&genJitter, "jitter", 0, "Relative perturbation of the training times, below 0.5")
	generateCmd.Flags().Float64Var(&genShare, "jitter-share", 0.2, "Share of the training times that are perturbed")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 10, "Seed of the jitter")
	generateCmd.Flags().StringVar(&genMethod, "integrator", "rk4", "ODE integrator used to sample the system")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "data.json", "Output dataset")
}

type generateOptions struct {
	System  string
	X0      []float64
	Samples int
	Test    int
	Start   float64
	Dt      float64
	Jitter  float64
	// Probability of a training time being perturbed
	JitterShare float64
	Seed        int64
	// Name of the ODE integrator, rk4 if empty
	Integrator string
}

func generate(opts generateOptions, out string) error {
	if opts.Samples < 1 || opts.Test < 0 {
		return errors.Errorf("need at least one training sample and no negative test samples, got %d and %d", opts.Samples, opts.Test)
	}
	if opts.Dt <= 0 {
		return errors.Errorf("spacing must be positive, got %v", opts.Dt)
	}
	if opts.Jitter < 0 || opts.Jitter >= 0.5 {
		return errors.Errorf("jitter must be in [0, 0.5), got %v", opts.Jitter)
	}
	if opts.JitterShare < 0 || opts.JitterShare > 1 {
		return errors.Errorf("jitter share must be in [0, 1], got %v", opts.JitterShare)
	}
	sys, err := dynamics.Lookup(opts.System)
	if err != nil {
		return err
	}

	src := rand.NewSource(uint64(opts.Seed))
	perturbed := distuv.Bernoulli{P: opts.JitterShare, Src: src}
	offset := distuv.Uniform{Min: -opts.Jitter * opts.Dt, Max: opts.Jitter * opts.Dt, Src: src}
	times := dynamics.UniformTimes(opts.Start, opts.Dt, opts.Samples+opts.Test)
	times = dynamics.Jitter(times, func(index int) float64 {
		// test times are left as they are
		if index == 0 || index >= opts.Samples || perturbed.Rand() == 0 {
			return 0
		}
		return offset.Rand()
	})

	X, err := dynamics.TrajectoryWith(opts.Integrator, sys, opts.X0, times)
	if err != nil {
		return errors.Wrapf(err, "sampling %s", opts.System)
	}
	rows, _ := data.NewSplit(X, nil).Rows()

	train, err := data.FromRows(rows[:opts.Samples], times[:opts.Samples])
	if err != nil {
		return err
	}
	test, err := data.FromRows(rows[opts.Samples:], times[opts.Samples:])
	if err != nil {
		return err
	}
	return data.Save(out, train, data.Split{}, test)
}
