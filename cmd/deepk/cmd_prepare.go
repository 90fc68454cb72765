package main

import (
	"fmt"

	"github.com/hammal/deepk"
	"github.com/hammal/deepk/data"
	"github.com/spf13/cobra"
)

var prepareOut string

var prepareCmd = &cobra.Command{
	Use:   "prepare <dataset.json>",
	Short: "Check and condition a dataset",
	Long: `Builds the data handler for a dataset and prints the resulting parameters and
the table of training time spacings. With --out the conditioned dataset is
written as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dh, err := prepare(args[0], cfg.DataOptions())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		s := deepk.Summarize(dh)
		fmt.Fprintf(w, "states:      %d\n", s.NumberOfStates)
		fmt.Fprintf(w, "samples:     %d train, %d validation, %d test\n", s.TrainingSamples, s.ValidationSamples, s.TestSamples)
		fmt.Fprintf(w, "Xscale:      %g (normalized: %t)\n", s.Xscale, s.Normalized)
		fmt.Fprintf(w, "tshift:      %g\n", s.Tshift)
		fmt.Fprintf(w, "tscale:      %g\n", s.Tscale)
		fmt.Fprintln(w, "spacings:")
		for _, sp := range dh.Dts {
			fmt.Fprintf(w, "  %-12g %d\n", sp.Dt, sp.Count)
		}

		if prepareOut != "" {
			if err := data.Save(prepareOut, dh.Train(), dh.Validation(), dh.Test()); err != nil {
				return err
			}
			fmt.Fprintf(w, "wrote conditioned dataset to %s\n", prepareOut)
		}
		return nil
	},
}

func init() {
	prepareCmd.Flags().StringVarP(&prepareOut, "out", "o", "", "Write the conditioned dataset to this file")
}

func prepare(path string, opts data.Options) (*data.DataHandler, error) {
	tr, va, te, err := data.Load(path)
	if err != nil {
		return nil, err
	}
	return data.NewDataHandler(tr, va, te, opts)
}
