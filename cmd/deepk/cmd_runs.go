package main

import (
	"fmt"

	"github.com/hammal/deepk/results"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs [run id]",
	Short: "List recorded runs, or show the statistics of one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Store.Path == "" {
			return errors.New("no results store configured")
		}
		store, err := results.Open(storePath(cfg))
		if err != nil {
			return err
		}
		defer store.Close()

		w := cmd.OutOrStdout()
		if len(args) == 1 {
			run, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printRun(w, run)
			return nil
		}

		runs, err := store.Runs(cmd.Context())
		if err != nil {
			return err
		}
		for _, run := range runs {
			fmt.Fprintf(w, "%s  %s  %-6s %s\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), run.Metric, run.Dataset)
		}
		return nil
	},
}
