package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/hammal/deepk"
	"github.com/hammal/deepk/config"
	"github.com/hammal/deepk/koopman"
	"github.com/hammal/deepk/logging"
	"github.com/hammal/deepk/plotting"
	"github.com/hammal/deepk/results"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	evalModel string
	evalPlot  string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <dataset.json>",
	Short: "Evaluate a linear Koopman model on a dataset",
	Long: `Conditions the dataset, evaluates the model on every non empty split and prints
the reconstruction, linearity and prediction errors in percent.

The model file is JSON with the matrices "encoder", "decoder" and either
"generator" or "koopman", given in the units of the conditioned data. Each run
gets an id, logs to <results folder>/<id>.log and is recorded in the results
database.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		run, err := runEvaluate(cmd.Context(), cfg, evaluateOptions{
			Dataset: args[0],
			Model:   evalModel,
			Plot:    evalPlot,
		})
		if err != nil {
			return err
		}
		printRun(cmd.OutOrStdout(), run)
		return nil
	},
}

func init() {
	evaluateCmd.Flags().StringVarP(&evalModel, "model", "m", "model.json", "Linear Koopman model")
	evaluateCmd.Flags().StringVar(&evalPlot, "plot", "", "Plot the test split, or the training split if there is none, to this file")
}

type evaluateOptions struct {
	Dataset string
	Model   string
	Plot    string
}

func runEvaluate(ctx context.Context, cfg *config.Config, opts evaluateOptions) (results.Run, error) {
	run := results.Run{
		ID:      results.NewRunID(),
		Dataset: opts.Dataset,
		Metric:  cfg.Metric,
	}

	logger, err := logging.New(cfg.Logging, cfg.ResultsFolder, run.ID)
	if err != nil {
		return results.Run{}, err
	}
	defer logger.Close()
	if logger.Path != "" {
		logger.Debug("logging to file", zap.String("path", logger.Path))
	}

	dh, err := prepare(opts.Dataset, cfg.DataOptions())
	if err != nil {
		logger.Error("failed to prepare data", zap.Error(err))
		return results.Run{}, err
	}
	run.Summary = deepk.Summarize(dh)
	logger.Info("data prepared",
		zap.String("dataset", opts.Dataset),
		zap.Int("states", run.Summary.NumberOfStates),
		zap.Int("train", run.Summary.TrainingSamples),
		zap.Int("validation", run.Summary.ValidationSamples),
		zap.Int("test", run.Summary.TestSamples),
		zap.Float64("xscale", dh.Xscale),
		zap.Float64("tshift", dh.Tshift),
		zap.Float64("tscale", dh.Tscale),
	)

	model, err := koopman.LoadLinearModel(opts.Model)
	if err != nil {
		logger.Error("failed to load model", zap.Error(err))
		return results.Run{}, err
	}

	if run.Stats, err = deepk.EvaluateAll(dh, model, cfg.Metric); err != nil {
		logger.Error("evaluation failed", zap.Error(err))
		return results.Run{}, err
	}
	for _, key := range sortedKeys(run.Stats) {
		logger.Info("stat", zap.String("key", key), zap.Float64("value", run.Stats[key]))
	}

	if opts.Plot != "" {
		split := dh.Test()
		if split.Empty() {
			split = dh.Train()
		}
		p, err := deepk.Predict(split, model)
		if err != nil {
			return results.Run{}, err
		}
		if err := plotting.Trajectories(split.Times(), split.X, p.Xpred, opts.Plot); err != nil {
			return results.Run{}, err
		}
		logger.Info("plot saved", zap.String("path", opts.Plot))
	}

	if cfg.Store.Path != "" {
		path := storePath(cfg)
		store, err := results.Open(path)
		if err != nil {
			return results.Run{}, err
		}
		defer store.Close()
		if run, err = store.Record(ctx, run); err != nil {
			return results.Run{}, errors.Wrap(err, "failed to record run")
		}
		logger.Info("run recorded", zap.String("store", path))
	}
	return run, nil
}

func printRun(w io.Writer, run results.Run) {
	fmt.Fprintf(w, "run %s\n", run.ID)
	for _, key := range sortedKeys(run.Stats) {
		fmt.Fprintf(w, "  %-16s %8.3f%%\n", key, run.Stats[key])
	}
}

func sortedKeys(stats deepk.Stats) []string {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
