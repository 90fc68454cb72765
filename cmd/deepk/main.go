// Command deepk conditions time-series data for DeepKoopman and evaluates
// Koopman models on it.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hammal/deepk/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath    string
	resultsFolder string
	logLevel      string
)

var rootCmd = &cobra.Command{
	Use:   "deepk",
	Short: "DeepKoopman data conditioning and evaluation",
	Long: `deepk prepares time-series state data for DeepKoopman models and reports how
well a Koopman model reconstructs, linearizes and predicts it.

Training indices must be ascending and nearly equally spaced; they are
shifted to start at 0 and scaled by their most common spacing.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "deepk.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&resultsFolder, "results-folder", "", "Folder for run logs and the results database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(generateCmd, prepareCmd, evaluateCmd, runsCmd, configCmd)
}

// loadConfig reads the config file and applies the global flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if resultsFolder != "" {
		cfg.ResultsFolder = resultsFolder
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, cfg.Validate()
}

// storePath resolves the results database relative to the results folder.
func storePath(cfg *config.Config) string {
	path := cfg.Store.Path
	if filepath.IsAbs(path) || path == ":memory:" {
		return path
	}
	return filepath.Join(cfg.ResultsFolder, path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
