// Package logging builds the zap logger of a DeepKoopman run. Every run may
// write its own <run id>.log file into the results folder.
package logging

import (
	"os"
	"path/filepath"

	"github.com/hammal/deepk/config"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName returns the log file name of a run.
func FileName(runID string) string {
	return runID + ".log"
}

// RunLogger is the logger of one run together with its log file.
type RunLogger struct {
	*zap.Logger
	// Path of the log file, empty when file logging is disabled
	Path string

	close func()
}

// New returns a logger writing to stderr and, if enabled, to
// <dir>/<runID>.log. The caller must Close it to release the log file.
func New(cfg config.LoggingConfig, dir, runID string) (*RunLogger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", cfg.Level)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewConsoleEncoder(encCfg)
	if cfg.JSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	rl := &RunLogger{}
	outputs := []string{"stderr"}
	if cfg.File {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "failed to create results folder %q", dir)
		}
		rl.Path = filepath.Join(dir, FileName(runID))
		outputs = append(outputs, rl.Path)
	}

	sink, closeSink, err := zap.Open(outputs...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open log outputs")
	}
	rl.close = closeSink
	rl.Logger = zap.New(zapcore.NewCore(enc, sink, level),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	).With(zap.String("run", runID))
	return rl, nil
}

// Close flushes the logger and closes its log file.
func (rl *RunLogger) Close() {
	// stderr may refuse to sync
	_ = rl.Sync()
	rl.close()
}
