package main

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/hammal/deepk"
	"github.com/hammal/deepk/config"
	"github.com/hammal/deepk/data"
	"github.com/hammal/deepk/logging"
	"github.com/hammal/deepk/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func testConfig(t *testing.T) *config.Config {
	cfg := config.DefaultConfig()
	cfg.ResultsFolder = filepath.Join(t.TempDir(), "results")
	cfg.Logging.Level = "error"
	return cfg
}

func TestGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "data.json")
	opts := generateOptions{
		System: "discrete-spectrum", X0: []float64{0.5, 0.9},
		Samples: 30, Test: 5, Start: 2, Dt: 0.125, Jitter: 0.2, JitterShare: 0.2, Seed: 10,
	}
	require.NoError(t, generate(opts, out))

	dh, err := prepare(out, data.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 30, dh.Train().Len())
	assert.Equal(t, 5, dh.Test().Len())
	assert.False(t, dh.HasValidation())
	assert.Equal(t, 2., dh.Tshift)
	assert.Equal(t, 0.125, dh.Tscale)
	// jittered training times still round onto the unit grid
	assert.Equal(t, 29., dh.Train().Times()[29])
}

func TestGenerateIntegrators(t *testing.T) {
	dir := t.TempDir()
	base := generateOptions{System: "linear", X0: []float64{1, 0}, Samples: 20, Dt: 0.25}

	var trains [][][]float64
	for _, method := range []string{"rk4", "fehlberg45"} {
		out := filepath.Join(dir, method+".json")
		opts := base
		opts.Integrator = method
		require.NoError(t, generate(opts, out))
		tr, _, _, err := data.Load(out)
		require.NoError(t, err)
		x, _ := tr.Rows()
		trains = append(trains, x)
	}
	require.Len(t, trains[1], 20)
	for index := range trains[0] {
		assert.InDeltaSlice(t, trains[0][index], trains[1][index], 1e-8)
	}

	bad := base
	bad.Integrator = "leapfrog"
	assert.Error(t, generate(bad, filepath.Join(dir, "bad.json")))
}

func TestGenerateRejects(t *testing.T) {
	out := filepath.Join(t.TempDir(), "data.json")
	base := generateOptions{System: "pendulum", X0: []float64{1, 0}, Samples: 10, Dt: 0.1}

	bad := base
	bad.System = "lorenz"
	assert.Error(t, generate(bad, out))

	bad = base
	bad.Jitter = 0.5
	assert.Error(t, generate(bad, out))

	bad = base
	bad.X0 = []float64{1}
	assert.Error(t, generate(bad, out))

	bad = base
	bad.JitterShare = 2
	assert.Error(t, generate(bad, out))

	bad = base
	bad.Dt = 0
	assert.Error(t, generate(bad, out))
}

func TestEvaluate(t *testing.T) {
	dir := t.TempDir()
	dataset := filepath.Join(dir, "data.json")
	model := filepath.Join(dir, "model.json")

	// x(t) = e^-(t - 10) for a model halving every step
	var xtr, xte [][]float64
	ttr := []float64{10, 11, 12, 13, 14}
	tte := []float64{12, 13}
	for _, v := range ttr {
		xtr = append(xtr, []float64{math.Exp(-(v - 10))})
	}
	for _, v := range tte {
		xte = append(xte, []float64{math.Exp(-(v - 10))})
	}
	tr, err := data.FromRows(xtr, ttr)
	require.NoError(t, err)
	te, err := data.FromRows(xte, tte)
	require.NoError(t, err)
	require.NoError(t, data.Save(dataset, tr, data.Split{}, te))
	writeFile(t, model, `{"encoder": [[1]], "decoder": [[1]], "koopman": [[0.5]]}`)

	cfg := testConfig(t)
	plot := filepath.Join(dir, "prediction.png")
	run, err := runEvaluate(context.Background(), cfg, evaluateOptions{Dataset: dataset, Model: model, Plot: plot})
	require.NoError(t, err)

	want := deepk.Stats{
		"tr_recon_anae": 0,
		"tr_lin_anae":   102.590,
		"tr_pred_anae":  102.590,
		"te_recon_anae": 0,
		"te_lin_anae":   17.957,
		"te_pred_anae":  17.957,
	}
	assert.Equal(t, want, run.Stats.Round(3))

	assert.FileExists(t, filepath.Join(cfg.ResultsFolder, logging.FileName(run.ID)))
	assert.FileExists(t, plot)

	store, err := results.Open(storePath(cfg))
	require.NoError(t, err)
	defer store.Close()
	got, err := store.Get(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, dataset, got.Dataset)
	assert.Equal(t, 2, got.Summary.TestSamples)
	assert.Equal(t, want, got.Stats.Round(3))
}

func TestEvaluateBadData(t *testing.T) {
	dir := t.TempDir()
	dataset := filepath.Join(dir, "data.json")
	writeFile(t, dataset, `{"Xtr": [[1], [2], [3]], "ttr": [0, 1]}`)

	cfg := testConfig(t)
	cfg.Store.Path = ""
	_, err := runEvaluate(context.Background(), cfg, evaluateOptions{Dataset: dataset, Model: filepath.Join(dir, "absent.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'Xtr' and 'ttr'")
}

func TestStorePath(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ResultsFolder = "out"
	assert.Equal(t, filepath.Join("out", "runs.db"), storePath(cfg))
	cfg.Store.Path = ":memory:"
	assert.Equal(t, ":memory:", storePath(cfg))
}

func TestConfigCommand(t *testing.T) {
	t.Cleanup(func() { logLevel = "" })
	out := filepath.Join(t.TempDir(), "deepk.yaml")

	rootCmd.SetOut(io.Discard)
	rootCmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "--log-level", "debug", "config", out})
	require.NoError(t, rootCmd.Execute())

	cfg, err := config.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "anae", cfg.Metric)
}
