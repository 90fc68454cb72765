package results

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/hammal/deepk"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndGet(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	run := Run{
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Dataset:   "data.json",
		Metric:    "anae",
		Summary: deepk.Summary{
			Xscale: 16.5, Tshift: 100, Tscale: 95, Normalized: true,
			NumberOfStates: 2, TrainingSamples: 5, TestSamples: 1,
		},
		Stats: deepk.Stats{"tr_recon_anae": 1.5, "te_pred_anae": math.NaN()},
	}
	stored, err := s.Record(ctx, run)
	require.NoError(t, err)
	require.NotEmpty(t, stored.ID)

	got, err := s.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, run.Dataset, got.Dataset)
	assert.Equal(t, run.Summary, got.Summary)
	assert.Equal(t, 1.5, got.Stats["tr_recon_anae"])
	assert.True(t, math.IsNaN(got.Stats["te_pred_anae"]))
}

func TestRunsOrdered(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for index, id := range []string{"second", "first"} {
		_, err := s.Record(ctx, Run{ID: id, Metric: "anae", CreatedAt: base.Add(-time.Duration(index) * time.Hour)})
		require.NoError(t, err)
	}

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "first", runs[0].ID)
	assert.Equal(t, "second", runs[1].ID)
	assert.Empty(t, runs[0].Dataset)
}

func TestDuplicateRun(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	_, err := s.Record(ctx, Run{ID: "x", Metric: "anae"})
	require.NoError(t, err)
	_, err = s.Record(ctx, Run{ID: "x", Metric: "anae"})
	assert.Error(t, err)
}

func TestGetMissing(t *testing.T) {
	_, err := setupStore(t).Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestReopenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path)
	require.NoError(t, err)
	run, err := s.Record(context.Background(), Run{Metric: "naae", Stats: deepk.Stats{"tr_lin_naae": 3}})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	stats, err := s.Stats(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, deepk.Stats{"tr_lin_naae": 3}, stats)
}
