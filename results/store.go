// Package results keeps a SQLite record of evaluated DeepKoopman runs: the
// parameters of the conditioned data and the resulting error statistics.
package results

import (
	"context"
	"database/sql"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hammal/deepk"
	"github.com/pkg/errors"

	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned when a run id is not in the store.
var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	created_at  TEXT NOT NULL,
	dataset     TEXT,
	metric      TEXT NOT NULL,
	xscale      REAL NOT NULL,
	tshift      REAL NOT NULL,
	tscale      REAL NOT NULL,
	normalized  INTEGER NOT NULL,
	states      INTEGER NOT NULL,
	n_train     INTEGER NOT NULL,
	n_val       INTEGER NOT NULL,
	n_test      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS stats (
	run_id TEXT NOT NULL REFERENCES runs(id),
	key    TEXT NOT NULL,
	value  REAL,
	PRIMARY KEY (run_id, key)
);`

// Run is one evaluation of a model on a dataset.
type Run struct {
	ID        string
	CreatedAt time.Time
	Dataset   string
	Metric    string
	Summary   deepk.Summary
	Stats     deepk.Stats
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// Store is a SQLite backed record of runs.
type Store struct {
	db *sql.DB
}

// Open opens, and if needed creates, the store and its folder at path.
// ":memory:" gives a store living as long as the process.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrapf(err, "create folder of results store %q", path)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open results store %q", path)
	}
	// a single connection keeps ":memory:" databases alive and shared
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "create schema in %q", path)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a run together with its statistics. A run without ID gets a
// new one, a zero CreatedAt is set to now. The stored run is returned.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = NewRunID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, errors.Wrap(err, "begin record")
	}
	defer tx.Rollback()

	sm := run.Summary
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, dataset, metric, xscale, tshift, tscale, normalized, states, n_train, n_val, n_test)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(time.RFC3339Nano), nullIfEmpty(run.Dataset), run.Metric,
		sm.Xscale, sm.Tshift, sm.Tscale, sm.Normalized, sm.NumberOfStates,
		sm.TrainingSamples, sm.ValidationSamples, sm.TestSamples,
	)
	if err != nil {
		return Run{}, errors.Wrapf(err, "insert run %s", run.ID)
	}
	for key, value := range run.Stats {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO stats (run_id, key, value) VALUES (?, ?, ?)`,
			run.ID, key, nullIfNaN(value),
		); err != nil {
			return Run{}, errors.Wrapf(err, "insert stat %s of run %s", key, run.ID)
		}
	}
	if err := tx.Commit(); err != nil {
		return Run{}, errors.Wrap(err, "commit record")
	}
	return run, nil
}

// Get returns the run with id including its statistics.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, selectRuns+` WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, errors.Wrapf(ErrRunNotFound, "%q", id)
	}
	if err != nil {
		return Run{}, err
	}
	if run.Stats, err = s.Stats(ctx, id); err != nil {
		return Run{}, err
	}
	return run, nil
}

// Runs lists all runs, oldest first, without their statistics.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, selectRuns+` ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.Wrap(err, "query runs")
	}
	defer rows.Close()

	var res []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, run)
	}
	return res, errors.Wrap(rows.Err(), "iterate runs")
}

// Stats returns the statistics of a run. NULL values, which is how SQLite
// stores NaN, are returned as NaN.
func (s *Store) Stats(ctx context.Context, id string) (deepk.Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM stats WHERE run_id = ?`, id)
	if err != nil {
		return nil, errors.Wrapf(err, "query stats of run %s", id)
	}
	defer rows.Close()

	stats := make(deepk.Stats)
	for rows.Next() {
		var (
			key   string
			value sql.NullFloat64
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, errors.Wrap(err, "scan stat")
		}
		if value.Valid {
			stats[key] = value.Float64
		} else {
			stats[key] = math.NaN()
		}
	}
	return stats, errors.Wrap(rows.Err(), "iterate stats")
}

const selectRuns = `SELECT id, created_at, dataset, metric, xscale, tshift, tscale, normalized, states, n_train, n_val, n_test FROM runs`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run     Run
		created string
		dataset sql.NullString
	)
	sm := &run.Summary
	err := sc.Scan(&run.ID, &created, &dataset, &run.Metric,
		&sm.Xscale, &sm.Tshift, &sm.Tscale, &sm.Normalized, &sm.NumberOfStates,
		&sm.TrainingSamples, &sm.ValidationSamples, &sm.TestSamples)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, errors.Wrap(err, "scan run")
	}
	run.Dataset = dataset.String
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Run{}, errors.Wrapf(err, "parse created_at of run %s", run.ID)
	}
	return run, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullIfNaN(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}
