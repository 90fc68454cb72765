package data

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// fileFormat is the on disk layout of a dataset. Keys follow the names used
// throughout DeepKoopman.
type fileFormat struct {
	Xtr [][]float64 `json:"Xtr"`
	Ttr []float64   `json:"ttr"`
	Xva [][]float64 `json:"Xva,omitempty"`
	Tva []float64   `json:"tva,omitempty"`
	Xte [][]float64 `json:"Xte,omitempty"`
	Tte []float64   `json:"tte,omitempty"`
}

// Load reads a JSON dataset from path and returns its training, validation and
// test splits. Missing validation or test keys give empty splits.
func Load(path string) (train, validation, test Split, err error) {
	f, err := os.Open(path)
	if err != nil {
		return Split{}, Split{}, Split{}, errors.Wrapf(err, "Failed to open dataset %q", path)
	}
	defer f.Close()

	var ff fileFormat
	if err = json.NewDecoder(f).Decode(&ff); err != nil {
		return Split{}, Split{}, Split{}, errors.Wrapf(err, "Failed to decode JSON from dataset %q", path)
	}

	if train, err = FromRows(ff.Xtr, ff.Ttr); err != nil {
		return Split{}, Split{}, Split{}, errors.Wrap(err, "'Xtr'")
	}
	if validation, err = FromRows(ff.Xva, ff.Tva); err != nil {
		return Split{}, Split{}, Split{}, errors.Wrap(err, "'Xva'")
	}
	if test, err = FromRows(ff.Xte, ff.Tte); err != nil {
		return Split{}, Split{}, Split{}, errors.Wrap(err, "'Xte'")
	}
	return train, validation, test, nil
}

// Save writes the splits as a JSON dataset to path, creating the parent
// directory if needed.
func Save(path string, train, validation, test Split) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "Failed to create directory for %q", path)
	}

	var ff fileFormat
	ff.Xtr, ff.Ttr = train.Rows()
	ff.Xva, ff.Tva = validation.Rows()
	ff.Xte, ff.Tte = test.Rows()

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to create dataset %q", path)
	}
	defer f.Close()

	if err = json.NewEncoder(f).Encode(ff); err != nil {
		return errors.Wrapf(err, "Failed to encode JSON to dataset %q", path)
	}
	return nil
}
