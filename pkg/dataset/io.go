package dataset

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/plotforge/plotforge/pkg/errors"
)

// ReadCSV parses a two-column CSV stream of x,y values.
// A non-numeric first row is treated as a header and skipped.
func ReadCSV(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	var ds Dataset
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read csv row %d", row+1)
		}

		x, errX := strconv.ParseFloat(rec[0], 64)
		y, errY := strconv.ParseFloat(rec[1], 64)
		if errX != nil || errY != nil {
			if row == 0 {
				continue // header row
			}
			return nil, errors.New(errors.ErrCodeInvalidDataset,
				"csv row %d is not numeric: %q,%q", row+1, rec[0], rec[1])
		}
		ds = append(ds, Record{X: x, Y: y})
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// LoadCSV reads a dataset from a CSV file.
func LoadCSV(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open dataset file %s", path)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadJSON parses a JSON array of {"x": ..., "y": ...} records.
func ReadJSON(r io.Reader) (Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode json dataset")
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// WriteJSON encodes the dataset as an indented JSON array.
func WriteJSON(d Dataset, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode dataset")
	}
	return nil
}
