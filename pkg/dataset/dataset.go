// Package dataset provides the ordered record sequences plots are built from.
//
// A Dataset has positional identity only: records are kept in the order they
// were supplied and are treated as immutable once handed to the plot builder.
package dataset

import (
	"math"

	"github.com/plotforge/plotforge/pkg/errors"
)

// Record is a single observation with an x and y coordinate.
type Record struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Dataset is an ordered sequence of records.
type Dataset []Record

// FromPoints builds a dataset from (x, y) pairs.
func FromPoints(points ...[2]float64) Dataset {
	ds := make(Dataset, len(points))
	for i, p := range points {
		ds[i] = Record{X: p[0], Y: p[1]}
	}
	return ds
}

// FromXY builds a dataset from parallel x and y slices.
func FromXY(xs, ys []float64) (Dataset, error) {
	if len(xs) != len(ys) {
		return nil, errors.New(errors.ErrCodeInvalidDataset,
			"x and y lengths differ: %d vs %d", len(xs), len(ys))
	}
	ds := make(Dataset, len(xs))
	for i := range xs {
		ds[i] = Record{X: xs[i], Y: ys[i]}
	}
	return ds, nil
}

// Clone returns a copy of the dataset.
func (d Dataset) Clone() Dataset {
	out := make(Dataset, len(d))
	copy(out, d)
	return out
}

// Validate checks that the dataset is non-empty and all values are finite.
func (d Dataset) Validate() error {
	if len(d) == 0 {
		return errors.New(errors.ErrCodeEmptyDataset, "dataset has no records")
	}
	for i, r := range d {
		if !isFinite(r.X) || !isFinite(r.Y) {
			return errors.New(errors.ErrCodeInvalidDataset,
				"record %d has non-finite value (%v, %v)", i, r.X, r.Y)
		}
	}
	return nil
}

// Bounds returns the inclusive x and y ranges of the dataset.
// Degenerate ranges (single record, or all-equal values) are widened by
// one unit so downstream scaling never divides by zero.
func (d Dataset) Bounds() (xmin, xmax, ymin, ymax float64) {
	if len(d) == 0 {
		return 0, 1, 0, 1
	}

	xmin, xmax = d[0].X, d[0].X
	ymin, ymax = d[0].Y, d[0].Y
	for _, r := range d[1:] {
		xmin = math.Min(xmin, r.X)
		xmax = math.Max(xmax, r.X)
		ymin = math.Min(ymin, r.Y)
		ymax = math.Max(ymax, r.Y)
	}

	if xmin == xmax {
		xmin, xmax = xmin-0.5, xmax+0.5
	}
	if ymin == ymax {
		ymin, ymax = ymin-0.5, ymax+0.5
	}
	return xmin, xmax, ymin, ymax
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
