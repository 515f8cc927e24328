package dataset

import (
	"math"
	"strings"
	"testing"

	"github.com/plotforge/plotforge/pkg/errors"
)

func TestFromPoints(t *testing.T) {
	ds := FromPoints([2]float64{2020, 100}, [2]float64{2021, 110})

	if len(ds) != 2 {
		t.Fatalf("len = %d, want 2", len(ds))
	}
	if ds[0].X != 2020 || ds[0].Y != 100 {
		t.Errorf("record 0 = %+v", ds[0])
	}
	if ds[1].X != 2021 || ds[1].Y != 110 {
		t.Errorf("record 1 = %+v", ds[1])
	}
}

func TestFromXY(t *testing.T) {
	ds, err := FromXY([]float64{1, 2, 3}, []float64{10, 20, 30})
	if err != nil {
		t.Fatalf("FromXY() error = %v", err)
	}
	if len(ds) != 3 {
		t.Errorf("len = %d, want 3", len(ds))
	}

	_, err = FromXY([]float64{1, 2}, []float64{10})
	if !errors.Is(err, errors.ErrCodeInvalidDataset) {
		t.Errorf("FromXY() with mismatched lengths error = %v, want INVALID_DATASET", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		ds      Dataset
		code    errors.Code
		wantErr bool
	}{
		{"ok", FromPoints([2]float64{1, 2}), "", false},
		{"empty", Dataset{}, errors.ErrCodeEmptyDataset, true},
		{"nil", nil, errors.ErrCodeEmptyDataset, true},
		{"NaN", Dataset{{X: math.NaN(), Y: 1}}, errors.ErrCodeInvalidDataset, true},
		{"Inf", Dataset{{X: 1, Y: math.Inf(1)}}, errors.ErrCodeInvalidDataset, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ds.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, tt.code) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	ds := FromPoints([2]float64{2020, 100}, [2]float64{2021, 110}, [2]float64{2022, 95})

	xmin, xmax, ymin, ymax := ds.Bounds()
	if xmin != 2020 || xmax != 2022 {
		t.Errorf("x bounds = [%v, %v], want [2020, 2022]", xmin, xmax)
	}
	if ymin != 95 || ymax != 110 {
		t.Errorf("y bounds = [%v, %v], want [95, 110]", ymin, ymax)
	}
}

func TestBoundsDegenerate(t *testing.T) {
	ds := FromPoints([2]float64{5, 7})

	xmin, xmax, ymin, ymax := ds.Bounds()
	if xmax <= xmin {
		t.Errorf("x bounds not widened: [%v, %v]", xmin, xmax)
	}
	if ymax <= ymin {
		t.Errorf("y bounds not widened: [%v, %v]", ymin, ymax)
	}
}

func TestCloneIndependence(t *testing.T) {
	orig := FromPoints([2]float64{1, 2})
	clone := orig.Clone()
	clone[0].X = 99

	if orig[0].X != 1 {
		t.Error("Clone() should not share storage with the original")
	}
}

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"plain", "2020,100\n2021,110\n", 2, false},
		{"with header", "year,value\n2020,100\n2021,110\n", 2, false},
		{"trailing newline absent", "1,2", 1, false},
		{"empty", "", 0, true},
		{"header only", "year,value\n", 0, true},
		{"non-numeric body", "2020,100\nabc,def\n", 0, true},
		{"wrong column count", "1,2,3\n", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := ReadCSV(strings.NewReader(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadCSV() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(ds) != tt.want {
				t.Errorf("ReadCSV() len = %d, want %d", len(ds), tt.want)
			}
		})
	}
}

func TestReadJSONRoundTrip(t *testing.T) {
	orig := FromPoints([2]float64{2020, 100}, [2]float64{2021, 110})

	var buf strings.Builder
	if err := WriteJSON(orig, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	got, err := ReadJSON(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if len(got) != len(orig) {
		t.Fatalf("round trip len = %d, want %d", len(got), len(orig))
	}
	for i := range orig {
		if got[i] != orig[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], orig[i])
		}
	}
}

func TestReadJSONEmpty(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("[]"))
	if !errors.Is(err, errors.ErrCodeEmptyDataset) {
		t.Errorf("ReadJSON([]) error = %v, want EMPTY_DATASET", err)
	}
}
