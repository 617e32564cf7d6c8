package frame

import (
	"errors"
	"testing"

	"github.com/floedata/floe"
	"github.com/floedata/floe/series"
)

// mustFrame builds a frame or fails the test.
func mustFrame(t *testing.T, cols ...*series.Series) *DataFrame {
	t.Helper()
	df, err := New(cols...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return df
}

// checkColumn asserts the cells of one column, nulls included.
func checkColumn(t *testing.T, df *DataFrame, name string, want []series.Value) {
	t.Helper()
	col, err := df.Column(name)
	if err != nil {
		t.Fatalf("Column(%q) error = %v", name, err)
	}
	if col.Len() != len(want) {
		t.Fatalf("column %q length = %d, want %d", name, col.Len(), len(want))
	}
	for i, w := range want {
		if got := col.Get(i); !got.Equal(w) {
			t.Errorf("column %q row %d = %v, want %v", name, i, got, w)
		}
	}
}

func peopleFrame(t *testing.T) *DataFrame {
	t.Helper()
	return mustFrame(t,
		series.NewString("name", []string{"ana", "bo", "cy", "dee"}, nil),
		series.NewInt32("age", []int32{30, 25, 0, 41}, []bool{true, true, false, true}),
		series.NewFloat64("score", []float64{1.5, 2.5, 3.5, 4.5}, nil),
	)
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		cols    []*series.Series
		wantErr bool
	}{
		{
			name: "valid frame",
			cols: []*series.Series{
				series.NewInt32("a", []int32{1}, nil),
				series.NewInt32("b", []int32{2}, nil),
			},
		},
		{
			name: "empty frame",
			cols: nil,
		},
		{
			name: "duplicate names",
			cols: []*series.Series{
				series.NewInt32("a", []int32{1}, nil),
				series.NewInt32("a", []int32{2}, nil),
			},
			wantErr: true,
		},
		{
			name: "mismatched lengths",
			cols: []*series.Series{
				series.NewInt32("a", []int32{1}, nil),
				series.NewInt32("b", []int32{1, 2}, nil),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cols...)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFrameAccessors(t *testing.T) {
	df := peopleFrame(t)

	if df.RowCount() != 4 {
		t.Errorf("RowCount() = %d, want 4", df.RowCount())
	}
	if df.ColumnCount() != 3 {
		t.Errorf("ColumnCount() = %d, want 3", df.ColumnCount())
	}

	names := df.ColumnNames()
	want := []string{"name", "age", "score"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("ColumnNames()[%d] = %q, want %q", i, names[i], n)
		}
	}

	if _, err := df.Column("missing"); !errors.Is(err, floe.ErrColumnNotFound) {
		t.Errorf("Column(missing) error = %v, want ErrColumnNotFound", err)
	}

	row, err := df.Row(2)
	if err != nil {
		t.Fatalf("Row(2) error = %v", err)
	}
	if !row[0].Equal(series.Str("cy")) || !row[1].IsNull() || !row[2].Equal(series.Float(3.5)) {
		t.Errorf("Row(2) = %v", row)
	}

	if _, err := df.Row(4); !errors.Is(err, floe.ErrInvalidOperation) {
		t.Errorf("Row(4) error = %v, want ErrInvalidOperation", err)
	}
}

func TestRowCountUsesLongestColumn(t *testing.T) {
	// New rejects ragged columns, but RowCount itself must not trust the
	// first column's length.
	df := &DataFrame{
		cols: map[string]*series.Series{
			"a": series.NewInt32("a", []int32{1}, nil),
			"b": series.NewInt32("b", []int32{1, 2, 3}, nil),
		},
		order: []string{"a", "b"},
	}
	if df.RowCount() != 3 {
		t.Errorf("RowCount() = %d, want 3", df.RowCount())
	}
}

func TestFrameHead(t *testing.T) {
	df := peopleFrame(t)

	head, err := df.Head(2)
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}
	checkColumn(t, head, "name", []series.Value{series.Str("ana"), series.Str("bo")})

	all, err := df.Head(10)
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}
	if all.RowCount() != 4 {
		t.Errorf("Head(10).RowCount() = %d, want 4", all.RowCount())
	}
}
