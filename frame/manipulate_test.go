package frame

import (
	"errors"
	"testing"

	"github.com/floedata/floe"
	"github.com/floedata/floe/series"
)

func TestSelectAndDropColumns(t *testing.T) {
	df := peopleFrame(t)

	sel, err := df.SelectColumns("score", "name")
	if err != nil {
		t.Fatalf("SelectColumns() error = %v", err)
	}
	names := sel.ColumnNames()
	if names[0] != "score" || names[1] != "name" {
		t.Errorf("SelectColumns order = %v, want [score name]", names)
	}

	if _, err := df.SelectColumns("nope"); !errors.Is(err, floe.ErrColumnNotFound) {
		t.Errorf("SelectColumns(nope) error = %v, want ErrColumnNotFound", err)
	}

	dropped, err := df.DropColumns("age")
	if err != nil {
		t.Fatalf("DropColumns() error = %v", err)
	}
	if dropped.HasColumn("age") || dropped.ColumnCount() != 2 {
		t.Errorf("DropColumns left %v", dropped.ColumnNames())
	}

	if _, err := df.DropColumns("nope"); !errors.Is(err, floe.ErrColumnNotFound) {
		t.Errorf("DropColumns(nope) error = %v, want ErrColumnNotFound", err)
	}
}

func TestRenameColumn(t *testing.T) {
	df := peopleFrame(t)

	renamed, err := df.RenameColumn("age", "years")
	if err != nil {
		t.Fatalf("RenameColumn() error = %v", err)
	}
	names := renamed.ColumnNames()
	if names[1] != "years" {
		t.Errorf("renamed column order = %v, want years second", names)
	}

	if _, err := df.RenameColumn("age", "name"); !errors.Is(err, floe.ErrInvalidOperation) {
		t.Errorf("RenameColumn collision error = %v, want ErrInvalidOperation", err)
	}
	if _, err := df.RenameColumn("nope", "x"); !errors.Is(err, floe.ErrColumnNotFound) {
		t.Errorf("RenameColumn missing error = %v, want ErrColumnNotFound", err)
	}
}

func TestFilterConditions(t *testing.T) {
	df := peopleFrame(t)

	tests := []struct {
		name      string
		cond      Condition
		wantNames []series.Value
		wantErr   error
	}{
		{
			name:      "gt drops null cells",
			cond:      Gt("age", series.Int(26)),
			wantNames: []series.Value{series.Str("ana"), series.Str("dee")},
		},
		{
			name:      "eq",
			cond:      Eq("name", series.Str("bo")),
			wantNames: []series.Value{series.Str("bo")},
		},
		{
			name:      "lt with float literal against int column",
			cond:      Lt("age", series.Float(30.5)),
			wantNames: []series.Value{series.Str("ana"), series.Str("bo")},
		},
		{
			name:      "and",
			cond:      And(Gt("age", series.Int(26)), Lt("score", series.Float(2.0))),
			wantNames: []series.Value{series.Str("ana")},
		},
		{
			name:      "or",
			cond:      Or(Eq("name", series.Str("bo")), Eq("name", series.Str("dee"))),
			wantNames: []series.Value{series.Str("bo"), series.Str("dee")},
		},
		{
			name:      "not keeps null cells",
			cond:      Not(Gt("age", series.Int(26))),
			wantNames: []series.Value{series.Str("bo"), series.Str("cy")},
		},
		{
			name:    "type mismatch",
			cond:    Gt("name", series.Int(1)),
			wantErr: floe.ErrDataTypeMismatch,
		},
		{
			name:    "missing column",
			cond:    Eq("nope", series.Int(1)),
			wantErr: floe.ErrColumnNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := df.Filter(tt.cond)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Filter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Filter() error = %v", err)
			}
			checkColumn(t, out, "name", tt.wantNames)
		})
	}
}

func TestFilterByMask(t *testing.T) {
	df := peopleFrame(t)

	mask := series.NewBool("m", []bool{true, false, true, true}, []bool{true, true, false, true})
	out, err := df.FilterByMask(mask)
	if err != nil {
		t.Fatalf("FilterByMask() error = %v", err)
	}
	// Null mask slots drop the row, same as false.
	checkColumn(t, out, "name", []series.Value{series.Str("ana"), series.Str("dee")})

	if _, err := df.FilterByMask(series.NewInt32("m", []int32{1, 2, 3, 4}, nil)); !errors.Is(err, floe.ErrDataTypeMismatch) {
		t.Errorf("non-bool mask error = %v, want ErrDataTypeMismatch", err)
	}
	if _, err := df.FilterByMask(series.NewBool("m", []bool{true}, nil)); !errors.Is(err, floe.ErrInvalidOperation) {
		t.Errorf("short mask error = %v, want ErrInvalidOperation", err)
	}
}

func TestSort(t *testing.T) {
	df := mustFrame(t,
		series.NewInt32("grp", []int32{2, 1, 0, 1}, []bool{true, true, false, true}),
		series.NewString("tag", []string{"w", "x", "y", "z"}, nil),
	)

	asc, err := df.Sort([]string{"grp"}, true)
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	// Nulls first; equal keys keep their input order.
	checkColumn(t, asc, "tag", []series.Value{series.Str("y"), series.Str("x"), series.Str("z"), series.Str("w")})

	desc, err := df.Sort([]string{"grp"}, false)
	if err != nil {
		t.Fatalf("Sort() desc error = %v", err)
	}
	checkColumn(t, desc, "tag", []series.Value{series.Str("w"), series.Str("x"), series.Str("z"), series.Str("y")})

	// Sorting an already-sorted frame changes nothing.
	again, err := asc.Sort([]string{"grp"}, true)
	if err != nil {
		t.Fatalf("Sort() again error = %v", err)
	}
	checkColumn(t, again, "tag", []series.Value{series.Str("y"), series.Str("x"), series.Str("z"), series.Str("w")})

	if _, err := df.Sort(nil, true); !errors.Is(err, floe.ErrInvalidOperation) {
		t.Errorf("Sort() with no keys error = %v, want ErrInvalidOperation", err)
	}
	if _, err := df.Sort([]string{"nope"}, true); !errors.Is(err, floe.ErrColumnNotFound) {
		t.Errorf("Sort() missing key error = %v, want ErrColumnNotFound", err)
	}
}

func TestSortMultiKey(t *testing.T) {
	df := mustFrame(t,
		series.NewInt32("a", []int32{1, 2, 1, 2}, nil),
		series.NewInt32("b", []int32{9, 1, 3, 0}, nil),
	)
	out, err := df.Sort([]string{"a", "b"}, true)
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	checkColumn(t, out, "b", []series.Value{series.Int(3), series.Int(9), series.Int(0), series.Int(1)})
}

func TestAppendFrames(t *testing.T) {
	a := mustFrame(t,
		series.NewInt32("x", []int32{1}, nil),
		series.NewString("y", []string{"a"}, nil),
	)
	b := mustFrame(t,
		series.NewInt32("x", []int32{2}, nil),
		series.NewString("y", []string{"b"}, nil),
	)

	out, err := a.Append(b)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	checkColumn(t, out, "x", []series.Value{series.Int(1), series.Int(2)})
	checkColumn(t, out, "y", []series.Value{series.Str("a"), series.Str("b")})

	c := mustFrame(t, series.NewInt32("x", []int32{3}, nil))
	if _, err := a.Append(c); !errors.Is(err, floe.ErrInvalidOperation) {
		t.Errorf("Append() schema mismatch error = %v, want ErrInvalidOperation", err)
	}

	// Same schema but a different column order is a mismatch too.
	reordered := mustFrame(t,
		series.NewString("y", []string{"c"}, nil),
		series.NewInt32("x", []int32{4}, nil),
	)
	if _, err := a.Append(reordered); !errors.Is(err, floe.ErrInvalidOperation) {
		t.Errorf("Append() reordered columns error = %v, want ErrInvalidOperation", err)
	}
}

func TestWithColumn(t *testing.T) {
	df := mustFrame(t,
		series.NewInt32("a", []int32{10, 20, 7}, nil),
		series.NewInt32("b", []int32{2, 0, 0}, []bool{true, true, false}),
	)

	out, err := df.WithColumn("ratio", Divide(Col("a"), Col("b")))
	if err != nil {
		t.Fatalf("WithColumn() error = %v", err)
	}
	// Division by zero and null operands both come out null.
	checkColumn(t, out, "ratio", []series.Value{series.Int(5), series.Null(), series.Null()})

	out2, err := df.WithColumn("scaled", Multiply(Col("a"), Lit(series.Float(0.5))))
	if err != nil {
		t.Fatalf("WithColumn() error = %v", err)
	}
	checkColumn(t, out2, "scaled", []series.Value{series.Float(5), series.Float(10), series.Float(3.5)})

	if _, err := df.WithColumn("a", Col("b")); !errors.Is(err, floe.ErrInvalidOperation) {
		t.Errorf("WithColumn() existing name error = %v, want ErrInvalidOperation", err)
	}
	if _, err := df.WithColumn("z", Col("nope")); !errors.Is(err, floe.ErrColumnNotFound) {
		t.Errorf("WithColumn() missing ref error = %v, want ErrColumnNotFound", err)
	}
}

func TestDescribe(t *testing.T) {
	df := mustFrame(t,
		series.NewInt32("n", []int32{1, 2, 0}, []bool{true, true, false}),
		series.NewString("s", []string{"a", "b", "b"}, nil),
	)

	desc, err := df.Describe()
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	// One row per source column.
	if desc.RowCount() != 2 {
		t.Fatalf("Describe() rows = %d, want 2", desc.RowCount())
	}
	if got := desc.ColumnNames(); len(got) != 7 || got[0] != "column" {
		t.Fatalf("Describe() columns = %v, want [column count mean std min max median]", got)
	}
	checkColumn(t, desc, "column", []series.Value{series.Str("n"), series.Str("s")})
	checkColumn(t, desc, "count", []series.Value{series.Int(2), series.Int(3)})
	// Stats are typed, not stringified, and null for non-numeric columns.
	checkColumn(t, desc, "mean", []series.Value{series.Float(1.5), series.Null()})
	checkColumn(t, desc, "min", []series.Value{series.Float(1), series.Null()})
	checkColumn(t, desc, "max", []series.Value{series.Float(2), series.Null()})
	checkColumn(t, desc, "median", []series.Value{series.Float(1.5), series.Null()})

	std, err := desc.Column("std")
	if err != nil {
		t.Fatalf("Column(std) error = %v", err)
	}
	if std.DataType() != series.TypeFloat64 {
		t.Errorf("std DataType() = %v, want TypeFloat64", std.DataType())
	}
	if !std.Get(1).IsNull() {
		t.Errorf("std of s = %v, want null", std.Get(1))
	}
}

func TestFrameCorrelation(t *testing.T) {
	df := mustFrame(t,
		series.NewFloat64("x", []float64{1, 2, 3}, nil),
		series.NewFloat64("y", []float64{2, 4, 6}, nil),
	)
	corr, err := df.Correlation("x", "y")
	if err != nil {
		t.Fatalf("Correlation() error = %v", err)
	}
	f, _ := corr.Float64()
	if f != 1.0 {
		t.Errorf("Correlation() = %v, want 1.0", f)
	}
	if _, err := df.Correlation("x", "nope"); !errors.Is(err, floe.ErrColumnNotFound) {
		t.Errorf("Correlation() missing column error = %v, want ErrColumnNotFound", err)
	}
}
