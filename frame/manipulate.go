package frame

import (
	"sort"

	"github.com/floedata/floe"
	"github.com/floedata/floe/series"
)

// SelectColumns returns a frame holding only the named columns, in the
// order given.
func (df *DataFrame) SelectColumns(names ...string) (*DataFrame, error) {
	cols := make([]*series.Series, 0, len(names))
	for _, name := range names {
		col, err := df.Column(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return New(cols...)
}

// DropColumns returns a frame without the named columns. Every name must
// exist.
func (df *DataFrame) DropColumns(names ...string) (*DataFrame, error) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		if !df.HasColumn(name) {
			return nil, floe.ColumnNotFound(name)
		}
		drop[name] = true
	}
	var keep []string
	for _, name := range df.order {
		if !drop[name] {
			keep = append(keep, name)
		}
	}
	return df.SelectColumns(keep...)
}

// RenameColumn returns a frame with column old renamed to new, keeping its
// position. The new name must not collide with an existing column.
func (df *DataFrame) RenameColumn(oldName, newName string) (*DataFrame, error) {
	col, err := df.Column(oldName)
	if err != nil {
		return nil, err
	}
	if newName != oldName && df.HasColumn(newName) {
		return nil, floe.InvalidOperation("column %q already exists", newName)
	}
	cols := make([]*series.Series, 0, len(df.order))
	for _, name := range df.order {
		if name == oldName {
			cols = append(cols, col.Rename(newName))
		} else {
			cols = append(cols, df.cols[name])
		}
	}
	return New(cols...)
}

// FilterByIndices returns a frame holding the rows at the given indices,
// in order. Indices may repeat.
func (df *DataFrame) FilterByIndices(indices []int) (*DataFrame, error) {
	cols := make([]*series.Series, 0, len(df.order))
	for _, name := range df.order {
		taken, err := df.cols[name].Take(indices)
		if err != nil {
			return nil, err
		}
		cols = append(cols, taken)
	}
	return New(cols...)
}

// FilterByMask returns the rows where the boolean mask series is valid and
// true. The mask must be a bool series of the frame's row count.
func (df *DataFrame) FilterByMask(mask *series.Series) (*DataFrame, error) {
	if mask.DataType() != series.TypeBool {
		return nil, floe.DataTypeMismatch("filter mask must be bool, got %s", mask.DataType())
	}
	if mask.Len() != df.RowCount() {
		return nil, floe.InvalidOperation("filter mask has length %d but frame has %d rows", mask.Len(), df.RowCount())
	}
	var indices []int
	for i := 0; i < mask.Len(); i++ {
		if b, ok := mask.Get(i).Bool(); ok && b {
			indices = append(indices, i)
		}
	}
	return df.FilterByIndices(indices)
}

// Filter returns the rows for which the condition evaluates to true.
func (df *DataFrame) Filter(cond Condition) (*DataFrame, error) {
	var indices []int
	for i := 0; i < df.RowCount(); i++ {
		ok, err := cond.Evaluate(df, i)
		if err != nil {
			return nil, err
		}
		if ok {
			indices = append(indices, i)
		}
	}
	return df.FilterByIndices(indices)
}

// Sort returns the frame reordered by the given key columns. The sort is
// stable, so rows equal on every key keep their relative order, and nulls
// sort first under the value total order. A false ascending reverses the
// direction of every key.
func (df *DataFrame) Sort(by []string, ascending bool) (*DataFrame, error) {
	if len(by) == 0 {
		return nil, floe.InvalidOperation("sort requires at least one key column")
	}
	keys := make([]*series.Series, len(by))
	for i, name := range by {
		col, err := df.Column(name)
		if err != nil {
			return nil, err
		}
		keys[i] = col
	}

	perm := make([]int, df.RowCount())
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		for _, key := range keys {
			c := key.Get(perm[a]).Compare(key.Get(perm[b]))
			if c == 0 {
				continue
			}
			if ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
	return df.FilterByIndices(perm)
}

// Append returns the row-wise concatenation of two frames. Both must have
// identical column names, order and types.
func (df *DataFrame) Append(other *DataFrame) (*DataFrame, error) {
	if len(df.order) != len(other.order) {
		return nil, floe.InvalidOperation("cannot append frame with %d columns to frame with %d", len(other.order), len(df.order))
	}
	cols := make([]*series.Series, 0, len(df.order))
	for i, name := range df.order {
		if other.order[i] != name {
			return nil, floe.InvalidOperation("column %d is %q in one frame and %q in the other", i, name, other.order[i])
		}
		merged, err := df.cols[name].Append(other.cols[name])
		if err != nil {
			return nil, err
		}
		cols = append(cols, merged)
	}
	return New(cols...)
}

// WithColumn returns the frame extended with a new column computed by
// evaluating expr for every row. The column type is taken from the first
// non-null result; a column of all nulls defaults to float64.
func (df *DataFrame) WithColumn(name string, expr Expr) (*DataFrame, error) {
	if df.HasColumn(name) {
		return nil, floe.InvalidOperation("column %q already exists", name)
	}
	n := df.RowCount()
	values := make([]series.Value, n)
	dtype := series.TypeFloat64
	typed := false
	for i := 0; i < n; i++ {
		v, err := expr.Eval(df, i)
		if err != nil {
			return nil, err
		}
		values[i] = v
		if !typed {
			if dt, ok := v.Type(); ok {
				dtype = dt
				typed = true
			}
		}
	}
	col := series.FromValues(name, dtype, values)
	cols := make([]*series.Series, 0, len(df.order)+1)
	for _, existing := range df.order {
		cols = append(cols, df.cols[existing])
	}
	cols = append(cols, col)
	return New(cols...)
}

// Correlation returns the Pearson correlation between two numeric columns.
func (df *DataFrame) Correlation(col1, col2 string) (series.Value, error) {
	a, err := df.Column(col1)
	if err != nil {
		return series.Null(), err
	}
	b, err := df.Column(col2)
	if err != nil {
		return series.Null(), err
	}
	return a.Correlation(b)
}

// Covariance returns the sample covariance between two numeric columns.
func (df *DataFrame) Covariance(col1, col2 string) (series.Value, error) {
	a, err := df.Column(col1)
	if err != nil {
		return series.Null(), err
	}
	b, err := df.Column(col2)
	if err != nil {
		return series.Null(), err
	}
	return a.Covariance(b)
}

// describeStats lists the statistical columns produced by Describe, in
// output order.
var describeStats = []string{"mean", "std", "min", "max", "median"}

// Describe returns a summary frame with one row per input column: its
// name, valid count, and mean/std/min/max/median. The statistical fields
// are null for non-numeric columns.
func (df *DataFrame) Describe() (*DataFrame, error) {
	n := len(df.order)
	names := make([]string, n)
	counts := make([]int32, n)
	stats := make(map[string][]series.Value, len(describeStats))
	for _, stat := range describeStats {
		stats[stat] = make([]series.Value, n)
	}

	for i, name := range df.order {
		col := df.cols[name]
		names[i] = name
		counts[i] = int32(col.Count())
		numeric := col.DataType() == series.TypeInt32 || col.DataType() == series.TypeFloat64
		for _, stat := range describeStats {
			if numeric {
				stats[stat][i] = describeStat(col, stat)
			} else {
				stats[stat][i] = series.Null()
			}
		}
	}

	cols := []*series.Series{
		series.NewString("column", names, nil),
		series.NewInt32("count", counts, nil),
	}
	for _, stat := range describeStats {
		cols = append(cols, series.FromValues(stat, series.TypeFloat64, stats[stat]))
	}
	return New(cols...)
}

func describeStat(col *series.Series, stat string) series.Value {
	var v series.Value
	var err error
	switch stat {
	case "mean":
		v, err = col.Mean()
	case "std":
		v, err = col.StdDev()
	case "min":
		v, err = col.Min()
	case "max":
		v, err = col.Max()
	case "median":
		v, err = col.Median()
	}
	if err != nil {
		return series.Null()
	}
	return v
}
