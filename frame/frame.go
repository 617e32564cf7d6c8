// Package frame implements the DataFrame: an ordered collection of
// equal-length series addressed by column name, together with the eager
// relational operations over it (selection, filtering, sorting, grouping,
// joins and pivoting).
package frame

import (
	"github.com/floedata/floe"
	"github.com/floedata/floe/series"
)

// DataFrame is an immutable table of named columns. All columns have the
// same length; column order is the insertion order and is preserved by
// every operation.
type DataFrame struct {
	cols  map[string]*series.Series
	order []string
}

// New builds a frame from the given columns. Column names must be unique
// and every column must have the same length.
func New(cols ...*series.Series) (*DataFrame, error) {
	df := &DataFrame{cols: make(map[string]*series.Series, len(cols))}
	length := -1
	for _, col := range cols {
		if _, dup := df.cols[col.Name()]; dup {
			return nil, floe.InvalidOperation("duplicate column name %q", col.Name())
		}
		if length == -1 {
			length = col.Len()
		} else if col.Len() != length {
			return nil, floe.InvalidOperation("column %q has length %d, expected %d", col.Name(), col.Len(), length)
		}
		df.cols[col.Name()] = col
		df.order = append(df.order, col.Name())
	}
	return df, nil
}

// empty builds a zero-row frame with the same schema as df.
func (df *DataFrame) emptyLike() *DataFrame {
	out := &DataFrame{cols: make(map[string]*series.Series, len(df.order))}
	for _, name := range df.order {
		out.cols[name] = series.Empty(name, df.cols[name].DataType())
		out.order = append(out.order, name)
	}
	return out
}

// RowCount returns the number of rows. New guarantees equal column
// lengths, but the longest column is authoritative regardless.
func (df *DataFrame) RowCount() int {
	rows := 0
	for _, col := range df.cols {
		if n := col.Len(); n > rows {
			rows = n
		}
	}
	return rows
}

// ColumnCount returns the number of columns.
func (df *DataFrame) ColumnCount() int { return len(df.order) }

// ColumnNames returns the column names in frame order.
func (df *DataFrame) ColumnNames() []string {
	return append([]string{}, df.order...)
}

// Column returns the named column, or an ErrColumnNotFound.
func (df *DataFrame) Column(name string) (*series.Series, error) {
	col, ok := df.cols[name]
	if !ok {
		return nil, floe.ColumnNotFound(name)
	}
	return col, nil
}

// HasColumn reports whether the frame has a column with the given name.
func (df *DataFrame) HasColumn(name string) bool {
	_, ok := df.cols[name]
	return ok
}

// Row returns the cells of row i in column order.
func (df *DataFrame) Row(i int) ([]series.Value, error) {
	if i < 0 || i >= df.RowCount() {
		return nil, floe.InvalidOperation("row index %d out of range for frame with %d rows", i, df.RowCount())
	}
	out := make([]series.Value, len(df.order))
	for j, name := range df.order {
		out[j] = df.cols[name].Get(i)
	}
	return out, nil
}

// Head returns the first n rows, or the whole frame when it has fewer.
func (df *DataFrame) Head(n int) (*DataFrame, error) {
	if n < 0 {
		return nil, floe.InvalidOperation("head count must not be negative")
	}
	if n > df.RowCount() {
		n = df.RowCount()
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return df.FilterByIndices(indices)
}
