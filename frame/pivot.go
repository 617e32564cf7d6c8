package frame

import (
	"sort"

	"github.com/floedata/floe"
	"github.com/floedata/floe/series"
)

// Pivot reshapes the frame from long to wide form. Rows are grouped by the
// index columns; each distinct value of the pivot column becomes an output
// column holding the aggregated values column for that cell. Cells with no
// backing rows come out null. Output rows are ordered by index tuple and
// pivot columns by their stringified header, both under the value total
// order, so the result is deterministic.
func (df *DataFrame) Pivot(index []string, pivotCol, valueCol, aggFn string) (*DataFrame, error) {
	if len(index) == 0 {
		return nil, floe.InvalidOperation("pivot requires at least one index column")
	}
	if _, err := df.Column(pivotCol); err != nil {
		return nil, err
	}
	values, err := df.Column(valueCol)
	if err != nil {
		return nil, err
	}

	// One flat aggregation over index+pivot gives every cell of the wide
	// table.
	grouped, err := df.GroupBy(append(append([]string{}, index...), pivotCol)...)
	if err != nil {
		return nil, err
	}
	flat, err := grouped.Agg(Aggregation{Column: valueCol, Function: aggFn})
	if err != nil {
		return nil, err
	}

	aggName := valueCol + "_" + aggFn
	aggCol, err := flat.Column(aggName)
	if err != nil {
		return nil, err
	}
	pivotVals, err := flat.Column(pivotCol)
	if err != nil {
		return nil, err
	}
	idxCols := make([]*series.Series, len(index))
	for i, name := range index {
		col, err := flat.Column(name)
		if err != nil {
			return nil, err
		}
		idxCols[i] = col
	}

	// Collect headers and wide rows from the flat aggregation.
	type wideRow struct {
		key   []series.Value
		cells map[string]series.Value
	}
	var rows []*wideRow
	rowAt := make(map[string]*wideRow)
	headerSet := make(map[string]series.Value)

	var hasher rowHasher
	for i := 0; i < flat.RowCount(); i++ {
		_, tuple := hasher.hashRow(idxCols, i)
		rowKey := string(hasher.buf)
		row, ok := rowAt[rowKey]
		if !ok {
			row = &wideRow{key: tuple, cells: make(map[string]series.Value)}
			rowAt[rowKey] = row
			rows = append(rows, row)
		}
		pv := pivotVals.Get(i)
		header := pv.String()
		headerSet[header] = pv
		row.cells[header] = aggCol.Get(i)
	}

	headers := make([]string, 0, len(headerSet))
	for h := range headerSet {
		headers = append(headers, h)
	}
	sort.Slice(headers, func(a, b int) bool {
		return headerSet[headers[a]].Compare(headerSet[headers[b]]) < 0
	})

	// The flat frame is already key-sorted, so rows appear in tuple order;
	// keep it explicit anyway.
	sort.SliceStable(rows, func(a, b int) bool {
		return compareTuples(rows[a].key, rows[b].key) < 0
	})

	cols := make([]*series.Series, 0, len(index)+len(headers))
	for k, name := range index {
		vals := make([]series.Value, len(rows))
		for r, row := range rows {
			vals[r] = row.key[k]
		}
		cols = append(cols, series.FromValues(name, idxCols[k].DataType(), vals))
	}
	cellType := aggResultType(values.DataType(), aggFn)
	for _, header := range headers {
		vals := make([]series.Value, len(rows))
		for r, row := range rows {
			if v, ok := row.cells[header]; ok {
				vals[r] = v
			} else {
				vals[r] = series.Null()
			}
		}
		cols = append(cols, series.FromValues(header, cellType, vals))
	}
	return New(cols...)
}
