package frame

import (
	"github.com/floedata/floe/series"
)

// DropNulls returns the rows that have no null cell in any column.
func (df *DataFrame) DropNulls() (*DataFrame, error) {
	var keep []int
	for i := 0; i < df.RowCount(); i++ {
		hasNull := false
		for _, name := range df.order {
			if !df.cols[name].Valid(i) {
				hasNull = true
				break
			}
		}
		if !hasNull {
			keep = append(keep, i)
		}
	}
	return df.FilterByIndices(keep)
}

// FillNulls replaces null cells with value in every column whose type
// matches the value's type. Columns of other types pass through untouched.
func (df *DataFrame) FillNulls(value series.Value) (*DataFrame, error) {
	vt, ok := value.Type()
	if !ok {
		return df, nil
	}
	cols := make([]*series.Series, 0, len(df.order))
	for _, name := range df.order {
		col := df.cols[name]
		if col.DataType() != vt {
			cols = append(cols, col)
			continue
		}
		filled, err := col.FillNull(value)
		if err != nil {
			return nil, err
		}
		cols = append(cols, filled)
	}
	return New(cols...)
}

// InterpolateNulls linearly interpolates interior null runs in every
// numeric column. Non-numeric columns pass through untouched.
func (df *DataFrame) InterpolateNulls() (*DataFrame, error) {
	cols := make([]*series.Series, 0, len(df.order))
	for _, name := range df.order {
		col := df.cols[name]
		switch col.DataType() {
		case series.TypeInt32, series.TypeFloat64:
			filled, err := col.InterpolateNulls()
			if err != nil {
				return nil, err
			}
			cols = append(cols, filled)
		default:
			cols = append(cols, col)
		}
	}
	return New(cols...)
}
