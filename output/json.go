package output

import (
	"encoding/json"
	"io"

	"github.com/floedata/floe/frame"
	"github.com/floedata/floe/series"
)

// JSONFormatter renders a frame as JSON Lines, one object per row. Null
// cells come out as JSON null.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer.
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes the frame as JSON Lines.
func (j *JSONFormatter) Format(df *frame.DataFrame) error {
	encoder := json.NewEncoder(j.writer)
	names := df.ColumnNames()
	for i := 0; i < df.RowCount(); i++ {
		row, err := df.Row(i)
		if err != nil {
			return err
		}
		obj := make(map[string]interface{}, len(names))
		for k, name := range names {
			obj[name] = cellJSON(row[k])
		}
		if err := encoder.Encode(obj); err != nil {
			return err
		}
	}
	return nil
}

// cellJSON maps a cell to its JSON representation.
func cellJSON(v series.Value) interface{} {
	if v.IsNull() {
		return nil
	}
	if x, ok := v.Int32(); ok {
		return x
	}
	if x, ok := v.Float64(); ok {
		return x
	}
	if x, ok := v.Bool(); ok {
		return x
	}
	if x, ok := v.DateTime(); ok {
		return x
	}
	s, _ := v.Text()
	return s
}
