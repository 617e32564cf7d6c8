package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/floedata/floe/frame"
	"github.com/floedata/floe/series"
)

// CSVFormatter renders a frame as CSV with a header row. Null cells come
// out as empty fields.
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter.
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer.
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the frame as CSV.
func (c *CSVFormatter) Format(df *frame.DataFrame) error {
	csvWriter := csv.NewWriter(c.writer)
	names := df.ColumnNames()

	if err := csvWriter.Write(names); err != nil {
		return err
	}

	record := make([]string, len(names))
	for i := 0; i < df.RowCount(); i++ {
		row, err := df.Row(i)
		if err != nil {
			return err
		}
		for j, cell := range row {
			record[j] = cellString(cell)
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// cellString renders a cell for CSV output; nulls are empty fields.
func cellString(v series.Value) string {
	if v.IsNull() {
		return ""
	}
	return v.String()
}
