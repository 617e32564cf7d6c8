package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/floedata/floe/frame"
)

// TableFormatter renders a frame as an aligned text table. Null cells come
// out as "null".
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer.
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format writes the frame as a text table.
func (t *TableFormatter) Format(df *frame.DataFrame) error {
	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(df.ColumnNames())
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for i := 0; i < df.RowCount(); i++ {
		row, err := df.Row(i)
		if err != nil {
			return err
		}
		record := make([]string, len(row))
		for j, cell := range row {
			record[j] = cell.String()
		}
		table.Append(record)
	}
	table.Render()
	return nil
}
