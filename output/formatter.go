// Package output renders dataframes to external formats.
//
// Supported formats:
//   - CSV: comma-separated values with a header row
//   - JSON Lines: one JSON object per row
//   - table: aligned text table for terminals
//   - Parquet: via WriteParquet
//
// Example usage:
//
//	formatter := output.NewTableFormatter(os.Stdout)
//	if err := formatter.Format(df); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"io"

	"github.com/floedata/floe/frame"
)

// Formatter renders a dataframe to some textual format.
type Formatter interface {
	// Format writes the frame in the formatter's specific format.
	Format(df *frame.DataFrame) error

	// SetOutput changes the output writer.
	SetOutput(w io.Writer)
}
