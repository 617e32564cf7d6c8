package output

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/floedata/floe"
	"github.com/floedata/floe/frame"
	"github.com/floedata/floe/series"
)

// WriteParquet writes the frame to w as a parquet file. Every column maps
// to an optional leaf field: int32 to INT32, float64 to DOUBLE, bool to
// BOOLEAN, string to STRING and datetime to INT64. Null cells become
// missing values.
func WriteParquet(w io.Writer, df *frame.DataFrame) error {
	group := parquet.Group{}
	for _, name := range df.ColumnNames() {
		col, err := df.Column(name)
		if err != nil {
			return err
		}
		node, err := parquetNode(col.DataType())
		if err != nil {
			return err
		}
		group[name] = parquet.Optional(node)
	}
	schema := parquet.NewSchema("frame", group)

	rows := make([]map[string]interface{}, df.RowCount())
	for i := range rows {
		row, err := df.Row(i)
		if err != nil {
			return err
		}
		obj := make(map[string]interface{}, len(row))
		for j, name := range df.ColumnNames() {
			obj[name] = cellJSON(row[j])
		}
		rows[i] = obj
	}

	writer := parquet.NewGenericWriter[map[string]interface{}](w, schema)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// SaveParquet writes the frame to a new parquet file at path.
func SaveParquet(path string, df *frame.DataFrame) error {
	f, err := os.Create(path)
	if err != nil {
		return floe.FileIO(path, err)
	}
	if err := WriteParquet(f, df); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func parquetNode(dtype series.DataType) (parquet.Node, error) {
	switch dtype {
	case series.TypeInt32:
		return parquet.Int(32), nil
	case series.TypeFloat64:
		return parquet.Leaf(parquet.DoubleType), nil
	case series.TypeBool:
		return parquet.Leaf(parquet.BooleanType), nil
	case series.TypeString:
		return parquet.String(), nil
	case series.TypeDateTime:
		return parquet.Int(64), nil
	default:
		return nil, floe.Unsupported("parquet mapping for %s columns", dtype)
	}
}
