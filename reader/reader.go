// Package reader loads dataframes from external files.
//
// Load dispatches on the file extension and supports CSV (with automatic
// type inference), JSON arrays, JSON Lines, Avro object container files
// and Apache Parquet. LoadWithSchema additionally applies per-column type
// overrides from a YAML schema document, for cases inference cannot
// express, such as epoch-second columns that should load as datetime.
package reader

import (
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/floedata/floe"
	"github.com/floedata/floe/frame"
	"github.com/floedata/floe/series"
)

// Load reads the file at path into a dataframe, picking the decoder from
// the extension: .csv, .json, .jsonl (or .ndjson), .avro, .parquet.
func Load(path string) (*frame.DataFrame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".json":
		return LoadJSON(path)
	case ".jsonl", ".ndjson":
		return LoadJSONLines(path)
	case ".avro":
		return LoadAvro(path)
	case ".parquet":
		return LoadParquet(path)
	default:
		return nil, floe.Unsupported("no reader for file %q", path)
	}
}

// LoadWithSchema reads the file at path and then applies the column type
// overrides from the YAML schema file at schemaPath.
func LoadWithSchema(path, schemaPath string) (*frame.DataFrame, error) {
	df, err := Load(path)
	if err != nil {
		return nil, err
	}
	schema, err := LoadSchema(schemaPath)
	if err != nil {
		return nil, err
	}
	return schema.Apply(df)
}

// framize converts decoded rows into a dataframe. columns fixes the column
// order; when nil, the union of row keys is used in sorted order. Each
// column's type comes from its first non-null cell; cells that do not fit
// the column type become null.
func framize(rows []map[string]interface{}, columns []string) (*frame.DataFrame, error) {
	if columns == nil {
		seen := make(map[string]bool)
		for _, row := range rows {
			for k := range row {
				if !seen[k] {
					seen[k] = true
					columns = append(columns, k)
				}
			}
		}
		sort.Strings(columns)
	}

	cols := make([]*series.Series, 0, len(columns))
	for _, name := range columns {
		values := make([]series.Value, len(rows))
		dtype := series.TypeString
		typed := false
		for i, row := range rows {
			values[i] = anyToValue(row[name])
			dt, ok := values[i].Type()
			if !ok {
				continue
			}
			switch {
			case !typed:
				dtype = dt
				typed = true
			case dtype == series.TypeInt32 && dt == series.TypeFloat64:
				// A later fractional cell widens the whole column.
				dtype = series.TypeFloat64
			}
		}
		cols = append(cols, series.FromValues(name, dtype, values))
	}
	return frame.New(cols...)
}

// anyToValue maps a decoded Go value onto the column value model. Integers
// that do not fit int32 widen to float64.
func anyToValue(v interface{}) series.Value {
	switch x := v.(type) {
	case nil:
		return series.Null()
	case bool:
		return series.BoolVal(x)
	case int32:
		return series.Int(x)
	case int:
		return intValue(int64(x))
	case int64:
		return intValue(x)
	case float32:
		return series.Float(float64(x))
	case float64:
		// JSON numbers always decode as float64; keep integral ones int32.
		if x == math.Trunc(x) && x >= math.MinInt32 && x <= math.MaxInt32 {
			return series.Int(int32(x))
		}
		return series.Float(x)
	case string:
		return series.Str(x)
	case []byte:
		return series.Str(string(x))
	default:
		return series.Null()
	}
}

func intValue(x int64) series.Value {
	if x >= math.MinInt32 && x <= math.MaxInt32 {
		return series.Int(int32(x))
	}
	return series.Float(float64(x))
}
