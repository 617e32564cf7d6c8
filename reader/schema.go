package reader

import (
	"os"

	"sigs.k8s.io/yaml"

	"github.com/floedata/floe"
	"github.com/floedata/floe/frame"
	"github.com/floedata/floe/series"
)

// Schema is a set of per-column type overrides loaded from a YAML
// document:
//
//	columns:
//	  created_at: datetime
//	  score: float64
//
// Type names: int32, float64, bool, string, datetime.
type Schema struct {
	Columns map[string]string `json:"columns"`
}

// LoadSchema reads and validates a YAML schema file.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, floe.FileIO(path, err)
	}
	var s Schema
	if err := yaml.UnmarshalStrict(data, &s); err != nil {
		return nil, floe.Parsing(path, err)
	}
	for _, typeName := range s.Columns {
		if _, err := series.ParseDataType(typeName); err != nil {
			return nil, floe.Parsing(path, err)
		}
	}
	return &s, nil
}

// Apply casts every overridden column of df to its target type, keeping
// column order. Columns named in the schema must exist in the frame.
func (s *Schema) Apply(df *frame.DataFrame) (*frame.DataFrame, error) {
	for name := range s.Columns {
		if !df.HasColumn(name) {
			return nil, floe.ColumnNotFound(name)
		}
	}
	cols := make([]*series.Series, 0, df.ColumnCount())
	for _, name := range df.ColumnNames() {
		col, err := df.Column(name)
		if err != nil {
			return nil, err
		}
		if typeName, ok := s.Columns[name]; ok {
			dtype, err := series.ParseDataType(typeName)
			if err != nil {
				return nil, floe.Parsing("schema", err)
			}
			if col.DataType() != dtype {
				col, err = col.Cast(dtype)
				if err != nil {
					return nil, err
				}
			}
		}
		cols = append(cols, col)
	}
	return frame.New(cols...)
}
