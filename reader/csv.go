package reader

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/floedata/floe"
	"github.com/floedata/floe/frame"
	"github.com/floedata/floe/series"
)

// LoadCSV reads a CSV file with a header row into a dataframe. Each
// column's type is inferred from its cells with the precedence int32,
// float64, bool, string: the first type every non-empty cell parses as
// wins. Empty cells load as null. Datetime columns cannot be told apart
// from plain integers here; load them with a schema override instead.
func LoadCSV(path string) (*frame.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, floe.FileIO(path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, floe.Parsing(path, err)
	}
	if len(records) == 0 {
		return frame.New()
	}

	header := records[0]
	raw := make([][]string, len(header))
	for _, record := range records[1:] {
		if len(record) != len(header) {
			return nil, floe.InvalidOperation("row has %d fields, header has %d", len(record), len(header))
		}
		for c, cell := range record {
			raw[c] = append(raw[c], cell)
		}
	}

	cols := make([]*series.Series, len(header))
	for c, name := range header {
		cols[c] = inferColumn(name, raw[c])
	}
	return frame.New(cols...)
}

// inferColumn builds a typed series from raw CSV cells. Empty cells are
// null in every candidate type.
func inferColumn(name string, raw []string) *series.Series {
	if s, ok := tryInt32Column(name, raw); ok {
		return s
	}
	if s, ok := tryFloat64Column(name, raw); ok {
		return s
	}
	if s, ok := tryBoolColumn(name, raw); ok {
		return s
	}
	values := make([]string, len(raw))
	valid := make([]bool, len(raw))
	for i, cell := range raw {
		if cell != "" {
			values[i] = cell
			valid[i] = true
		}
	}
	return series.NewString(name, values, valid)
}

func tryInt32Column(name string, raw []string) (*series.Series, bool) {
	values := make([]int32, len(raw))
	valid := make([]bool, len(raw))
	any := false
	for i, cell := range raw {
		if cell == "" {
			continue
		}
		x, err := strconv.ParseInt(cell, 10, 32)
		if err != nil {
			return nil, false
		}
		values[i] = int32(x)
		valid[i] = true
		any = true
	}
	if !any {
		return nil, false
	}
	return series.NewInt32(name, values, valid), true
}

func tryFloat64Column(name string, raw []string) (*series.Series, bool) {
	values := make([]float64, len(raw))
	valid := make([]bool, len(raw))
	any := false
	for i, cell := range raw {
		if cell == "" {
			continue
		}
		x, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		values[i] = x
		valid[i] = true
		any = true
	}
	if !any {
		return nil, false
	}
	return series.NewFloat64(name, values, valid), true
}

func tryBoolColumn(name string, raw []string) (*series.Series, bool) {
	values := make([]bool, len(raw))
	valid := make([]bool, len(raw))
	any := false
	for i, cell := range raw {
		if cell == "" {
			continue
		}
		switch cell {
		case "true", "True", "TRUE":
			values[i] = true
		case "false", "False", "FALSE":
		default:
			return nil, false
		}
		valid[i] = true
		any = true
	}
	if !any {
		return nil, false
	}
	return series.NewBool(name, values, valid), true
}
