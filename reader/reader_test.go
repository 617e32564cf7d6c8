package reader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/linkedin/goavro/v2"

	"github.com/floedata/floe"
	"github.com/floedata/floe/frame"
	"github.com/floedata/floe/series"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func checkColumn(t *testing.T, df *frame.DataFrame, name string, wantType series.DataType, want []series.Value) {
	t.Helper()
	col, err := df.Column(name)
	if err != nil {
		t.Fatalf("Column(%q) error = %v", name, err)
	}
	if col.DataType() != wantType {
		t.Errorf("column %q type = %v, want %v", name, col.DataType(), wantType)
	}
	if col.Len() != len(want) {
		t.Fatalf("column %q length = %d, want %d", name, col.Len(), len(want))
	}
	for i, w := range want {
		if got := col.Get(i); !got.Equal(w) {
			t.Errorf("column %q row %d = %v, want %v", name, i, got, w)
		}
	}
}

func TestLoadCSVInference(t *testing.T) {
	path := writeFile(t, "data.csv",
		"id,score,active,label,mixed\n"+
			"1,1.5,true,alpha,7\n"+
			"2,,false,beta,x\n"+
			"3,2.25,true,,9\n")

	df, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	checkColumn(t, df, "id", series.TypeInt32, []series.Value{series.Int(1), series.Int(2), series.Int(3)})
	checkColumn(t, df, "score", series.TypeFloat64, []series.Value{series.Float(1.5), series.Null(), series.Float(2.25)})
	checkColumn(t, df, "active", series.TypeBool, []series.Value{series.BoolVal(true), series.BoolVal(false), series.BoolVal(true)})
	checkColumn(t, df, "label", series.TypeString, []series.Value{series.Str("alpha"), series.Str("beta"), series.Null()})
	// One non-numeric cell pushes the whole column to string.
	checkColumn(t, df, "mixed", series.TypeString, []series.Value{series.Str("7"), series.Str("x"), series.Str("9")})
}

func TestLoadCSVIntPrecedesFloat(t *testing.T) {
	path := writeFile(t, "nums.csv", "n\n1\n2\n")
	df, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	checkColumn(t, df, "n", series.TypeInt32, []series.Value{series.Int(1), series.Int(2)})
}

func TestLoadCSVRaggedRow(t *testing.T) {
	path := writeFile(t, "bad.csv", "a,b\n1\n")
	if _, err := LoadCSV(path); !errors.Is(err, floe.ErrParsing) {
		t.Errorf("LoadCSV() error = %v, want ErrParsing", err)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "rows.json",
		`[{"name":"a","n":1,"f":1.5},{"name":"b","n":2},{"name":"c","n":3,"f":2.5}]`)

	df, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// Columns come out in name order; missing keys are null.
	names := df.ColumnNames()
	want := []string{"f", "n", "name"}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("ColumnNames() = %v, want %v", names, want)
		}
	}
	checkColumn(t, df, "n", series.TypeInt32, []series.Value{series.Int(1), series.Int(2), series.Int(3)})
	checkColumn(t, df, "f", series.TypeFloat64, []series.Value{series.Float(1.5), series.Null(), series.Float(2.5)})
}

func TestLoadJSONLines(t *testing.T) {
	path := writeFile(t, "rows.jsonl",
		`{"x":1,"y":"a"}`+"\n\n"+`{"x":2.5,"y":"b"}`+"\n")

	df, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// An integral first cell widens when a fractional one follows.
	checkColumn(t, df, "x", series.TypeFloat64, []series.Value{series.Float(1), series.Float(2.5)})
	checkColumn(t, df, "y", series.TypeString, []series.Value{series.Str("a"), series.Str("b")})
}

func TestLoadAvro(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.avro")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating avro file: %v", err)
	}

	const schemaJSON = `{
		"type": "record",
		"name": "Event",
		"fields": [
			{"name": "id", "type": "int"},
			{"name": "note", "type": ["null", "string"], "default": null}
		]
	}`
	w, err := goavro.NewOCFWriter(goavro.OCFConfig{W: f, Schema: schemaJSON})
	if err != nil {
		t.Fatalf("NewOCFWriter() error = %v", err)
	}
	err = w.Append([]interface{}{
		map[string]interface{}{"id": 1, "note": map[string]interface{}{"string": "hello"}},
		map[string]interface{}{"id": 2, "note": nil},
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing avro file: %v", err)
	}

	df, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	checkColumn(t, df, "id", series.TypeInt32, []series.Value{series.Int(1), series.Int(2)})
	checkColumn(t, df, "note", series.TypeString, []series.Value{series.Str("hello"), series.Null()})
}

func TestLoadUnknownExtension(t *testing.T) {
	if _, err := Load("data.xml"); !errors.Is(err, floe.ErrUnsupported) {
		t.Errorf("Load() error = %v, want ErrUnsupported", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); !errors.Is(err, floe.ErrFileIO) {
		t.Errorf("Load() error = %v, want ErrFileIO", err)
	}
}

func TestLoadWithSchemaDatetimeOverride(t *testing.T) {
	csvPath := writeFile(t, "events.csv", "ts,v\n1700000000,1\n1700000060,2\n")
	schemaPath := writeFile(t, "schema.yaml", "columns:\n  ts: datetime\n")

	df, err := LoadWithSchema(csvPath, schemaPath)
	if err != nil {
		t.Fatalf("LoadWithSchema() error = %v", err)
	}
	// Epoch seconds parse as a big float without the override; with it the
	// column is datetime.
	checkColumn(t, df, "ts", series.TypeDateTime, []series.Value{series.Time(1700000000), series.Time(1700000060)})
	checkColumn(t, df, "v", series.TypeInt32, []series.Value{series.Int(1), series.Int(2)})
}

func TestLoadSchemaValidation(t *testing.T) {
	bad := writeFile(t, "bad.yaml", "columns:\n  ts: epoch\n")
	if _, err := LoadSchema(bad); !errors.Is(err, floe.ErrParsing) {
		t.Errorf("LoadSchema() unknown type error = %v, want ErrParsing", err)
	}

	ok := writeFile(t, "ok.yaml", "columns:\n  missing: int32\n")
	schema, err := LoadSchema(ok)
	if err != nil {
		t.Fatalf("LoadSchema() error = %v", err)
	}
	df, err := frame.New(series.NewInt32("present", []int32{1}, nil))
	if err != nil {
		t.Fatalf("frame.New() error = %v", err)
	}
	if _, err := schema.Apply(df); !errors.Is(err, floe.ErrColumnNotFound) {
		t.Errorf("Apply() missing column error = %v, want ErrColumnNotFound", err)
	}
}
