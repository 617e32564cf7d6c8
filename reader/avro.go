package reader

import (
	"os"

	"github.com/linkedin/goavro/v2"

	"github.com/floedata/floe"
	"github.com/floedata/floe/frame"
)

// LoadAvro reads an Avro object container file into a dataframe. Records
// must be flat; union-typed fields decode to their branch value, with the
// null branch loading as null.
func LoadAvro(path string) (*frame.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, floe.FileIO(path, err)
	}
	defer f.Close()

	ocf, err := goavro.NewOCFReader(f)
	if err != nil {
		return nil, floe.Parsing(path, err)
	}

	var rows []map[string]interface{}
	for ocf.Scan() {
		datum, err := ocf.Read()
		if err != nil {
			return nil, floe.Parsing(path, err)
		}
		record, ok := datum.(map[string]interface{})
		if !ok {
			return nil, floe.Unsupported("avro datum is %T, expected a record", datum)
		}
		rows = append(rows, flattenAvroUnions(record))
	}
	if err := ocf.Err(); err != nil {
		return nil, floe.Parsing(path, err)
	}
	return framize(rows, nil)
}

// flattenAvroUnions unwraps goavro's union encoding, which represents a
// non-null union value as a single-entry map keyed by the branch type.
func flattenAvroUnions(record map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(record))
	for k, v := range record {
		if union, ok := v.(map[string]interface{}); ok && len(union) == 1 {
			for _, branch := range union {
				v = branch
			}
		}
		out[k] = v
	}
	return out
}
