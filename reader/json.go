package reader

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"

	"github.com/floedata/floe"
	"github.com/floedata/floe/frame"
)

// LoadJSON reads a file holding a JSON array of flat objects into a
// dataframe. Columns are ordered by name; missing keys load as null.
func LoadJSON(path string) (*frame.DataFrame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, floe.FileIO(path, err)
	}
	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, floe.Parsing(path, err)
	}
	return framize(rows, nil)
}

// LoadJSONLines reads a JSON Lines file, one flat object per line, into a
// dataframe. Blank lines are skipped.
func LoadJSONLines(path string) (*frame.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, floe.FileIO(path, err)
	}
	defer f.Close()

	var rows []map[string]interface{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var row map[string]interface{}
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			return nil, floe.Parsing(path, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, floe.FileIO(path, err)
	}
	return framize(rows, nil)
}
