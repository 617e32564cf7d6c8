package reader

import (
	"errors"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/floedata/floe"
	"github.com/floedata/floe/frame"
)

// parquetReader wraps an open parquet file. It keeps both the OS handle
// and the parquet handle so Close releases everything.
type parquetReader struct {
	file   *os.File
	pqFile *parquet.File
}

func openParquet(path string) (*parquetReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, floe.FileIO(path, err)
	}
	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, floe.FileIO(path, err)
	}
	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, floe.Parsing(path, err)
	}
	return &parquetReader{file: file, pqFile: pqFile}, nil
}

func (r *parquetReader) close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// columnNames returns the top-level field names in schema order.
func (r *parquetReader) columnNames() []string {
	fields := r.pqFile.Schema().Fields()
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name()
	}
	return names
}

// readAll loads every row as a map keyed by column name.
func (r *parquetReader) readAll() ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0)

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, floe.Parsing("parquet row", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// LoadParquet reads a parquet file into a dataframe, keeping the file's
// column order. Nested groups are not supported.
func LoadParquet(path string) (*frame.DataFrame, error) {
	r, err := openParquet(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.close() }()

	rows, err := r.readAll()
	if err != nil {
		return nil, err
	}
	return framize(rows, r.columnNames())
}
