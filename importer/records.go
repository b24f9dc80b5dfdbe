package importer

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strings"
)

// Record maps header column names to raw cell values. No type coercion
// happens at this layer; absent and blank cells both read as "".
type Record map[string]string

func (r Record) Get(name string) string {
	return r[name]
}

// ReadRecords parses the file at path as header-prefixed CSV and returns all
// data rows in file order. Calling it again re-reads from the path, so a
// source is restartable. Unknown columns are kept; consumers pick the ones
// they know by name.
func ReadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	br := stripUTF8BOM(bufio.NewReader(f))

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, validationErrorf("missing header row")
		}
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []Record
	for {
		row, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		rec := make(Record, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}
