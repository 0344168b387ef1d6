// Package tabular discovers and loads delimited table files. Files are
// decoded as UTF-8 when valid and fall back to Latin-1 otherwise, matching
// the pragmatics of consumer-grade CSV exports.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/karrick/godirwalk"
	"golang.org/x/text/encoding/charmap"

	"github.com/agentstation/specmap/pkg/errors"
)

// utf8BOM is stripped before decoding; spreadsheet exports love to add it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is one loaded delimited file: an ordered header and its data rows.
type Table struct {
	// Path is the file the table was loaded from.
	Path string
	// Columns is the header row, in file order, whitespace-trimmed.
	Columns []string
	// Rows maps column name to raw cell text, one map per data row. Cells
	// beyond the header width are dropped; short rows leave columns absent.
	Rows []map[string]string
}

// Discover walks root recursively and returns every .csv and .tsv file,
// sorted lexicographically so processing order is stable across runs and
// filesystems.
func Discover(root string) ([]string, error) {
	var paths []string
	err := godirwalk.Walk(root, &godirwalk.Options{
		Unsorted: true,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".csv", ".tsv":
				paths = append(paths, path)
			}
			return nil
		},
	})
	if err != nil {
		return nil, errors.WrapIO("walk", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Load reads one delimited file into a Table. Tab-separated files are
// recognized by extension; everything else parses as comma-separated.
// A file without a header or without any data rows fails with
// errors.ErrEmptyFile.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	text, err := decode(raw)
	if err != nil {
		return nil, errors.WrapParse("encoding", path, err)
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		reader.Comma = '\t'
	}

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", path, errors.ErrEmptyFile)
	}
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", path, err)
		}
		row := make(map[string]string, len(columns))
		for i, cell := range record {
			if i >= len(columns) || columns[i] == "" {
				continue
			}
			row[columns[i]] = cell
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, errors.ErrEmptyFile)
	}

	return &Table{Path: path, Columns: columns, Rows: rows}, nil
}

// decode strips a UTF-8 BOM and returns the file text, reinterpreting as
// Latin-1 when the bytes are not valid UTF-8. Latin-1 decoding cannot fail,
// so any byte sequence yields usable text.
func decode(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
