// Package tabular provides header-driven reading and writing of tabular
// feed files. Columns are addressed by name so feed producers may reorder
// them freely; CSV and XLSX containers are supported.
package tabular

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/skuforge/skuforge/pkg/errors"
)

// Row is a single record keyed by column name. Missing columns read as "".
type Row map[string]string

// Get returns the value for the named column, or "" when absent.
func (r Row) Get(column string) string {
	return r[column]
}

// Table holds an ordered set of rows together with the source header.
// Row order is the source file order; several pipeline stages depend on it.
type Table struct {
	Header []string
	Rows   []Row
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the source header contains the named column.
func (t *Table) HasColumn(column string) bool {
	for _, h := range t.Header {
		if h == column {
			return true
		}
	}
	return false
}

// ReadFile reads a tabular file, dispatching on its extension.
// ".xlsx" files are read through excelize; anything else is treated as CSV.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		t, err := ReadXLSX(f)
		if err != nil {
			return nil, errors.WrapParse("xlsx", path, err)
		}
		return t, nil
	}

	t, err := Read(f)
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}
	return t, nil
}

// Read reads CSV data. The first record is the header; ragged data rows are
// padded or truncated to the header width.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // feeds in the wild are ragged

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	return fromRecords(records), nil
}

// ReadXLSX reads the first sheet of an XLSX workbook.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only workbook

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	return fromRecords(records), nil
}

// fromRecords builds a Table from raw records, the first being the header.
func fromRecords(records [][]string) *Table {
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			} else {
				row[column] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{Header: header, Rows: rows}
}
