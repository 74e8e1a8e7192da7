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

// WriteFile writes rows under the given header, dispatching on the path
// extension the same way ReadFile does. The header row is always written,
// and columns absent from a row render as the empty string.
func WriteFile(path string, header []string, rows []Row) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return writeXLSXFile(path, header, rows)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}

	if err := Write(f, header, rows); err != nil {
		f.Close() //nolint:errcheck,gosec // surface the write error instead
		return errors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return errors.WrapIO("close", path, err)
	}
	return nil
}

// Write writes rows as CSV to w.
func Write(w io.Writer, header []string, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return err
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, column := range header {
			record[i] = row[column]
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// writeXLSXFile writes rows as a single-sheet XLSX workbook.
func writeXLSXFile(path string, header []string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // flushed via SaveAs

	sheet := f.GetSheetName(0)

	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := setRow(f, sheet, 1, headerCells); err != nil {
		return errors.WrapIO("write", path, err)
	}

	cells := make([]any, len(header))
	for n, row := range rows {
		for i, column := range header {
			cells[i] = row[column]
		}
		if err := setRow(f, sheet, n+2, cells); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}
