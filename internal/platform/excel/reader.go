// Package excel adapts .xlsx workbooks into the raw rows the roster
// engine consumes. Workbook decoding itself is delegated to excelize.
package excel

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"rosterimport/internal/domain/roster"
)

var (
	ErrFileNotFound      = errors.New("spreadsheet file not found")
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrSheetNotFound     = errors.New("worksheet not found")
)

// ReadRows opens an .xlsx workbook and returns its data rows. The first
// row supplies headers. Fully blank rows are dropped; positions are
// original 1-based row numbers, so the first data row is position 2.
// An empty sheet name selects the active sheet.
func ReadRows(path, sheet string) ([]roster.RawRow, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".xlsx" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	defer f.Close()
	return readRows(f, sheet)
}

// ReadRowsFrom reads a workbook from a stream, e.g. an uploaded file.
func ReadRowsFrom(r io.Reader, sheet string) ([]roster.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	defer f.Close()
	return readRows(f, sheet)
}

func readRows(f *excelize.File, sheet string) ([]roster.RawRow, error) {
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	} else {
		names := f.GetSheetList()
		found := false
		for _, name := range names {
			if name == sheet {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q (available: %s)",
				ErrSheetNotFound, sheet, strings.Join(names, ", "))
		}
	}

	formatted, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(formatted) == 0 {
		return nil, nil
	}

	headers := make([]string, len(formatted[0]))
	for i, h := range formatted[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []roster.RawRow
	for i := 1; i < len(formatted); i++ {
		cells := make([]roster.RawCell, 0, len(headers))
		empty := true
		for j, header := range headers {
			if header == "" {
				continue
			}
			cell := classifyCell(cellAt(raw, i, j), cellAt(formatted, i, j))
			if !cell.IsEmpty() {
				empty = false
			}
			cells = append(cells, roster.RawCell{Header: header, Value: cell})
		}
		if empty {
			continue
		}
		rows = append(rows, roster.RawRow{Position: i + 1, Cells: cells})
	}
	return rows, nil
}

// cellAt tolerates the ragged rows GetRows produces.
func cellAt(rows [][]string, i, j int) string {
	if i < len(rows) && j < len(rows[i]) {
		return rows[i][j]
	}
	return ""
}

// classifyCell picks the typed variant for one cell from its raw and
// formatted renderings. Date and time cells appear as serial numbers in
// the raw view but as text in the formatted view; plain numbers render
// numerically in both.
func classifyCell(raw, formatted string) roster.Cell {
	raw = strings.TrimSpace(raw)
	formatted = strings.TrimSpace(formatted)
	if raw == "" && formatted == "" {
		return roster.EmptyCell()
	}

	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		if formatted != "" {
			return roster.TextCell(formatted)
		}
		return roster.TextCell(raw)
	}
	if _, err := strconv.ParseFloat(formatted, 64); err == nil {
		return roster.NumberCell(serial)
	}

	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return roster.NumberCell(serial)
	}
	if serial < 1 {
		return roster.TimeOfDayCell(
			time.Date(1, time.January, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC))
	}
	return roster.DateTimeCell(t)
}
