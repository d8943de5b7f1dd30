// =============================================================================
// Mailing Converter - XLSX Mailing Writer
// =============================================================================
//
// This module serializes processed mailing rows into a single-sheet workbook
// for the letter merge.
//
// SHEET LAYOUT:
//   | Adressline 1 | Adressline 2 | Greeting informal | ... | Mitglieder ID ... |
//   |--------------|--------------|-------------------|-----|-------------------|
//   | Frau         | Anna Muster  | Liebe Anna        | ... | 1042              |
//
//   - Row 1 is the bold header row, frozen when scrolling
//   - Columns follow the order the mailing engine computed, exactly
//   - Every value is written as text; absent values are empty cells
//   - Column widths follow the longest value, within limits
//
// =============================================================================

package xlsxwriter

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/mailing-converter/internal/types"
)

const (
	// DefaultSheetName is the name of the generated sheet.
	DefaultSheetName = "Data"

	minColumnWidth = 8
	maxColumnWidth = 60
)

// Writer writes mailing workbooks.
type Writer struct {
	// SheetName names the generated sheet. Empty means DefaultSheetName.
	SheetName string
}

// WriteFile writes the workbook to path, replacing an existing file.
func (w Writer) WriteFile(path string, columns []string, rows []types.OutputRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := w.Write(file, columns, rows); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// Write serializes the workbook to out.
func (w Writer) Write(out io.Writer, columns []string, rows []types.OutputRow) error {
	f, err := w.Build(columns, rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Build creates the in-memory workbook.
//
// PROCESS:
//   1. Rename the default sheet
//   2. Size the columns from the longest value
//   3. Stream the styled header row, then one row per record
func (w Writer) Build(columns []string, rows []types.OutputRow) (*excelize.File, error) {
	sheet := w.SheetName
	if sheet == "" {
		sheet = DefaultSheetName
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeSheet(f, sheet, columns, rows); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, columns []string, rows []types.OutputRow) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to open sheet writer: %w", err)
	}

	// Widths must be set before the first row is streamed.
	for i, width := range columnWidths(columns, rows) {
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if err := sw.SetPanes(&excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	header := make([]any, len(columns))
	for i, column := range columns {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: column}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r, row := range rows {
		values := make([]any, len(columns))
		for i, column := range columns {
			if v, ok := row.Value(column); ok && v != "" {
				values[i] = v
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	return nil
}

// columnWidths sizes every column to its longest value, clamped to
// [minColumnWidth, maxColumnWidth].
func columnWidths(columns []string, rows []types.OutputRow) []float64 {
	widths := make([]float64, len(columns))
	for i, column := range columns {
		longest := utf8.RuneCountInString(column)
		for _, row := range rows {
			if v, ok := row.Value(column); ok {
				if n := utf8.RuneCountInString(v); n > longest {
					longest = n
				}
			}
		}

		w := float64(longest + 2)
		if w < minColumnWidth {
			w = minColumnWidth
		}
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		widths[i] = w
	}
	return widths
}
