// =============================================================================
// Mailing Converter - XLSX Export Reader
// =============================================================================
//
// This module reads the membership export workbook into a types.Table. Only
// the first sheet is read unless a sheet name is configured.
//
// SHEET STRUCTURE:
//   Row 1 holds the column headers, every following non-empty row is a
//   member. Headers are NFC-normalized and otherwise kept byte for byte.
//
// CELL TYPING:
//   Cells keep the type the workbook stored so the mailing engine can turn
//   them into their external string form:
//   - numbers                -> CellNumber (exact decimal of the stored value)
//   - numbers with date style -> CellDate (custom formats keep their display
//                               text, built-in formats render as dd.mm.yyyy)
//   - booleans               -> CellBool
//   - everything else        -> CellString (display text)
//   Empty cells are left out of the row.
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/ginjaninja78/mailing-converter/internal/types"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNoSheets is returned for workbooks without any worksheet.
	ErrNoSheets = errors.New("workbook has no sheets")

	// ErrNoHeader is returned when the sheet has no header row.
	ErrNoHeader = errors.New("sheet has no header row")
)

// streamPath names workbooks read from a stream until ReadFile fills in the
// real path.
const streamPath = "workbook"

// SheetError reports a failure to read a workbook, with the file it came
// from.
type SheetError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *SheetError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("failed to read sheet %q of %s: %v", e.Sheet, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// =============================================================================
// READER
// =============================================================================

// Reader reads membership exports from .xlsx workbooks.
type Reader struct {
	// Sheet selects the worksheet by name. Empty reads the first sheet.
	Sheet string
}

// ReadFile opens and reads the workbook at path.
func (r Reader) ReadFile(path string) (*types.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &SheetError{Path: path, Err: err}
	}
	defer file.Close()

	table, err := r.Read(file)
	if err != nil {
		var sheetErr *SheetError
		if errors.As(err, &sheetErr) {
			sheetErr.Path = path
			return nil, sheetErr
		}
		return nil, &SheetError{Path: path, Err: err}
	}

	table.Source = path
	return table, nil
}

// Read parses a workbook from a byte stream.
func (r Reader) Read(in io.Reader) (*types.Table, error) {
	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return r.ReadWorkbook(f)
}

// ReadWorkbook reads the configured sheet of an open workbook.
//
// PROCESS:
//   1. Resolve the sheet
//   2. Read the raw and the displayed values of every row
//   3. Take row 1 as the header row
//   4. Type every data cell and skip rows that are entirely empty
func (r Reader) ReadWorkbook(f *excelize.File) (*types.Table, error) {
	sheet := r.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, &SheetError{Path: streamPath, Err: ErrNoSheets}
		}
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &SheetError{Path: streamPath, Sheet: sheet, Err: err}
	}
	display, err := f.GetRows(sheet)
	if err != nil {
		return nil, &SheetError{Path: streamPath, Sheet: sheet, Err: err}
	}

	if len(raw) == 0 {
		return nil, &SheetError{Path: streamPath, Sheet: sheet, Err: ErrNoHeader}
	}

	headers, columns := parseHeaders(raw[0])
	if len(headers) == 0 {
		return nil, &SheetError{Path: streamPath, Sheet: sheet, Err: ErrNoHeader}
	}

	typer := newCellTyper(f, sheet)

	table := &types.Table{Headers: headers}
	for i := 1; i < len(raw); i++ {
		var shown []string
		if i < len(display) {
			shown = display[i]
		}

		row := make(types.InputRow)
		for col, header := range columns {
			if col >= len(raw[i]) || raw[i][col] == "" {
				continue
			}
			text := raw[i][col]
			if col < len(shown) {
				text = shown[col]
			}

			cell, err := typer.cell(col+1, i+1, raw[i][col], text)
			if err != nil {
				return nil, &SheetError{Path: streamPath, Sheet: sheet, Err: err}
			}
			row[header] = cell
		}

		if len(row) == 0 {
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// parseHeaders returns the header row in order and the header of every used
// column index. Empty headers are skipped; a repeated header keeps its first
// column.
func parseHeaders(row []string) ([]string, map[int]string) {
	var headers []string
	columns := make(map[int]string, len(row))
	seen := make(map[string]struct{}, len(row))

	for i, h := range row {
		h = norm.NFC.String(h)
		if strings.TrimSpace(h) == "" {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		headers = append(headers, h)
		columns[i] = h
	}
	return headers, columns
}

// =============================================================================
// CELL TYPING
// =============================================================================

type cellTyper struct {
	f        *excelize.File
	sheet    string
	date1904 bool

	// dateStyles caches the number style of a style index.
	dateStyles map[int]numberStyle
}

func newCellTyper(f *excelize.File, sheet string) *cellTyper {
	t := &cellTyper{f: f, sheet: sheet, dateStyles: make(map[int]numberStyle)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		t.date1904 = *props.Date1904
	}
	return t
}

// cell types the value at (col, row), both 1-based.
func (t *cellTyper) cell(col, row int, raw, text string) (types.Cell, error) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return types.Cell{}, err
	}

	kind, err := t.f.GetCellType(t.sheet, name)
	if err != nil {
		return types.Cell{}, err
	}

	switch kind {
	case excelize.CellTypeBool:
		return types.BoolCell(raw == "1" || strings.EqualFold(raw, "true")), nil

	case excelize.CellTypeDate:
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			return types.DateCell(ts, text), nil
		}
		return types.StringCell(text), nil

	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		number, err := decimal.NewFromString(raw)
		if err != nil {
			return types.StringCell(text), nil
		}
		if style := t.dateStyle(name); style != styleNumber {
			serial, _ := number.Float64()
			if ts, err := excelize.ExcelDateToTime(serial, t.date1904); err == nil {
				if style == styleBuiltinDate {
					text = ""
				}
				return types.DateCell(ts, text), nil
			}
		}
		return types.NumberCell(number), nil

	default:
		return types.StringCell(text), nil
	}
}

type numberStyle int

const (
	styleNumber numberStyle = iota
	styleBuiltinDate
	styleCustomDate
)

func (t *cellTyper) dateStyle(cell string) numberStyle {
	idx, err := t.f.GetCellStyle(t.sheet, cell)
	if err != nil || idx == 0 {
		return styleNumber
	}
	if v, ok := t.dateStyles[idx]; ok {
		return v
	}

	result := styleNumber
	if style, err := t.f.GetStyle(idx); err == nil && style != nil {
		switch {
		case style.CustomNumFmt != nil:
			if IsDateFormat(*style.CustomNumFmt) {
				result = styleCustomDate
			}
		case isBuiltinDateFormat(style.NumFmt):
			result = styleBuiltinDate
		}
	}
	t.dateStyles[idx] = result
	return result
}

// isBuiltinDateFormat reports whether a built-in number format id is a date
// or time format.
func isBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22:
		return true
	case id >= 27 && id <= 36:
		return true
	case id >= 45 && id <= 47:
		return true
	case id >= 50 && id <= 58:
		return true
	}
	return false
}

// IsDateFormat reports whether a custom number format code renders a date or
// time. Quoted literals, escaped characters and bracketed sections such as
// colours or locales are ignored.
func IsDateFormat(code string) bool {
	section := code
	if i := strings.IndexByte(section, ';'); i >= 0 {
		section = section[:i]
	}

	inQuote := false
	inBracket := false
	for i := 0; i < len(section); i++ {
		ch := section[i]
		switch {
		case inQuote:
			inQuote = ch != '"'
		case inBracket:
			if ch == ']' {
				inBracket = false
			}
		case ch == '"':
			inQuote = true
		case ch == '[':
			inBracket = true
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		default:
			switch ch | 0x20 {
			case 'y', 'd', 'h', 's':
				return true
			}
		}
	}
	return false
}
