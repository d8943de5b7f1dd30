// =============================================================================
// Mailing Converter - Shared Types
// =============================================================================
//
// This package contains the types shared by the spreadsheet codec, the
// mailing engine and the converter. Keeping them here avoids import cycles
// between:
//   - xlsxparser / csvparser (produce Table)
//   - mailing (consumes Table, produces OutputRow)
//   - xlsxwriter (consumes OutputRow)
//
// =============================================================================

package types

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CELLS
// =============================================================================

// CellKind is the original typing of a spreadsheet cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellString
	CellNumber
	CellDate
	CellBool
)

// DateLayout is used for date cells that carry no display text.
const DateLayout = "02.01.2006"

// Cell is a single raw value as read from a spreadsheet.
type Cell struct {
	Kind CellKind

	// Text is the string value for CellString and the display text the
	// sheet showed for CellDate.
	Text string

	Number decimal.Decimal
	Time   time.Time
	Bool   bool
}

// StringCell returns a text cell. An empty string yields an empty cell.
func StringCell(s string) Cell {
	if s == "" {
		return Cell{Kind: CellEmpty}
	}
	return Cell{Kind: CellString, Text: s}
}

// NumberCell returns a numeric cell.
func NumberCell(d decimal.Decimal) Cell {
	return Cell{Kind: CellNumber, Number: d}
}

// DateCell returns a date cell with the text the sheet displayed for it.
func DateCell(t time.Time, display string) Cell {
	return Cell{Kind: CellDate, Time: t, Text: display}
}

// BoolCell returns a boolean cell.
func BoolCell(b bool) Cell {
	return Cell{Kind: CellBool, Bool: b}
}

// IsEmpty reports whether the cell holds no value at all.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String returns the external string representation of the cell, untrimmed.
func (c Cell) String() string {
	switch c.Kind {
	case CellString:
		return c.Text
	case CellNumber:
		return c.Number.String()
	case CellDate:
		if c.Text != "" {
			return c.Text
		}
		return c.Time.Format(DateLayout)
	case CellBool:
		return strconv.FormatBool(c.Bool)
	default:
		return ""
	}
}

// =============================================================================
// TABLES
// =============================================================================

// InputRow maps a column header to its raw cell. Columns missing from a row
// are simply not in the map.
type InputRow map[string]Cell

// Table is a parsed sheet: the header row and the data rows in sheet order.
type Table struct {
	// Source is the path of the file the table was read from, if any.
	Source string

	Headers []string
	Rows    []InputRow
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// RecordType is the mailing classification of a row.
type RecordType string

const (
	RecordCompanyPerson        RecordType = "company_person"
	RecordCompany              RecordType = "company"
	RecordPartnerIdenticalName RecordType = "partner_identical_name"
	RecordPartner              RecordType = "partner"
	RecordSingle               RecordType = "single"
)

// RecordTypes lists every record type in detection priority order.
var RecordTypes = []RecordType{
	RecordCompanyPerson,
	RecordCompany,
	RecordPartnerIdenticalName,
	RecordPartner,
	RecordSingle,
}

// RecordLang is the written language of a row's greetings.
type RecordLang string

const (
	LangGerman RecordLang = "d"
	LangFrench RecordLang = "f"
)
