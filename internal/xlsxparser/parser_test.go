package xlsxparser

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/mailing-converter/internal/types"
)

// newWorkbook builds a workbook with one sheet from rows of cell values.
func newWorkbook(t *testing.T, rows [][]any) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	return f
}

func toBuffer(t *testing.T, f *excelize.File) *bytes.Buffer {
	t.Helper()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestRead_TypedCells(t *testing.T) {
	f := newWorkbook(t, [][]any{
		{"Name / nom", "PLZ / code postal", "Betrag", "Aktiv", "Erstellt am"},
		{"  Muster ", 3011, 120.5, true, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
	})

	table, err := Reader{}.Read(toBuffer(t, f))
	require.NoError(t, err)

	assert.Equal(t, []string{"Name / nom", "PLZ / code postal", "Betrag", "Aktiv", "Erstellt am"}, table.Headers)
	require.Len(t, table.Rows, 1)
	row := table.Rows[0]

	assert.Equal(t, types.CellString, row["Name / nom"].Kind)
	assert.Equal(t, "  Muster ", row["Name / nom"].String(), "the reader does not trim")

	assert.Equal(t, types.CellNumber, row["PLZ / code postal"].Kind)
	assert.Equal(t, "3011", row["PLZ / code postal"].String())

	assert.Equal(t, types.CellNumber, row["Betrag"].Kind)
	assert.Equal(t, "120.5", row["Betrag"].String())

	assert.Equal(t, types.CellBool, row["Aktiv"].Kind)
	assert.Equal(t, "true", row["Aktiv"].String())

	assert.Equal(t, types.CellDate, row["Erstellt am"].Kind)
	assert.Equal(t, "05.03.2024", row["Erstellt am"].String())
}

func TestRead_CustomDateFormat(t *testing.T) {
	f := newWorkbook(t, [][]any{
		{"Erstellt am"},
		{45356},
	})

	code := "dd.mm.yyyy"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &code})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A2", "A2", style))

	table, err := Reader{}.Read(toBuffer(t, f))
	require.NoError(t, err)

	cell := table.Rows[0]["Erstellt am"]
	assert.Equal(t, types.CellDate, cell.Kind)
	assert.Equal(t, "05.03.2024", cell.String())
	assert.Equal(t, time.March, cell.Time.Month())
}

func TestRead_SkipsEmptyCellsAndRows(t *testing.T) {
	f := newWorkbook(t, [][]any{
		{"Firma / organisation", "Vorname / prénom"},
		{"Acme"},
		{},
		{nil, "Anna"},
	})

	table, err := Reader{}.Read(toBuffer(t, f))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	_, ok := table.Rows[0]["Vorname / prénom"]
	assert.False(t, ok, "missing cells are absent")
	assert.Equal(t, "Anna", table.Rows[1]["Vorname / prénom"].String())
}

func TestRead_NormalizesHeaders(t *testing.T) {
	f := newWorkbook(t, [][]any{
		{"Vorname / pre\u0301nom", "", "Ort / localite\u0301", "Ort / localit\u00e9"},
		{"Anne", "ignored", "Bern", "second"},
	})

	table, err := Reader{}.Read(toBuffer(t, f))
	require.NoError(t, err)

	assert.Equal(t, []string{"Vorname / prénom", "Ort / localité"}, table.Headers)
	assert.Equal(t, "Anne", table.Rows[0][types.ColumnGivenName].String())
	assert.Equal(t, "Bern", table.Rows[0][types.ColumnLocality].String(), "first of duplicate headers wins")
}

func TestRead_HeaderOnly(t *testing.T) {
	f := newWorkbook(t, [][]any{{"Firma / organisation"}})

	table, err := Reader{}.Read(toBuffer(t, f))
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestRead_EmptySheet(t *testing.T) {
	f := newWorkbook(t, nil)

	_, err := Reader{}.Read(toBuffer(t, f))
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestRead_UnknownSheet(t *testing.T) {
	f := newWorkbook(t, [][]any{{"Firma / organisation"}, {"Acme"}})

	_, err := Reader{Sheet: "Mitglieder"}.Read(toBuffer(t, f))

	var sheetErr *SheetError
	require.True(t, errors.As(err, &sheetErr))
	assert.Equal(t, "Mitglieder", sheetErr.Sheet)
}

func TestRead_NotAWorkbook(t *testing.T) {
	_, err := Reader{}.Read(bytes.NewBufferString("Name;Vorname\n"))
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "members.xlsx")

	f := newWorkbook(t, [][]any{{"Firma / organisation"}, {"Acme"}})
	require.NoError(t, f.SaveAs(path))

	table, err := Reader{}.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, table.Source)
	assert.Len(t, table.Rows, 1)

	_, err = Reader{}.ReadFile(filepath.Join(dir, "missing.xlsx"))
	var sheetErr *SheetError
	require.True(t, errors.As(err, &sheetErr))
	assert.Equal(t, filepath.Join(dir, "missing.xlsx"), sheetErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsDateFormat(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"dd.mm.yyyy", true},
		{"d/m/yy h:mm", true},
		{"[$-de-CH]dddd, d. mmmm yyyy", true},
		{"hh:mm:ss", true},
		{"0.00", false},
		{"#,##0.00 \"CHF\"", false},
		{"#,##0 \\d", false},
		{"[Red]0.00;[Blue]-0.00", false},
		{"@", false},
		{"General", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDateFormat(tt.code))
		})
	}
}

func TestIsBuiltinDateFormat(t *testing.T) {
	assert.True(t, isBuiltinDateFormat(14))
	assert.True(t, isBuiltinDateFormat(22))
	assert.True(t, isBuiltinDateFormat(47))
	assert.False(t, isBuiltinDateFormat(0))
	assert.False(t, isBuiltinDateFormat(2))
	assert.False(t, isBuiltinDateFormat(49))
}
