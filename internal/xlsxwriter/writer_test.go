package xlsxwriter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/mailing-converter/internal/types"
)

func strPtr(s string) *string { return &s }

func sampleRows() []types.OutputRow {
	company := types.NewRecord()
	company.Set(types.ColumnOrganization, "Acme")
	company.Set(types.ColumnMemberID, "1042")

	single := types.NewRecord()
	single.Set(types.ColumnGivenName, "Anna")
	single.Set(types.ColumnFamilyName, "Muster")
	single.Set(types.ColumnFormalSalutation, "Frau")

	return []types.OutputRow{
		{
			Type:   types.RecordCompany,
			Lang:   types.LangGerman,
			Record: company,
			Generated: types.Generated{
				AddressLine2:     "Acme",
				GreetingInformal: "Hallo Acme",
				GreetingFormal:   "Sehr geehrte Damen und Herren",
			},
		},
		{
			Type:   types.RecordSingle,
			Lang:   types.LangGerman,
			Record: single,
			Generated: types.Generated{
				AddressLine1:     strPtr("Frau"),
				AddressLine2:     "Anna Muster",
				GreetingInformal: "Hallo Anna",
				GreetingFormal:   "Guten Tag Anna Muster",
			},
		},
	}
}

var sampleColumns = []string{
	types.ColumnAddressLine1,
	types.ColumnAddressLine2,
	types.ColumnGreetingInformal,
	types.ColumnGreetingFormal,
	types.ColumnOrganization,
	types.ColumnGivenName,
	types.ColumnMemberID,
}

func TestBuild_Rows(t *testing.T) {
	f, err := Writer{}.Build(sampleColumns, sampleRows())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheetName}, f.GetSheetList())

	rows, err := f.GetRows(DefaultSheetName)
	require.NoError(t, err)

	want := [][]string{
		sampleColumns,
		{"", "Acme", "Hallo Acme", "Sehr geehrte Damen und Herren", "Acme", "", "1042"},
		{"Frau", "Anna Muster", "Hallo Anna", "Guten Tag Anna Muster", "", "Anna"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("sheet mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_TextCells(t *testing.T) {
	f, err := Writer{}.Build(sampleColumns, sampleRows())
	require.NoError(t, err)
	defer f.Close()

	kind, err := f.GetCellType(DefaultSheetName, "G2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeNumber, kind, "member ids stay text")
}

func TestBuild_HeaderStyle(t *testing.T) {
	f, err := Writer{SheetName: "Mailing"}.Build(sampleColumns, sampleRows())
	require.NoError(t, err)
	defer f.Close()

	idx, err := f.GetCellStyle("Mailing", "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(idx)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)

	idx, err = f.GetCellStyle("Mailing", "A2")
	require.NoError(t, err)
	assert.Zero(t, idx, "data rows are unstyled")
}

func TestBuild_ColumnWidths(t *testing.T) {
	f, err := Writer{}.Build(sampleColumns, sampleRows())
	require.NoError(t, err)
	defer f.Close()

	width, err := f.GetColWidth(DefaultSheetName, "D")
	require.NoError(t, err)
	assert.Equal(t, float64(len("Sehr geehrte Damen und Herren")+2), width)
}

func TestColumnWidths_Clamped(t *testing.T) {
	rec := types.NewRecord()
	rec.Set(types.ColumnStreet, strings.Repeat("x", 200))
	rows := []types.OutputRow{{Record: rec}}

	widths := columnWidths([]string{"A", types.ColumnStreet}, rows)
	assert.Equal(t, []float64{minColumnWidth, maxColumnWidth}, widths)
}

func TestBuild_EmptyTable(t *testing.T) {
	f, err := Writer{}.Build(sampleColumns, nil)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DefaultSheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{sampleColumns}, rows)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Writer{}.Write(&buf, sampleColumns, sampleRows()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(DefaultSheetName, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Anna Muster", v)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mailing.xlsx")
	require.NoError(t, Writer{}.WriteFile(path, sampleColumns, sampleRows()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	err = Writer{}.WriteFile(filepath.Join(t.TempDir(), "missing", "mailing.xlsx"), sampleColumns, sampleRows())
	assert.Error(t, err)
}
