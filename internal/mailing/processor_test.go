package mailing

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/mailing-converter/internal/types"
	"github.com/ginjaninja78/mailing-converter/internal/validation"
)

const testAccount = "CH4431999123000889012"

func baseHeaders(extra ...[]string) []string {
	headers := append([]string(nil), types.BaseColumns...)
	for _, e := range extra {
		headers = append(headers, e...)
	}
	return headers
}

// baseRow returns a row carrying every base column, empty unless overridden.
func baseRow(pairs ...string) types.InputRow {
	row := make(types.InputRow, len(types.BaseColumns))
	for _, c := range types.BaseColumns {
		row[c] = types.StringCell("")
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		row[pairs[i]] = types.StringCell(pairs[i+1])
	}
	return row
}

func TestProcess_CompanyAddressOnly(t *testing.T) {
	table := &types.Table{
		Headers: baseHeaders(),
		Rows:    []types.InputRow{baseRow(types.ColumnOrganization, "Acme")},
	}

	result, err := Process(table, Options{})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.Equal(t, types.RecordCompany, row.Type)
	assert.Equal(t, types.LangGerman, row.Lang)

	_, ok := row.Value(types.ColumnAddressLine1)
	assert.False(t, ok, "first address line is absent for companies")

	line2, _ := row.Value(types.ColumnAddressLine2)
	assert.Equal(t, "Acme", line2)

	formal, _ := row.Value(types.ColumnGreetingFormal)
	assert.Equal(t, "Sehr geehrte Damen und Herren", formal)

	assert.NotContains(t, result.Columns, types.ColumnAccount)
	assert.NotContains(t, result.Columns, types.ColumnReference)
	assert.Nil(t, row.Account)
	assert.Nil(t, row.Reference)
	assert.Empty(t, result.InvoiceColumns)
}

func TestProcess_InvoicingGerman(t *testing.T) {
	row := baseRow(types.ColumnGivenName, "Anna", types.ColumnFamilyName, "Muster")
	for _, c := range types.InvoiceColumnsDE {
		row[c] = types.StringCell("")
	}
	row[types.ColumnInvoiceIDDE] = types.NumberCell(decimal.NewFromInt(987))

	table := &types.Table{
		Headers: baseHeaders(types.InvoiceColumnsDE),
		Rows:    []types.InputRow{row},
	}

	result, err := Process(table, Options{Account: testAccount})
	require.NoError(t, err)

	out := result.Rows[0]
	account, ok := out.Value(types.ColumnAccount)
	require.True(t, ok)
	assert.Equal(t, testAccount, account)

	ref, ok := out.Value(types.ColumnReference)
	require.True(t, ok)
	assert.Equal(t, "00 00000 00000 00000 00000 09874", ref)

	id, ok := out.Value(types.ColumnInvoiceIDDE)
	require.True(t, ok)
	assert.Equal(t, "987", id)

	assert.Equal(t, types.InvoiceColumnsDE, result.InvoiceColumns)
}

func TestProcess_InvoicingFrench(t *testing.T) {
	withID := baseRow(types.ColumnLanguage, "f", types.ColumnGivenName, "Anne", types.ColumnFamilyName, "Dupont")
	withoutID := baseRow(types.ColumnGivenName, "Paul", types.ColumnFamilyName, "Martin")
	for _, c := range types.InvoiceColumnsFR {
		withID[c] = types.StringCell("")
		withoutID[c] = types.StringCell("")
	}
	withID[types.ColumnInvoiceIDFR] = types.StringCell("12345")

	table := &types.Table{
		Headers: baseHeaders(types.InvoiceColumnsFR),
		Rows:    []types.InputRow{withID, withoutID},
	}

	result, err := Process(table, Options{Account: testAccount})
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)

	ref, _ := result.Rows[0].Value(types.ColumnReference)
	assert.Equal(t, "00 00000 00000 00000 00001 23457", ref)

	ref, ok := result.Rows[1].Value(types.ColumnReference)
	assert.True(t, ok)
	assert.Equal(t, "", ref, "rows without an invoice id get an empty reference")
}

func TestProcess_MissingBaseColumn(t *testing.T) {
	headers := make([]string, 0, len(types.BaseColumns))
	for _, c := range types.BaseColumns {
		if c != types.ColumnStreet {
			headers = append(headers, c)
		}
	}
	table := &types.Table{
		Headers: headers,
		Rows:    []types.InputRow{baseRow(types.ColumnOrganization, "Acme")},
	}

	result, err := Process(table, Options{})
	assert.Nil(t, result)

	var missingErr *validation.MissingColumnsError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, []string{types.ColumnStreet}, missingErr.Missing)
}

func TestProcess_PartnerIdenticalName(t *testing.T) {
	table := &types.Table{
		Headers: baseHeaders(),
		Rows: []types.InputRow{baseRow(
			types.ColumnGivenName, "Anna",
			types.ColumnFamilyName, "Muster",
			types.ColumnPartnerGivenName, "Beat",
			types.ColumnPartnerFamilyName, "Muster",
		)},
	}

	result, err := Process(table, Options{})
	require.NoError(t, err)

	assert.Equal(t, types.RecordPartnerIdenticalName, result.Rows[0].Type)
	assert.Equal(t, "Anna & Beat Muster", result.Rows[0].AddressLine2)
}

func TestProcess_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		table   *types.Table
		opts    Options
		wantErr error
	}{
		{
			name:    "nil table",
			table:   nil,
			wantErr: validation.ErrEmptyTable,
		},
		{
			name:    "header only",
			table:   &types.Table{Headers: baseHeaders()},
			wantErr: validation.ErrEmptyTable,
		},
		{
			name:    "invoicing without invoice columns",
			table:   &types.Table{Headers: baseHeaders(), Rows: []types.InputRow{baseRow()}},
			opts:    Options{Account: testAccount},
			wantErr: validation.ErrNoInvoiceColumns,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Process(tt.table, tt.opts)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProcess_PartialInvoiceColumns(t *testing.T) {
	table := &types.Table{
		Headers: baseHeaders(types.InvoiceColumnsDE[:6]),
		Rows:    []types.InputRow{baseRow()},
	}

	_, err := Process(table, Options{Account: testAccount})

	var partial *validation.PartialInvoiceColumnsError
	require.True(t, errors.As(err, &partial))
	assert.Equal(t, []string{types.ColumnInvoiceIDDE}, partial.Missing)

	// Address-only runs do not look at invoice columns.
	result, err := Process(table, Options{})
	require.NoError(t, err)
	assert.Empty(t, result.InvoiceColumns)
}

func TestProcess_ColumnOrder(t *testing.T) {
	table := &types.Table{
		Headers: append([]string{"Notizen / notes"}, baseHeaders(types.InvoiceColumnsDE)...),
		Rows:    []types.InputRow{baseRow()},
	}

	result, err := Process(table, Options{Account: testAccount})
	require.NoError(t, err)

	var want []string
	want = append(want, types.GeneratedColumns...)
	want = append(want, types.ColumnAccount, types.ColumnReference)
	want = append(want, types.BaseColumns...)
	want = append(want, types.InvoiceColumnsDE...)

	if diff := cmp.Diff(want, result.Columns); diff != "" {
		t.Errorf("column order mismatch (-want +got):\n%s", diff)
	}
}

func TestProcess_PreservesRowOrder(t *testing.T) {
	const n = 500

	rows := make([]types.InputRow, n)
	for i := range rows {
		rows[i] = baseRow(types.ColumnOrganization, fmt.Sprintf("Org %03d", i))
	}
	table := &types.Table{Headers: baseHeaders(), Rows: rows}

	result, err := Process(table, Options{Workers: 8})
	require.NoError(t, err)
	require.Len(t, result.Rows, n)

	for i, row := range result.Rows {
		assert.Equal(t, fmt.Sprintf("Org %03d", i), row.Record.Organization)
	}

	assert.Equal(t, n, result.Stats.Rows)
	assert.Equal(t, n, result.Stats.ByType[types.RecordCompany])
	assert.Equal(t, n, result.Stats.ByLang[types.LangGerman])
}

func TestTransformRow_GeneratedColumnsWin(t *testing.T) {
	row := baseRow(types.ColumnOrganization, "Acme")
	row[types.ColumnAddressLine2] = types.StringCell("from the sheet")

	out := TransformRow(row, OutputColumns(nil, false), "")

	v, _ := out.Value(types.ColumnAddressLine2)
	assert.Equal(t, "Acme", v)
}
