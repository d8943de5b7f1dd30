// =============================================================================
// Mailing Converter - Mailing Engine
// =============================================================================
//
// This module turns a parsed membership export into mailing rows. It is
// stateless: one call processes one table to completion.
//
// PROCESSING PIPELINE:
//   1. Reject empty tables
//   2. Validate base columns (always) and invoice columns (invoicing runs)
//   3. Resolve the invoice dialect and the output column order
//   4. For each row, independently:
//      a. Sanitize
//      b. Classify record type and language
//      c. Derive address lines and greetings
//      d. Attach account and reference (invoicing runs)
//   5. Collect rows in input order
//
// Validation failures abort the call before any row is transformed. Row
// transformation itself cannot fail.
//
// =============================================================================

package mailing

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/mailing-converter/internal/reference"
	"github.com/ginjaninja78/mailing-converter/internal/types"
	"github.com/ginjaninja78/mailing-converter/internal/validation"
)

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Options controls a processing run.
type Options struct {
	// Account is the QR-IBAN of an invoicing run. It must already be
	// validated; an empty Account means an address-only run.
	Account string

	// Workers bounds the number of rows transformed concurrently.
	// Zero uses GOMAXPROCS.
	Workers int
}

// Result is the processed table, ready for serialization.
type Result struct {
	// Columns is the output column order.
	Columns []string

	// InvoiceColumns is the invoice dialect carried over, possibly empty.
	InvoiceColumns []string

	Rows  []types.OutputRow
	Stats Stats
}

// Stats counts rows per classification.
type Stats struct {
	Rows   int
	ByType map[types.RecordType]int
	ByLang map[types.RecordLang]int
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Process validates the table and transforms every row.
//
// RETURNS:
//   - validation.ErrEmptyTable if the table has no rows.
//   - *validation.MissingColumnsError if base columns are missing.
//   - validation.ErrNoInvoiceColumns or *validation.PartialInvoiceColumnsError
//     for invoicing runs without a complete invoice dialect.
func Process(table *types.Table, opts Options) (*Result, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, validation.ErrEmptyTable
	}

	if err := validation.ValidateBaseColumns(table.Headers); err != nil {
		return nil, err
	}
	if opts.Account != "" {
		if err := validation.ValidateInvoiceColumns(table.Headers); err != nil {
			return nil, err
		}
	}

	invoiceColumns := validation.ResolveInvoiceColumns(table.Headers)
	columns := OutputColumns(invoiceColumns, opts.Account != "")

	rows := make([]types.OutputRow, len(table.Rows))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Each goroutine writes only its own index, so the collect is stable.
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range table.Rows {
		g.Go(func() error {
			rows[i] = TransformRow(table.Rows[i], columns, opts.Account)
			return nil
		})
	}
	_ = g.Wait()

	return &Result{
		Columns:        columns,
		InvoiceColumns: invoiceColumns,
		Rows:           rows,
		Stats:          collectStats(rows),
	}, nil
}

// OutputColumns returns the fixed output order: generated columns, base
// columns, then the invoice dialect.
func OutputColumns(invoiceColumns []string, invoicing bool) []string {
	columns := make([]string, 0, len(types.GeneratedColumns)+len(types.GeneratedInvoiceColumns)+len(types.BaseColumns)+len(invoiceColumns))
	columns = append(columns, types.GeneratedColumns...)
	if invoicing {
		columns = append(columns, types.GeneratedInvoiceColumns...)
	}
	columns = append(columns, types.BaseColumns...)
	columns = append(columns, invoiceColumns...)
	return columns
}

// TransformRow sanitizes, classifies and enriches a single row.
func TransformRow(row types.InputRow, columns []string, account string) types.OutputRow {
	rec := Sanitize(row, columns)

	recordType := DetectRecordType(rec)
	lang := DetectLang(rec)

	out := types.OutputRow{
		Type:   recordType,
		Lang:   lang,
		Record: rec,
		Generated: types.Generated{
			AddressLine2:     SecondAddressLine(rec, recordType),
			GreetingInformal: InformalGreeting(rec, recordType, lang),
			GreetingFormal:   FormalGreeting(rec, recordType, lang),
		},
	}

	if line, ok := FirstAddressLine(rec, recordType); ok {
		out.AddressLine1 = &line
	}

	if account != "" {
		acc := account
		ref := reference.Generate(invoiceID(rec))
		out.Account = &acc
		out.Reference = &ref
	}

	return out
}

// invoiceID reads the German invoice id column and falls back to the French
// one. Blank ids count as no invoice.
func invoiceID(rec *types.Record) string {
	if !rec.IsBlank(types.ColumnInvoiceIDDE) {
		return rec.Invoice.ID
	}
	if !rec.IsBlank(types.ColumnInvoiceIDFR) {
		return rec.Invoice.ID
	}
	return ""
}

func collectStats(rows []types.OutputRow) Stats {
	stats := Stats{
		Rows:   len(rows),
		ByType: make(map[types.RecordType]int),
		ByLang: make(map[types.RecordLang]int),
	}
	for _, row := range rows {
		stats.ByType[row.Type]++
		stats.ByLang[row.Lang]++
	}
	return stats
}
