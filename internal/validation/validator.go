// =============================================================================
// Mailing Converter - Column Validation
// =============================================================================
//
// This module checks the header row of a membership export before any row is
// touched:
//   1. Every base column must be present (always).
//   2. For invoicing runs, one invoice dialect must be present in full.
//
// DIALECT SELECTION:
//   A sheet carries the German invoice dialect, the French one, or neither.
//   When a dialect is only partly present the error reports the dialect with
//   the strictly shorter list of missing columns; on a tie the French list
//   wins. This surfaces the dialect the user most likely meant to export.
//
// =============================================================================

package validation

import (
	"github.com/ginjaninja78/mailing-converter/internal/types"
)

// =============================================================================
// DIALECTS
// =============================================================================

// Dialect identifies which invoice header set a sheet uses.
type Dialect int

const (
	DialectNone Dialect = iota
	DialectGerman
	DialectFrench
)

func (d Dialect) String() string {
	switch d {
	case DialectGerman:
		return "german"
	case DialectFrench:
		return "french"
	default:
		return "none"
	}
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// ValidateBaseColumns fails with *MissingColumnsError unless every base
// column is present in headers.
func ValidateBaseColumns(headers []string) error {
	missing := missingColumns(types.BaseColumns, headerSet(headers))
	if len(missing) == 0 {
		return nil
	}
	return &MissingColumnsError{Missing: missing}
}

// ValidateInvoiceColumns succeeds if headers contain either invoice dialect
// in full.
//
// RETURNS:
//   - ErrNoInvoiceColumns if no column of either dialect is present.
//   - *PartialInvoiceColumnsError with the closer dialect's missing columns
//     otherwise.
func ValidateInvoiceColumns(headers []string) error {
	set := headerSet(headers)

	missingDE := missingColumns(types.InvoiceColumnsDE, set)
	missingFR := missingColumns(types.InvoiceColumnsFR, set)

	if len(missingDE) == 0 || len(missingFR) == 0 {
		return nil
	}

	if len(missingDE) == len(types.InvoiceColumnsDE) && len(missingFR) == len(types.InvoiceColumnsFR) {
		return ErrNoInvoiceColumns
	}

	missing := missingFR
	if len(missingDE) < len(missingFR) {
		missing = missingDE
	}

	return &PartialInvoiceColumnsError{Missing: missing}
}

// ResolveInvoiceColumns returns the complete invoice dialect found in headers,
// preferring German, or an empty slice if neither is complete.
func ResolveInvoiceColumns(headers []string) []string {
	switch DetectDialect(headers) {
	case DialectGerman:
		return append([]string(nil), types.InvoiceColumnsDE...)
	case DialectFrench:
		return append([]string(nil), types.InvoiceColumnsFR...)
	default:
		return []string{}
	}
}

// DetectDialect reports which invoice dialect headers contain in full.
func DetectDialect(headers []string) Dialect {
	set := headerSet(headers)

	if len(missingColumns(types.InvoiceColumnsDE, set)) == 0 {
		return DialectGerman
	}
	if len(missingColumns(types.InvoiceColumnsFR, set)) == 0 {
		return DialectFrench
	}
	return DialectNone
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func headerSet(headers []string) map[string]struct{} {
	set := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		set[h] = struct{}{}
	}
	return set
}

// missingColumns returns the entries of required not in set, keeping order.
func missingColumns(required []string, set map[string]struct{}) []string {
	var missing []string
	for _, column := range required {
		if _, ok := set[column]; !ok {
			missing = append(missing, column)
		}
	}
	return missing
}
