// =============================================================================
// Mailing Converter - Validation Errors
// =============================================================================
//
// All validation errors are raised before any row is transformed and abort
// the whole run. They describe data-quality problems in the exported sheet
// that the user has to fix upstream and resubmit; none of them is retryable.
//
// MATCHING:
//   - Sentinels (ErrEmptyTable, ErrNoInvoiceColumns, ErrAccount*) with errors.Is
//   - Structured errors (*MissingColumnsError, *PartialInvoiceColumnsError)
//     with errors.As
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// TABLE ERRORS
// =============================================================================

// ErrEmptyTable is returned when the sheet has a header row but no data rows.
var ErrEmptyTable = errors.New("the sheet contains no data rows")

// ErrNoInvoiceColumns is returned for invoicing runs when the sheet carries
// neither invoice dialect at all.
var ErrNoInvoiceColumns = errors.New("the sheet contains no invoice columns")

// MissingColumnsError lists base columns absent from the header row, in
// canonical order.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Missing, ", "))
}

// PartialInvoiceColumnsError lists the absent columns of the invoice dialect
// the sheet most likely intended.
type PartialInvoiceColumnsError struct {
	Missing []string
}

func (e *PartialInvoiceColumnsError) Error() string {
	return fmt.Sprintf("missing invoice columns: %s", strings.Join(e.Missing, ", "))
}

// =============================================================================
// ACCOUNT ERRORS
// =============================================================================

var (
	ErrAccountEmpty    = errors.New("account number is empty")
	ErrAccountFormat   = errors.New("account number is not a valid IBAN")
	ErrAccountChecksum = errors.New("account number checksum mismatch")
	ErrNotQRIBAN       = errors.New("account number is not a QR-IBAN")
)
