// =============================================================================
// Mailing Converter - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks an export without
// writing anything.
//
// COMMAND USAGE:
//   mailing validate FILE [--account IBAN]
//   mailing validate FILE --check-references
//
// CHECKS:
//   - Default: base columns, and the invoice columns when an account is given;
//     reports the row count and the invoice dialect
//   - --check-references: verifies the Reference column of an already
//     processed mailing sheet
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/ginjaninja78/mailing-converter/internal/converter"
	"github.com/ginjaninja78/mailing-converter/internal/reference"
	"github.com/ginjaninja78/mailing-converter/internal/types"
	"github.com/ginjaninja78/mailing-converter/internal/validation"
)

// checkReferences switches validate to reference verification.
var checkReferences bool

// ErrInvalidReferences is returned when a processed sheet carries references
// with a wrong check digit.
var ErrInvalidReferences = errors.New("invalid payment references")

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check an export's columns without converting it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	flags := validateCmd.Flags()
	flags.String("account", "", "QR-IBAN; also require the invoice columns")
	flags.BoolVar(&checkReferences, "check-references", false, "Verify the Reference column of a processed sheet")
}

func runValidate(cmd *cobra.Command, path string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p := newPrinter(uiLocale)
	out := cmd.OutOrStdout()

	logger := newLogger(cfg, cmd.ErrOrStderr())
	table, err := converter.New(path, cfg, logger).ReadTable()
	if err != nil {
		return err
	}

	if checkReferences {
		return verifyReferences(out, p, table)
	}

	if len(table.Rows) == 0 {
		return validation.ErrEmptyTable
	}
	if err := validation.ValidateBaseColumns(table.Headers); err != nil {
		return err
	}
	if cfg.Account != "" {
		if err := validation.ValidateInvoiceColumns(table.Headers); err != nil {
			return err
		}
	}

	dialect := validation.DetectDialect(table.Headers)
	fmt.Fprintf(out, "%s %s\n", successStyle.Render(successMark), p.Sprintf("All required columns are present."))
	fmt.Fprintln(out, p.Sprintf("%d rows, invoice columns: %s", len(table.Rows), dialectName(p, dialect)))
	return nil
}

// verifyReferences checks every non-empty Reference cell. Row numbers start
// at 2 below the header and do not count blank lines.
func verifyReferences(out io.Writer, p *message.Printer, table *types.Table) error {
	if !slices.Contains(table.Headers, types.ColumnReference) {
		return fmt.Errorf("%s", p.Sprintf("The sheet has no %s column.", types.ColumnReference))
	}

	checked, invalid := 0, 0
	for i, row := range table.Rows {
		cell, ok := row[types.ColumnReference]
		if !ok || cell.String() == "" {
			continue
		}
		checked++
		if !reference.Validate(cell.String()) {
			invalid++
			fmt.Fprintf(out, "  %s %s\n", errorStyle.Render(failureMark), p.Sprintf("Row %d: invalid reference %q", i+2, cell.String()))
		}
	}

	fmt.Fprintln(out, p.Sprintf("%d reference(s) checked, %d invalid", checked, invalid))
	if invalid > 0 {
		return ErrInvalidReferences
	}
	return nil
}
