// =============================================================================
// Mailing Converter - Process Command
// =============================================================================
//
// This file defines the 'process' command, the main command of the converter.
//
// COMMAND USAGE:
//   mailing process [files...] [flags]
//
// FLAGS:
//   --account      : QR-IBAN for an invoicing run (empty: addresses only)
//   --output       : Output directory
//   --dry-run      : Run every step except writing and archiving
//   --interactive  : Ask for the mode and the account
//   --workers      : Rows transformed concurrently per file
//   --concurrency  : Files processed concurrently
//   --archive      : Move processed exports to the archive directory
//
// PROCESSING PIPELINE:
//   1. Load configuration (and prompt, in interactive mode)
//   2. Take the files from the command line, or discover them in input_dir
//   3. Convert the files concurrently (converter.RunAll)
//   4. Print per-file results and write the summary file
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/ginjaninja78/mailing-converter/internal/config"
	"github.com/ginjaninja78/mailing-converter/internal/converter"
	"github.com/ginjaninja78/mailing-converter/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun runs the pipeline without writing output files.
var dryRun bool

// interactive asks for the run mode and account before processing.
var interactive bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process [files...]",
	Short: "Convert membership exports into mailing sheets",
	Long: `The process command converts membership exports into mailing workbooks.

Without file arguments it processes every .xlsx and .csv file in the input
directory. Files are processed concurrently; a failing file does not stop the
others unless continue_on_error is false.

With --account (or in interactive mode, "Addresses and invoices") the sheet
must contain the German or the French invoice columns, and every row gets the
account and its QR payment reference.

On success:
  - The mailing workbook is placed in the output directory
  - The export is moved to the archive when archive_inputs is set
  - A summary file is written to the output directory`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	flags := processCmd.Flags()
	flags.String("account", "", "QR-IBAN of the receiving account; enables invoicing")
	flags.StringP("output", "o", "", "Output directory")
	flags.BoolVar(&dryRun, "dry-run", false, "Run without writing output files")
	flags.BoolVarP(&interactive, "interactive", "i", false, "Choose the mode and account interactively")
	flags.Int("workers", 0, "Rows transformed concurrently per file (0: one per CPU)")
	flags.Int("concurrency", 0, "Files processed concurrently")
	flags.Bool("archive", false, "Move processed exports to the archive directory")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runProcess(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p := newPrinter(uiLocale)

	if interactive {
		if err := promptRunSettings(p, cfg); err != nil {
			return err
		}
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())
	files := converter.NewFileManager(cfg)

	// =========================================================================
	// STEP 1: COLLECT INPUT FILES
	// =========================================================================

	inputFiles := args
	if len(inputFiles) == 0 {
		inputFiles, err = files.DiscoverInputFiles()
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(out, titleStyle.Render("Mailing Converter"))
	if len(inputFiles) == 0 {
		fmt.Fprintln(out, mutedStyle.Render(p.Sprintf("No export files found in %s", cfg.InputDir)))
		return nil
	}
	fmt.Fprintln(out, p.Sprintf("Found %d file(s) to process", len(inputFiles)))

	if dryRun {
		fmt.Fprintln(out, mutedStyle.Render(p.Sprintf("Dry run: nothing will be written")))
	} else if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: PROCESS FILES CONCURRENTLY
	// =========================================================================

	results := converter.RunAll(inputFiles, cfg, logger, converter.WithDryRun(dryRun))

	// =========================================================================
	// STEP 3: REPORT
	// =========================================================================

	printResults(out, p, results)

	summary := buildSummary(results, cfg, startTime, time.Now())
	printSummary(out, p, summary)

	if !dryRun {
		summaryPath, err := utils.WriteSummaryLog(summary, cfg.OutputDir)
		if err != nil {
			logger.WithError(err).Warn("Failed to write summary file")
		} else {
			fmt.Fprintln(out, mutedStyle.Render(p.Sprintf("Summary written to %s", summaryPath)))
		}
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%s", p.Sprintf("%d of %d file(s) failed", summary.FailedFiles, summary.TotalFiles))
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func printResults(out io.Writer, p *message.Printer, results []converter.Result) {
	for _, result := range results {
		name := filepath.Base(result.FilePath)
		if result.Success {
			target := result.OutputFile
			if target == "" {
				target = p.Sprintf("Rows: %d", result.Stats.Rows)
			}
			fmt.Fprintf(out, "  %s %s -> %s\n", successStyle.Render(successMark), name, target)
			continue
		}
		fmt.Fprintf(out, "  %s %s: %s\n", errorStyle.Render(failureMark), name, describeError(p, result.Error))
	}
}

func printSummary(out io.Writer, p *message.Printer, summary utils.ProcessingSummary) {
	body := p.Sprintf("Processing complete") + "\n" +
		p.Sprintf("Files: %d  Successful: %d  Failed: %d", summary.TotalFiles, summary.SuccessfulFiles, summary.FailedFiles) + "\n" +
		p.Sprintf("Rows: %d", summary.TotalRows) + "\n" +
		p.Sprintf("Time elapsed: %s", summary.EndTime.Sub(summary.StartTime).Round(time.Millisecond))
	fmt.Fprintln(out, summaryBoxStyle.Render(body))
}

// buildSummary folds per-file results into the summary written to disk.
func buildSummary(results []converter.Result, cfg *config.MainConfig, start, end time.Time) utils.ProcessingSummary {
	mode := "addresses"
	if cfg.Account != "" {
		mode = "invoices"
	}

	summary := utils.ProcessingSummary{
		StartTime:  start,
		EndTime:    end,
		Mode:       mode,
		TotalFiles: len(results),
		RowsByType: make(map[string]int),
		RowsByLang: make(map[string]int),
	}

	for _, result := range results {
		if !result.Success {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    result.FilePath,
				ErrorMessage: result.Error.Error(),
				ErrorType:    converter.ErrorKind(result.Error),
			})
			continue
		}

		summary.SuccessfulFiles++
		summary.TotalRows += result.Stats.Rows
		for recordType, n := range result.Stats.ByType {
			summary.RowsByType[string(recordType)] += n
		}
		for lang, n := range result.Stats.ByLang {
			summary.RowsByLang[string(lang)] += n
		}
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:   result.FilePath,
			OutputFile:  result.OutputFile,
			ArchivePath: result.ArchivePath,
			Rows:        result.Stats.Rows,
			Dialect:     result.Stats.Dialect.String(),
			ProcessTime: result.Stats.ProcessingTime,
		})
	}

	return summary
}
