// =============================================================================
// Mailing Converter - Converter Module
// =============================================================================
//
// This module contains the per-file conversion pipeline. It orchestrates one
// membership export from parsing to the written mailing workbook.
//
// CONVERSION PIPELINE:
//   1. Pick the reader for the file extension (.xlsx or .csv)
//   2. Parse the export into a table
//   3. Run the mailing engine (validation, classification, greetings,
//      references)
//   4. Write the mailing workbook
//   5. Archive the processed export
//
// CONCURRENCY:
//   A Converter handles one file and keeps no shared state, so several
//   converters can run side by side (see RunAll in batch.go).
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/mailing-converter/internal/config"
	"github.com/ginjaninja78/mailing-converter/internal/csvparser"
	"github.com/ginjaninja78/mailing-converter/internal/logging"
	"github.com/ginjaninja78/mailing-converter/internal/mailing"
	"github.com/ginjaninja78/mailing-converter/internal/types"
	"github.com/ginjaninja78/mailing-converter/internal/validation"
	"github.com/ginjaninja78/mailing-converter/internal/xlsxparser"
	"github.com/ginjaninja78/mailing-converter/internal/xlsxwriter"
	"github.com/ginjaninja78/mailing-converter/pkg/utils"
)

// ErrUnsupportedFile is returned for inputs that are neither .xlsx nor .csv.
var ErrUnsupportedFile = errors.New("unsupported file type")

// =============================================================================
// CODEC INTERFACES
// =============================================================================

// TableReader parses an export file into a table.
type TableReader interface {
	ReadFile(path string) (*types.Table, error)
}

// TableWriter serializes mailing rows to a file.
type TableWriter interface {
	WriteFile(path string, columns []string, rows []types.OutputRow) error
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the generated workbook.
	// This is empty if processing failed or for dry runs.
	OutputFile string

	// ArchivePath is where the input was moved, if archiving is enabled.
	ArchivePath string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Rows is the number of mailing rows produced.
	Rows int

	// Dialect is the invoice dialect found in the header row.
	Dialect validation.Dialect

	ByType map[types.RecordType]int
	ByLang map[types.RecordLang]int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single export file.
type Converter struct {
	inputPath  string
	mainConfig *config.MainConfig
	files      *utils.FileManager
	logger     logging.Logger

	// readers maps a lower-case file extension to its reader.
	readers map[string]TableReader
	writer  TableWriter

	dryRun bool
}

// Option customizes a Converter.
type Option func(*Converter)

// WithDryRun runs the pipeline without writing or archiving anything.
func WithDryRun(dryRun bool) Option {
	return func(c *Converter) { c.dryRun = dryRun }
}

// WithReader replaces the reader used for files with extension ext.
func WithReader(ext string, reader TableReader) Option {
	return func(c *Converter) { c.readers[strings.ToLower(ext)] = reader }
}

// WithWriter replaces the workbook writer.
func WithWriter(writer TableWriter) Option {
	return func(c *Converter) { c.writer = writer }
}

// WithFileManager replaces the file manager derived from the configuration.
func WithFileManager(files *utils.FileManager) Option {
	return func(c *Converter) { c.files = files }
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - inputPath: The path to the export to convert.
//   - mainConfig: The validated application configuration.
//   - logger: The logger; entries carry the input file name.
//   - opts: Optional overrides.
//
// RETURNS:
//   - A new Converter instance.
func New(inputPath string, mainConfig *config.MainConfig, logger logging.Logger, opts ...Option) *Converter {
	c := &Converter{
		inputPath:  inputPath,
		mainConfig: mainConfig,
		files:      NewFileManager(mainConfig),
		logger:     logger.WithField(logging.FieldInputFile, filepath.Base(inputPath)),
		readers: map[string]TableReader{
			".xlsx": xlsxparser.Reader{},
			".csv":  csvparser.Reader{Settings: mainConfig.CSV},
		},
		writer: xlsxwriter.Writer{SheetName: mainConfig.SheetName},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFileManager builds the file manager for the configured directories.
func NewFileManager(mainConfig *config.MainConfig) *utils.FileManager {
	fm := utils.NewFileManager(mainConfig.InputDir, mainConfig.OutputDir, mainConfig.InputArchiveDir)
	fm.ArchiveOnSuccess = mainConfig.ArchiveInputs
	return fm
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing. Errors are
//     reported in the Result, never panicked.
func (c *Converter) Run() (result Result) {
	startTime := time.Now()
	result.FilePath = c.inputPath

	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	c.logger.Info("Processing file", logging.F(logging.FieldOperation, "convert"))

	// =========================================================================
	// STEP 1: PARSE INPUT
	// =========================================================================

	table, err := c.ReadTable()
	if err != nil {
		result.Error = err
		return c.fail(result)
	}

	result.Stats.Dialect = validation.DetectDialect(table.Headers)
	c.logger.Debug("Parsed input",
		logging.F(logging.FieldRows, len(table.Rows)),
		logging.F(logging.FieldColumns, len(table.Headers)),
		logging.F(logging.FieldDialect, result.Stats.Dialect.String()))

	// =========================================================================
	// STEP 2: RUN THE MAILING ENGINE
	// =========================================================================

	processed, err := mailing.Process(table, mailing.Options{
		Account: c.mainConfig.Account,
		Workers: c.mainConfig.RowWorkers,
	})
	if err != nil {
		result.Error = err
		return c.fail(result)
	}

	result.Stats.Rows = processed.Stats.Rows
	result.Stats.ByType = processed.Stats.ByType
	result.Stats.ByLang = processed.Stats.ByLang
	c.logStats(processed.Stats)

	if c.dryRun {
		c.logger.Info("Dry run, nothing written", logging.F(logging.FieldStatus, "dry_run"))
		result.Success = true
		return result
	}

	// =========================================================================
	// STEP 3: WRITE OUTPUT FILE
	// =========================================================================

	outputPath := c.files.ReserveOutputPath(c.mainConfig.OutputNameFormat, c.inputPath)
	if err := c.writer.WriteFile(outputPath, processed.Columns, processed.Rows); err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return c.fail(result)
	}
	result.OutputFile = outputPath

	// =========================================================================
	// STEP 4: ARCHIVE INPUT
	// =========================================================================
	// The output is already written, so an archival failure is only logged.

	if c.files.ArchiveOnSuccess {
		archivePath, err := c.files.ArchiveInputFile(c.inputPath)
		if err != nil {
			c.logger.WithError(err).Warn("Failed to archive input file")
		} else {
			result.ArchivePath = archivePath
			c.logger.Debug("Archived input file", logging.F(logging.FieldArchive, archivePath))
		}
	}

	result.Success = true
	c.logger.Info("Wrote mailing workbook",
		logging.F(logging.FieldOutputFile, outputPath),
		logging.F(logging.FieldRows, result.Stats.Rows),
		logging.F(logging.FieldStatus, "success"))

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// ReadTable parses the input file with the reader for its extension.
func (c *Converter) ReadTable() (*types.Table, error) {
	reader, err := c.reader()
	if err != nil {
		return nil, err
	}

	table, err := reader.ReadFile(c.inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	return table, nil
}

func (c *Converter) reader() (TableReader, error) {
	ext := strings.ToLower(filepath.Ext(c.inputPath))
	reader, ok := c.readers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFile, ext)
	}
	return reader, nil
}

func (c *Converter) fail(result Result) Result {
	c.logger.WithError(result.Error).Error("Failed to process file",
		logging.F(logging.FieldStatus, ErrorKind(result.Error)))
	return result
}

func (c *Converter) logStats(stats mailing.Stats) {
	for _, recordType := range types.RecordTypes {
		if n := stats.ByType[recordType]; n > 0 {
			c.logger.Debug("Record type count",
				logging.F(logging.FieldRecordType, string(recordType)),
				logging.F(logging.FieldCount, n))
		}
	}
	for _, lang := range []types.RecordLang{types.LangGerman, types.LangFrench} {
		if n := stats.ByLang[lang]; n > 0 {
			c.logger.Debug("Language count",
				logging.F(logging.FieldLang, string(lang)),
				logging.F(logging.FieldCount, n))
		}
	}
}

// ErrorKind classifies a processing error for logs and the summary file.
func ErrorKind(err error) string {
	var missing *validation.MissingColumnsError
	var partial *validation.PartialInvoiceColumnsError
	var sheet *xlsxparser.SheetError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, validation.ErrEmptyTable):
		return "empty_table"
	case errors.As(err, &missing):
		return "missing_columns"
	case errors.Is(err, validation.ErrNoInvoiceColumns):
		return "no_invoice_columns"
	case errors.As(err, &partial):
		return "partial_invoice_columns"
	case errors.Is(err, ErrUnsupportedFile):
		return "unsupported_file"
	case errors.Is(err, ErrSkipped):
		return "skipped"
	case errors.As(err, &sheet),
		errors.Is(err, xlsxparser.ErrNoHeader),
		errors.Is(err, csvparser.ErrNoHeader):
		return "read_error"
	default:
		return "io_error"
	}
}
