// =============================================================================
// Mailing Converter - CSV Export Reader
// =============================================================================
//
// This module reads membership exports saved as CSV into a types.Table. CSV
// carries no cell types, so every non-empty field becomes a text cell.
//
// FEATURES:
//   - Configurable delimiter (the administration exports use ";")
//   - Legacy single-byte encodings (Windows-1252, ISO-8859-1/15, Mac Roman)
//   - UTF-8 byte order marks are dropped
//   - Ragged rows: missing trailing fields are absent, extra fields ignored
//   - Blank lines are skipped
//
// =============================================================================

package csvparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ginjaninja78/mailing-converter/internal/config"
	"github.com/ginjaninja78/mailing-converter/internal/types"
)

// ErrNoHeader is returned for files without a header line.
var ErrNoHeader = errors.New("CSV file has no header row")

// =============================================================================
// ENCODINGS
// =============================================================================

var encodings = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8,
	"utf8":         unicode.UTF8,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"latin9":       charmap.ISO8859_15,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"macintosh":    charmap.Macintosh,
}

// LookupEncoding resolves an encoding name, case-insensitively.
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, ok := encodings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unsupported encoding: %s", name)
	}
	return enc, nil
}

// =============================================================================
// READER
// =============================================================================

// Reader reads membership exports from CSV files.
type Reader struct {
	Settings config.CSVSettings
}

// ReadFile opens and reads the CSV file at path.
func (r Reader) ReadFile(path string) (*types.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	table, err := r.Read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	table.Source = path
	return table, nil
}

// Read parses CSV data from a byte stream.
//
// PARSING PROCESS:
//   1. Decode the configured encoding to UTF-8, dropping a BOM
//   2. Configure the CSV reader with the configured delimiter
//   3. Take the first record as the header row
//   4. Convert each following record to a row of text cells
func (r Reader) Read(in io.Reader) (*types.Table, error) {
	decoder, err := r.decoder()
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(transform.NewReader(in, decoder))
	if err := configureReader(csvReader, r.Settings); err != nil {
		return nil, err
	}

	header, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	headers, columns := parseHeaders(header)
	if len(headers) == 0 {
		return nil, ErrNoHeader
	}

	table := &types.Table{Headers: headers}
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		row := make(types.InputRow)
		for col, header := range columns {
			if col >= len(record) || record[col] == "" {
				continue
			}
			row[header] = types.StringCell(record[col])
		}
		if len(row) == 0 {
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func (r Reader) decoder() (transform.Transformer, error) {
	name := r.Settings.Encoding
	if name == "" {
		name = "utf-8"
	}
	enc, err := LookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8 {
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	}
	return enc.NewDecoder(), nil
}

// configureReader applies the delimiter and relaxes quoting and field count.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	delimiter := settings.Delimiter
	if delimiter == "" {
		delimiter = ";"
	}
	if utf8.RuneCountInString(delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", delimiter)
	}

	reader.Comma, _ = utf8.DecodeRuneInString(delimiter)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return nil
}

// parseHeaders mirrors the workbook reader: NFC headers, empty headers
// skipped, first of duplicate headers kept.
func parseHeaders(record []string) ([]string, map[int]string) {
	var headers []string
	columns := make(map[int]string, len(record))
	seen := make(map[string]struct{}, len(record))

	for i, h := range record {
		h = norm.NFC.String(h)
		if strings.TrimSpace(h) == "" {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		headers = append(headers, h)
		columns[i] = h
	}
	return headers, columns
}
