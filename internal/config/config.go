// =============================================================================
// Mailing Converter - Configuration Module
// =============================================================================
//
// This module defines the application configuration and its defaults.
//
// SOURCES (lowest to highest precedence):
//   1. Built-in defaults (applyMainConfigDefaults / setDefaults)
//   2. config.yaml in ., ./.mailing-converter or $HOME/.mailing-converter
//   3. .env file in the working directory
//   4. MAILING_* environment variables
//   5. Command-line flags
//
// Loading is done by InitializeConfig in viper.go; this file owns the shape of
// the configuration, its defaults and its validation.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/mailing-converter/internal/validation"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for .xlsx and .csv exports when no files are given
	// on the command line.
	// Default: "./input"
	InputDir string `yaml:"input_dir" mapstructure:"input_dir"`

	// OutputDir receives the generated mailing workbooks.
	// Default: "./output"
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`

	// InputArchiveDir receives processed exports when ArchiveInputs is set.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir" mapstructure:"input_archive_dir"`

	// ArchiveInputs moves each successfully processed export into
	// InputArchiveDir.
	// Default: false
	ArchiveInputs bool `yaml:"archive_inputs" mapstructure:"archive_inputs"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines the output file name.
	// Placeholders:
	//   {original}  - Input file name without extension
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - A random UUID
	// Default: "{original}_mailing.xlsx"
	OutputNameFormat string `yaml:"output_name_format" mapstructure:"output_name_format"`

	// SheetName is the name of the single sheet of the generated workbook.
	// Default: "Data"
	SheetName string `yaml:"sheet_name" mapstructure:"sheet_name"`

	// =========================================================================
	// MAILING SETTINGS
	// =========================================================================

	// Account is the QR-IBAN used for invoicing runs. Empty means an
	// address-only run.
	Account string `yaml:"account" mapstructure:"account"`

	// Locale selects the language of user-facing messages: "de", "fr" or
	// "en". Empty means derive it from LANG.
	Locale string `yaml:"locale" mapstructure:"locale"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`

	// LogFormat is "text" or "json".
	// Default: "text"
	LogFormat string `yaml:"log_format" mapstructure:"log_format"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files processed concurrently.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency" mapstructure:"max_concurrency"`

	// RowWorkers bounds the rows transformed concurrently within one file.
	// 0 means one per CPU.
	RowWorkers int `yaml:"row_workers" mapstructure:"row_workers"`

	// ContinueOnError keeps processing the remaining files after a failure.
	// Default: true
	ContinueOnError bool `yaml:"continue_on_error" mapstructure:"continue_on_error"`

	// CSV configures reading .csv exports.
	CSV CSVSettings `yaml:"csv" mapstructure:"csv"`
}

// =============================================================================
// CSV SETTINGS STRUCTURE
// =============================================================================

// CSVSettings contains settings for parsing CSV exports.
type CSVSettings struct {
	// Delimiter separates fields. Exports from the membership administration
	// use ";".
	// Default: ";"
	Delimiter string `yaml:"delimiter" mapstructure:"delimiter"`

	// Encoding is the character encoding of the file.
	// Valid values: "utf-8", "iso-8859-1", "iso-8859-15", "windows-1252",
	// "macintosh"
	// Default: "utf-8"
	Encoding string `yaml:"encoding" mapstructure:"encoding"`
}

// =============================================================================
// DEFAULTS AND VALIDATION
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	cfg := &MainConfig{ContinueOnError: true}
	applyMainConfigDefaults(cfg)
	return cfg
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{original}_mailing.xlsx"
	}
	if config.SheetName == "" {
		config.SheetName = "Data"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
	if config.CSV.Delimiter == "" {
		config.CSV.Delimiter = ";"
	}
	if config.CSV.Encoding == "" {
		config.CSV.Encoding = "utf-8"
	}
}

// validateMainConfig checks value ranges and normalizes the account number.
func validateMainConfig(config *MainConfig) error {
	if _, err := logrus.ParseLevel(config.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", config.LogLevel)
	}

	if config.LogFormat != "text" && config.LogFormat != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.LogFormat)
	}

	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got: %d", config.MaxConcurrency)
	}

	if config.RowWorkers < 0 {
		return fmt.Errorf("row_workers must not be negative, got: %d", config.RowWorkers)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", config.CSV.Delimiter)
	}

	if !strings.Contains(config.OutputNameFormat, "{original}") &&
		!strings.Contains(config.OutputNameFormat, "{uuid}") &&
		!strings.Contains(config.OutputNameFormat, "{timestamp}") {
		return fmt.Errorf("output_name_format must contain {original}, {uuid} or {timestamp}: %s", config.OutputNameFormat)
	}

	switch config.Locale {
	case "", "de", "fr", "en":
	default:
		return fmt.Errorf("invalid locale: %s (must be 'de', 'fr' or 'en')", config.Locale)
	}

	if config.Account != "" {
		if err := validation.ValidateQRIBAN(config.Account); err != nil {
			return fmt.Errorf("invalid account: %w", err)
		}
		config.Account = validation.NormalizeAccount(config.Account)
	}

	return nil
}

// EnsureDirectories creates the output directory, and the archive directory
// when archiving is enabled.
func (c *MainConfig) EnsureDirectories() error {
	dirs := []string{c.OutputDir}
	if c.ArchiveInputs {
		dirs = append(dirs, c.InputArchiveDir)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// YAML renders the effective configuration.
func (c *MainConfig) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	return data, nil
}
