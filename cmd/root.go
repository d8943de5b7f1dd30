// =============================================================================
// Mailing Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (mailing)
//   ├── processCmd  (mailing process)
//   ├── validateCmd (mailing validate)
//   ├── configCmd   (mailing config)
//   └── versionCmd  (mailing version)
//
// CONFIGURATION:
//   The root command owns the global flags (--config, --verbose, --log-level,
//   --log-format, --locale). Each command loads the configuration through
//   loadConfig, which binds the flags it knows to configuration keys.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ginjaninja78/mailing-converter/internal/config"
	"github.com/ginjaninja78/mailing-converter/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to an explicit configuration file.
var cfgFile string

// verbose switches logging to debug.
var verbose bool

// uiLocale is the language of user-facing output. It is resolved from LANG
// at start-up and refined once the configuration is loaded.
var uiLocale = resolveLocale("", os.Getenv("LANG"))

// flagKeys maps configuration keys to the flags that override them.
var flagKeys = map[string]string{
	"log_level":       "log-level",
	"log_format":      "log-format",
	"locale":          "locale",
	"account":         "account",
	"output_dir":      "output",
	"row_workers":     "workers",
	"max_concurrency": "concurrency",
	"archive_inputs":  "archive",
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mailing",
	Short: "Mailing Converter - Turn membership exports into mailing sheets",
	Long: `Mailing Converter turns membership exports (.xlsx or .csv) into mailing
sheets for letter merges: two address lines, an informal and a formal greeting
in German or French, and for invoicing runs the QR-bill account and payment
reference of every member.

Example Usage:
  mailing process                                   # Process every export in the input directory
  mailing process members.xlsx                      # Process one file
  mailing process --account CH44 3199 9123 0008 8901 2 invoices.xlsx
  mailing process --interactive                     # Choose mode and account interactively
  mailing validate members.xlsx                     # Check the columns without writing`,

	SilenceErrors: true,
	SilenceUsage:  true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. Errors are printed localized and exit with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		p := newPrinter(uiLocale)
		fmt.Fprintln(os.Stderr, errorStyle.Render(failureMark+" "+describeError(p, err)))
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&cfgFile, "config", "", "Path to the configuration file (default: search config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-format", "", "Log format: text or json")
	flags.String("locale", "", "Language of messages: de, fr or en (default: from LANG)")
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadConfig loads the configuration for cmd and applies the UI locale.
func loadConfig(cmd *cobra.Command) (*config.MainConfig, error) {
	bound := make(map[string]*pflag.Flag, len(flagKeys))
	for key, name := range flagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			bound[key] = flag
		}
	}

	cfg, err := config.InitializeConfig(config.LoadOptions{
		ConfigFile: cfgFile,
		Flags:      bound,
	})
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.LogLevel = "debug"
	}
	uiLocale = resolveLocale(cfg.Locale, os.Getenv("LANG"))
	return cfg, nil
}

// newLogger creates the logrus-backed logger; logs go to stderr so stdout
// stays reserved for results.
func newLogger(cfg *config.MainConfig, out io.Writer) logging.Logger {
	return logging.NewLogrusAdapter(cfg.LogLevel, cfg.LogFormat, out)
}
