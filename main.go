// =============================================================================
// Mailing Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Mailing Converter CLI application. It
// delegates command execution to the cmd package.
//
// USAGE:
//   mailing process         - Convert every export in the input directory
//   mailing validate FILE   - Check an export's columns
//   mailing config          - Print the effective configuration
//   mailing version         - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Mailing engine, codecs, configuration, logging
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/mailing-converter/cmd"
)

func main() {
	cmd.Execute()
}
