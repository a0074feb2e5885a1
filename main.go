// =============================================================================
// QRMS Invoice Export - Main Entry Point
// =============================================================================
//
// This is the main entry point for the QRMS Invoice Export CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   qrmsx export        - Export all batch documents in the input directory
//   qrmsx validate      - Validate batch documents without exporting
//   qrmsx version       - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/QRMS-invoice-export/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
