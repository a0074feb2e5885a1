// =============================================================================
// QRMS Invoice Export - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'export', 'validate') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (qrmsx)
//   ├── exportCmd (qrmsx export)
//   ├── validateCmd (qrmsx validate)
//   └── versionCmd (qrmsx version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (e.g., --config, --verbose)
//   2. Constructing the shared logger
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/QRMS-invoice-export/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// log is the shared logger for all commands.
var log = logrus.New()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
// This is the entry point for the CLI application.
var rootCmd = &cobra.Command{
	// Use is the one-line usage message.
	// This is what appears in help text and error messages.
	Use: "qrmsx",

	// Short is a short description shown in the 'help' output.
	Short: "QRMS Invoice Export - Validate invoice batches and export posting workbooks",

	// Long is a longer description shown in the 'help <command>' output.
	Long: `QRMS Invoice Export is a CLI tool that validates QRMS invoice batch
documents and exports them as XLSX workbooks ready for bulk posting to the
financial system.

Key Features:
  - Full-batch validation with every violation reported at once
  - Conditional account-assignment checks (COPA, rebilling, cost objects)
  - Derived posting rows: one summary row plus one row per line item
  - Concurrent processing of multiple batch documents
  - Automatic archival of exported batch documents

Example Usage:
  qrmsx export                      # Export all batch documents in the input directory
  qrmsx export --file batch.yaml    # Export a single batch document
  qrmsx validate batch.yaml         # Validate a batch document without exporting`,

	// Run is the function that will be executed when the root command is called
	// without any subcommands. In this case, we just print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Execute the root command. If there's an error, print it and exit.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init is called automatically when the package is loaded.
// It sets up the global flags.
func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================
	// Persistent flags are available to this command and all subcommands.

	// --config flag: Allows the user to specify a custom configuration file.
	// Default is "config.yaml" in the current directory.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	// --verbose flag: Enables verbose/debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfig loads the configuration file and configures the shared logger
// from it. The --verbose flag overrides the configured log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	return cfg, nil
}
