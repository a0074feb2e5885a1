// =============================================================================
// QRMS Invoice Export - Export Command
// =============================================================================
//
// This file defines the 'export' command, which is the main command for
// turning invoice batch documents into XLSX posting workbooks.
//
// COMMAND USAGE:
//   qrmsx export [flags]
//
// FLAGS:
//   --file : Path to a specific batch document to export (skips discovery)
//
// EXPORT PIPELINE:
//   1. Load configuration
//   2. Discover batch documents in the input directory
//   3. For each document (concurrently, bounded by max_concurrency):
//      a. Load and validate the batch
//      b. Derive the posting rows
//      c. Write the XLSX workbook
//      d. Archive the batch document
//   4. Print a summary report
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/QRMS-invoice-export/internal/batch"
	"github.com/ginjaninja78/QRMS-invoice-export/internal/exporter"
	"github.com/ginjaninja78/QRMS-invoice-export/internal/validation"
	"github.com/ginjaninja78/QRMS-invoice-export/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// exportFile is the path to a specific batch document to export.
// When set, input-directory discovery is skipped.
var exportFile string

// =============================================================================
// EXPORT COMMAND DEFINITION
// =============================================================================

// exportCmd represents the 'export' command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export invoice batch documents as XLSX posting workbooks",
	Long: `The export command scans the input directory for batch documents
(YAML or JSON), validates each one, derives the posting rows, and writes an
XLSX workbook per batch to the output directory.

Documents are processed concurrently. Each document is exported independently,
and errors in one document do not affect the processing of others.

On successful export:
  - The generated workbook is placed in the output directory
  - The batch document is moved to the archive directory

On validation failure:
  - An error log listing every violation is created in the output directory
  - No workbook is produced for that batch
  - The batch document remains in the input directory`,

	// RunE is like Run but returns an error. This is preferred for commands
	// that can fail, as it allows Cobra to handle the error gracefully.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the export command with the root command and sets up flags.
func init() {
	// Add the export command to the root command.
	rootCmd.AddCommand(exportCmd)

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================
	// Local flags are only available to this command.

	// --file flag: Export only a single batch document.
	exportCmd.Flags().StringVar(
		&exportFile,
		"file",
		"",
		"Path to a specific batch document to export (skips input directory discovery)",
	)
}

// =============================================================================
// MAIN EXPORT FUNCTION
// =============================================================================

// runExport is the main function that orchestrates the export pipeline.
func runExport() error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	fmt.Println("=== QRMS Invoice Export ===")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: DISCOVER BATCH DOCUMENTS
	// =========================================================================
	// Either take the single document given with --file, or scan the input
	// directory for batch documents.

	var documents []string

	if exportFile != "" {
		if !utils.FileExists(exportFile) {
			return fmt.Errorf("batch document not found: %s", exportFile)
		}
		documents = []string{exportFile}
	} else {
		fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.ArchiveDir)
		documents, err = fm.DiscoverBatchDocuments(batch.Extensions)
		if err != nil {
			return fmt.Errorf("failed to discover batch documents: %w", err)
		}
	}

	if len(documents) == 0 {
		fmt.Println("No batch documents found in the input directory.")
		return nil
	}

	fmt.Printf("Found %d batch document(s) to export\n", len(documents))

	// =========================================================================
	// STEP 3: EXPORT DOCUMENTS CONCURRENTLY
	// =========================================================================
	// Each document is exported in its own goroutine. A semaphore channel
	// bounds the number of concurrent exports at cfg.MaxConcurrency, and a
	// buffered results channel collects outcomes without blocking.

	var wg sync.WaitGroup

	results := make(chan exporter.Result, len(documents))
	semaphore := make(chan struct{}, cfg.MaxConcurrency)

	for _, doc := range documents {
		wg.Add(1)

		go func(path string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			exp := exporter.New(path, cfg, log)
			results <- exp.Run()
		}(doc)
	}

	// Close the results channel when all goroutines are done.
	go func() {
		wg.Wait()
		close(results)
	}()

	// =========================================================================
	// STEP 4: COLLECT RESULTS
	// =========================================================================

	var successCount, invalidCount, errorCount int

	for result := range results {
		switch {
		case result.Success:
			successCount++
			fmt.Printf("  ✓ %s -> %s (%d invoice(s), %d row(s))\n",
				filepath.Base(result.BatchFile),
				filepath.Base(result.OutputFile),
				result.Stats.Invoices,
				result.Stats.Rows,
			)
		case result.Invalid:
			invalidCount++
			fmt.Printf("  ✗ %s: %d validation error(s)\n",
				filepath.Base(result.BatchFile), len(result.ValidationErrors))
			fmt.Print(validation.FormatErrors(result.ValidationErrors))
			if result.ErrorLog != "" {
				fmt.Printf("    error log: %s\n", result.ErrorLog)
			}
		default:
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.BatchFile), result.Error)
		}
	}

	// =========================================================================
	// STEP 5: PRINT SUMMARY
	// =========================================================================

	elapsed := time.Since(startTime)
	fmt.Println("\n=== Export Complete ===")
	fmt.Printf("Total documents: %d\n", len(documents))
	fmt.Printf("Exported:        %d\n", successCount)
	fmt.Printf("Invalid:         %d\n", invalidCount)
	fmt.Printf("Errors:          %d\n", errorCount)
	fmt.Printf("Time elapsed:    %s\n", elapsed)

	if invalidCount+errorCount > 0 {
		return fmt.Errorf("%d document(s) failed to export", invalidCount+errorCount)
	}

	return nil
}
