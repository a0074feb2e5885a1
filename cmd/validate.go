// =============================================================================
// QRMS Invoice Export - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks batch documents
// against the validation rules without exporting anything. It is intended
// for dry-run checks before an export run.
//
// COMMAND USAGE:
//   qrmsx validate [file...]
//
// With no arguments, all batch documents in the input directory are
// validated. With file arguments, only those documents are validated.
//
// EXIT BEHAVIOR:
//   The command returns an error (non-zero exit code) if any document is
//   invalid, so it can gate automated pipelines.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/QRMS-invoice-export/internal/batch"
	"github.com/ginjaninja78/QRMS-invoice-export/internal/validation"
	"github.com/ginjaninja78/QRMS-invoice-export/pkg/utils"
)

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Validate batch documents without exporting",
	Long: `The validate command loads each batch document and runs the full set of
validation rules against it, reporting every violation with its document
path (e.g. invoices[0].lines[1].glAccount).

No workbooks are written and no documents are archived. The command exits
with a non-zero status if any document is invalid.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the validate command with the root command.
func init() {
	rootCmd.AddCommand(validateCmd)
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// runValidate validates the given documents, or every document in the
// input directory when none are given.
func runValidate(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 1: RESOLVE DOCUMENTS TO VALIDATE
	// =========================================================================

	documents := args
	if len(documents) == 0 {
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

	// =========================================================================
	// STEP 2: VALIDATE EACH DOCUMENT
	// =========================================================================
	// Validation is sequential here; the command is a reporting tool and the
	// per-document cost is dominated by reading the file.

	validator := validation.NewWithOptions(validation.Options{
		TaxCodeAllowlist: cfg.TaxCodeAllowlist,
	})

	var invalidCount int

	for _, doc := range documents {
		b, err := batch.Load(doc)
		if err != nil {
			invalidCount++
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(doc), err)
			continue
		}

		result := validator.Validate(b)
		if result.IsValid {
			fmt.Printf("  ✓ %s: valid (%d invoice(s), %d line(s))\n",
				filepath.Base(doc), result.InvoicesValidated, result.LinesValidated)
			continue
		}

		invalidCount++
		fmt.Printf("  ✗ %s: %d validation error(s)\n", filepath.Base(doc), len(result.Errors))
		fmt.Print(validation.FormatErrors(result.Errors))
	}

	// =========================================================================
	// STEP 3: REPORT OUTCOME
	// =========================================================================

	if invalidCount > 0 {
		return fmt.Errorf("%d of %d document(s) failed validation", invalidCount, len(documents))
	}

	fmt.Printf("\nAll %d document(s) are valid.\n", len(documents))
	return nil
}
