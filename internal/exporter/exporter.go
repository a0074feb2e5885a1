// =============================================================================
// QRMS Invoice Export - Export Pipeline
// =============================================================================
//
// This module orchestrates the export of a single batch document:
//
//   1. Load the batch document
//   2. Validate it (all violations collected; invalid batches are
//      reported with an error log and never exported)
//   3. Derive the export rows (summary + line rows per invoice)
//   4. Write the XLSX workbook to the output directory
//   5. Archive the batch document
//
// Each document is processed independently; the exporter holds no state
// across runs, so multiple documents can be exported concurrently.
//
// =============================================================================

package exporter

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/QRMS-invoice-export/internal/batch"
	"github.com/ginjaninja78/QRMS-invoice-export/internal/config"
	"github.com/ginjaninja78/QRMS-invoice-export/internal/derive"
	"github.com/ginjaninja78/QRMS-invoice-export/internal/validation"
	"github.com/ginjaninja78/QRMS-invoice-export/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of exporting a single batch document.
type Result struct {
	// BatchFile is the path to the processed batch document.
	BatchFile string

	// OutputFile is the path of the generated workbook; empty on failure.
	OutputFile string

	// Success indicates whether the export completed.
	Success bool

	// Invalid is set when the document loaded but failed validation.
	// ValidationErrors then holds the violations and ErrorLog the path of
	// the written error log (if any).
	Invalid          bool
	ValidationErrors []*validation.ValidationError
	ErrorLog         string

	// Error holds the operational failure, if any. Validation violations
	// are not operational failures and are reported via Invalid.
	Error error

	// Stats contains processing statistics.
	Stats Stats
}

// Stats contains statistics about one export.
type Stats struct {
	// Invoices is the number of invoices in the batch.
	Invoices int

	// Lines is the total number of line items in the batch.
	Lines int

	// Rows is the number of data rows written (summary + line rows).
	Rows int

	// ProcessingTime is the time taken to export the document.
	ProcessingTime time.Duration
}

// =============================================================================
// EXPORTER
// =============================================================================

// Exporter exports one batch document to an XLSX workbook.
type Exporter struct {
	batchPath string
	cfg       *config.Config
	files     *utils.FileManager
	validator *validation.Validator
	log       *logrus.Entry
}

// New creates an Exporter for one batch document.
func New(batchPath string, cfg *config.Config, log *logrus.Logger) *Exporter {
	return &Exporter{
		batchPath: batchPath,
		cfg:       cfg,
		files:     utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.ArchiveDir),
		validator: validation.NewWithOptions(validation.Options{
			TaxCodeAllowlist: cfg.TaxCodeAllowlist,
		}),
		log: log.WithField("batch", filepath.Base(batchPath)),
	}
}

// Run executes the export pipeline for the document.
func (e *Exporter) Run() Result {
	startTime := time.Now()
	result := Result{BatchFile: e.batchPath}

	// =========================================================================
	// STEP 1: LOAD BATCH DOCUMENT
	// =========================================================================

	e.log.Info("loading batch document")

	b, err := batch.Load(e.batchPath)
	if err != nil {
		result.Error = err
		return result
	}

	result.Stats.Invoices = len(b.Invoices)
	for i := range b.Invoices {
		result.Stats.Lines += len(b.Invoices[i].Lines)
	}

	// =========================================================================
	// STEP 2: VALIDATE
	// =========================================================================
	// The validation result is the authoritative gate: an invalid batch is
	// never exported, and every violation is reported at once.

	vres := e.validator.Validate(b)
	if !vres.IsValid {
		e.log.WithField("errors", len(vres.Errors)).Warn("batch failed validation")

		result.Invalid = true
		result.ValidationErrors = vres.Errors
		result.ErrorLog = e.writeErrorLog(vres.Errors)
		result.Error = fmt.Errorf("validation failed with %d error(s)", len(vres.Errors))
		return result
	}

	e.log.WithFields(logrus.Fields{
		"invoices": vres.InvoicesValidated,
		"lines":    vres.LinesValidated,
	}).Debug("batch validated")

	// =========================================================================
	// STEP 3: DERIVE EXPORT ROWS
	// =========================================================================
	// Derivation runs only on validated batches; the posting date is the
	// generation day.

	rows := derive.Rows(b, time.Now())
	result.Stats.Rows = len(rows)
	e.log.WithField("rows", len(rows)).Debug("derived export rows")

	// =========================================================================
	// STEP 4: WRITE WORKBOOK
	// =========================================================================

	fileName := utils.GenerateOutputFileName(e.cfg.OutputNameFormat, b.Reference)
	outputPath := filepath.Join(e.cfg.OutputDir, fileName)

	if err := WriteWorkbook(outputPath, e.cfg.SheetName, rows); err != nil {
		result.Error = fmt.Errorf("failed to write workbook: %w", err)
		return result
	}

	result.OutputFile = outputPath
	e.log.WithField("output", outputPath).Info("workbook written")

	// =========================================================================
	// STEP 5: ARCHIVE BATCH DOCUMENT
	// =========================================================================
	// Archival failure doesn't undo a successful export; log and continue.

	if _, err := e.files.ArchiveBatchDocument(e.batchPath); err != nil {
		e.log.WithError(err).Warn("failed to archive batch document")
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

// writeErrorLog writes the validation error log for the document and
// returns its path; an empty string means no log was written.
func (e *Exporter) writeErrorLog(errs []*validation.ValidationError) string {
	entries := make([]utils.ErrorLogEntry, len(errs))
	for i, err := range errs {
		entries[i] = utils.ErrorLogEntry{
			Path:    err.Path(),
			Rule:    err.Rule,
			Value:   err.Value,
			Message: err.Message,
		}
	}

	logPath, err := utils.WriteErrorLog(e.batchPath, entries, e.cfg.OutputDir)
	if err != nil {
		e.log.WithError(err).Warn("failed to write error log")
		return ""
	}
	return logPath
}
