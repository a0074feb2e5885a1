package exporter

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/QRMS-invoice-export/internal/config"
)

const validDocument = `reference: AB12
invoices:
  - company_code: CBG1
    document_type: DR
    document_date: "2024-01-15"
    customer: "1234567"
    currency: EUR
    lines:
      - amount: 50
        item_text: Consulting
        gl_account: "12345678"
        profit_center: PC100
`

const invalidDocument = `reference: AB12
invoices:
  - company_code: CBG1
    document_type: DR
    document_date: "2024-01-15"
    customer: "1234567"
    currency: EUR
    lines:
      - amount: 50
        item_text: Consulting
        gl_account: "12345678"
`

// testSetup builds a config over temp directories and writes one batch
// document into the input directory.
func testSetup(t *testing.T, document string) (string, *config.Config) {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{
		InputDir:         filepath.Join(dir, "input"),
		OutputDir:        filepath.Join(dir, "output"),
		ArchiveDir:       filepath.Join(dir, "archive"),
		LogLevel:         "error",
		OutputNameFormat: "Export_{reference}.xlsx",
		SheetName:        "Invoices",
		MaxConcurrency:   1,
	}
	for _, d := range []string{cfg.InputDir, cfg.OutputDir, cfg.ArchiveDir} {
		require.NoError(t, os.MkdirAll(d, 0755))
	}

	batchPath := filepath.Join(cfg.InputDir, "batch.yaml")
	require.NoError(t, os.WriteFile(batchPath, []byte(document), 0644))

	return batchPath, cfg
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRunExportsValidBatch(t *testing.T) {
	batchPath, cfg := testSetup(t, validDocument)

	result := New(batchPath, cfg, quietLogger()).Run()

	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.False(t, result.Invalid)
	assert.Equal(t, 1, result.Stats.Invoices)
	assert.Equal(t, 1, result.Stats.Lines)
	assert.Equal(t, 2, result.Stats.Rows)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "Export_AB12.xlsx"), result.OutputFile)

	// The workbook holds two header rows plus the summary and line row.
	f, err := excelize.OpenFile(result.OutputFile)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	// The batch document was archived out of the input directory.
	assert.NoFileExists(t, batchPath)
	assert.FileExists(t, filepath.Join(cfg.ArchiveDir, "batch.yaml"))
}

func TestRunRejectsInvalidBatch(t *testing.T) {
	batchPath, cfg := testSetup(t, invalidDocument)

	result := New(batchPath, cfg, quietLogger()).Run()

	assert.False(t, result.Success)
	assert.True(t, result.Invalid)
	require.Len(t, result.ValidationErrors, 1)
	assert.Equal(t, "conditional_group", result.ValidationErrors[0].Rule)

	// No workbook, document stays in input, error log is written.
	assert.Empty(t, result.OutputFile)
	assert.FileExists(t, batchPath)
	require.NotEmpty(t, result.ErrorLog)
	assert.FileExists(t, result.ErrorLog)

	content, err := os.ReadFile(result.ErrorLog)
	require.NoError(t, err)
	assert.Contains(t, string(content), "invoices[0].lines[0]")
}

func TestRunMissingDocument(t *testing.T) {
	_, cfg := testSetup(t, validDocument)

	result := New(filepath.Join(cfg.InputDir, "missing.yaml"), cfg, quietLogger()).Run()

	assert.False(t, result.Success)
	assert.False(t, result.Invalid)
	assert.Error(t, result.Error)
}
