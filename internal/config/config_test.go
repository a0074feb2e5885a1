package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "./archive", cfg.ArchiveDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "QRMS_Invoice_{timestamp}.xlsx", cfg.OutputNameFormat)
	assert.Equal(t, "Invoices", cfg.SheetName)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Empty(t, cfg.TaxCodeAllowlist)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
input_dir: ` + filepath.Join(dir, "in") + `
output_dir: ` + filepath.Join(dir, "out") + `
archive_dir: ` + filepath.Join(dir, "done") + `
log_level: debug
output_name_format: "Export_{reference}_{date}.xlsx"
sheet_name: Postings
max_concurrency: 2
tax_code_allowlist:
  DG: [S0, S1]
`
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "in"), cfg.InputDir)
	assert.Equal(t, filepath.Join(dir, "out"), cfg.OutputDir)
	assert.Equal(t, filepath.Join(dir, "done"), cfg.ArchiveDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Export_{reference}_{date}.xlsx", cfg.OutputNameFormat)
	assert.Equal(t, "Postings", cfg.SheetName)
	assert.Equal(t, 2, cfg.MaxConcurrency)
	assert.Equal(t, map[string][]string{"DG": {"S0", "S1"}}, cfg.TaxCodeAllowlist)
}

func TestLoadCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	content := `
input_dir: ` + filepath.Join(dir, "in") + `
output_dir: ` + filepath.Join(dir, "out") + `
archive_dir: ` + filepath.Join(dir, "done") + `
`
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	require.NoError(t, err)

	for _, d := range []string{"in", "out", "done"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir())
	}
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
input_dir: ` + filepath.Join(dir, "in") + `
output_dir: ` + filepath.Join(dir, "out") + `
archive_dir: ` + filepath.Join(dir, "done") + `
log_level: warn
`
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "Invoices", cfg.SheetName)
	assert.Equal(t, 4, cfg.MaxConcurrency)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_dir: [broken"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}
