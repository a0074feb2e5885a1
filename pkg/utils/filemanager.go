// =============================================================================
// QRMS Invoice Export - File Manager Utility
// =============================================================================
//
// File handling around the export pipeline:
//   - Discovery of batch documents in the input directory
//   - Archival of successfully exported documents
//   - Export file naming
//   - Validation error log generation
//
// ARCHIVAL STRATEGY:
//   - Batch documents are moved to the archive directory after a
//     successful export
//   - Documents that fail validation or export stay in the input
//     directory, next to their error log
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the export pipeline.
type FileManager struct {
	// InputDir is the directory scanned for batch documents.
	InputDir string

	// OutputDir is the directory where export files are written.
	OutputDir string

	// ArchiveDir is the directory for exported batch documents.
	ArchiveDir string
}

// NewFileManager creates a FileManager over the given directories.
func NewFileManager(inputDir, outputDir, archiveDir string) *FileManager {
	return &FileManager{
		InputDir:   inputDir,
		OutputDir:  outputDir,
		ArchiveDir: archiveDir,
	}
}

// EnsureDirectories creates all managed directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.InputDir, fm.OutputDir, fm.ArchiveDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverBatchDocuments returns the paths of all batch documents in the
// input directory, in lexical order. Matching is by extension; the set of
// accepted extensions is passed in so the file manager stays decoupled
// from the batch package.
func (fm *FileManager) DiscoverBatchDocuments(extensions []string) ([]string, error) {
	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, e := range extensions {
			if ext == e {
				files = append(files, filepath.Join(fm.InputDir, entry.Name()))
				break
			}
		}
	}

	return files, nil
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveBatchDocument moves a processed batch document to the archive
// directory and returns the archived path.
func (fm *FileManager) ArchiveBatchDocument(path string) (string, error) {
	archivePath := filepath.Join(fm.ArchiveDir, filepath.Base(path))

	if err := os.MkdirAll(fm.ArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(path, archivePath); err != nil {
		// Rename fails across devices; fall back to copy and delete.
		if err := copyFile(path, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an export file name from a format
// string.
//
// PARAMETERS:
//   - format: The format string. Placeholders:
//     {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
//     {date}      - current date (YYYYMMDD)
//     {uuid}      - a random UUID
//     {reference} - the batch's QRMS reference
//   - reference: The QRMS reference of the batch being exported.
//
// RETURNS:
//   - The generated file name, always with an .xlsx extension.
//
// EXAMPLE:
//   format:    "QRMS_Invoice_{reference}_{timestamp}.xlsx"
//   reference: "AB12"
//   output:    "QRMS_Invoice_AB12_20240115_143022.xlsx"
func GenerateOutputFileName(format, reference string) string {
	now := time.Now()

	replacements := map[string]string{
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{uuid}":      uuid.New().String(),
		"{reference}": sanitizeFileNamePart(reference),
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if !strings.HasSuffix(strings.ToLower(result), ".xlsx") {
		result += ".xlsx"
	}

	return result
}

// sanitizeFileNamePart replaces characters that are unsafe in file names.
func sanitizeFileNamePart(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}

// =============================================================================
// ERROR LOG GENERATION
// =============================================================================

// ErrorLogEntry represents a single validation error log entry.
type ErrorLogEntry struct {
	Path    string
	Rule    string
	Value   string
	Message string
}

// WriteErrorLog writes validation errors for one batch document to a log
// file next to the export output and returns the log path. Nothing is
// written when entries is empty.
func WriteErrorLog(batchFile string, entries []ErrorLogEntry, outputDir string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	base := strings.TrimSuffix(filepath.Base(batchFile), filepath.Ext(batchFile))
	logPath := filepath.Join(outputDir, fmt.Sprintf("%s_errors_%s.txt", base, time.Now().Format("20060102_150405")))

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "QRMS Invoice Export - Validation Errors\n")
	fmt.Fprintf(writer, "Batch document: %s\n", batchFile)
	fmt.Fprintf(writer, "Generated:      %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "Total errors:   %d\n", len(entries))
	fmt.Fprintf(writer, "%s\n\n", strings.Repeat("=", 80))

	for i, entry := range entries {
		fmt.Fprintf(writer, "Error #%d\n", i+1)
		fmt.Fprintf(writer, "  Path:    %s\n", entry.Path)
		fmt.Fprintf(writer, "  Rule:    %s\n", entry.Rule)
		if entry.Value != "" {
			fmt.Fprintf(writer, "  Value:   %s\n", entry.Value)
		}
		fmt.Fprintf(writer, "  Message: %s\n\n", entry.Message)
	}

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush error log: %w", err)
	}

	return logPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
