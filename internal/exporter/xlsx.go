// =============================================================================
// QRMS Invoice Export - Spreadsheet Sink
// =============================================================================
//
// This file writes the derived rows into a single-sheet XLSX workbook:
//   Row 1: human-readable label headers
//   Row 2: technical header keys
//   Row 3+: data rows, in the exact column order of the technical headers
//
// Missing values render as empty cells. The sink does no validation and
// no derivation; it serializes whatever ordered row set it is given.
//
// =============================================================================

package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/QRMS-invoice-export/internal/catalog"
	"github.com/ginjaninja78/QRMS-invoice-export/internal/derive"
)

// WriteWorkbook writes the header rows and data rows to an XLSX file.
//
// PARAMETERS:
//   - path: The output file path.
//   - sheetName: The name of the single worksheet.
//   - rows: The derived export rows, already in final order.
//
// RETURNS:
//   - An error if the workbook cannot be assembled or saved.
func WriteWorkbook(path, sheetName string, rows []derive.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	// The new workbook starts with a default sheet; rename it rather
	// than adding a second one.
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeHeaderRow(f, sheetName, 1, catalog.LabelHeaders); err != nil {
		return err
	}
	if err := writeHeaderRow(f, sheetName, 2, catalog.TechnicalHeaders); err != nil {
		return err
	}

	for i, row := range rows {
		values := make([]interface{}, len(catalog.TechnicalHeaders))
		for col, key := range catalog.TechnicalHeaders {
			values[col] = row[key]
		}

		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+3, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+3, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// writeHeaderRow writes one of the two header rows.
func writeHeaderRow(f *excelize.File, sheetName string, rowNum int, headers []string) error {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}

	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to address header row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write header row %d: %w", rowNum, err)
	}

	return nil
}
