// =============================================================================
// Sales Analytics System - XLSX Workbook Parser
// =============================================================================
//
// Some teams hand over the sales log as an XLSX workbook instead of the
// pipe-delimited text export. This module reads such a workbook and emits
// the same raw lines the text reader produces, so both input paths share
// one parsing and validation pipeline.
//
// WORKBOOK LAYOUT:
//   - Data lives on the first sheet.
//   - Row 1 is the header row and defines the column count.
//   - Each following row is one transaction in the standard field order.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/salesparser"
)

// ParseWorkbook reads a sales workbook and returns raw pipe-joined data
// lines, header excluded, ready for salesparser.ParseTransactions.
//
// Rows that are entirely empty are skipped. Rows shorter than the header
// are padded with empty cells: excelize drops trailing empty cells, and a
// blank Region column must not change the field count.
func ParseWorkbook(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	headerWidth := len(rows[0])
	if headerWidth == 0 {
		return nil, fmt.Errorf("sheet %q has an empty header row", sheets[0])
	}

	lines := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		for len(row) < headerWidth {
			row = append(row, "")
		}
		lines = append(lines, strings.Join(row, salesparser.Delimiter))
	}

	return lines, nil
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
