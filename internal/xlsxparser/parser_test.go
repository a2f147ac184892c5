package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "sales_data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"TransactionID", "Date", "ProductID", "ProductName", "Quantity", "UnitPrice", "CustomerID", "Region"},
		{"T001", "2024-01-15", "P101", "Laptop", "2", "45000.00", "C001", "North"},
		{"T002", "2024-01-16", "P102", "Mouse", "3", "500.00", "C002", "South"},
	})

	lines, err := ParseWorkbook(path)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "T001|2024-01-15|P101|Laptop|2|45000.00|C001|North", lines[0])
	assert.Equal(t, "T002|2024-01-16|P102|Mouse|3|500.00|C002|South", lines[1])
}

func TestParseWorkbookPadsShortRows(t *testing.T) {
	// A blank trailing Region cell is dropped by the workbook reader; the
	// parser pads the row back to the header width.
	path := writeWorkbook(t, [][]interface{}{
		{"TransactionID", "Date", "ProductID", "ProductName", "Quantity", "UnitPrice", "CustomerID", "Region"},
		{"T001", "2024-01-15", "P101", "Laptop", "2", "45000.00", "C001"},
	})

	lines, err := ParseWorkbook(path)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "T001|2024-01-15|P101|Laptop|2|45000.00|C001|", lines[0])
}

func TestParseWorkbookSkipsEmptyRows(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"TransactionID", "Date", "ProductID", "ProductName", "Quantity", "UnitPrice", "CustomerID", "Region"},
		{"", "", "", "", "", "", "", ""},
		{"T001", "2024-01-15", "P101", "Laptop", "2", "45000.00", "C001", "North"},
	})

	lines, err := ParseWorkbook(path)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestParseWorkbookMissingFile(t *testing.T) {
	_, err := ParseWorkbook(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}
