package salesparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region"

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales_data.txt")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestReadSalesData(t *testing.T) {
	content := header + "\r\n" +
		"T001|2024-01-15|P101|Laptop|2|45000.00|C001|North\r\n" +
		"\r\n" +
		"T002|2024-01-15|P102|Mouse|3|500.00|C002|South\n"

	lines, err := ReadSalesData(writeTempFile(t, []byte(content)))
	require.NoError(t, err)

	// Header and blank line are gone, CR is stripped.
	require.Len(t, lines, 2)
	assert.Equal(t, "T001|2024-01-15|P101|Laptop|2|45000.00|C001|North", lines[0])
	assert.Equal(t, "T002|2024-01-15|P102|Mouse|3|500.00|C002|South", lines[1])
}

func TestReadSalesDataMissingFile(t *testing.T) {
	_, err := ReadSalesData(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestReadSalesDataHeaderOnly(t *testing.T) {
	lines, err := ReadSalesData(writeTempFile(t, []byte(header+"\n")))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReadSalesDataLatin1Fallback(t *testing.T) {
	// 0xE9 is é in Windows-1252/Latin-1 and invalid as a standalone UTF-8 byte.
	content := append([]byte(header+"\nT001|2024-01-15|P101|Caf"), 0xE9)
	content = append(content, []byte("|1|100.00|C001|North\n")...)

	lines, err := ReadSalesData(writeTempFile(t, content))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Café")
}

func TestParseTransactions(t *testing.T) {
	lines := []string{
		"T001|2024-01-15|P101|Laptop|2|45000.00|C001|North",
		"T002|2024-01-15|P102|Mouse|3|500.00|C002|South",
	}

	result := ParseTransactions(lines)
	require.Len(t, result.Transactions, 2)
	assert.Zero(t, result.Malformed)

	tx := result.Transactions[0]
	assert.Equal(t, "T001", tx.TransactionID)
	assert.Equal(t, "2024-01-15", tx.Date)
	assert.Equal(t, "P101", tx.ProductID)
	assert.Equal(t, "Laptop", tx.ProductName)
	assert.Equal(t, 2, tx.Quantity)
	assert.Equal(t, 45000.00, tx.UnitPrice)
	assert.Equal(t, "C001", tx.CustomerID)
	assert.Equal(t, "North", tx.Region)
	assert.Equal(t, 90000.00, tx.Amount())
}

func TestParseTransactionsDropsMalformed(t *testing.T) {
	lines := []string{
		"T001|2024-01-15|P101|Laptop|2|45000.00|C001|North",
		"T002|2024-01-15|P102|Mouse|3|500.00|C002",           // 7 fields
		"T003|2024-01-15|P103|Keyboard|x|1500.00|C003|North", // bad quantity
		"T004|2024-01-15|P104|Monitor|1|abc|C004|South",      // bad price
	}

	result := ParseTransactions(lines)
	assert.Len(t, result.Transactions, 1)
	assert.Equal(t, 3, result.Malformed)
}

func TestParseTransactionsStripsThousandsCommas(t *testing.T) {
	lines := []string{
		`T001|2024-01-15|P101|Laptop|1,000|45,000.50|C001|North`,
	}

	result := ParseTransactions(lines)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, 1000, result.Transactions[0].Quantity)
	assert.Equal(t, 45000.50, result.Transactions[0].UnitPrice)
}

func TestParseTransactionsReplacesProductNameCommas(t *testing.T) {
	lines := []string{
		"T001|2024-01-15|P101|Laptop, 15 inch|2|45000.00|C001|North",
	}

	result := ParseTransactions(lines)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "Laptop  15 inch", result.Transactions[0].ProductName)
}

func TestParseTransactionsEmptyInput(t *testing.T) {
	result := ParseTransactions(nil)
	assert.Empty(t, result.Transactions)
	assert.Zero(t, result.Malformed)
}
