package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/enrichment"
	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/types"
)

func sampleData() Data {
	txs := []types.Transaction{
		{
			TransactionID: "T001", Date: "2024-01-15",
			ProductID: "P101", ProductName: "Laptop",
			Quantity: 2, UnitPrice: 45000.00,
			CustomerID: "C001", Region: "North",
		},
		{
			TransactionID: "T002", Date: "2024-01-16",
			ProductID: "P102", ProductName: "Mouse",
			Quantity: 3, UnitPrice: 500.00,
			CustomerID: "C002", Region: "South",
		},
	}

	category := "electronics"
	brand := "Acme"
	rating := 4.5
	enriched := []types.EnrichedTransaction{
		{Transaction: txs[0], APICategory: &category, APIBrand: &brand, APIRating: &rating, APIMatch: true},
		{Transaction: txs[1], APIMatch: false},
	}

	return Data{
		Transactions: txs,
		Enriched:     enriched,
		Summary: types.FilterSummary{
			TotalInput: 3, Invalid: 1, FinalCount: 2,
		},
		Suggestions: []enrichment.TitleSuggestion{
			{ProductID: "P102", ProductName: "Mouse", Suggestion: "Mouse Pad", Similarity: 0.6},
		},
	}
}

func TestGenerateSections(t *testing.T) {
	opts := DefaultOptions()
	opts.RunID = "test-run"
	opts.GeneratedAt = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	out := string(Generate(sampleData(), opts))

	assert.Contains(t, out, "SALES ANALYTICS REPORT")
	assert.Contains(t, out, "Run ID: test-run")
	assert.Contains(t, out, "Generated: 2024-02-01 12:00:00")
	assert.Contains(t, out, "Records Processed: 2")

	assert.Contains(t, out, "OVERALL SUMMARY")
	assert.Contains(t, out, "₹91,500.00")
	assert.Contains(t, out, "Total Transactions:   2")
	assert.Contains(t, out, "₹45,750.00") // average order value
	assert.Contains(t, out, "2024-01-15 to 2024-01-16")
	assert.Contains(t, out, "Invalid Records:      1")

	assert.Contains(t, out, "REGION-WISE PERFORMANCE")
	assert.Contains(t, out, "North")
	assert.Contains(t, out, "98.36%")

	assert.Contains(t, out, "TOP 5 PRODUCTS")
	assert.Contains(t, out, "TOP 5 CUSTOMERS")
	assert.Contains(t, out, "DAILY SALES TREND")

	assert.Contains(t, out, "PRODUCT PERFORMANCE ANALYSIS")
	assert.Contains(t, out, "Best Selling Day: 2024-01-15")

	assert.Contains(t, out, "API ENRICHMENT SUMMARY")
	assert.Contains(t, out, "Successful Enrichment Rate: 50.00%")
	assert.Contains(t, out, "closest catalog title: Mouse Pad")
}

func TestGenerateEmptyData(t *testing.T) {
	out := string(Generate(Data{}, DefaultOptions()))

	assert.Contains(t, out, "Records Processed: 0")
	assert.Contains(t, out, "Date Range:           n/a")
	assert.Contains(t, out, "Best Selling Day: none")
	assert.Contains(t, out, "All products matched the catalog.")
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, WriteReport(path, sampleData(), DefaultOptions()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "SALES ANALYTICS REPORT")
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999.5, "999.50"},
		{1000, "1,000.00"},
		{91500, "91,500.00"},
		{1234567.89, "1,234,567.89"},
		{-1234.5, "-1,234.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatNumber(tt.in))
	}
}
