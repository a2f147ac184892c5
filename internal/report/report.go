// =============================================================================
// Sales Analytics System - Report Generator
// =============================================================================
//
// This module renders the formatted text report. Sections, in order:
//
//   1. Header (title, generation timestamp, run ID, records processed)
//   2. Overall summary (revenue, transactions, avg order value, date range)
//   3. Region-wise performance table
//   4. Top products table
//   5. Top customers table
//   6. Daily sales trend table
//   7. Product performance analysis (peak day, low performers)
//   8. API enrichment summary (success rate, unmatched products)
//
// Layout (column widths, currency symbol, separators) is a presentation
// concern owned entirely by this package; the aggregate numbers come from
// the analytics package unchanged.
//
// =============================================================================

package report

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/analytics"
	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/enrichment"
	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/types"
)

const sectionRule = "--------------------------------------------"
const headerRule = "============================================"

// Data bundles everything the report consumes.
type Data struct {
	// Transactions is the validated, filtered set the aggregates run over.
	Transactions []types.Transaction

	// Enriched is the enriched view of the same set.
	Enriched []types.EnrichedTransaction

	// Summary is the validation/filter summary for the run.
	Summary types.FilterSummary

	// Suggestions are nearest-title hints for unmatched products.
	Suggestions []enrichment.TitleSuggestion
}

// Options controls report presentation.
type Options struct {
	// RunID identifies this run in the header.
	RunID string

	// GeneratedAt is the report generation timestamp.
	GeneratedAt time.Time

	// TopN is the size of the product and customer tables.
	TopN int

	// LowQuantityThreshold is the low-performer cutoff shown in section 7.
	LowQuantityThreshold int

	// CurrencySymbol prefixes every monetary value.
	CurrencySymbol string
}

// DefaultOptions returns the default report options.
func DefaultOptions() Options {
	return Options{
		GeneratedAt:          time.Now(),
		TopN:                 analytics.DefaultTopN,
		LowQuantityThreshold: analytics.DefaultLowQuantityThreshold,
		CurrencySymbol:       "₹",
	}
}

// Generate renders the full report as text.
func Generate(data Data, opts Options) []byte {
	if opts.TopN <= 0 {
		opts.TopN = analytics.DefaultTopN
	}
	if opts.LowQuantityThreshold <= 0 {
		opts.LowQuantityThreshold = analytics.DefaultLowQuantityThreshold
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = "₹"
	}

	var buf bytes.Buffer

	writeHeader(&buf, data, opts)
	writeOverallSummary(&buf, data, opts)
	writeRegionPerformance(&buf, data, opts)
	writeTopProducts(&buf, data, opts)
	writeTopCustomers(&buf, data, opts)
	writeDailyTrend(&buf, data, opts)
	writePerformanceAnalysis(&buf, data, opts)
	writeEnrichmentSummary(&buf, data)

	return buf.Bytes()
}

// WriteReport writes the rendered report to disk. An unwritable path is a
// fatal, user-visible failure.
func WriteReport(path string, data Data, opts Options) error {
	if err := os.WriteFile(path, Generate(data, opts), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// =============================================================================
// SECTION WRITERS
// =============================================================================

func writeHeader(buf *bytes.Buffer, data Data, opts Options) {
	fmt.Fprintln(buf, headerRule)
	fmt.Fprintln(buf, "      SALES ANALYTICS REPORT")
	fmt.Fprintf(buf, "     Generated: %s\n", opts.GeneratedAt.Format("2006-01-02 15:04:05"))
	if opts.RunID != "" {
		fmt.Fprintf(buf, "     Run ID: %s\n", opts.RunID)
	}
	fmt.Fprintf(buf, "     Records Processed: %d\n", len(data.Transactions))
	fmt.Fprintln(buf, headerRule)
	fmt.Fprintln(buf)
}

func writeOverallSummary(buf *bytes.Buffer, data Data, opts Options) {
	totalRevenue := analytics.TotalRevenue(data.Transactions)
	count := len(data.Transactions)

	avgOrder := 0.0
	if count > 0 {
		avgOrder = totalRevenue / float64(count)
	}

	dateRange := "n/a"
	if first, last, ok := analytics.DateRange(data.Transactions); ok {
		dateRange = fmt.Sprintf("%s to %s", first, last)
	}

	fmt.Fprintln(buf, "OVERALL SUMMARY")
	fmt.Fprintln(buf, sectionRule)
	fmt.Fprintf(buf, "Total Revenue:        %s\n", money(opts.CurrencySymbol, totalRevenue))
	fmt.Fprintf(buf, "Total Transactions:   %d\n", count)
	fmt.Fprintf(buf, "Average Order Value:  %s\n", money(opts.CurrencySymbol, avgOrder))
	fmt.Fprintf(buf, "Date Range:           %s\n", dateRange)
	fmt.Fprintf(buf, "Invalid Records:      %d\n", data.Summary.Invalid)
	fmt.Fprintln(buf)
}

func writeRegionPerformance(buf *bytes.Buffer, data Data, opts Options) {
	fmt.Fprintln(buf, "REGION-WISE PERFORMANCE")
	fmt.Fprintln(buf, sectionRule)
	fmt.Fprintf(buf, "%-20s %-20s %-15s %-15s\n", "Region", "Sales", "% of Total", "Transactions")

	for _, rs := range analytics.RegionWiseSales(data.Transactions) {
		name := rs.Region
		if name == "" {
			name = "No region"
		}
		fmt.Fprintf(buf, "%-20s %-20s %-15s %-15d\n",
			name,
			money(opts.CurrencySymbol, rs.TotalSales),
			fmt.Sprintf("%.2f%%", rs.Percentage),
			rs.TransactionCount,
		)
	}
	fmt.Fprintln(buf)
}

func writeTopProducts(buf *bytes.Buffer, data Data, opts Options) {
	fmt.Fprintf(buf, "TOP %d PRODUCTS\n", opts.TopN)
	fmt.Fprintln(buf, sectionRule)
	fmt.Fprintf(buf, "%-5s %-30s %-15s %-15s\n", "Rank", "Product Name", "Quantity Sold", "Revenue")

	for i, ps := range analytics.TopSellingProducts(data.Transactions, opts.TopN) {
		fmt.Fprintf(buf, "%-5d %-30s %-15d %s\n",
			i+1, ps.ProductName, ps.TotalQuantity, money(opts.CurrencySymbol, ps.TotalRevenue))
	}
	fmt.Fprintln(buf)
}

func writeTopCustomers(buf *bytes.Buffer, data Data, opts Options) {
	fmt.Fprintf(buf, "TOP %d CUSTOMERS\n", opts.TopN)
	fmt.Fprintln(buf, sectionRule)
	fmt.Fprintf(buf, "%-5s %-20s %-20s %-15s\n", "Rank", "Customer ID", "Total Spent", "Order Count")

	customers := analytics.CustomerAnalysis(data.Transactions)
	if len(customers) > opts.TopN {
		customers = customers[:opts.TopN]
	}
	for i, cs := range customers {
		fmt.Fprintf(buf, "%-5d %-20s %-20s %-15d\n",
			i+1, cs.CustomerID, money(opts.CurrencySymbol, cs.TotalSpent), cs.PurchaseCount)
	}
	fmt.Fprintln(buf)
}

func writeDailyTrend(buf *bytes.Buffer, data Data, opts Options) {
	fmt.Fprintln(buf, "DAILY SALES TREND")
	fmt.Fprintln(buf, sectionRule)
	fmt.Fprintf(buf, "%-15s %-20s %-15s %-20s\n", "Date", "Revenue", "Transactions", "Unique Customers")

	for _, ds := range analytics.DailySalesTrend(data.Transactions) {
		fmt.Fprintf(buf, "%-15s %-20s %-15d %-20d\n",
			ds.Date, money(opts.CurrencySymbol, ds.Revenue), ds.TransactionCount, ds.UniqueCustomers)
	}
	fmt.Fprintln(buf)
}

func writePerformanceAnalysis(buf *bytes.Buffer, data Data, opts Options) {
	fmt.Fprintln(buf, "PRODUCT PERFORMANCE ANALYSIS")
	fmt.Fprintln(buf, sectionRule)

	if peak := analytics.FindPeakSalesDay(data.Transactions); peak != nil {
		fmt.Fprintf(buf, "Best Selling Day: %s with Revenue %s (%d transactions)\n",
			peak.Date, money(opts.CurrencySymbol, peak.Revenue), peak.TransactionCount)
	} else {
		fmt.Fprintln(buf, "Best Selling Day: none (no revenue recorded)")
	}

	low := analytics.LowPerformingProducts(data.Transactions, opts.LowQuantityThreshold)
	if len(low) > 0 {
		fmt.Fprintf(buf, "Low Performing Products (quantity below %d):\n", opts.LowQuantityThreshold)
		for _, ps := range low {
			fmt.Fprintf(buf, " - %s: %d sold, %s\n",
				ps.ProductName, ps.TotalQuantity, money(opts.CurrencySymbol, ps.TotalRevenue))
		}
	} else {
		fmt.Fprintln(buf, "No low performing products.")
	}
	fmt.Fprintln(buf)
}

func writeEnrichmentSummary(buf *bytes.Buffer, data Data) {
	fmt.Fprintln(buf, "API ENRICHMENT SUMMARY")
	fmt.Fprintln(buf, sectionRule)
	fmt.Fprintf(buf, "Total Transactions Enriched: %d\n", len(data.Enriched))
	fmt.Fprintf(buf, "Successful Enrichment Rate: %.2f%%\n", enrichment.MatchRate(data.Enriched))

	if len(data.Suggestions) == 0 {
		fmt.Fprintln(buf, "All products matched the catalog.")
		return
	}

	fmt.Fprintln(buf, "Products that couldn't be enriched:")
	for _, s := range data.Suggestions {
		if s.Suggestion != "" {
			fmt.Fprintf(buf, " - %s (%s), closest catalog title: %s\n",
				s.ProductName, s.ProductID, s.Suggestion)
		} else {
			fmt.Fprintf(buf, " - %s (%s)\n", s.ProductName, s.ProductID)
		}
	}
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// money renders a monetary value with the currency symbol, thousands
// separators, and 2 decimal places.
func money(symbol string, v float64) string {
	return symbol + formatNumber(v)
}

// formatNumber formats v with comma thousands separators and 2 decimals.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ",") + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
