// =============================================================================
// Sales Analytics System - Aggregate Views
// =============================================================================
//
// This module computes the aggregate views over a validated transaction set.
// Every function here is pure: it takes an immutable slice, mutates nothing,
// keeps no state, and returns a freshly built result. Running any of them
// twice on the same input yields identical output.
//
// ORDERING GUARANTEES:
//   Groupings accumulate in first-seen (insertion) order and presented views
//   apply an explicit stable sort on top, so ties always keep encounter
//   order. Peak-day selection uses strict greater-than, so the first maximal
//   date wins.
//
// The functions tolerate unvalidated input: they only read fields that every
// parsed transaction carries, so feeding them the raw parse output simply
// aggregates it without error.
//
// =============================================================================

package analytics

import (
	"math"
	"sort"

	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/types"
)

// Default tunables for the product views.
const (
	// DefaultTopN is the number of products in the top-selling view.
	DefaultTopN = 5

	// DefaultLowQuantityThreshold marks products with total quantity
	// strictly below it as low performers.
	DefaultLowQuantityThreshold = 10
)

// =============================================================================
// AGGREGATE VIEW TYPES
// =============================================================================

// RegionStats summarizes sales for one region.
type RegionStats struct {
	Region           string
	TotalSales       float64
	TransactionCount int

	// Percentage is this region's share of grand-total sales, rounded to
	// 2 decimal places. 0.0 for every region when the grand total is zero.
	Percentage float64
}

// ProductStats summarizes sales for one product name.
type ProductStats struct {
	ProductName   string
	TotalQuantity int
	TotalRevenue  float64
}

// CustomerStats summarizes purchases for one customer.
type CustomerStats struct {
	CustomerID    string
	TotalSpent    float64
	PurchaseCount int

	// AvgOrderValue is TotalSpent/PurchaseCount rounded to 2 decimal
	// places; 0.0 when PurchaseCount is zero.
	AvgOrderValue float64

	// ProductsBought lists the distinct product names this customer
	// purchased, in first-seen order.
	ProductsBought []string
}

// DailyStats summarizes sales for one calendar date.
type DailyStats struct {
	Date             string
	Revenue          float64
	TransactionCount int
	UniqueCustomers  int
}

// PeakDay is the single date with the highest revenue.
type PeakDay struct {
	Date             string
	Revenue          float64
	TransactionCount int
}

// =============================================================================
// REVENUE
// =============================================================================

// TotalRevenue sums Quantity*UnitPrice over all transactions.
func TotalRevenue(transactions []types.Transaction) float64 {
	var total float64
	for _, tx := range transactions {
		total += tx.Amount()
	}
	return total
}

// =============================================================================
// REGION VIEW
// =============================================================================

// RegionWiseSales groups transactions by region and computes per-region
// totals, counts, and share of the grand total. The result is ordered by
// total sales descending; ties keep first-seen order.
func RegionWiseSales(transactions []types.Transaction) []RegionStats {
	index := make(map[string]int)
	stats := make([]RegionStats, 0)
	var grandTotal float64

	for _, tx := range transactions {
		amount := tx.Amount()
		grandTotal += amount

		i, ok := index[tx.Region]
		if !ok {
			i = len(stats)
			index[tx.Region] = i
			stats = append(stats, RegionStats{Region: tx.Region})
		}
		stats[i].TotalSales += amount
		stats[i].TransactionCount++
	}

	for i := range stats {
		if grandTotal > 0 {
			stats[i].Percentage = round2(stats[i].TotalSales / grandTotal * 100)
		} else {
			stats[i].Percentage = 0.0
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSales > stats[j].TotalSales
	})

	return stats
}

// =============================================================================
// PRODUCT VIEWS
// =============================================================================

// productStats groups transactions by product name, summing quantity and
// revenue, in first-seen order.
func productStats(transactions []types.Transaction) []ProductStats {
	index := make(map[string]int)
	stats := make([]ProductStats, 0)

	for _, tx := range transactions {
		i, ok := index[tx.ProductName]
		if !ok {
			i = len(stats)
			index[tx.ProductName] = i
			stats = append(stats, ProductStats{ProductName: tx.ProductName})
		}
		stats[i].TotalQuantity += tx.Quantity
		stats[i].TotalRevenue += tx.Amount()
	}

	return stats
}

// TopSellingProducts returns the top n products by total quantity sold,
// descending, ties in first-seen order. n <= 0 falls back to DefaultTopN.
func TopSellingProducts(transactions []types.Transaction, n int) []ProductStats {
	if n <= 0 {
		n = DefaultTopN
	}

	stats := productStats(transactions)
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalQuantity > stats[j].TotalQuantity
	})

	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// LowPerformingProducts returns all products with total quantity strictly
// below the threshold, ascending by quantity. threshold <= 0 falls back to
// DefaultLowQuantityThreshold.
func LowPerformingProducts(transactions []types.Transaction, threshold int) []ProductStats {
	if threshold <= 0 {
		threshold = DefaultLowQuantityThreshold
	}

	var low []ProductStats
	for _, stat := range productStats(transactions) {
		if stat.TotalQuantity < threshold {
			low = append(low, stat)
		}
	}

	sort.SliceStable(low, func(i, j int) bool {
		return low[i].TotalQuantity < low[j].TotalQuantity
	})

	return low
}

// =============================================================================
// CUSTOMER VIEW
// =============================================================================

// CustomerAnalysis groups transactions by customer and computes spend,
// purchase count, average order value, and the distinct products bought.
// The result is ordered by total spent descending; ties keep first-seen
// order.
func CustomerAnalysis(transactions []types.Transaction) []CustomerStats {
	index := make(map[string]int)
	stats := make([]CustomerStats, 0)
	seenProducts := make(map[string]map[string]bool)

	for _, tx := range transactions {
		i, ok := index[tx.CustomerID]
		if !ok {
			i = len(stats)
			index[tx.CustomerID] = i
			stats = append(stats, CustomerStats{CustomerID: tx.CustomerID})
			seenProducts[tx.CustomerID] = make(map[string]bool)
		}

		stats[i].TotalSpent += tx.Amount()
		stats[i].PurchaseCount++
		if !seenProducts[tx.CustomerID][tx.ProductName] {
			seenProducts[tx.CustomerID][tx.ProductName] = true
			stats[i].ProductsBought = append(stats[i].ProductsBought, tx.ProductName)
		}
	}

	for i := range stats {
		if stats[i].PurchaseCount > 0 {
			stats[i].AvgOrderValue = round2(stats[i].TotalSpent / float64(stats[i].PurchaseCount))
		} else {
			stats[i].AvgOrderValue = 0.0
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSpent > stats[j].TotalSpent
	})

	return stats
}

// =============================================================================
// DAILY VIEWS
// =============================================================================

// DailySalesTrend groups transactions by date and computes daily revenue,
// transaction count, and distinct customer count, sorted chronologically
// ascending. Dates are ISO strings, so the lexical sort is calendar order.
func DailySalesTrend(transactions []types.Transaction) []DailyStats {
	index := make(map[string]int)
	stats := make([]DailyStats, 0)
	seenCustomers := make(map[string]map[string]bool)

	for _, tx := range transactions {
		i, ok := index[tx.Date]
		if !ok {
			i = len(stats)
			index[tx.Date] = i
			stats = append(stats, DailyStats{Date: tx.Date})
			seenCustomers[tx.Date] = make(map[string]bool)
		}

		stats[i].Revenue += tx.Amount()
		stats[i].TransactionCount++
		if !seenCustomers[tx.Date][tx.CustomerID] {
			seenCustomers[tx.Date][tx.CustomerID] = true
			stats[i].UniqueCustomers++
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Date < stats[j].Date
	})

	return stats
}

// FindPeakSalesDay returns the date with the strictly greatest revenue.
// A day merely equal to the running maximum never replaces an earlier day,
// and nil is returned when no day has revenue above zero.
func FindPeakSalesDay(transactions []types.Transaction) *PeakDay {
	var peak *PeakDay
	maxRevenue := 0.0

	for _, day := range DailySalesTrend(transactions) {
		if day.Revenue > maxRevenue {
			maxRevenue = day.Revenue
			peak = &PeakDay{
				Date:             day.Date,
				Revenue:          day.Revenue,
				TransactionCount: day.TransactionCount,
			}
		}
	}

	return peak
}

// =============================================================================
// HELPERS
// =============================================================================

// DateRange returns the smallest and largest date strings in the set.
// ok is false for an empty set.
func DateRange(transactions []types.Transaction) (first, last string, ok bool) {
	for i, tx := range transactions {
		if i == 0 {
			first, last = tx.Date, tx.Date
			continue
		}
		if tx.Date < first {
			first = tx.Date
		}
		if tx.Date > last {
			last = tx.Date
		}
	}
	return first, last, len(transactions) > 0
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
