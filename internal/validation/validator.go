// =============================================================================
// Sales Analytics System - Validation & Filtering
// =============================================================================
//
// This module classifies parsed transactions as valid or invalid and applies
// the optional run filters, in three ordered steps:
//
//   1. Business validation: identifier prefixes, positive quantity/price.
//      Invalid transactions are counted and excluded; their contents are
//      not retained.
//   2. Optional region filter: exact, case-sensitive match.
//   3. Optional amount filter: inclusive [min, max] window over the derived
//      amount, either bound open-ended. Counted against the region-filtered
//      set, not the original input.
//
// The returned summary always satisfies:
//   FinalCount = TotalInput - Invalid - FilteredByRegion - FilteredByAmount
//
// =============================================================================

package validation

import (
	"strings"

	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/types"
)

// Identifier prefixes required by the business rules.
const (
	TransactionPrefix = "T"
	ProductPrefix     = "P"
	CustomerPrefix    = "C"
)

// Options holds the optional filters for a run.
// Amount bounds are pointers so "unset" and "zero" stay distinguishable.
type Options struct {
	// Region keeps only transactions with exactly this region when non-empty.
	Region string

	// MinAmount is the inclusive lower bound on the derived amount.
	MinAmount *float64

	// MaxAmount is the inclusive upper bound on the derived amount.
	MaxAmount *float64
}

// =============================================================================
// MAIN ENTRY POINT
// =============================================================================

// ValidateAndFilter validates transactions and applies the optional filters.
//
// It returns the surviving transactions (input order preserved), the number
// of invalid transactions, and the full filter summary.
func ValidateAndFilter(transactions []types.Transaction, opts Options) ([]types.Transaction, int, types.FilterSummary) {
	summary := types.FilterSummary{
		TotalInput: len(transactions),
	}

	valid := make([]types.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if !IsValid(tx) {
			summary.Invalid++
			continue
		}
		valid = append(valid, tx)
	}

	if opts.Region != "" {
		before := len(valid)
		valid = filterByRegion(valid, opts.Region)
		summary.FilteredByRegion = before - len(valid)
	}

	if opts.MinAmount != nil || opts.MaxAmount != nil {
		before := len(valid)
		valid = filterByAmount(valid, opts.MinAmount, opts.MaxAmount)
		summary.FilteredByAmount = before - len(valid)
	}

	summary.FinalCount = len(valid)

	return valid, summary.Invalid, summary
}

// IsValid reports whether a transaction satisfies the business rules:
// quantity > 0, unit price > 0, and the three identifier prefixes.
func IsValid(tx types.Transaction) bool {
	if tx.Quantity <= 0 || tx.UnitPrice <= 0 {
		return false
	}
	if !strings.HasPrefix(tx.TransactionID, TransactionPrefix) {
		return false
	}
	if !strings.HasPrefix(tx.ProductID, ProductPrefix) {
		return false
	}
	if !strings.HasPrefix(tx.CustomerID, CustomerPrefix) {
		return false
	}
	return true
}

// =============================================================================
// FILTER STEPS
// =============================================================================

// filterByRegion keeps only transactions whose region matches exactly.
func filterByRegion(transactions []types.Transaction, region string) []types.Transaction {
	filtered := make([]types.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.Region == region {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}

// filterByAmount keeps only transactions whose derived amount lies within
// the inclusive [min, max] window. A nil bound is open-ended.
func filterByAmount(transactions []types.Transaction, min, max *float64) []types.Transaction {
	filtered := make([]types.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		amount := tx.Amount()
		if min != nil && amount < *min {
			continue
		}
		if max != nil && amount > *max {
			continue
		}
		filtered = append(filtered, tx)
	}
	return filtered
}

// =============================================================================
// FILTER VISIBILITY HELPERS
// =============================================================================

// AvailableRegions returns the distinct regions present in the set, in
// first-seen order. Shown to the operator before region filtering.
func AvailableRegions(transactions []types.Transaction) []string {
	seen := make(map[string]bool)
	var regions []string
	for _, tx := range transactions {
		if !seen[tx.Region] {
			seen[tx.Region] = true
			regions = append(regions, tx.Region)
		}
	}
	return regions
}

// AmountRange returns the smallest and largest derived amounts in the set.
// ok is false for an empty set.
func AmountRange(transactions []types.Transaction) (min, max float64, ok bool) {
	for i, tx := range transactions {
		amount := tx.Amount()
		if i == 0 {
			min, max = amount, amount
			continue
		}
		if amount < min {
			min = amount
		}
		if amount > max {
			max = amount
		}
	}
	return min, max, len(transactions) > 0
}
