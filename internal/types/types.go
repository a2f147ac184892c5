// =============================================================================
// Sales Analytics System - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - salesparser
//   - validation
//   - analytics
//   - enrichment
//   - report
//
// =============================================================================

package types

// =============================================================================
// TRANSACTION TYPES
// =============================================================================

// Transaction represents a single sales record parsed from one line of the
// pipe-delimited input file.
//
// Field order matches the input file:
//
//	TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region
type Transaction struct {
	// TransactionID is the record identifier. Valid IDs start with "T".
	TransactionID string

	// Date is the calendar date as an ISO "YYYY-MM-DD" string.
	// Kept as a string: lexical order equals calendar order for ISO dates,
	// which the daily trend sort relies on.
	Date string

	// ProductID is the product identifier. Valid IDs start with "P" and
	// encode a numeric suffix used for catalog lookups.
	ProductID string

	// ProductName is free text. Commas are normalized to spaces at parse
	// time so the value cannot be confused with formatted numerics.
	ProductName string

	// Quantity is the number of units sold. Must be > 0 to be valid.
	Quantity int

	// UnitPrice is the price per unit. Must be > 0 to be valid.
	UnitPrice float64

	// CustomerID is the customer identifier. Valid IDs start with "C".
	CustomerID string

	// Region is the sales region. May be empty/unknown.
	Region string
}

// Amount returns the derived transaction amount (Quantity * UnitPrice).
// The amount is never stored; it is always derived from the two fields.
func (t Transaction) Amount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// EnrichedTransaction is a Transaction extended with product metadata from
// the external catalog. It is a superset view, not a separate storage
// entity: the embedded Transaction is unchanged and the API fields are
// appended.
type EnrichedTransaction struct {
	Transaction

	// APICategory is the catalog category, or nil when unmatched.
	APICategory *string

	// APIBrand is the catalog brand, or nil when unmatched.
	APIBrand *string

	// APIRating is the catalog rating, or nil when unmatched.
	APIRating *float64

	// APIMatch is true when the catalog lookup succeeded.
	APIMatch bool
}

// =============================================================================
// CATALOG TYPES
// =============================================================================

// CatalogProduct is one product record returned by the remote catalog API.
type CatalogProduct struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
}

// ProductInfo is the subset of catalog data copied onto enriched
// transactions, keyed by numeric product ID in a ProductMapping.
type ProductInfo struct {
	Title    string
	Category string
	Brand    string
	Rating   float64
}

// ProductMapping maps numeric product IDs to catalog info. Built once per
// run from the fetched catalog and read-only afterward.
type ProductMapping map[int]ProductInfo

// =============================================================================
// FILTER SUMMARY
// =============================================================================

// FilterSummary reports what happened during validation and filtering.
// The counts always satisfy:
//
//	FinalCount = TotalInput - Invalid - FilteredByRegion - FilteredByAmount
type FilterSummary struct {
	// TotalInput is the number of transactions handed to the validator.
	TotalInput int

	// Invalid is the number of transactions rejected by business rules.
	Invalid int

	// FilteredByRegion is the number removed by the optional region filter.
	FilteredByRegion int

	// FilteredByAmount is the number removed by the optional amount filter,
	// counted against the region-filtered set.
	FilteredByAmount int

	// FinalCount is the number of transactions that survived all steps.
	FinalCount int
}
