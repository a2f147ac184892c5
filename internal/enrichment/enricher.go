// =============================================================================
// Sales Analytics System - Transaction Enricher
// =============================================================================
//
// This module merges catalog metadata into transactions by the numeric ID
// encoded in each ProductID. Enrichment is append-only: the original fields
// are untouched, output order matches input order, and every lookup failure
// is recorded on the record itself via the match flag rather than raised.
//
// =============================================================================

package enrichment

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/types"
)

// productIDCutset is the character set stripped from the front of a
// ProductID before parsing the remaining digits.
//
// Deliberately the fixed cutset "P1", not a general "strip non-digits"
// rule: this matches the legacy extraction, including its pathological
// cases ("P101" strips the leading P and 1 and parses "01" as 1).
const productIDCutset = "P1"

// ExtractProductID extracts the numeric catalog ID from a ProductID by
// stripping the prefix cutset and parsing the remainder as an integer.
func ExtractProductID(productID string) (int, error) {
	return strconv.Atoi(strings.TrimLeft(productID, productIDCutset))
}

// Enrich merges catalog info into each transaction.
//
// A transaction whose ID extraction fails, or whose ID is absent from the
// mapping, gets nil API fields and APIMatch=false. An empty or nil mapping
// (e.g. after a failed catalog fetch) therefore marks everything unmatched
// without erroring.
func Enrich(transactions []types.Transaction, mapping types.ProductMapping) []types.EnrichedTransaction {
	enriched := make([]types.EnrichedTransaction, 0, len(transactions))

	for _, tx := range transactions {
		e := types.EnrichedTransaction{Transaction: tx}

		if id, err := ExtractProductID(tx.ProductID); err == nil {
			if info, ok := mapping[id]; ok {
				category := info.Category
				brand := info.Brand
				rating := info.Rating
				e.APICategory = &category
				e.APIBrand = &brand
				e.APIRating = &rating
				e.APIMatch = true
			}
		}

		enriched = append(enriched, e)
	}

	return enriched
}

// MatchRate returns the fraction of enriched transactions with a catalog
// match, as a percentage rounded to the caller's formatting. 0 for an
// empty set.
func MatchRate(enriched []types.EnrichedTransaction) float64 {
	if len(enriched) == 0 {
		return 0
	}
	matched := 0
	for _, e := range enriched {
		if e.APIMatch {
			matched++
		}
	}
	return float64(matched) / float64(len(enriched)) * 100
}

// =============================================================================
// TITLE SUGGESTIONS FOR UNMATCHED PRODUCTS
// =============================================================================

// minSuggestionSimilarity is the similarity floor below which no catalog
// title is suggested for an unmatched product.
const minSuggestionSimilarity = 0.5

// TitleSuggestion pairs an unmatched product with the closest catalog title.
type TitleSuggestion struct {
	ProductID   string
	ProductName string

	// Suggestion is the nearest catalog title, or "" when nothing in the
	// catalog is close enough.
	Suggestion string

	// Similarity is 1 - distance/maxLen over uppercased names, in [0, 1].
	Similarity float64
}

// SuggestTitles finds, for each distinct unmatched product, the catalog
// title with the smallest Levenshtein distance to the product name.
// Results are ordered by product name for stable reporting. Suggestions
// never alter match flags; they only inform the enrichment summary.
func SuggestTitles(enriched []types.EnrichedTransaction, products []types.CatalogProduct) []TitleSuggestion {
	seen := make(map[string]bool)
	var suggestions []TitleSuggestion

	for _, e := range enriched {
		if e.APIMatch || seen[e.ProductName] {
			continue
		}
		seen[e.ProductName] = true

		title, similarity := nearestTitle(e.ProductName, products)
		s := TitleSuggestion{
			ProductID:   e.ProductID,
			ProductName: e.ProductName,
			Similarity:  similarity,
		}
		if similarity >= minSuggestionSimilarity {
			s.Suggestion = title
		}
		suggestions = append(suggestions, s)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].ProductName < suggestions[j].ProductName
	})

	return suggestions
}

// nearestTitle returns the catalog title closest to name by Levenshtein
// distance over uppercased strings, with its similarity score.
func nearestTitle(name string, products []types.CatalogProduct) (string, float64) {
	best := ""
	bestSimilarity := 0.0

	upper := strings.ToUpper(name)
	for _, p := range products {
		dist := levenshtein.ComputeDistance(upper, strings.ToUpper(p.Title))
		longest := len(upper)
		if len(p.Title) > longest {
			longest = len(p.Title)
		}
		if longest == 0 {
			continue
		}
		similarity := 1 - float64(dist)/float64(longest)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = p.Title
		}
	}

	return best, bestSimilarity
}
