// =============================================================================
// Sales Analytics System - Enriched Data Writer
// =============================================================================
//
// Writes the enriched transaction set back out in the same pipe-delimited
// format as the input, with the four API columns appended. One row per
// transaction, in the original order.
//
// =============================================================================

package report

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/types"
)

// enrichedHeader lists the output columns: the original 8 fields plus the
// enrichment fields.
var enrichedHeader = []string{
	"TransactionID", "Date", "ProductID", "ProductName",
	"Quantity", "UnitPrice", "CustomerID", "Region",
	"API_Category", "API_Brand", "API_Rating", "API_Match",
}

// GenerateEnrichedData renders the enriched transactions as pipe-delimited
// text. Nil enrichment fields render as empty strings and the match flag as
// true/false.
func GenerateEnrichedData(enriched []types.EnrichedTransaction) []byte {
	var buf bytes.Buffer

	buf.WriteString(strings.Join(enrichedHeader, "|"))
	buf.WriteByte('\n')

	for _, e := range enriched {
		row := []string{
			e.TransactionID,
			e.Date,
			e.ProductID,
			e.ProductName,
			strconv.Itoa(e.Quantity),
			strconv.FormatFloat(e.UnitPrice, 'f', -1, 64),
			e.CustomerID,
			e.Region,
			stringOrEmpty(e.APICategory),
			stringOrEmpty(e.APIBrand),
			floatOrEmpty(e.APIRating),
			strconv.FormatBool(e.APIMatch),
		}
		buf.WriteString(strings.Join(row, "|"))
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

// WriteEnrichedData writes the enriched output file. An unwritable path is
// one of the few fatal conditions in the pipeline.
func WriteEnrichedData(path string, enriched []types.EnrichedTransaction) error {
	if err := os.WriteFile(path, GenerateEnrichedData(enriched), 0644); err != nil {
		return fmt.Errorf("failed to write enriched data: %w", err)
	}
	return nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
