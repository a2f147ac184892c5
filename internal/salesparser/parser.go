// =============================================================================
// Sales Analytics System - Sales Log Parser
// =============================================================================
//
// This module reads the pipe-delimited sales log exported by the legacy
// point-of-sale system and turns raw lines into typed transactions.
//
// FILE FORMAT:
//   One header line (discarded) followed by data lines with exactly 8 fields:
//     TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region
//
// ENCODING:
//   Exports are not reliably UTF-8. Reading falls back to Windows-1252 and
//   then ISO-8859-1 when the raw bytes are not valid UTF-8.
//
// DROP POLICY:
//   Lines with the wrong field count or non-numeric Quantity/UnitPrice are
//   dropped and processing continues. Dropped lines are tallied in
//   ParseResult.Malformed for log visibility, but they are intentionally
//   NOT part of the validation filter summary downstream.
//
// =============================================================================

package salesparser

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/types"
)

// Delimiter separates fields in the sales log.
const Delimiter = "|"

// FieldCount is the exact number of fields on a well-formed data line.
const FieldCount = 8

// ParseResult holds the parsed transactions along with drop counters.
type ParseResult struct {
	// Transactions are the successfully parsed records, in input order.
	Transactions []types.Transaction

	// Malformed counts lines dropped for a wrong field count or a
	// non-numeric Quantity/UnitPrice. Log-only; never folded into the
	// validation summary.
	Malformed int
}

// =============================================================================
// FILE READING
// =============================================================================

// ReadSalesData reads the sales log and returns its raw data lines.
//
// The header line is discarded and blank lines are removed. Non-UTF-8
// content is decoded with a Windows-1252 fallback. The caller decides how
// to treat a read error; a missing input file degrades the pipeline to an
// empty transaction set rather than aborting it.
func ReadSalesData(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sales data: %w", err)
	}

	content, err := decodeBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sales data: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	// First remaining line is the header row.
	if len(lines) > 0 {
		lines = lines[1:]
	}

	return lines, nil
}

// decodeBytes returns the file content as a UTF-8 string. Valid UTF-8 is
// passed through; anything else is decoded as Windows-1252, with ISO-8859-1
// as the last resort.
func decodeBytes(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	if decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw); err == nil {
		return string(decoded), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// =============================================================================
// LINE PARSING
// =============================================================================

// ParseTransactions parses raw data lines into transactions.
//
// Each line is split on the pipe delimiter and must produce exactly 8
// fields. ProductName commas become spaces so free text cannot be mistaken
// for formatted numerics; thousands-separator commas are stripped from the
// numeric fields before conversion. A line that fails any of this is
// dropped and parsing continues with the next line.
func ParseTransactions(lines []string) ParseResult {
	result := ParseResult{
		Transactions: make([]types.Transaction, 0, len(lines)),
	}

	for _, line := range lines {
		parts := strings.Split(strings.TrimSpace(line), Delimiter)
		if len(parts) != FieldCount {
			result.Malformed++
			continue
		}

		quantity, err := strconv.Atoi(strings.ReplaceAll(parts[4], ",", ""))
		if err != nil {
			result.Malformed++
			continue
		}
		unitPrice, err := strconv.ParseFloat(strings.ReplaceAll(parts[5], ",", ""), 64)
		if err != nil {
			result.Malformed++
			continue
		}

		result.Transactions = append(result.Transactions, types.Transaction{
			TransactionID: parts[0],
			Date:          parts[1],
			ProductID:     parts[2],
			ProductName:   strings.ReplaceAll(parts[3], ",", " "),
			Quantity:      quantity,
			UnitPrice:     unitPrice,
			CustomerID:    parts[6],
			Region:        parts[7],
		})
	}

	return result
}
