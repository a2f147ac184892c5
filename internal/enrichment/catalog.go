// =============================================================================
// Sales Analytics System - Product Catalog Client
// =============================================================================
//
// This module fetches the external product catalog used for enrichment.
// The fetch happens once per run, before enrichment, and is the pipeline's
// only network operation.
//
// DEGRADATION:
//   A fetch failure must never abort the run. Any transport error, bad
//   status, or undecodable body degrades to an empty catalog, which in turn
//   marks every transaction unmatched downstream.
//
// =============================================================================

package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/config"
	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/logger"
	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/types"
)

// Client fetches product records from the catalog API.
type Client struct {
	baseURL   string
	pageLimit int
	http      *http.Client
}

// catalogResponse is the envelope the catalog API wraps its records in.
type catalogResponse struct {
	Products []types.CatalogProduct `json:"products"`
	Total    int                    `json:"total"`
}

// NewClient creates a catalog client from the catalog settings.
func NewClient(settings config.CatalogSettings) *Client {
	return &Client{
		baseURL:   settings.BaseURL,
		pageLimit: settings.PageLimit,
		http: &http.Client{
			Timeout: time.Duration(settings.TimeoutSeconds) * time.Second,
		},
	}
}

// FetchAllProducts fetches all available products, requesting the
// configured page-size limit.
//
// The returned slice is empty on any failure; the error is logged, never
// propagated. Callers can rely on always getting a usable (possibly empty)
// catalog.
func (c *Client) FetchAllProducts(ctx context.Context) []types.CatalogProduct {
	log := logger.FromContext(ctx)

	url := fmt.Sprintf("%s?limit=%d", c.baseURL, c.pageLimit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("catalog fetch failed, continuing with empty catalog")
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("catalog fetch failed, continuing with empty catalog")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("url", url).
			Msg("catalog fetch returned bad status, continuing with empty catalog")
		return nil
	}

	var payload catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Warn().Err(err).Msg("catalog response undecodable, continuing with empty catalog")
		return nil
	}

	log.Info().Int("products", len(payload.Products)).Msg("fetched product catalog")
	return payload.Products
}

// BuildProductMapping builds the id -> info lookup used by enrichment from
// the fetched catalog. Records are keyed by their numeric ID; later
// duplicates overwrite earlier ones.
func BuildProductMapping(products []types.CatalogProduct) types.ProductMapping {
	mapping := make(types.ProductMapping, len(products))
	for _, p := range products {
		mapping[p.ID] = types.ProductInfo{
			Title:    p.Title,
			Category: p.Category,
			Brand:    p.Brand,
			Rating:   p.Rating,
		}
	}
	return mapping
}
