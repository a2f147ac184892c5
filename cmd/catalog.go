// =============================================================================
// Sales Analytics System - Catalog Command
// =============================================================================
//
// This file defines the 'catalog' command, which fetches the product catalog
// and prints a short summary. Useful for checking connectivity and seeing
// what IDs enrichment will be able to match, without running the pipeline.
//
// COMMAND USAGE:
//   sales-analytics catalog
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/config"
	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/enrichment"
	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/logger"
)

// catalogLimit caps the number of products printed.
var catalogLimit int

// catalogCmd represents the 'catalog' command.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Fetch the product catalog and print a summary",
	Long: `Fetch the configured product catalog endpoint and print the products it
returns. A failed fetch prints an empty catalog rather than erroring, matching
the degradation behavior of the process command.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runCatalog()
	},
}

// init registers the catalog command with the root command.
func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().IntVar(
		&catalogLimit,
		"limit",
		20,
		"Maximum number of products to print",
	)
}

// runCatalog fetches and prints the catalog.
func runCatalog() error {
	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	log := logger.New().Level(logger.ParseLevel(mainConfig.LogLevel))
	if verbose {
		log = log.Level(zerolog.DebugLevel)
	}
	ctx := logger.WithContext(context.Background(), log)

	client := enrichment.NewClient(mainConfig.Catalog)
	products := client.FetchAllProducts(ctx)

	fmt.Printf("Catalog: %s\n", mainConfig.Catalog.BaseURL)
	fmt.Printf("Products fetched: %d\n\n", len(products))

	shown := len(products)
	if catalogLimit > 0 && shown > catalogLimit {
		shown = catalogLimit
	}

	for _, p := range products[:shown] {
		fmt.Printf("  %4d  %-40s %-20s %.1f\n", p.ID, p.Title, p.Category, p.Rating)
	}
	if shown < len(products) {
		fmt.Printf("  ... and %d more\n", len(products)-shown)
	}

	return nil
}
