// =============================================================================
// Sales Analytics System - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the full analytics
// pipeline over one input file.
//
// COMMAND USAGE:
//   sales-analytics process [flags]
//
// FLAGS:
//   --input          : Override the configured input file
//   --region         : Keep only transactions from this region
//   --min-amount     : Inclusive lower bound on Quantity*UnitPrice
//   --max-amount     : Inclusive upper bound on Quantity*UnitPrice
//   --top-n          : Size of the top products/customers tables
//   --no-enrich      : Skip the catalog fetch and enrichment step
//   --dry-run        : Run the pipeline without writing output files
//   --clean-archives : Remove archived input files older than the given age
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Read the input file (pipe-delimited text, or an .xlsx workbook)
//   3. Parse lines into transactions, counting malformed lines
//   4. Log available regions and the amount range before filtering
//   5. Validate and filter, producing the filter summary
//   6. Fetch the product catalog and enrich (unless --no-enrich)
//   7. Write the enriched data file and the text report (unless --dry-run)
//   8. Archive the input file on success
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/analytics"
	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/config"
	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/enrichment"
	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/logger"
	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/report"
	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/salesparser"
	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/types"
	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/validation"
	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/internal/xlsxparser"
	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputFile overrides the configured input file when set.
var inputFile string

// regionFilter keeps only transactions from this region when set.
var regionFilter string

// minAmount and maxAmount bound the derived amount when set.
var minAmount float64
var maxAmount float64

// topN overrides the configured size of the top products/customers tables.
var topN int

// noEnrich skips the catalog fetch and enrichment.
var noEnrich bool

// dryRun runs the pipeline without writing output files or archiving.
var dryRun bool

// cleanArchivesDays, when positive, removes archived inputs older than
// this many days before processing.
var cleanArchivesDays int

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a sales log and generate the analytics report",
	Long: `The process command reads the configured sales transaction log, validates
and filters the records, computes the aggregate views, enriches transactions
with product catalog metadata, and writes the text report and the enriched
data file.

Malformed lines and invalid records never abort the run; they are counted,
logged, and excluded. A failed catalog fetch degrades to an empty catalog and
every transaction is marked unmatched.

On successful processing:
  - The report is placed in the output directory
  - The enriched data file is written next to the input
  - The input file is moved to the input archive (unless disabled)

On error:
  - The input file remains in place
  - The error is reported and the process exits non-zero`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&inputFile,
		"input",
		"",
		"Path to the input file (overrides the configured input_file)",
	)

	processCmd.Flags().StringVar(
		&regionFilter,
		"region",
		"",
		"Keep only transactions from this region (exact match)",
	)

	processCmd.Flags().Float64Var(
		&minAmount,
		"min-amount",
		0,
		"Inclusive lower bound on transaction amount",
	)

	processCmd.Flags().Float64Var(
		&maxAmount,
		"max-amount",
		0,
		"Inclusive upper bound on transaction amount",
	)

	processCmd.Flags().IntVar(
		&topN,
		"top-n",
		0,
		"Number of rows in the top products/customers tables",
	)

	processCmd.Flags().BoolVar(
		&noEnrich,
		"no-enrich",
		false,
		"Skip the catalog fetch and enrichment step",
	)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Run the pipeline without writing output files",
	)

	processCmd.Flags().IntVar(
		&cleanArchivesDays,
		"clean-archives",
		0,
		"Remove archived input files older than this many days before processing",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the analytics pipeline.
func runProcess(cmd *cobra.Command) error {
	startTime := time.Now()
	runID := uuid.New().String()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	log := logger.New().Level(logger.ParseLevel(mainConfig.LogLevel))
	if verbose {
		log = log.Level(zerolog.DebugLevel)
	}
	log = log.With().Str("run_id", runID).Logger()
	ctx := logger.WithContext(context.Background(), log)

	input := mainConfig.InputFile
	if inputFile != "" {
		input = inputFile
	}

	fm := utils.NewFileManager(mainConfig.OutputDir, mainConfig.InputArchiveDir)
	fm.ArchiveOnSuccess = *mainConfig.ArchiveOnSuccess
	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	if cleanArchivesDays > 0 {
		removed, err := fm.CleanOldArchives(time.Duration(cleanArchivesDays) * 24 * time.Hour)
		if err != nil {
			log.Warn().Err(err).Msg("archive cleanup failed")
		} else if removed > 0 {
			log.Info().Int("removed", removed).Msg("cleaned old archives")
		}
	}

	log.Info().Str("input", input).Msg("starting sales analytics run")

	var runLog []utils.RunLogEntry
	note := func(stage, format string, args ...interface{}) {
		runLog = append(runLog, utils.RunLogEntry{
			Timestamp: time.Now(),
			Stage:     stage,
			Message:   fmt.Sprintf(format, args...),
		})
	}

	// =========================================================================
	// STEP 2: READ AND PARSE THE INPUT
	// =========================================================================

	lines, err := readInput(input)
	if err != nil {
		// A missing or unreadable input degrades to an empty run rather than
		// failing: the report is still produced, with zero records.
		log.Warn().Err(err).Str("input", input).Msg("input unreadable, continuing with empty data")
		note("read", "input %s unreadable: %v", input, err)
		lines = nil
	}

	parsed := salesparser.ParseTransactions(lines)
	if parsed.Malformed > 0 {
		log.Warn().Int("malformed", parsed.Malformed).Msg("skipped malformed lines")
		note("parse", "%d malformed lines skipped", parsed.Malformed)
	}
	log.Info().Int("parsed", len(parsed.Transactions)).Msg("parsed transactions")

	// =========================================================================
	// STEP 3: SHOW FILTER VISIBILITY, THEN VALIDATE AND FILTER
	// =========================================================================

	if regions := validation.AvailableRegions(parsed.Transactions); len(regions) > 0 {
		log.Info().Strs("regions", regions).Msg("available regions")
	}
	if min, max, ok := validation.AmountRange(parsed.Transactions); ok {
		log.Info().Float64("min", min).Float64("max", max).Msg("transaction amount range")
	}

	opts := buildFilterOptions(cmd, mainConfig)
	valid, invalid, summary := validation.ValidateAndFilter(parsed.Transactions, opts)

	log.Info().
		Int("total_input", summary.TotalInput).
		Int("invalid", invalid).
		Int("filtered_by_region", summary.FilteredByRegion).
		Int("filtered_by_amount", summary.FilteredByAmount).
		Int("final", summary.FinalCount).
		Msg("validation and filtering complete")

	// =========================================================================
	// STEP 4: ENRICH WITH CATALOG METADATA
	// =========================================================================

	var products []types.CatalogProduct
	if noEnrich {
		log.Info().Msg("enrichment disabled, skipping catalog fetch")
	} else {
		client := enrichment.NewClient(mainConfig.Catalog)
		products = client.FetchAllProducts(ctx)
		if len(products) == 0 {
			note("enrich", "catalog fetch returned no products, all transactions unmatched")
		}
	}

	mapping := enrichment.BuildProductMapping(products)
	enriched := enrichment.Enrich(valid, mapping)
	suggestions := enrichment.SuggestTitles(enriched, products)

	log.Info().
		Float64("match_rate", enrichment.MatchRate(enriched)).
		Int("unmatched_products", len(suggestions)).
		Msg("enrichment complete")

	// =========================================================================
	// STEP 5: GENERATE OUTPUTS
	// =========================================================================

	n := mainConfig.Analysis.TopProducts
	if topN > 0 {
		n = topN
	}

	reportData := report.Data{
		Transactions: valid,
		Enriched:     enriched,
		Summary:      summary,
		Suggestions:  suggestions,
	}
	reportOpts := report.DefaultOptions()
	reportOpts.RunID = runID
	reportOpts.TopN = n
	reportOpts.LowQuantityThreshold = mainConfig.Analysis.LowQuantityThreshold

	if dryRun {
		log.Info().Msg("dry run: skipping output files and archival")
		printRunSummary(valid, summary, startTime)
		return nil
	}

	reportPath := filepath.Join(mainConfig.OutputDir, mainConfig.ReportFile)
	if err := report.WriteReport(reportPath, reportData, reportOpts); err != nil {
		return err
	}
	log.Info().Str("path", reportPath).Msg("wrote report")

	if err := report.WriteEnrichedData(mainConfig.EnrichedFile, enriched); err != nil {
		return err
	}
	log.Info().Str("path", mainConfig.EnrichedFile).Msg("wrote enriched data")

	// =========================================================================
	// STEP 6: ARCHIVE THE INPUT
	// =========================================================================

	if utils.FileExists(input) {
		archivePath, err := fm.ArchiveInputFile(input)
		if err != nil {
			log.Warn().Err(err).Msg("failed to archive input file")
			note("archive", "failed to archive %s: %v", input, err)
		} else if archivePath != input {
			log.Info().Str("path", archivePath).Msg("archived input file")
		}
	}

	if logPath, err := fm.WriteRunLog(runID, runLog); err != nil {
		log.Warn().Err(err).Msg("failed to write run log")
	} else if logPath != "" {
		log.Info().Str("path", logPath).Msg("wrote run log")
	}

	printRunSummary(valid, summary, startTime)
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// readInput reads the input file into logical lines. Workbooks are read
// through the XLSX parser; everything else is treated as pipe-delimited text.
func readInput(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return xlsxparser.ParseWorkbook(path)
	}
	return salesparser.ReadSalesData(path)
}

// buildFilterOptions merges the config defaults with CLI flags. A flag that
// was explicitly set wins over the config value, so a set-but-zero amount
// bound still applies.
func buildFilterOptions(cmd *cobra.Command, mainConfig *config.MainConfig) validation.Options {
	opts := validation.Options{
		Region:    mainConfig.Filters.Region,
		MinAmount: mainConfig.Filters.MinAmount,
		MaxAmount: mainConfig.Filters.MaxAmount,
	}

	if regionFilter != "" {
		opts.Region = regionFilter
	}
	if cmd.Flags().Changed("min-amount") {
		v := minAmount
		opts.MinAmount = &v
	}
	if cmd.Flags().Changed("max-amount") {
		v := maxAmount
		opts.MaxAmount = &v
	}

	return opts
}

// printRunSummary prints the operator-facing summary of the run.
func printRunSummary(valid []types.Transaction, summary types.FilterSummary, startTime time.Time) {
	elapsed := time.Since(startTime)

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Input records:      %d\n", summary.TotalInput)
	fmt.Printf("Invalid:            %d\n", summary.Invalid)
	fmt.Printf("Filtered by region: %d\n", summary.FilteredByRegion)
	fmt.Printf("Filtered by amount: %d\n", summary.FilteredByAmount)
	fmt.Printf("Analyzed:           %d\n", summary.FinalCount)
	fmt.Printf("Total revenue:      %.2f\n", analytics.TotalRevenue(valid))
	fmt.Printf("Time elapsed:       %s\n", elapsed)
}
