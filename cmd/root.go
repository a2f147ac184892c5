// =============================================================================
// Sales Analytics System - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'process', 'catalog') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (sales-analytics)
//   ├── processCmd (sales-analytics process)
//   ├── catalogCmd (sales-analytics catalog)
//   └── versionCmd (sales-analytics version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Handing the configuration path down to subcommands
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging regardless of the configured log level.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "sales-analytics",

	Short: "Sales Analytics System - Aggregate pipe-delimited sales logs into reports",

	Long: `Sales Analytics System is a CLI tool that reads pipe-delimited sales
transaction logs, validates and filters the records, computes aggregate views
(revenue, regions, products, customers, daily trend), enriches transactions
with product catalog metadata fetched over HTTP, and writes a formatted text
report plus an enriched copy of the data.

Key Features:
  - Tolerant parsing: malformed lines are counted and skipped, never fatal
  - Optional region and amount-window filters with a full filter summary
  - Catalog enrichment that degrades gracefully when the API is unreachable
  - Automatic input archival after a successful run

Example Usage:
  sales-analytics process                      # Process the configured input file
  sales-analytics process --region North       # Keep only one region
  sales-analytics process --config ./my.yaml   # Use a custom configuration file
  sales-analytics catalog                      # Fetch and summarize the catalog`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the persistent flags shared by all subcommands.
func init() {
	// --config flag: Allows the user to specify a custom configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
