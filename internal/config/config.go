// =============================================================================
// Sales Analytics System - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. One YAML file drives a whole run:
//
//   1. File locations (input log, output directory, enriched file, archive)
//   2. Catalog API settings (base URL, page limit, timeout)
//   3. Analysis settings (top-N size, low-performer threshold)
//   4. Default filters (region, amount bounds) that CLI flags can override
//
// ENVIRONMENT OVERRIDES:
//   A .env file (if present) is loaded before reading the YAML file, and
//   SALES_CATALOG_URL overrides catalog.base_url. This keeps the catalog
//   endpoint swappable in CI without editing config files.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvCatalogURL is the environment variable that overrides the catalog
// base URL from the YAML file.
const EnvCatalogURL = "SALES_CATALOG_URL"

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
// This is loaded from the main config.yaml file.
type MainConfig struct {
	// InputFile is the pipe-delimited sales log to process. Files ending in
	// .xlsx are read through the workbook parser instead.
	// Default: "./data/sales_data.txt"
	InputFile string `yaml:"input_file"`

	// OutputDir is the directory where the report is written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ReportFile is the report file name inside OutputDir.
	// Default: "sales_report.txt"
	ReportFile string `yaml:"report_file"`

	// EnrichedFile is the path of the enriched pipe-delimited output.
	// Default: "./data/enriched_sales_data.txt"
	EnrichedFile string `yaml:"enriched_file"`

	// InputArchiveDir is the directory where processed input files are moved.
	// Files are only moved here after a fully successful run.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// ArchiveOnSuccess controls whether the input file is archived after a
	// successful run.
	// Default: true
	ArchiveOnSuccess *bool `yaml:"archive_on_success"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// Catalog contains the product catalog API settings.
	Catalog CatalogSettings `yaml:"catalog"`

	// Analysis contains the aggregate analysis settings.
	Analysis AnalysisSettings `yaml:"analysis"`

	// Filters contains default filters applied when the corresponding CLI
	// flags are not set.
	Filters FilterSettings `yaml:"filters"`
}

// CatalogSettings contains settings for the external product catalog fetch.
type CatalogSettings struct {
	// BaseURL is the catalog endpoint.
	// Default: "https://dummyjson.com/products"
	BaseURL string `yaml:"base_url"`

	// PageLimit is the page-size limit requested from the API.
	// Default: 100
	PageLimit int `yaml:"page_limit"`

	// TimeoutSeconds is the HTTP client timeout for the fetch.
	// Default: 10
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// AnalysisSettings contains tunables for the aggregate views.
type AnalysisSettings struct {
	// TopProducts is the N used for the top-selling products view.
	// Default: 5
	TopProducts int `yaml:"top_products"`

	// LowQuantityThreshold marks products with total quantity strictly
	// below it as low performers.
	// Default: 10
	LowQuantityThreshold int `yaml:"low_quantity_threshold"`
}

// FilterSettings contains the optional default filters.
// Amount bounds are pointers so "unset" and "zero" stay distinguishable.
type FilterSettings struct {
	// Region keeps only transactions with exactly this region when set.
	// Matching is case-sensitive, no normalization.
	Region string `yaml:"region"`

	// MinAmount is the inclusive lower bound on Quantity*UnitPrice.
	MinAmount *float64 `yaml:"min_amount"`

	// MaxAmount is the inclusive upper bound on Quantity*UnitPrice.
	MaxAmount *float64 `yaml:"max_amount"`
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file, applies
// defaults and environment overrides, and ensures output directories exist.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)
	applyEnvOverrides(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputFile == "" {
		config.InputFile = "./data/sales_data.txt"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.ReportFile == "" {
		config.ReportFile = "sales_report.txt"
	}
	if config.EnrichedFile == "" {
		config.EnrichedFile = "./data/enriched_sales_data.txt"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.ArchiveOnSuccess == nil {
		archive := true
		config.ArchiveOnSuccess = &archive
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.Catalog.BaseURL == "" {
		config.Catalog.BaseURL = "https://dummyjson.com/products"
	}
	if config.Catalog.PageLimit == 0 {
		config.Catalog.PageLimit = 100
	}
	if config.Catalog.TimeoutSeconds == 0 {
		config.Catalog.TimeoutSeconds = 10
	}
	if config.Analysis.TopProducts == 0 {
		config.Analysis.TopProducts = 5
	}
	if config.Analysis.LowQuantityThreshold == 0 {
		config.Analysis.LowQuantityThreshold = 10
	}
}

// applyEnvOverrides applies environment variable overrides on top of the
// file-based configuration.
func applyEnvOverrides(config *MainConfig) {
	if url := os.Getenv(EnvCatalogURL); url != "" {
		config.Catalog.BaseURL = url
	}
}

// validateMainConfig validates the main configuration and creates the
// directories the run will write into.
func validateMainConfig(config *MainConfig) error {
	if config.Catalog.PageLimit < 1 {
		return fmt.Errorf("catalog.page_limit must be positive, got %d", config.Catalog.PageLimit)
	}
	if config.Catalog.TimeoutSeconds < 1 {
		return fmt.Errorf("catalog.timeout_seconds must be positive, got %d", config.Catalog.TimeoutSeconds)
	}
	if config.Analysis.TopProducts < 1 {
		return fmt.Errorf("analysis.top_products must be positive, got %d", config.Analysis.TopProducts)
	}
	if config.Filters.MinAmount != nil && config.Filters.MaxAmount != nil &&
		*config.Filters.MinAmount > *config.Filters.MaxAmount {
		return fmt.Errorf("filters.min_amount %.2f exceeds filters.max_amount %.2f",
			*config.Filters.MinAmount, *config.Filters.MaxAmount)
	}

	// Output locations must exist before the run writes to them. A missing
	// input file is NOT fatal here; the pipeline degrades to an empty set.
	dirs := []string{
		config.OutputDir,
		config.InputArchiveDir,
	}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}
