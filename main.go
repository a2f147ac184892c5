// =============================================================================
// Sales Analytics System - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Sales Analytics System CLI.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   sales-analytics process  - Run the full analytics pipeline
//   sales-analytics catalog  - Fetch and summarize the product catalog
//   sales-analytics version  - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/pawannitw-bit/bitsom-ba-25071745-sales-analytics-system/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
