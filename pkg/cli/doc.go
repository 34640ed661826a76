// Package cli implements the command-line interface for the roadsync tool.
//
// # Commands
//
// create - register routes from a CSV file:
//
//	roadsync create routes.csv [--config config.yaml] [--dry-run]
//
// Reads the configured coordinate layout, maps each CSV row to a
// route-creation request, and submits them one at a time to the Google Roads
// route selection API. Every attempted row is recorded in the configured log
// file; a run summary is written to stdout (or --output) in YAML, JSON, or
// table format.
//
// # Global Flags
//
//	--log-level    Log verbosity: debug, info, warn, error (default: info)
//
// # Exit Codes
//
//	0  Scan completed (including runs with rejected or failed rows)
//	1  Configuration error, unusable input file, or invalid arguments
//	2  Interrupted (SIGINT/SIGTERM)
//
// # Environment Variables
//
//	LOG_LEVEL                  Log verbosity
//	ROADSYNC_CONFIG            Configuration file path
//	GOOGLE_APPLICATION_CREDENTIALS  Service account key for API auth
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/roadsight/roadsync/pkg/cli.version=1.0.0'"
package cli
