/*
Copyright © 2025 Roadsight Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"github.com/roadsight/roadsync/pkg/config"
	"github.com/roadsight/roadsync/pkg/csvfile"
	"github.com/roadsight/roadsync/pkg/journal"
	"github.com/roadsight/roadsync/pkg/roads"
	"github.com/roadsight/roadsync/pkg/runner"
	"github.com/roadsight/roadsync/pkg/serializer"
)

func createCmd() *cli.Command {
	return &cli.Command{
		Name:                  "create",
		EnableShellCompletion: true,
		Usage:                 "Create routes from a CSV file",
		ArgsUsage:             "<input.csv>",
		Description: `Register one route per CSV row with the Google Roads route selection API.

The configuration file declares how coordinates are found in each row:
either a combined "lat,lon" field per endpoint, or four separate lat/lon
columns. Malformed rows are reported and skipped; they never stop a run.
When max_routes_to_create is set, the scan continues past the cap but no
further routes are submitted.

Every attempted row is appended to the configured log file. The run summary
(created/rejected/failed/skipped counts) is written to stdout or --output.

# Authentication

Requests are authenticated with Application Default Credentials. Run
"gcloud auth application-default login" or set
GOOGLE_APPLICATION_CREDENTIALS before a non-dry run.

# Examples

Register routes using the default config.yaml:
  roadsync create segments.csv

Validate the input without calling the API:
  roadsync create segments.csv --dry-run

Cap a run at 10 routes and save the summary:
  roadsync create segments.csv --max-routes 10 --output summary.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the configuration file",
				Sources: cli.EnvVars("ROADSYNC_CONFIG"),
				Value:   "config.yaml",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Map and report rows without contacting the API",
			},
			&cli.IntFlag{
				Name:  "max-routes",
				Usage: "Override max_routes_to_create from the configuration",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Summary destination file path (default: stdout)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage: fmt.Sprintf("Summary output format (supported values: %s)",
					strings.Join(serializer.SupportedFormats(), ", ")),
				Value: string(serializer.FormatYAML),
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "Static access token, bypassing application default credentials",
				Sources: cli.EnvVars("ROADSYNC_TOKEN"),
			},
			&cli.StringFlag{
				Name:   "base-url",
				Usage:  "Override the API endpoint",
				Hidden: true,
			},
		},
		Action: runCreate,
	}
}

func runCreate(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one CSV file argument, got %d", cmd.Args().Len())
	}
	input := cmd.Args().First()

	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return fmt.Errorf("unknown output format: %q", outFormat)
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if n := int(cmd.Int("max-routes")); n > 0 {
		cfg.MaxRoutes = n
	}

	src, err := csvfile.Open(input)
	if err != nil {
		return err
	}
	defer src.Close()

	dryRun := cmd.Bool("dry-run")
	tokens, err := tokenSource(ctx, cmd.String("token"), dryRun)
	if err != nil {
		return err
	}

	opts := []roads.Option{roads.WithRetries(cfg.MaxAttempts)}
	if base := cmd.String("base-url"); base != "" {
		opts = append(opts, roads.WithBaseURL(base))
	}
	creator := roads.NewClient(cfg.GoogleProjectID, tokens, cfg.RequestTimeout, opts...)

	j := journal.Open(cfg.LogFile, uuid.New().String())
	defer j.Close()
	j.Start(input)

	state, err := runner.New(cfg, creator, j, runner.WithDryRun(dryRun)).Run(ctx, src)
	if err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		if err := runner.WriteMetrics(cfg.MetricsFile); err != nil {
			slog.Warn("failed to write metrics file", "path", cfg.MetricsFile, "error", err)
		}
	}

	w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
	defer w.Close()
	return w.Serialize(ctx, state)
}

// tokenSource picks the credential source for a run. Dry runs never call the
// API, so they don't require usable credentials.
func tokenSource(ctx context.Context, staticToken string, dryRun bool) (oauth2.TokenSource, error) {
	if staticToken != "" {
		return roads.StaticTokenSource(staticToken), nil
	}
	if dryRun {
		return roads.StaticTokenSource("dry-run"), nil
	}
	return roads.DefaultTokenSource(ctx)
}
