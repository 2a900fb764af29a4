/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/fleet-records/pkg/logging"
)

// version is the CLI version, stamped into result documents. Overridden
// through New at startup.
var version = "dev"

// Shared flags used by multiple commands.
var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:  "format",
		Value: "json",
		Usage: "output format (json, yaml, table)",
	}

	catalogFlag = &cli.StringFlag{
		Name:    "catalog",
		Aliases: []string{"c"},
		Usage:   "schema catalog file to use instead of the builtin schemas",
	}
)

// New builds the frctl root command.
func New(ver string) *cli.Command {
	if ver != "" {
		version = ver
	}

	return &cli.Command{
		Name:                  "frctl",
		Version:               version,
		EnableShellCompletion: true,
		Usage:                 "Validate fleet records against declarative schemas",
		Description: `frctl validates raw records (JSON or YAML) against declarative schemas:
every field is checked against its type and constraints, then business
rules run in order. Results can be output in JSON, YAML, or table format.

# Examples

Validate a record against a builtin schema:
  frctl validate --kind mission mission.json

Validate several files and write the reports to a file:
  frctl validate --kind contact_report reports/*.yaml --output results.json

Validate against a custom schema catalog:
  frctl validate --catalog schemas.yaml --kind probe probe.json

List the registered record kinds:
  frctl schema list

Show one schema in full:
  frctl schema show mission --format yaml`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "emit logs as JSON",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			var opts []logging.Option
			if cmd.Bool("debug") {
				opts = append(opts, logging.WithLevel(slog.LevelDebug))
			}
			if cmd.Bool("log-json") {
				opts = append(opts, logging.WithJSON(true))
			}
			logging.SetDefaultStructuredLogger("frctl", version, opts...)
			return ctx, nil
		},
		Commands: []*cli.Command{
			validateCmd(),
			schemaCmd(),
		},
		Action: commandLister,
	}
}

// commandLister prints the visible commands when frctl runs without a
// subcommand.
func commandLister(_ context.Context, cmd *cli.Command) error {
	if cmd == nil {
		return nil
	}
	fmt.Println("Available commands:")
	for _, sub := range cmd.Commands {
		if sub.Hidden {
			continue
		}
		fmt.Printf("  %-10s %s\n", sub.Name, sub.Usage)
	}
	return nil
}
