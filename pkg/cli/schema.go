/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/fleet-records/pkg/serializer"
)

// schemaSummary is one row of the schema list output.
type schemaSummary struct {
	Kind   string `json:"kind" yaml:"kind"`
	Fields int    `json:"fields" yaml:"fields"`
	Rules  int    `json:"rules" yaml:"rules"`
	Strict bool   `json:"strict" yaml:"strict"`
}

func schemaCmd() *cli.Command {
	return &cli.Command{
		Name:                  "schema",
		EnableShellCompletion: true,
		Usage:                 "Inspect registered record schemas",
		Commands: []*cli.Command{
			schemaListCmd(),
			schemaShowCmd(),
		},
		Action: commandLister,
	}
}

func schemaListCmd() *cli.Command {
	return &cli.Command{
		Name:                  "list",
		Aliases:               []string{"ls"},
		EnableShellCompletion: true,
		Usage:                 "List registered record kinds",
		Description: `Lists every record kind in the schema registry with its field, rule,
and strict-mode summary.

# Examples

List the builtin record kinds:
  frctl schema list

List the kinds of a custom catalog as a table:
  frctl schema list --catalog schemas.yaml --format table`,
		Flags: []cli.Flag{
			catalogFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			reg, err := loadRegistry(cmd)
			if err != nil {
				return err
			}

			var summaries []schemaSummary
			for _, kind := range reg.Kinds() {
				s, err := reg.Lookup(kind)
				if err != nil {
					return err
				}
				summaries = append(summaries, schemaSummary{
					Kind:   s.Kind,
					Fields: len(s.Fields),
					Rules:  len(s.Rules),
					Strict: s.Strict,
				})
			}

			ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err != nil {
				return err
			}
			defer closeSerializer(ser)

			return ser.Serialize(ctx, summaries)
		},
	}
}

func schemaShowCmd() *cli.Command {
	return &cli.Command{
		Name:                  "show",
		EnableShellCompletion: true,
		Usage:                 "Show the full schema of one record kind",
		ArgsUsage:             "KIND",
		Description: `Prints the full declaration of one record kind: fields, constraints,
and business rules.

# Examples

Show the mission schema as YAML:
  frctl schema show mission --format yaml`,
		Flags: []cli.Flag{
			catalogFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			if cmd.Args().Len() != 1 {
				return fmt.Errorf("exactly one record kind is required")
			}

			reg, err := loadRegistry(cmd)
			if err != nil {
				return err
			}

			s, err := reg.Lookup(cmd.Args().First())
			if err != nil {
				return err
			}

			ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err != nil {
				return err
			}
			defer closeSerializer(ser)

			return ser.Serialize(ctx, s)
		},
	}
}
