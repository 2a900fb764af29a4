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
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/fleet-records/pkg/serializer"
	"github.com/NVIDIA/fleet-records/pkg/validate"
)

// defaultConcurrency bounds how many input files validate in parallel.
const defaultConcurrency = 4

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		Aliases:               []string{"val"},
		EnableShellCompletion: true,
		Usage:                 "Validate raw records against a record kind's schema",
		ArgsUsage:             "FILE [FILE...]",
		Description: `Validates one or more raw record files (JSON or YAML) against the schema
of the given record kind. Each file holds one record; use "-" to read a
single record from stdin.

Validation runs in two phases. The field phase checks every declared
field against its type and constraints and reports everything it finds.
The business rule phase runs only on records with clean fields, in rule
declaration order, and stops at the first failing rule.

A result document is produced per input. With several inputs, documents
appear in input order regardless of validation concurrency.

# Examples

Validate one mission record:
  frctl validate --kind mission mission.json

Validate a batch and write the reports to a YAML file:
  frctl validate --kind contact_report reports/*.json --format yaml --output results.yaml

Pipe a record through stdin:
  cat station.yaml | frctl validate --kind station -

Keep exit status zero even for invalid records:
  frctl validate --kind mission mission.json --no-fail`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "kind",
				Aliases:  []string{"k"},
				Required: true,
				Usage:    "record kind to validate against",
			},
			&cli.BoolFlag{
				Name:  "no-fail",
				Usage: "exit successfully even when records fail validation",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: defaultConcurrency,
				Usage: "maximum number of input files validated in parallel",
			},
			catalogFlag,
			outputFlag,
			formatFlag,
		},
		Action: runValidate,
	}
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	outFormat, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("at least one input file is required (or \"-\" for stdin)")
	}

	reg, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	kind := cmd.String("kind")
	if _, err := reg.Lookup(kind); err != nil {
		return err
	}

	concurrency := int(cmd.Int("concurrency"))
	if concurrency < 1 {
		concurrency = 1
	}

	v := validate.New(reg, validate.WithVersion(version))

	// Results land in input order even though validation runs in
	// parallel.
	docs := make([]*validate.ResultDocument, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			raw, err := decodeRawRecord(path)
			if err != nil {
				return err
			}
			rec, valErr := v.Validate(gctx, kind, raw)
			doc, err := validate.NewResultDocument(version, kind, path, rec, valErr)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	invalid := 0
	for _, doc := range docs {
		if doc.Status == validate.StatusInvalid {
			invalid++
		}
	}

	ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
	if err != nil {
		return err
	}
	defer closeSerializer(ser)

	// A single input serializes as one document, not a one-element list.
	var out any = docs
	if len(docs) == 1 {
		out = docs[0]
	}
	if err := ser.Serialize(ctx, out); err != nil {
		return err
	}

	slog.Info("validation finished",
		"kind", kind,
		"records", len(docs),
		"invalid", invalid)

	if invalid > 0 && !cmd.Bool("no-fail") {
		return fmt.Errorf("%d of %d records failed validation", invalid, len(docs))
	}
	return nil
}
