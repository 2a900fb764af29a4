/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	cnserrors "github.com/NVIDIA/fleet-records/pkg/errors"
	"github.com/NVIDIA/fleet-records/pkg/schema"
	"github.com/NVIDIA/fleet-records/pkg/serializer"
)

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: yaml, json, table", outFormat)
	}
	return outFormat, nil
}

// loadRegistry returns the schema registry the command should validate
// against: a catalog file when --catalog is set, the builtin schemas
// otherwise.
func loadRegistry(cmd *cli.Command) (*schema.Registry, error) {
	path := cmd.String("catalog")
	if path == "" {
		return schema.Builtin()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema catalog %q: %w", path, err)
	}
	return schema.LoadCatalog(data)
}

// closeSerializer releases a file-backed serializer, logging on failure.
func closeSerializer(ser serializer.Serializer) {
	if closer, ok := ser.(serializer.Closer); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}
}

// decodeRawRecord reads and decodes one raw record from a file path, or
// from stdin when the path is "-". YAML is a superset of JSON, so one
// decoder covers both.
func decodeRawRecord(path string) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path == serializer.StdoutURI {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to read input %q", path), err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to parse input %q", path), err)
	}
	return raw, nil
}
