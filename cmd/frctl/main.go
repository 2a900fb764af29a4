/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// frctl validates fleet records against declarative schemas.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/NVIDIA/fleet-records/pkg/cli"
)

// version is overridden at build time:
//
//	go build -ldflags "-X main.version=v1.0.0" ./cmd/frctl
var version = "dev"

func main() {
	root := cli.New(version)
	if err := root.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
