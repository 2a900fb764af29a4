// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli implements the command-line interface for the frctl tool.
//
// # Overview
//
// The frctl CLI validates raw record files against declarative schemas and
// inspects the schema registry. It is designed for operators feeding fleet
// telemetry and mission records through the validation pipeline.
//
// # Commands
//
// validate - Validate raw records:
//
//	frctl validate --kind mission mission.json
//	frctl validate --kind contact_report reports/*.yaml --format yaml
//	cat station.yaml | frctl validate --kind station -
//	frctl validate --catalog schemas.yaml --kind probe probe.json
//
// Each input file holds one raw record (JSON or YAML; "-" reads stdin).
// Files validate concurrently, bounded by --concurrency, and result
// documents serialize in input order. The command exits non-zero when any
// record is invalid unless --no-fail is set.
//
// schema list - List registered record kinds:
//
//	frctl schema list
//	frctl schema list --catalog schemas.yaml --format table
//
// schema show - Print one schema in full:
//
//	frctl schema show mission --format yaml
//
// # Global Flags
//
//   - --debug: debug-level logging
//   - --log-json: JSON log output
//
// Logging level can also come from the LOG_LEVEL environment variable.
//
// # Output
//
// Commands share --format (json, yaml, table) and --output (file path,
// "-" or empty for stdout) flags, backed by pkg/serializer.
//
// # Custom Catalogs
//
// Commands accepting --catalog load schema declarations from a
// SchemaCatalog YAML document instead of the builtin embedded catalog,
// so new record kinds need no rebuild.
package cli
