/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validate

import (
	"context"
	"log/slog"
	"time"

	cnserrors "github.com/NVIDIA/fleet-records/pkg/errors"
	"github.com/NVIDIA/fleet-records/pkg/schema"
)

// Validator runs raw inputs through the two-phase validation pipeline:
// the field phase checks every declared field against its type and
// constraints and collects every failure; the rule phase runs business
// rules in order and stops at the first failure. A Validator is stateless
// apart from its registry and safe for concurrent use.
type Validator struct {
	registry *schema.Registry

	// Version is the engine version (typically the CLI version),
	// stamped into result documents.
	Version string
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// New creates a new Validator against the given schema registry.
func New(registry *schema.Registry, opts ...Option) *Validator {
	v := &Validator{registry: registry}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate validates a raw input against the named record kind. On
// success it returns the immutable validated record. When the input
// violates the schema, the returned error is a *Report carrying every
// field-phase violation plus at most one business rule violation; recover
// it with errors.As. Other errors (unknown record kind, nil input) are
// *cnserrors.StructuredError values.
//
// Validation is pure: the same schema and input always produce the same
// outcome, and the raw input is never mutated.
func (v *Validator) Validate(ctx context.Context, kind string, raw map[string]any) (*Record, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if raw == nil {
		validationTotal.WithLabelValues(kind, "error").Inc()
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "raw input cannot be nil")
	}

	s, err := v.registry.Lookup(kind)
	if err != nil {
		validationTotal.WithLabelValues(kind, "error").Inc()
		return nil, err
	}

	report := &Report{RecordKind: kind}
	fields, names := validateFields(s, raw, "", report)

	var rec *Record
	if len(report.Violations) == 0 {
		rec = newRecord(kind, names, fields)
		if violation := runRules(s, rec); violation != nil {
			report.Violations = append(report.Violations, *violation)
			rec = nil
		}
	}

	duration := time.Since(start)
	validationDuration.Observe(duration.Seconds())

	if len(report.Violations) > 0 {
		validationTotal.WithLabelValues(kind, "invalid").Inc()
		for _, violation := range report.Violations {
			violationTotal.WithLabelValues(kind, string(violation.Kind)).Inc()
		}
		slog.Debug("validation failed",
			"kind", kind,
			"violations", len(report.Violations),
			"duration", duration)
		return nil, report
	}

	validationTotal.WithLabelValues(kind, "valid").Inc()
	slog.Debug("validation passed",
		"kind", kind,
		"fields", len(names),
		"duration", duration)
	return rec, nil
}
