// Package validate implements the two-phase record validation pipeline.
//
// # Overview
//
// A Validator takes a raw decoded input (map[string]any) and a record
// kind, looks up the kind's schema, and runs two phases:
//
//  1. Field phase: every declared field is checked against its type and
//     every constraint. The phase is exhaustive: it never stops at the
//     first failure, so one pass reports everything wrong with the
//     fields. Failures appear in schema declaration order.
//  2. Rule phase: runs only when the field phase found nothing. Business
//     rules evaluate in declaration order against the coerced record and
//     evaluation stops at the first failure, so a report carries at most
//     one business rule violation.
//
// Success produces an immutable *Record; failure produces a *Report
// listing every violation. The engine is pure: identical schema and input
// always yield the identical outcome, and the raw input is never mutated.
//
// # Usage
//
// Validate against the builtin schemas:
//
//	reg, err := schema.Builtin()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v := validate.New(reg, validate.WithVersion("v1.0.0"))
//	rec, err := v.Validate(ctx, "mission", raw)
//	if err != nil {
//	    var report *validate.Report
//	    if errors.As(err, &report) {
//	        for _, violation := range report.Violations {
//	            fmt.Println(violation)
//	        }
//	        return
//	    }
//	    log.Fatal(err) // unknown kind, nil input
//	}
//
//	name, _ := rec.String("mission_name")
//	crew, _ := rec.Records("crew")
//
// Wrap the outcome for serialization:
//
//	doc, err := validate.NewResultDocument("v1.0.0", "mission", "mission.json", rec, err)
//
// # Coercion
//
// Raw values are coerced into canonical Go representations before
// constraint checking: string, int64, float64, bool, time.Time. Coercion
// is lenient only where lossless: integral floats count as integers
// (JSON decodes every number as float64), integers widen to floats.
// Timestamps accept RFC 3339 and a few date layouts. A value that cannot
// represent its declared type yields a type_error and skips the field's
// constraints.
//
// String lengths count characters after NFC normalization, so composed
// and decomposed forms of the same text measure equally.
//
// # Nested Records
//
// Fields of type record and records validate their elements with the
// element kind's full pipeline. Element violations join the parent report
// with index-qualified paths such as "crew[2].years_experience", and an
// element's own business rule failures surface at the element path.
//
// # Violations
//
// Field phase: type_error, required_error, range_error, length_error,
// enum_error, size_error, unknown_field (strict schemas only).
// Rule phase: business_rule_error, carrying the rule name and the
// schema's message verbatim.
//
// # Observability
//
// The pipeline exports Prometheus metrics:
//   - fleet_validation_duration_seconds: validation latency
//   - fleet_validation_total{kind,status}: outcomes per record kind
//   - fleet_violation_total{kind,violation}: violation counts by kind
//
// # Integration
//
// The validate package is used by:
//   - pkg/cli - validate command
//
// It depends on:
//   - pkg/schema - schema registry, constraints, rules
//   - pkg/header - result document headers
package validate
