/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validate

import (
	"fmt"
)

// ViolationKind classifies a single validation failure.
type ViolationKind string

// Violation kinds. The field phase produces everything except
// business_rule_error, which is reserved for the rule phase.
const (
	ViolationType         ViolationKind = "type_error"
	ViolationRequired     ViolationKind = "required_error"
	ViolationRange        ViolationKind = "range_error"
	ViolationLength       ViolationKind = "length_error"
	ViolationEnum         ViolationKind = "enum_error"
	ViolationSize         ViolationKind = "size_error"
	ViolationUnknownField ViolationKind = "unknown_field"
	ViolationBusinessRule ViolationKind = "business_rule_error"
)

// Violation is one validation failure. Field is the dotted path into the
// raw input, with nested collection elements addressed by index, for
// example "crew[2].years_experience". Rule is set only for business rule
// violations and names the failed rule.
type Violation struct {
	Field   string        `json:"field" yaml:"field"`
	Kind    ViolationKind `json:"kind" yaml:"kind"`
	Message string        `json:"message" yaml:"message"`
	Rule    string        `json:"rule,omitempty" yaml:"rule,omitempty"`
}

func (v Violation) String() string {
	if v.Rule != "" {
		return fmt.Sprintf("%s: %s (%s, rule %s)", v.Field, v.Message, v.Kind, v.Rule)
	}
	return fmt.Sprintf("%s: %s (%s)", v.Field, v.Message, v.Kind)
}

// Report collects every violation found while validating one raw input
// against one record kind. Field-phase violations appear in schema
// declaration order; a business rule violation, if any, is last and alone
// in its phase. Report implements error so Validate can return it
// directly; recover it with errors.As.
type Report struct {
	RecordKind string      `json:"recordKind" yaml:"recordKind"`
	Violations []Violation `json:"violations" yaml:"violations"`
}

// Error summarizes the report.
func (r *Report) Error() string {
	n := len(r.Violations)
	if n == 1 {
		return fmt.Sprintf("record kind %q failed validation: %s", r.RecordKind, r.Violations[0])
	}
	return fmt.Sprintf("record kind %q failed validation with %d violations", r.RecordKind, n)
}

// add appends a violation to the report.
func (r *Report) add(field string, kind ViolationKind, message string) {
	r.Violations = append(r.Violations, Violation{Field: field, Kind: kind, Message: message})
}
