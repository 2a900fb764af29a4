/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"fmt"
	"slices"
)

// RuleKind identifies a business rule variant. Rules are declarative data,
// evaluated by the rule runner in pkg/validate; adding a record kind never
// requires new evaluation code.
type RuleKind string

// Supported rule kinds.
const (
	// RulePrefix requires a string field to start with a literal prefix.
	RulePrefix RuleKind = "prefix"
	// RuleRequiresFlag requires a boolean field to be true when an enum
	// field equals a given tag.
	RuleRequiresFlag RuleKind = "requires_flag"
	// RuleMinWhenEquals requires a numeric field to be at least Min when
	// an enum field equals a given tag.
	RuleMinWhenEquals RuleKind = "min_when_equals"
	// RuleRequiredWhenAbove requires an optional field to be present and
	// non-empty when a numeric field exceeds Above.
	RuleRequiredWhenAbove RuleKind = "required_when_above"
	// RuleContainsAny requires at least one nested record whose element
	// field matches one of the given tags.
	RuleContainsAny RuleKind = "contains_any"
	// RuleRatioWhenAbove requires that, when a numeric field exceeds
	// Above, the fraction of nested records whose element field is at
	// least Min meets Ratio.
	RuleRatioWhenAbove RuleKind = "ratio_when_above"
	// RuleAllTrue requires a boolean element field to be true on every
	// nested record.
	RuleAllTrue RuleKind = "all_true"
)

// Rule is one declarative business rule. Rules run after the field phase,
// in declaration order, and evaluation stops at the first failure. Which
// parameters apply depends on Kind; validate enforces the combinations.
type Rule struct {
	Name    string   `json:"name" yaml:"name"`
	Kind    RuleKind `json:"kind" yaml:"kind"`
	Message string   `json:"message" yaml:"message"`

	// Field is the subject of the rule: the prefixed string, the required
	// flag, the bounded number, or the nested record collection.
	Field string `json:"field" yaml:"field"`

	// Prefix is the literal required by prefix rules.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// When names the condition field of conditional rules; Equals and
	// Above are the tag and threshold the condition compares against.
	When   string   `json:"when,omitempty" yaml:"when,omitempty"`
	Equals string   `json:"equals,omitempty" yaml:"equals,omitempty"`
	Above  *float64 `json:"above,omitempty" yaml:"above,omitempty"`

	// Min is the numeric floor of min_when_equals and ratio_when_above.
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`

	// Ratio is the required fraction for ratio_when_above, in (0, 1].
	Ratio *float64 `json:"ratio,omitempty" yaml:"ratio,omitempty"`

	// ElementField names the field inspected on each nested record.
	ElementField string `json:"elementField,omitempty" yaml:"elementField,omitempty"`

	// Tags is the accepted tag set of contains_any rules.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// validate checks that the rule's parameters are coherent against the
// schema's field declarations.
func (r *Rule) validate(s *Schema, resolve resolver) error {
	if r.Name == "" {
		return fmt.Errorf("rule has no name")
	}
	if r.Message == "" {
		return fmt.Errorf("rule has no message")
	}

	subject, ok := s.Field(r.Field)
	if !ok {
		return fmt.Errorf("references unknown field %q", r.Field)
	}

	switch r.Kind {
	case RulePrefix:
		if subject.Type != TypeString {
			return fmt.Errorf("prefix rule needs a string field, %q is %s", r.Field, subject.Type)
		}
		if r.Prefix == "" {
			return fmt.Errorf("prefix rule has no prefix")
		}
	case RuleRequiresFlag:
		if subject.Type != TypeBoolean {
			return fmt.Errorf("requires_flag rule needs a boolean field, %q is %s", r.Field, subject.Type)
		}
		return r.validateEqualsCondition(s)
	case RuleMinWhenEquals:
		if !subject.Type.IsNumeric() {
			return fmt.Errorf("min_when_equals rule needs a numeric field, %q is %s", r.Field, subject.Type)
		}
		if r.Min == nil {
			return fmt.Errorf("min_when_equals rule has no min")
		}
		return r.validateEqualsCondition(s)
	case RuleRequiredWhenAbove:
		if !subject.Optional {
			return fmt.Errorf("required_when_above rule needs an optional field, %q is required", r.Field)
		}
		return r.validateAboveCondition(s)
	case RuleContainsAny:
		if len(r.Tags) == 0 {
			return fmt.Errorf("contains_any rule has no tag set")
		}
		elem, err := r.elementField(subject, resolve)
		if err != nil {
			return err
		}
		if elem.Type != TypeEnum && elem.Type != TypeString {
			return fmt.Errorf("contains_any rule needs an enum or string element field, %q is %s", r.ElementField, elem.Type)
		}
	case RuleRatioWhenAbove:
		if r.Min == nil {
			return fmt.Errorf("ratio_when_above rule has no min")
		}
		if r.Ratio == nil {
			return fmt.Errorf("ratio_when_above rule has no ratio")
		}
		if *r.Ratio <= 0 || *r.Ratio > 1 {
			return fmt.Errorf("ratio_when_above rule ratio %g is outside (0, 1]", *r.Ratio)
		}
		elem, err := r.elementField(subject, resolve)
		if err != nil {
			return err
		}
		if !elem.Type.IsNumeric() {
			return fmt.Errorf("ratio_when_above rule needs a numeric element field, %q is %s", r.ElementField, elem.Type)
		}
		return r.validateAboveCondition(s)
	case RuleAllTrue:
		elem, err := r.elementField(subject, resolve)
		if err != nil {
			return err
		}
		if elem.Type != TypeBoolean {
			return fmt.Errorf("all_true rule needs a boolean element field, %q is %s", r.ElementField, elem.Type)
		}
	default:
		return fmt.Errorf("unknown rule kind %q", r.Kind)
	}

	return nil
}

// validateEqualsCondition checks the When/Equals pair against an enum field.
func (r *Rule) validateEqualsCondition(s *Schema) error {
	cond, ok := s.Field(r.When)
	if !ok {
		return fmt.Errorf("condition references unknown field %q", r.When)
	}
	if cond.Type != TypeEnum {
		return fmt.Errorf("condition field %q must be an enum, is %s", r.When, cond.Type)
	}
	if !slices.Contains(cond.Tags, r.Equals) {
		return fmt.Errorf("condition tag %q is not in the tag set of %q", r.Equals, r.When)
	}
	return nil
}

// validateAboveCondition checks the When/Above pair against a numeric field.
func (r *Rule) validateAboveCondition(s *Schema) error {
	cond, ok := s.Field(r.When)
	if !ok {
		return fmt.Errorf("condition references unknown field %q", r.When)
	}
	if !cond.Type.IsNumeric() {
		return fmt.Errorf("condition field %q must be numeric, is %s", r.When, cond.Type)
	}
	if r.Above == nil {
		return fmt.Errorf("rule has no threshold")
	}
	return nil
}

// elementField resolves ElementField on the subject's element schema.
func (r *Rule) elementField(subject *Field, resolve resolver) (*Field, error) {
	if subject.Type != TypeRecords {
		return nil, fmt.Errorf("%s rule needs a records field, %q is %s", r.Kind, r.Field, subject.Type)
	}
	if r.ElementField == "" {
		return nil, fmt.Errorf("%s rule has no element field", r.Kind)
	}
	elemSchema, ok := resolve(subject.Element)
	if !ok {
		return nil, fmt.Errorf("element kind %q cannot be resolved", subject.Element)
	}
	elem, ok := elemSchema.Field(r.ElementField)
	if !ok {
		return nil, fmt.Errorf("element field %q is not declared by record kind %q", r.ElementField, subject.Element)
	}
	return elem, nil
}
