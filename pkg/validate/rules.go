/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validate

import (
	"strings"

	"github.com/NVIDIA/fleet-records/pkg/schema"
)

// runRules evaluates the schema's business rules against a record that
// already passed the field phase. Rules run in declaration order and
// evaluation stops at the first failure, so a report carries at most one
// business rule violation. Returns nil when every rule holds.
func runRules(s *schema.Schema, rec *Record) *Violation {
	for i := range s.Rules {
		rule := &s.Rules[i]
		if evalRule(rule, rec) {
			continue
		}
		return &Violation{
			Field:   rule.Field,
			Kind:    ViolationBusinessRule,
			Message: rule.Message,
			Rule:    rule.Name,
		}
	}
	return nil
}

// evalRule reports whether the record satisfies one rule. Every rule kind
// is handled here; schema compilation guarantees the parameter
// combinations, so missing values only arise from absent optional fields,
// which satisfy conditional rules vacuously.
func evalRule(rule *schema.Rule, rec *Record) bool {
	switch rule.Kind {
	case schema.RulePrefix:
		subject, ok := rec.String(rule.Field)
		return !ok || strings.HasPrefix(subject, rule.Prefix)

	case schema.RuleRequiresFlag:
		if !conditionEquals(rule, rec) {
			return true
		}
		flag, ok := rec.Bool(rule.Field)
		return ok && flag

	case schema.RuleMinWhenEquals:
		if !conditionEquals(rule, rec) {
			return true
		}
		subject, ok := rec.number(rule.Field)
		return !ok || subject >= *rule.Min

	case schema.RuleRequiredWhenAbove:
		if !conditionAbove(rule, rec) {
			return true
		}
		subject, ok := rec.String(rule.Field)
		return ok && subject != ""

	case schema.RuleContainsAny:
		elements, ok := rec.Records(rule.Field)
		if !ok {
			return true
		}
		for _, elem := range elements {
			if v, ok := elem.String(rule.ElementField); ok && contains(rule.Tags, v) {
				return true
			}
		}
		return false

	case schema.RuleRatioWhenAbove:
		if !conditionAbove(rule, rec) {
			return true
		}
		elements, ok := rec.Records(rule.Field)
		if !ok || len(elements) == 0 {
			return true
		}
		matched := 0
		for _, elem := range elements {
			if v, ok := elem.number(rule.ElementField); ok && v >= *rule.Min {
				matched++
			}
		}
		return float64(matched)/float64(len(elements)) >= *rule.Ratio

	case schema.RuleAllTrue:
		elements, ok := rec.Records(rule.Field)
		if !ok {
			return true
		}
		for _, elem := range elements {
			if v, ok := elem.Bool(rule.ElementField); ok && !v {
				return false
			}
		}
		return true
	}

	return true
}

func conditionEquals(rule *schema.Rule, rec *Record) bool {
	v, ok := rec.String(rule.When)
	return ok && v == rule.Equals
}

func conditionAbove(rule *schema.Rule, rec *Record) bool {
	v, ok := rec.number(rule.When)
	return ok && v > *rule.Above
}
