/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/NVIDIA/fleet-records/pkg/schema"
)

// maxFieldSuggestDistance caps the edit distance for unknown-field
// suggestions in strict mode.
const maxFieldSuggestDistance = 3

// validateFields runs the field phase: every declared field is checked
// against its type and every constraint, and every failure is collected.
// The phase never stops early. prefix carries the dotted path of nested
// invocations ("" at the top level, "crew[2]." inside a collection).
//
// The returned map holds the coerced values of fields that passed, with
// names listing them in schema order. The map is only turned into a
// Record when the report stays empty.
func validateFields(s *schema.Schema, raw map[string]any, prefix string, report *Report) (map[string]any, []string) {
	fields := make(map[string]any, len(s.Fields))
	names := make([]string, 0, len(s.Fields))

	for i := range s.Fields {
		f := &s.Fields[i]
		path := prefix + f.Name

		value, present := raw[f.Name]
		if !present || value == nil {
			if f.Default != nil {
				value = f.Default
			} else if f.Optional {
				continue
			} else {
				report.add(path, ViolationRequired, "field is required")
				continue
			}
		}

		if f.Type.IsNested() {
			if nested := validateNested(f, value, path, report); nested != nil {
				fields[f.Name] = nested
				names = append(names, f.Name)
			}
			continue
		}

		coerced, msg := coerce(f, value)
		if msg != "" {
			// A value of the wrong type cannot be constraint-checked;
			// record the type error and move on to the next field.
			report.add(path, ViolationType, msg)
			continue
		}

		before := len(report.Violations)
		applyConstraints(f, coerced, path, report)
		if len(report.Violations) == before {
			fields[f.Name] = coerced
			names = append(names, f.Name)
		}
	}

	if s.Strict {
		reportUnknownFields(s, raw, prefix, report)
	}

	return fields, names
}

// validateNested validates a record or records field. Each element runs
// the full pipeline of the element schema, and its violations join the
// parent report with index-qualified paths. Returns the validated value
// (*Record or []*Record) or nil when anything failed.
func validateNested(f *schema.Field, value any, path string, report *Report) any {
	elemSchema := f.ElementSchema()
	if elemSchema == nil {
		report.add(path, ViolationType, fmt.Sprintf("element kind %q cannot be resolved", f.Element))
		return nil
	}

	if f.Type == schema.TypeRecord {
		obj, ok := value.(map[string]any)
		if !ok {
			report.add(path, ViolationType, fmt.Sprintf("expected an object, got %s", typeName(value)))
			return nil
		}
		return validateElement(elemSchema, obj, path+".", report)
	}

	items, ok := asSlice(value)
	if !ok {
		report.add(path, ViolationType, fmt.Sprintf("expected an array, got %s", typeName(value)))
		return nil
	}

	// Size constraints judge the raw element count, before any element
	// is inspected.
	before := len(report.Violations)
	applyConstraints(f, items, path, report)
	sizeOK := len(report.Violations) == before

	records := make([]*Record, 0, len(items))
	allValid := sizeOK
	for i, item := range items {
		elemPath := fmt.Sprintf("%s[%d]", path, i)
		obj, ok := item.(map[string]any)
		if !ok {
			report.add(elemPath, ViolationType, fmt.Sprintf("expected an object, got %s", typeName(item)))
			allValid = false
			continue
		}
		rec := validateElement(elemSchema, obj, elemPath+".", report)
		if rec == nil {
			allValid = false
			continue
		}
		records = append(records, rec)
	}

	if !allValid {
		return nil
	}
	return records
}

// validateElement runs the element schema's field phase and, when that
// passes, its business rules. Rule failures surface on the parent report
// with the element's path prefix.
func validateElement(s *schema.Schema, raw map[string]any, prefix string, report *Report) *Record {
	before := len(report.Violations)
	fields, names := validateFields(s, raw, prefix, report)
	if len(report.Violations) != before {
		return nil
	}

	rec := newRecord(s.Kind, names, fields)
	if violation := runRules(s, rec); violation != nil {
		violation.Field = prefix + violation.Field
		report.Violations = append(report.Violations, *violation)
		return nil
	}
	return rec
}

// applyConstraints checks every constraint of the field, in declaration
// order, against a coerced value.
func applyConstraints(f *schema.Field, value any, path string, report *Report) {
	for i := range f.Constraints {
		c := &f.Constraints[i]
		switch c.Kind {
		case schema.ConstraintRange:
			n := asFloat(value)
			if c.Min != nil && n < *c.Min {
				report.add(path, ViolationRange, fmt.Sprintf("value %v is less than minimum %g", value, *c.Min))
			}
			if c.Max != nil && n > *c.Max {
				report.add(path, ViolationRange, fmt.Sprintf("value %v is greater than maximum %g", value, *c.Max))
			}
		case schema.ConstraintLength:
			n := charCount(value.(string))
			if c.Min != nil && n < int(*c.Min) {
				report.add(path, ViolationLength, fmt.Sprintf("length %d is less than minimum %d characters", n, int(*c.Min)))
			}
			if c.Max != nil && n > int(*c.Max) {
				report.add(path, ViolationLength, fmt.Sprintf("length %d exceeds maximum %d characters", n, int(*c.Max)))
			}
		case schema.ConstraintMembership:
			s := value.(string)
			if !contains(c.Tags, s) {
				report.add(path, ViolationEnum,
					fmt.Sprintf("value %q is not one of: %s", s, strings.Join(c.Tags, ", ")))
			}
		case schema.ConstraintSize:
			n := len(value.([]any))
			if c.Min != nil && n < int(*c.Min) {
				report.add(path, ViolationSize, fmt.Sprintf("collection has %d elements, fewer than minimum %d", n, int(*c.Min)))
			}
			if c.Max != nil && n > int(*c.Max) {
				report.add(path, ViolationSize, fmt.Sprintf("collection has %d elements, more than maximum %d", n, int(*c.Max)))
			}
		}
	}
}

// reportUnknownFields flags raw keys the schema does not declare, in
// sorted order so reports stay deterministic.
func reportUnknownFields(s *schema.Schema, raw map[string]any, prefix string, report *Report) {
	var extras []string
	for key := range raw {
		if _, ok := s.Field(key); !ok {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)

	for _, key := range extras {
		msg := fmt.Sprintf("field is not declared by record kind %q", s.Kind)
		if suggestion := suggestField(s, key); suggestion != "" {
			msg = fmt.Sprintf("%s (did you mean %q?)", msg, suggestion)
		}
		report.add(prefix+key, ViolationUnknownField, msg)
	}
}

func suggestField(s *schema.Schema, key string) string {
	best := ""
	bestDistance := maxFieldSuggestDistance + 1
	for _, name := range s.FieldNames() {
		if d := levenshtein.ComputeDistance(key, name); d < bestDistance {
			best = name
			bestDistance = d
		}
	}
	return best
}

func asSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []map[string]any:
		items := make([]any, len(v))
		for i, m := range v {
			items[i] = m
		}
		return items, true
	}
	return nil, false
}

func asFloat(value any) float64 {
	switch v := value.(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	}
	return 0
}

func contains(tags []string, s string) bool {
	for _, t := range tags {
		if t == s {
			return true
		}
	}
	return false
}
