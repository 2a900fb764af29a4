/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"fmt"
	"slices"

	cnserrors "github.com/NVIDIA/fleet-records/pkg/errors"
)

// FieldType is the semantic type of a record field.
type FieldType string

// Supported field types.
const (
	TypeString    FieldType = "string"
	TypeInteger   FieldType = "integer"
	TypeFloat     FieldType = "float"
	TypeBoolean   FieldType = "boolean"
	TypeTimestamp FieldType = "timestamp"
	TypeEnum      FieldType = "enum"
	TypeRecord    FieldType = "record"
	TypeRecords   FieldType = "records"
)

// fieldTypes lists every valid field type.
var fieldTypes = []FieldType{
	TypeString, TypeInteger, TypeFloat, TypeBoolean,
	TypeTimestamp, TypeEnum, TypeRecord, TypeRecords,
}

// IsValid reports whether the field type is one of the supported types.
func (t FieldType) IsValid() bool {
	return slices.Contains(fieldTypes, t)
}

// IsNumeric reports whether values of this type support numeric comparison.
func (t FieldType) IsNumeric() bool {
	return t == TypeInteger || t == TypeFloat
}

// IsNested reports whether the type embeds other validated records.
func (t FieldType) IsNested() bool {
	return t == TypeRecord || t == TypeRecords
}

// SupportedFieldTypes returns the list of valid field types.
func SupportedFieldTypes() []FieldType {
	return slices.Clone(fieldTypes)
}

// ConstraintKind identifies a constraint primitive.
type ConstraintKind string

// Constraint primitives. Each is pure, stateless, and order-independent;
// presence checking is driven by the field's Optional flag instead.
const (
	// ConstraintRange bounds a numeric value, inclusive on both ends.
	ConstraintRange ConstraintKind = "range"
	// ConstraintLength bounds a string length in characters, inclusive.
	ConstraintLength ConstraintKind = "length"
	// ConstraintSize bounds a record collection's element count, inclusive.
	ConstraintSize ConstraintKind = "size"
	// ConstraintMembership restricts a value to a closed tag set.
	ConstraintMembership ConstraintKind = "membership"
)

// Constraint is one declarative check attached to a field. Min and Max are
// interpreted per kind: numeric bounds for range, character counts for
// length, element counts for size. A nil bound means unbounded on that end.
type Constraint struct {
	Kind ConstraintKind `json:"kind" yaml:"kind"`
	Min  *float64       `json:"min,omitempty" yaml:"min,omitempty"`
	Max  *float64       `json:"max,omitempty" yaml:"max,omitempty"`
	Tags []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// validate checks that the constraint is coherent for the given field.
func (c *Constraint) validate(f *Field) error {
	switch c.Kind {
	case ConstraintRange:
		if !f.Type.IsNumeric() {
			return fmt.Errorf("range constraint requires a numeric field, %q is %s", f.Name, f.Type)
		}
	case ConstraintLength:
		if f.Type != TypeString {
			return fmt.Errorf("length constraint requires a string field, %q is %s", f.Name, f.Type)
		}
	case ConstraintSize:
		if f.Type != TypeRecords {
			return fmt.Errorf("size constraint requires a records field, %q is %s", f.Name, f.Type)
		}
	case ConstraintMembership:
		if f.Type != TypeEnum {
			return fmt.Errorf("membership constraint requires an enum field, %q is %s", f.Name, f.Type)
		}
		if len(c.Tags) == 0 {
			return fmt.Errorf("membership constraint on %q needs a non-empty tag set", f.Name)
		}
	default:
		return fmt.Errorf("unknown constraint kind %q on field %q", c.Kind, f.Name)
	}

	if c.Kind != ConstraintMembership {
		if c.Min == nil && c.Max == nil {
			return fmt.Errorf("%s constraint on %q needs at least one bound", c.Kind, f.Name)
		}
		if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
			return fmt.Errorf("%s constraint on %q has min %g > max %g", c.Kind, f.Name, *c.Min, *c.Max)
		}
	}

	return nil
}

// Field declares one record attribute: its name, semantic type, optionality,
// and the ordered constraints attached to it. Fields are immutable once their
// schema is registered.
type Field struct {
	Name     string    `json:"name" yaml:"name"`
	Type     FieldType `json:"type" yaml:"type"`
	Optional bool      `json:"optional,omitempty" yaml:"optional,omitempty"`

	// Default is applied when the raw input omits the field. Defaults
	// participate in constraint checking like any supplied value.
	Default any `json:"default,omitempty" yaml:"default,omitempty"`

	// Element names the record kind of nested record/records fields.
	Element string `json:"element,omitempty" yaml:"element,omitempty"`

	// Tags is the closed tag set of enum fields.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	Constraints []Constraint `json:"constraints,omitempty" yaml:"constraints,omitempty"`

	elementSchema *Schema
}

// ElementSchema returns the compiled schema of a nested field's element
// kind, bound when the field's schema was registered. Nil for non-nested
// fields.
func (f *Field) ElementSchema() *Schema {
	return f.elementSchema
}

// Schema is the ordered set of field declarations and business rules for one
// record kind. Schemas are write-once: they are compiled when registered and
// never mutated afterwards.
type Schema struct {
	Kind string `json:"kind" yaml:"kind"`

	// Strict rejects raw input keys that are not declared in the schema.
	// The default (false) silently ignores extra keys.
	Strict bool `json:"strict,omitempty" yaml:"strict,omitempty"`

	Fields []Field `json:"fields" yaml:"fields"`
	Rules  []Rule  `json:"rules,omitempty" yaml:"rules,omitempty"`

	fieldIndex map[string]int
}

// Field returns the declaration for the named field.
func (s *Schema) Field(name string) (*Field, bool) {
	i, ok := s.fieldIndex[name]
	if !ok {
		return nil, false
	}
	return &s.Fields[i], true
}

// FieldNames returns the declared field names in schema order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i := range s.Fields {
		names[i] = s.Fields[i].Name
	}
	return names
}

// resolver reports whether a record kind can be resolved, used to check
// nested element references at compile time.
type resolver func(kind string) (*Schema, bool)

// compile validates the schema declaration and builds the field index.
// The resolver answers nested element kind lookups.
func (s *Schema) compile(resolve resolver) error {
	if s.Kind == "" {
		return cnserrors.New(cnserrors.ErrCodeInvalidSchema, "schema has no record kind")
	}

	s.fieldIndex = make(map[string]int, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Name == "" {
			return cnserrors.Newf(cnserrors.ErrCodeInvalidSchema, "schema %q: field %d has no name", s.Kind, i)
		}
		if _, dup := s.fieldIndex[f.Name]; dup {
			return cnserrors.Newf(cnserrors.ErrCodeInvalidSchema, "schema %q: duplicate field %q", s.Kind, f.Name)
		}
		s.fieldIndex[f.Name] = i

		if err := s.compileField(f, resolve); err != nil {
			return err
		}
	}

	for i := range s.Rules {
		if err := s.Rules[i].validate(s, resolve); err != nil {
			return cnserrors.Wrap(cnserrors.ErrCodeInvalidSchema,
				fmt.Sprintf("schema %q: rule %q", s.Kind, s.Rules[i].Name), err)
		}
	}

	return nil
}

func (s *Schema) compileField(f *Field, resolve resolver) error {
	if !f.Type.IsValid() {
		return cnserrors.Newf(cnserrors.ErrCodeInvalidSchema,
			"schema %q: field %q has unknown type %q (supported: %v)", s.Kind, f.Name, f.Type, SupportedFieldTypes())
	}

	switch f.Type {
	case TypeEnum:
		if len(f.Tags) == 0 {
			return cnserrors.Newf(cnserrors.ErrCodeInvalidSchema,
				"schema %q: enum field %q has no tag set", s.Kind, f.Name)
		}
		// Enum fields always carry a membership constraint; synthesize it
		// when the declaration does not spell one out.
		if !hasConstraint(f.Constraints, ConstraintMembership) {
			f.Constraints = append(f.Constraints, Constraint{Kind: ConstraintMembership, Tags: f.Tags})
		}
	case TypeRecord, TypeRecords:
		if f.Element == "" {
			return cnserrors.Newf(cnserrors.ErrCodeInvalidSchema,
				"schema %q: nested field %q has no element kind", s.Kind, f.Name)
		}
		elem, ok := resolve(f.Element)
		if !ok {
			return cnserrors.Newf(cnserrors.ErrCodeInvalidSchema,
				"schema %q: nested field %q references unknown record kind %q", s.Kind, f.Name, f.Element)
		}
		f.elementSchema = elem
	}

	for i := range f.Constraints {
		if err := f.Constraints[i].validate(f); err != nil {
			return cnserrors.Wrap(cnserrors.ErrCodeInvalidSchema,
				fmt.Sprintf("schema %q", s.Kind), err)
		}
	}

	return nil
}

func hasConstraint(constraints []Constraint, kind ConstraintKind) bool {
	for i := range constraints {
		if constraints[i].Kind == kind {
			return true
		}
	}
	return false
}
