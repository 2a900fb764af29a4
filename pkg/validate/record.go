/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validate

import (
	"slices"
	"time"
)

// Record is an immutable validated record. It exists only as the product
// of a successful validation: every field it holds has passed coercion and
// every constraint of its schema. Values are reached through typed
// accessors; Export produces a detached copy for serialization.
type Record struct {
	kind   string
	names  []string
	fields map[string]any
}

// newRecord builds a record from coerced field values. names carries the
// present fields in schema declaration order.
func newRecord(kind string, names []string, fields map[string]any) *Record {
	return &Record{kind: kind, names: names, fields: fields}
}

// RecordKind returns the record's kind.
func (r *Record) RecordKind() string {
	return r.kind
}

// FieldNames returns the present fields in schema declaration order.
// Optional fields that were absent from the input do not appear.
func (r *Record) FieldNames() []string {
	return slices.Clone(r.names)
}

// Has reports whether the named field is present.
func (r *Record) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// Field returns the coerced value of the named field. Nested fields hold
// *Record or []*Record values.
func (r *Record) Field(name string) (any, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// String returns the named field as a string. The second result is false
// when the field is absent or not a string.
func (r *Record) String(name string) (string, bool) {
	v, ok := r.fields[name].(string)
	return v, ok
}

// Int returns the named field as an int64.
func (r *Record) Int(name string) (int64, bool) {
	v, ok := r.fields[name].(int64)
	return v, ok
}

// Float returns the named field as a float64.
func (r *Record) Float(name string) (float64, bool) {
	v, ok := r.fields[name].(float64)
	return v, ok
}

// Bool returns the named field as a bool.
func (r *Record) Bool(name string) (bool, bool) {
	v, ok := r.fields[name].(bool)
	return v, ok
}

// Time returns the named field as a time.Time.
func (r *Record) Time(name string) (time.Time, bool) {
	v, ok := r.fields[name].(time.Time)
	return v, ok
}

// Record returns the named field as a nested record.
func (r *Record) Record(name string) (*Record, bool) {
	v, ok := r.fields[name].(*Record)
	return v, ok
}

// Records returns the named field as a nested record collection.
func (r *Record) Records(name string) ([]*Record, bool) {
	v, ok := r.fields[name].([]*Record)
	return v, ok
}

// number returns the named field as a float64, widening integers. Used by
// the rule runner, which compares integer and float fields uniformly.
func (r *Record) number(name string) (float64, bool) {
	switch v := r.fields[name].(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// Export returns the record as a detached plain map, with nested records
// exported recursively and timestamps formatted as RFC 3339. Mutating the
// result does not affect the record.
func (r *Record) Export() map[string]any {
	out := make(map[string]any, len(r.names))
	for _, name := range r.names {
		out[name] = exportValue(r.fields[name])
	}
	return out
}

func exportValue(v any) any {
	switch val := v.(type) {
	case *Record:
		return val.Export()
	case []*Record:
		items := make([]any, len(val))
		for i, rec := range val {
			items[i] = rec.Export()
		}
		return items
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return val
	}
}
