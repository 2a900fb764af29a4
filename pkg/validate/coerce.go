/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validate

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/NVIDIA/fleet-records/pkg/schema"
)

// timestampLayouts are tried in order when parsing timestamp fields.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// coerce converts a raw decoded value into the canonical representation of
// the field's type: string, int64, float64, bool, or time.Time. It returns
// a type_error message when the value cannot represent the declared type.
// Coercion is lenient only where the conversion is lossless: integral
// floats become integers, integers widen to floats. Nested types are
// handled by the field phase, not here.
func coerce(f *schema.Field, raw any) (any, string) {
	switch f.Type {
	case schema.TypeString, schema.TypeEnum:
		if s, ok := raw.(string); ok {
			return s, ""
		}
		return nil, fmt.Sprintf("expected a string, got %s", typeName(raw))

	case schema.TypeInteger:
		return coerceInteger(raw)

	case schema.TypeFloat:
		return coerceFloat(raw)

	case schema.TypeBoolean:
		if b, ok := raw.(bool); ok {
			return b, ""
		}
		return nil, fmt.Sprintf("expected a boolean, got %s", typeName(raw))

	case schema.TypeTimestamp:
		return coerceTimestamp(raw)
	}

	return nil, fmt.Sprintf("unsupported field type %q", f.Type)
}

// coerceInteger accepts every Go integer width a decoder may produce, plus
// floats with no fractional part. JSON decoding yields float64 for all
// numbers, so "crew_size: 5" arrives as 5.0 and must still count as an
// integer.
func coerceInteger(raw any) (any, string) {
	switch v := raw.(type) {
	case int:
		return int64(v), ""
	case int8:
		return int64(v), ""
	case int16:
		return int64(v), ""
	case int32:
		return int64(v), ""
	case int64:
		return v, ""
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, fmt.Sprintf("integer %d overflows the supported range", v)
		}
		return int64(v), ""
	case uint8:
		return int64(v), ""
	case uint16:
		return int64(v), ""
	case uint32:
		return int64(v), ""
	case uint64:
		// yaml.v3 decodes integer literals above MaxInt64 as uint64; a
		// plain int64(v) conversion would flip the sign.
		if v > math.MaxInt64 {
			return nil, fmt.Sprintf("integer %d overflows the supported range", v)
		}
		return int64(v), ""
	case float32:
		if float32(int64(v)) == v {
			return int64(v), ""
		}
		return nil, fmt.Sprintf("expected an integer, got fractional number %v", v)
	case float64:
		if float64(int64(v)) == v {
			return int64(v), ""
		}
		return nil, fmt.Sprintf("expected an integer, got fractional number %v", v)
	}
	return nil, fmt.Sprintf("expected an integer, got %s", typeName(raw))
}

func coerceFloat(raw any) (any, string) {
	switch v := raw.(type) {
	case float64:
		return v, ""
	case float32:
		return float64(v), ""
	case int:
		return float64(v), ""
	case int8:
		return float64(v), ""
	case int16:
		return float64(v), ""
	case int32:
		return float64(v), ""
	case int64:
		return float64(v), ""
	case uint:
		return float64(v), ""
	case uint8:
		return float64(v), ""
	case uint16:
		return float64(v), ""
	case uint32:
		return float64(v), ""
	case uint64:
		return float64(v), ""
	}
	return nil, fmt.Sprintf("expected a number, got %s", typeName(raw))
}

func coerceTimestamp(raw any) (any, string) {
	switch v := raw.(type) {
	case time.Time:
		return v, ""
	case string:
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, ""
			}
		}
		return nil, fmt.Sprintf("cannot parse %q as a timestamp", v)
	}
	return nil, fmt.Sprintf("expected a timestamp string, got %s", typeName(raw))
}

// charCount counts characters after NFC normalization, so a combining
// sequence and its precomposed form measure the same length.
func charCount(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}

// typeName names a raw value's type for type_error messages.
func typeName(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", raw)
	}
}
