package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cnserrors "github.com/NVIDIA/fleet-records/pkg/errors"
)

func f64(v float64) *float64 { return &v }

func probeSchema() *Schema {
	return &Schema{
		Kind: "probe",
		Fields: []Field{
			{Name: "probe_id", Type: TypeString, Constraints: []Constraint{
				{Kind: ConstraintLength, Min: f64(3), Max: f64(10)},
			}},
			{Name: "status", Type: TypeEnum, Tags: []string{"idle", "active", "lost"}},
			{Name: "battery", Type: TypeFloat, Constraints: []Constraint{
				{Kind: ConstraintRange, Min: f64(0), Max: f64(100)},
			}},
		},
	}
}

func TestRegistry_DefineAndLookup(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Define(probeSchema()))

	s, err := reg.Lookup("probe")
	require.NoError(t, err)
	assert.Equal(t, "probe", s.Kind)

	field, ok := s.Field("battery")
	require.True(t, ok)
	assert.Equal(t, TypeFloat, field.Type)

	assert.Equal(t, []string{"probe_id", "status", "battery"}, s.FieldNames())
}

func TestRegistry_DefineTwiceFails(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Define(probeSchema()))

	err := reg.Define(probeSchema())
	require.Error(t, err)

	var se *cnserrors.StructuredError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, cnserrors.ErrCodeSchemaAlreadyDefined, se.Code)

	// The original schema stays registered and untouched.
	s, lookupErr := reg.Lookup("probe")
	require.NoError(t, lookupErr)
	assert.Len(t, s.Fields, 3)
}

func TestRegistry_LookupUnknownKindSuggests(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Define(probeSchema()))

	_, err := reg.Lookup("prob")
	require.Error(t, err)

	var se *cnserrors.StructuredError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, cnserrors.ErrCodeUnknownRecordKind, se.Code)
	assert.Contains(t, err.Error(), `did you mean "probe"`)
}

func TestRegistry_LookupUnknownKindNoCloseMatch(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Define(probeSchema()))

	_, err := reg.Lookup("satellite")
	require.Error(t, err)

	var se *cnserrors.StructuredError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, cnserrors.ErrCodeUnknownRecordKind, se.Code)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestRegistry_EnumGetsSynthesizedMembership(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Define(probeSchema()))

	s, err := reg.Lookup("probe")
	require.NoError(t, err)

	field, ok := s.Field("status")
	require.True(t, ok)
	require.Len(t, field.Constraints, 1)
	assert.Equal(t, ConstraintMembership, field.Constraints[0].Kind)
	assert.Equal(t, []string{"idle", "active", "lost"}, field.Constraints[0].Tags)
}

func TestRegistry_NestedElementMustBeRegistered(t *testing.T) {
	reg := NewRegistry()

	err := reg.Define(&Schema{
		Kind: "fleet",
		Fields: []Field{
			{Name: "probes", Type: TypeRecords, Element: "probe"},
		},
	})
	require.Error(t, err)

	var se *cnserrors.StructuredError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, cnserrors.ErrCodeInvalidSchema, se.Code)

	// Registering the element kind first makes the definition valid.
	require.NoError(t, reg.Define(probeSchema()))
	require.NoError(t, reg.Define(&Schema{
		Kind: "fleet",
		Fields: []Field{
			{Name: "probes", Type: TypeRecords, Element: "probe"},
		},
	}))
}

func TestRegistry_SelfReferentialElement(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Define(&Schema{
		Kind: "node",
		Fields: []Field{
			{Name: "node_id", Type: TypeString},
			{Name: "children", Type: TypeRecords, Optional: true, Element: "node"},
		},
	}))
}

func TestRegistry_InvalidDeclarations(t *testing.T) {
	tests := []struct {
		name   string
		schema *Schema
	}{
		{
			name:   "no kind",
			schema: &Schema{Fields: []Field{{Name: "a", Type: TypeString}}},
		},
		{
			name: "duplicate field",
			schema: &Schema{Kind: "dup", Fields: []Field{
				{Name: "a", Type: TypeString},
				{Name: "a", Type: TypeInteger},
			}},
		},
		{
			name: "unknown field type",
			schema: &Schema{Kind: "bad", Fields: []Field{
				{Name: "a", Type: FieldType("decimal")},
			}},
		},
		{
			name: "enum without tags",
			schema: &Schema{Kind: "bad", Fields: []Field{
				{Name: "a", Type: TypeEnum},
			}},
		},
		{
			name: "range on string",
			schema: &Schema{Kind: "bad", Fields: []Field{
				{Name: "a", Type: TypeString, Constraints: []Constraint{
					{Kind: ConstraintRange, Min: f64(1)},
				}},
			}},
		},
		{
			name: "length on integer",
			schema: &Schema{Kind: "bad", Fields: []Field{
				{Name: "a", Type: TypeInteger, Constraints: []Constraint{
					{Kind: ConstraintLength, Max: f64(5)},
				}},
			}},
		},
		{
			name: "inverted bounds",
			schema: &Schema{Kind: "bad", Fields: []Field{
				{Name: "a", Type: TypeInteger, Constraints: []Constraint{
					{Kind: ConstraintRange, Min: f64(10), Max: f64(1)},
				}},
			}},
		},
		{
			name: "constraint without bounds",
			schema: &Schema{Kind: "bad", Fields: []Field{
				{Name: "a", Type: TypeInteger, Constraints: []Constraint{
					{Kind: ConstraintRange},
				}},
			}},
		},
		{
			name: "nested field without element",
			schema: &Schema{Kind: "bad", Fields: []Field{
				{Name: "a", Type: TypeRecords},
			}},
		},
		{
			name: "rule references unknown field",
			schema: &Schema{Kind: "bad",
				Fields: []Field{{Name: "a", Type: TypeString}},
				Rules: []Rule{
					{Name: "r", Kind: RulePrefix, Field: "missing", Prefix: "X", Message: "m"},
				},
			},
		},
		{
			name: "rule condition tag outside tag set",
			schema: &Schema{Kind: "bad",
				Fields: []Field{
					{Name: "flag", Type: TypeBoolean},
					{Name: "mode", Type: TypeEnum, Tags: []string{"on", "off"}},
				},
				Rules: []Rule{
					{Name: "r", Kind: RuleRequiresFlag, Field: "flag", When: "mode", Equals: "auto", Message: "m"},
				},
			},
		},
		{
			name: "ratio outside unit interval",
			schema: &Schema{Kind: "bad",
				Fields: []Field{
					{Name: "days", Type: TypeInteger},
					{Name: "items", Type: TypeRecords, Element: "bad"},
				},
				Rules: []Rule{
					{Name: "r", Kind: RuleRatioWhenAbove, Field: "items", ElementField: "days",
						When: "days", Above: f64(1), Min: f64(1), Ratio: f64(1.5), Message: "m"},
				},
			},
		},
		{
			name: "rule without message",
			schema: &Schema{Kind: "bad",
				Fields: []Field{{Name: "a", Type: TypeString}},
				Rules: []Rule{
					{Name: "r", Kind: RulePrefix, Field: "a", Prefix: "X"},
				},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := NewRegistry()
			err := reg.Define(tc.schema)
			require.Error(t, err)

			var se *cnserrors.StructuredError
			require.True(t, errors.As(err, &se), "expected StructuredError, got %T", err)
			assert.Equal(t, cnserrors.ErrCodeInvalidSchema, se.Code)
		})
	}
}
