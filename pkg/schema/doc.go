// Package schema provides declarative record schemas: ordered field
// declarations with constraint primitives, business rules as data, and a
// write-once registry of record kinds.
//
// # Overview
//
// A Schema declares everything the validation engine needs to know about a
// record kind: which fields it has, their semantic types, which constraints
// bound each field, and which business rules apply to the record as a whole.
// Schemas are pure data; evaluation lives in pkg/validate. Adding a record
// kind means writing a schema declaration, never new Go code.
//
// # Core Types
//
// Field: One record attribute
//
//	type Field struct {
//	    Name        string       // raw input key
//	    Type        FieldType    // string, integer, float, boolean, timestamp, enum, record, records
//	    Optional    bool         // absent values allowed
//	    Default     any          // applied when input omits the field
//	    Element     string       // record kind of nested fields
//	    Tags        []string     // enum tag set
//	    Constraints []Constraint // checked in order during the field phase
//	}
//
// Constraint: One declarative check
//
//	type Constraint struct {
//	    Kind ConstraintKind // range, length, size, membership
//	    Min  *float64       // lower bound, nil means unbounded
//	    Max  *float64       // upper bound, nil means unbounded
//	    Tags []string       // membership tag set
//	}
//
// Rule: One business rule, evaluated after the field phase
//
//	type Rule struct {
//	    Name    string   // stable identifier, reported on failure
//	    Kind    RuleKind // prefix, requires_flag, min_when_equals, ...
//	    Field   string   // subject field
//	    Message string   // human-readable failure message
//	    ...              // kind-specific parameters
//	}
//
// # Registry
//
// A Registry maps record kinds to compiled schemas. Registration is
// write-once: defining the same kind twice fails with
// SCHEMA_ALREADY_DEFINED, and a registered schema is never mutated.
// Lookups of unknown kinds fail with UNKNOWN_RECORD_KIND and, when a
// registered kind is within edit distance, include a did-you-mean
// suggestion.
//
// # Usage
//
// Builtin registry with the embedded catalog:
//
//	reg, err := schema.Builtin()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s, err := reg.Lookup("mission")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Custom registry:
//
//	reg := schema.NewRegistry()
//	err := reg.Define(&schema.Schema{
//	    Kind: "probe",
//	    Fields: []schema.Field{
//	        {Name: "probe_id", Type: schema.TypeString, Constraints: []schema.Constraint{
//	            {Kind: schema.ConstraintLength, Min: ptr(3.0), Max: ptr(10.0)},
//	        }},
//	    },
//	})
//
// Catalog from a YAML document:
//
//	reg, err := schema.LoadCatalog(data)
//
// # Compilation
//
// Define validates the declaration before registering it: field types must
// be supported, enum fields need tag sets, nested fields need resolvable
// element kinds, constraint kinds must match their field's type, and rule
// parameters must be coherent (condition fields exist, tags are members of
// the condition's tag set, ratios fall in (0, 1]). Incoherent declarations
// fail with INVALID_SCHEMA. Enum fields receive a synthesized membership
// constraint from their tag set.
//
// # Data Source
//
// The builtin catalog is embedded at build time from:
//   - schema/data/schemas-v1.yaml
//
// It is parsed once and cached for all subsequent requests (singleton
// pattern).
//
// # Integration
//
// The schema package is used by:
//   - pkg/validate - field phase and rule runner
//   - pkg/cli - schema list/show commands, catalog loading
package schema
