/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"slices"
	"sync"

	"github.com/agnivade/levenshtein"

	cnserrors "github.com/NVIDIA/fleet-records/pkg/errors"
)

// maxSuggestDistance caps the edit distance for did-you-mean suggestions.
const maxSuggestDistance = 3

// Registry maps record kinds to their compiled schemas. Registration is
// write-once: a kind can be defined exactly once and its schema is never
// mutated afterwards. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
	kinds   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Define compiles and registers a schema. It fails with
// SCHEMA_ALREADY_DEFINED when the kind is already present and with
// INVALID_SCHEMA when the declaration is incoherent. Nested element kinds
// must already be registered, or be the schema's own kind.
func (r *Registry) Define(s *Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s == nil {
		return cnserrors.New(cnserrors.ErrCodeInvalidSchema, "schema is nil")
	}
	if _, exists := r.schemas[s.Kind]; exists {
		return cnserrors.Newf(cnserrors.ErrCodeSchemaAlreadyDefined,
			"record kind %q is already defined", s.Kind)
	}

	resolve := func(kind string) (*Schema, bool) {
		if kind == s.Kind {
			return s, true
		}
		found, ok := r.schemas[kind]
		return found, ok
	}
	if err := s.compile(resolve); err != nil {
		return err
	}

	r.schemas[s.Kind] = s
	r.kinds = append(r.kinds, s.Kind)
	return nil
}

// Lookup returns the schema for a record kind. Unknown kinds fail with
// UNKNOWN_RECORD_KIND, including a suggestion when a registered kind is
// close enough.
func (r *Registry) Lookup(kind string) (*Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.schemas[kind]; ok {
		return s, nil
	}
	if suggestion := r.suggest(kind); suggestion != "" {
		return nil, cnserrors.Newf(cnserrors.ErrCodeUnknownRecordKind,
			"record kind %q is not registered (did you mean %q?)", kind, suggestion)
	}
	return nil, cnserrors.Newf(cnserrors.ErrCodeUnknownRecordKind,
		"record kind %q is not registered", kind)
}

// Kinds returns the registered record kinds in definition order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.kinds)
}

// suggest returns the registered kind closest to the given name, or ""
// when nothing is within the suggestion distance. Callers hold the lock.
func (r *Registry) suggest(kind string) string {
	best := ""
	bestDistance := maxSuggestDistance + 1
	for _, candidate := range r.kinds {
		d := levenshtein.ComputeDistance(kind, candidate)
		if d < bestDistance {
			best = candidate
			bestDistance = d
		}
	}
	return best
}
