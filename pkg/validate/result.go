/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validate

import (
	"errors"

	"github.com/google/uuid"

	"github.com/NVIDIA/fleet-records/pkg/header"
)

const (
	// APIVersion is the API version for validation result documents.
	APIVersion = header.APIDomain + "/v1alpha1"

	// Kind is the kind for validation result documents.
	Kind = "ValidationResult"
)

// Status is the overall outcome of one validation.
type Status string

const (
	// StatusValid means the record passed both phases.
	StatusValid Status = "valid"
	// StatusInvalid means the report carries at least one violation.
	StatusInvalid Status = "invalid"
)

// ResultDocument is the serializable envelope around one validation
// outcome. The engine itself stays pure; the report identifier and
// header timestamps live only here, so two validations of the same input
// differ in envelope metadata but never in status, violations, or record.
type ResultDocument struct {
	header.Header `json:",inline" yaml:",inline"`

	ReportID   string `json:"reportId" yaml:"reportId"`
	RecordKind string `json:"recordKind" yaml:"recordKind"`

	// Source names the input the raw data came from, when known.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	Status     Status         `json:"status" yaml:"status"`
	Violations []Violation    `json:"violations,omitempty" yaml:"violations,omitempty"`
	Record     map[string]any `json:"record,omitempty" yaml:"record,omitempty"`
}

// NewResultDocument builds the envelope for one validation outcome. rec
// and err are the two results of Validator.Validate; a *Report error
// becomes an invalid document, any other error stays an error.
func NewResultDocument(version, kind, source string, rec *Record, err error) (*ResultDocument, error) {
	doc := &ResultDocument{
		ReportID:   uuid.NewString(),
		RecordKind: kind,
		Source:     source,
	}
	doc.Init(Kind, APIVersion, version)

	switch {
	case err == nil:
		doc.Status = StatusValid
		doc.Record = rec.Export()
	default:
		var report *Report
		if !errors.As(err, &report) {
			return nil, err
		}
		doc.Status = StatusInvalid
		doc.Violations = report.Violations
	}

	return doc, nil
}
