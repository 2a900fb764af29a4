/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package errors

import "fmt"

// ErrorCode classifies an error for programmatic handling.
type ErrorCode string

// Error codes, closed set.
const (
	// ErrCodeUnknownRecordKind indicates a record kind that was never
	// registered with the schema registry.
	ErrCodeUnknownRecordKind ErrorCode = "UNKNOWN_RECORD_KIND"

	// ErrCodeSchemaAlreadyDefined indicates an attempt to redefine a
	// record kind. Schemas are write-once.
	ErrCodeSchemaAlreadyDefined ErrorCode = "SCHEMA_ALREADY_DEFINED"

	// ErrCodeInvalidSchema indicates a schema document that failed
	// compilation (unknown field type, duplicate field, bad bounds, ...).
	ErrCodeInvalidSchema ErrorCode = "INVALID_SCHEMA"

	// ErrCodeInvalidRequest indicates malformed caller input outside of
	// record validation itself (bad file, bad flag value).
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// StructuredError is an error with a machine-readable code.
// Callers use errors.As to recover the code.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error, if any.
func (e *StructuredError) Unwrap() error {
	return e.Err
}

// New creates a StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message}
}

// Newf creates a StructuredError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *StructuredError {
	return &StructuredError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a StructuredError wrapping an underlying error.
func Wrap(code ErrorCode, message string, err error) *StructuredError {
	return &StructuredError{Code: code, Message: message, Err: err}
}
