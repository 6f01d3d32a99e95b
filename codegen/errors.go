package codegen

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedRecordShape is returned when a record is not a struct
	// with named fields, e.g. a sum type or a struct with embedded fields.
	ErrUnsupportedRecordShape = errors.New("unsupported record shape")

	// ErrUnresolvableFieldType is returned when a field type cannot be
	// classified, e.g. a map or func type, or a malformed type expression.
	ErrUnresolvableFieldType = errors.New("unresolvable field type")

	// ErrCompositionFailure is returned when the generated method cannot be
	// composed into valid Go source for the record.
	ErrCompositionFailure = errors.New("composition failure")
)

// GenerationError is an error that occurred while generating code for a
// record. Field is empty for errors that are not specific to a field.
type GenerationError struct {
	Record GoIdentifier
	Field  GoIdentifier
	Err    error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("record %s: %v", e.Record, e.Err)
	}
	return fmt.Sprintf("record %s: field %s: %v", e.Record, e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Err
}
