package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Locations of an offending value within a request.
const (
	LocationBody  = "body"
	LocationQuery = "query"
	LocationPath  = "path"
)

// FieldError describes a single invalid field.
type FieldError struct {
	Location string `json:"loc"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"msg"`
}

func (e FieldError) String() string {
	if e.Field == "" {
		return e.Location + ": " + e.Message
	}
	return e.Location + "." + e.Field + ": " + e.Message
}

// ValidationError is returned when a request fails validation.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.String())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(location, field, message string) {
	e.Errors = append(e.Errors, FieldError{Location: location, Field: field, Message: message})
}

// errOrNil keeps callers from returning a typed nil inside a non-nil error.
func (e *ValidationError) errOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

func newValidationError(location, field, message string) *ValidationError {
	ve := &ValidationError{}
	ve.add(location, field, message)
	return ve
}

// FromDecodeError converts a JSON decoding failure of a request body into a
// ValidationError. Errors that already are validation errors pass through.
func FromDecodeError(err error) error {
	if err == nil {
		return nil
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return newValidationError(LocationBody, typeErr.Field, fmt.Sprintf("must be of type %s", jsonTypeName(typeErr.Type.String())))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return newValidationError(LocationBody, "", fmt.Sprintf("invalid JSON at offset %d", syntaxErr.Offset))
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return newValidationError(LocationBody, "", "request body is required")
	}

	return newValidationError(LocationBody, "", err.Error())
}

func jsonTypeName(goType string) string {
	switch {
	case strings.Contains(goType, "int"):
		return "integer"
	case strings.Contains(goType, "string"):
		return "string"
	case strings.HasPrefix(goType, "map"), strings.HasPrefix(goType, "schema."):
		return "object"
	default:
		return goType
	}
}
