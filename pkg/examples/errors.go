package examples

import (
	"errors"

	"github.com/goliatone/go-exampledump/pkg/schema"
)

var (
	// ErrInvalidSchema is returned when the input is not a usable definition.
	ErrInvalidSchema = schema.ErrInvalidSchema

	// ErrSchemaResolution is returned when a field kind cannot be classified.
	ErrSchemaResolution = schema.ErrSchemaResolution

	// ErrLookup is returned when the effective type map has neither a specific
	// nor a fallback entry for a scalar kind.
	ErrLookup = errors.New("examples: no example for type")

	// ErrRecursionLimit is returned when nested definitions exceed the
	// configured maximum depth.
	ErrRecursionLimit = errors.New("examples: recursion limit exceeded")
)

// FieldError ties a generation failure to the dotted path of the field that
// caused it. errors.Is matches the wrapped sentinel.
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return "examples: field " + e.Path + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldError(path string, err error) error {
	var existing *FieldError
	if errors.As(err, &existing) {
		return err
	}
	return &FieldError{Path: path, Err: err}
}
