package openapi

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-exampledump/pkg/examples"
)

// Annotator writes generated examples into an OpenAPI document and returns
// the re-serialised document.
type Annotator interface {
	Annotate(ctx context.Context, doc Document) ([]byte, error)
}

// AnnotatorOptions configures an Annotator.
type AnnotatorOptions struct {
	// Parser builds the definitions the examples are generated from.
	Parser Parser

	// Generator produces the example payloads.
	Generator *examples.Generator

	// Overwrite replaces examples already present in the document.
	Overwrite bool

	// Schemas restricts annotation to the named components. Empty means all.
	Schemas []string

	// Logger receives warnings about components that could not be annotated.
	Logger *slog.Logger
}

// AnnotatorOption mutates AnnotatorOptions during construction.
type AnnotatorOption func(*AnnotatorOptions)

// WithAnnotationParser sets the parser used to build definitions.
func WithAnnotationParser(parser Parser) AnnotatorOption {
	return func(opts *AnnotatorOptions) {
		opts.Parser = parser
	}
}

// WithAnnotationGenerator sets the generator used for examples.
func WithAnnotationGenerator(gen *examples.Generator) AnnotatorOption {
	return func(opts *AnnotatorOptions) {
		opts.Generator = gen
	}
}

// WithOverwrite replaces existing examples when enabled.
func WithOverwrite(enabled bool) AnnotatorOption {
	return func(opts *AnnotatorOptions) {
		opts.Overwrite = enabled
	}
}

// WithSchemas restricts annotation to the named components.
func WithSchemas(names ...string) AnnotatorOption {
	return func(opts *AnnotatorOptions) {
		opts.Schemas = append(opts.Schemas, names...)
	}
}

// WithAnnotationLogger sets the logger for skipped components.
func WithAnnotationLogger(logger *slog.Logger) AnnotatorOption {
	return func(opts *AnnotatorOptions) {
		opts.Logger = logger
	}
}

// NewAnnotatorOptions applies AnnotatorOption functions.
func NewAnnotatorOptions(options ...AnnotatorOption) AnnotatorOptions {
	cfg := AnnotatorOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
