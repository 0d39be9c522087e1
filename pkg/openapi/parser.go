package openapi

import (
	"context"
	"sort"

	"github.com/goliatone/go-exampledump/pkg/schema"
)

// Parser turns an OpenAPI document into a Catalog of schema definitions.
type Parser interface {
	Parse(ctx context.Context, doc Document) (Catalog, error)
}

// Catalog holds the definitions extracted from one document.
type Catalog struct {
	// Schemas maps component schema names to definitions. Only object-shaped
	// components are included.
	Schemas map[string]*schema.Definition

	// Names lists component names in document order.
	Names []string

	// Operations maps operation IDs (or "method:path" when absent) to their
	// body definitions.
	Operations map[string]Operation
}

// Schema looks up a component definition by name.
func (c Catalog) Schema(name string) (*schema.Definition, bool) {
	def, ok := c.Schemas[name]
	return def, ok && def != nil
}

// Operation looks up an operation by ID.
func (c Catalog) Operation(id string) (Operation, bool) {
	op, ok := c.Operations[id]
	return op, ok
}

// OperationIDs returns the operation identifiers sorted alphabetically.
func (c Catalog) OperationIDs() []string {
	if len(c.Operations) == 0 {
		return nil
	}
	ids := make([]string, 0, len(c.Operations))
	for id := range c.Operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Operation carries the object-shaped request and response bodies of one
// OpenAPI operation. A body declared as an array of objects is stored as its
// item definition and flagged in Lists.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	Request     *schema.Definition
	Responses   map[string]*schema.Definition

	// Lists marks array bodies, keyed by status code. The request body uses
	// the empty key.
	Lists map[string]bool
}

// Response returns the body definition registered for a status code.
func (op Operation) Response(code string) (*schema.Definition, bool) {
	def, ok := op.Responses[code]
	return def, ok && def != nil
}

// IsList reports whether the body for code (or the request body when code is
// empty) is an array of objects.
func (op Operation) IsList(code string) bool {
	return op.Lists[code]
}

// ParserOptions exposes parser toggles.
type ParserOptions struct {
	// ResolveReferences validates the document (which also resolves $ref
	// pointers) before conversion. Defaults to true.
	ResolveReferences bool

	// AllowPartialDocuments accepts component-only documents without paths.
	// Defaults to true since components are the usual target.
	AllowPartialDocuments bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithReferenceResolution toggles document validation.
func WithReferenceResolution(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ResolveReferences = enabled
	}
}

// WithPartialDocuments toggles support for documents without paths.
func WithPartialDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowPartialDocuments = enabled
	}
}

// NewParserOptions applies ParserOption functions over the defaults.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		ResolveReferences:     true,
		AllowPartialDocuments: true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
