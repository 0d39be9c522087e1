package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	internalLoader "github.com/goliatone/go-exampledump/internal/openapi/loader"
	internalParser "github.com/goliatone/go-exampledump/internal/openapi/parser"
	"github.com/goliatone/go-exampledump/pkg/examples"
	pkgopenapi "github.com/goliatone/go-exampledump/pkg/openapi"
	"github.com/goliatone/go-exampledump/pkg/schema"
)

// ErrNotFound reports a schema, operation or response that the document does
// not declare.
var ErrNotFound = errors.New("orchestrator: target not found")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithGenerator injects the example generator. Generator options are ignored
// once a generator is supplied.
func WithGenerator(gen *examples.Generator) Option {
	return func(o *Orchestrator) {
		o.generator = gen
	}
}

// WithGeneratorOptions configures the default generator.
func WithGeneratorOptions(options ...examples.Option) Option {
	return func(o *Orchestrator) {
		o.generatorOptions = append(o.generatorOptions, options...)
	}
}

// WithLogger sets the logger used for pipeline diagnostics. It is also handed
// to the default generator.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from OpenAPI document to example
// payload. Missing dependencies are initialised with the built-in
// implementations.
type Orchestrator struct {
	loader           pkgopenapi.Loader
	parser           pkgopenapi.Parser
	generator        *examples.Generator
	generatorOptions []examples.Option
	logger           *slog.Logger
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}

	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.generator == nil {
		opts := append([]examples.Option{examples.WithLogger(o.logger)}, o.generatorOptions...)
		o.generator = examples.New(opts...)
	}
	return o
}

// Request selects the definition an example is generated for. Exactly one of
// Schema or OperationID must be set.
type Request struct {
	// Source identifies where the OpenAPI document lives. Optional when Document
	// is supplied.
	Source pkgopenapi.Source

	// Document allows callers to bypass the loader when they already have the
	// payload.
	Document *pkgopenapi.Document

	// Schema names a component under #/components/schemas.
	Schema string

	// OperationID selects an operation body.
	OperationID string

	// Response picks a response status code of the operation. Empty selects
	// the request body.
	Response string
}

// Catalog loads and parses the requested document without generating
// anything. The CLI uses it to list and pick targets.
func (o *Orchestrator) Catalog(ctx context.Context, req Request) (pkgopenapi.Catalog, error) {
	if ctx == nil {
		return pkgopenapi.Catalog{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Catalog{}, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return pkgopenapi.Catalog{}, err
	}
	catalog, err := o.parser.Parse(ctx, doc)
	if err != nil {
		return pkgopenapi.Catalog{}, fmt.Errorf("orchestrator: parse document: %w", err)
	}
	o.logger.Debug("orchestrator: parsed document",
		slog.String("location", doc.Location()),
		slog.Int("schemas", len(catalog.Names)),
		slog.Int("operations", len(catalog.Operations)),
	)
	return catalog, nil
}

// Definition resolves the definition a request points at.
func (o *Orchestrator) Definition(ctx context.Context, req Request) (*schema.Definition, error) {
	if err := validateTarget(req); err != nil {
		return nil, err
	}
	catalog, err := o.Catalog(ctx, req)
	if err != nil {
		return nil, err
	}
	return Select(catalog, req)
}

// Generate executes the loader → parser → generator sequence and returns the
// example payload.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*examples.Object, error) {
	def, err := o.Definition(ctx, req)
	if err != nil {
		return nil, err
	}
	obj, err := o.generator.Generate(def)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: generate example: %w", err)
	}
	return obj, nil
}

// Body generates the payload of the targeted body. Array bodies come back as
// a one-item list, the same shape the generator uses for many-nested fields.
func (o *Orchestrator) Body(ctx context.Context, req Request) (any, error) {
	if err := validateTarget(req); err != nil {
		return nil, err
	}
	catalog, err := o.Catalog(ctx, req)
	if err != nil {
		return nil, err
	}
	def, err := Select(catalog, req)
	if err != nil {
		return nil, err
	}
	obj, err := o.generator.Generate(def)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: generate example: %w", err)
	}
	if IsList(catalog, req) {
		return []any{obj}, nil
	}
	return obj, nil
}

// IsList reports whether the operation body targeted by req is declared as
// an array of objects. Schema targets are never lists.
func IsList(catalog pkgopenapi.Catalog, req Request) bool {
	if req.OperationID == "" {
		return false
	}
	op, ok := catalog.Operation(req.OperationID)
	return ok && op.IsList(req.Response)
}

// Select picks the definition named by req out of an already parsed catalog.
// For array bodies it returns the item definition.
func Select(catalog pkgopenapi.Catalog, req Request) (*schema.Definition, error) {
	if err := validateTarget(req); err != nil {
		return nil, err
	}
	if req.Schema != "" {
		def, ok := catalog.Schema(req.Schema)
		if !ok {
			return nil, fmt.Errorf("%w: schema %q", ErrNotFound, req.Schema)
		}
		return def, nil
	}

	op, ok := catalog.Operation(req.OperationID)
	if !ok {
		return nil, fmt.Errorf("%w: operation %q", ErrNotFound, req.OperationID)
	}
	if req.Response == "" {
		if op.Request == nil {
			return nil, fmt.Errorf("%w: operation %q has no object request body", ErrNotFound, req.OperationID)
		}
		return op.Request, nil
	}
	def, ok := op.Response(req.Response)
	if !ok {
		return nil, fmt.Errorf("%w: operation %q has no object %s response", ErrNotFound, req.OperationID, req.Response)
	}
	return def, nil
}

func validateTarget(req Request) error {
	switch {
	case req.Schema == "" && req.OperationID == "":
		return errors.New("orchestrator: schema or operation id is required")
	case req.Schema != "" && req.OperationID != "":
		return errors.New("orchestrator: schema and operation id are mutually exclusive")
	case req.Schema != "" && req.Response != "":
		return errors.New("orchestrator: response requires an operation id")
	}
	return nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}
