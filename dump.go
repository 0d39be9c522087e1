// Package exampledump generates example payloads from schema definitions:
// hand-built definitions, Go structs and OpenAPI components.
package exampledump

import (
	"context"

	"github.com/goliatone/go-exampledump/pkg/examples"
	pkgopenapi "github.com/goliatone/go-exampledump/pkg/openapi"
	"github.com/goliatone/go-exampledump/pkg/orchestrator"
	"github.com/goliatone/go-exampledump/pkg/schema"
	"github.com/goliatone/go-exampledump/pkg/structschema"
)

// Object is the ordered example payload returned by every entry point.
type Object = examples.Object

// Request aliases orchestrator.Request for callers selecting OpenAPI targets.
type Request = orchestrator.Request

// Dumps builds one example payload for def.
//
//	obj, err := exampledump.Dumps(def,
//		examples.WithExcludeFields("password"),
//		examples.WithRenewTypeValue(true),
//	)
func Dumps(def *schema.Definition, options ...examples.Option) (*Object, error) {
	return examples.Generate(def, options...)
}

// DumpStruct derives a definition from a Go struct value and builds its
// example payload.
func DumpStruct(v any, options ...examples.Option) (*Object, error) {
	def, err := structschema.FromStruct(v)
	if err != nil {
		return nil, err
	}
	return examples.Generate(def, options...)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// DumpOpenAPI loads the OpenAPI source and builds the example for the named
// component schema.
func DumpOpenAPI(ctx context.Context, source pkgopenapi.Source, schemaName string, options ...examples.Option) (*Object, error) {
	orch := orchestrator.New(orchestrator.WithGeneratorOptions(options...))
	return orch.Generate(ctx, orchestrator.Request{
		Source: source,
		Schema: schemaName,
	})
}

// DumpOperation builds the example for an operation body. An empty status
// selects the request body. The result is an *Object, or a one-item []any
// when the body is declared as an array of objects.
func DumpOperation(ctx context.Context, source pkgopenapi.Source, operationID, status string, options ...examples.Option) (any, error) {
	orch := orchestrator.New(orchestrator.WithGeneratorOptions(options...))
	return orch.Body(ctx, orchestrator.Request{
		Source:      source,
		OperationID: operationID,
		Response:    status,
	})
}
