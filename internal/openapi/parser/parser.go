package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-exampledump/pkg/openapi"
	"github.com/goliatone/go-exampledump/pkg/schema"
)

const componentsPointer = "#/components/schemas"

// preferredMediaTypes are tried in order before any other content type.
var preferredMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Load parses the raw document with kin-openapi, validating it when reference
// resolution is enabled.
func (p *Parser) Load(ctx context.Context, doc pkgopenapi.Document) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = p.options.ResolveReferences

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}

	if (spec.Paths == nil || spec.Paths.Len() == 0) && !p.options.AllowPartialDocuments {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}

	if p.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	return spec, nil
}

// Parse converts component schemas and operation bodies into definitions.
func (p *Parser) Parse(ctx context.Context, doc pkgopenapi.Document) (pkgopenapi.Catalog, error) {
	spec, err := p.Load(ctx, doc)
	if err != nil {
		return pkgopenapi.Catalog{}, err
	}

	conv := newConverter(buildOrderIndex(doc.Raw()))
	catalog := pkgopenapi.Catalog{
		Schemas:    make(map[string]*schema.Definition),
		Operations: make(map[string]pkgopenapi.Operation),
	}

	if spec.Components != nil && len(spec.Components.Schemas) > 0 {
		names := make([]string, 0, len(spec.Components.Schemas))
		for name := range spec.Components.Schemas {
			names = append(names, name)
		}
		for _, name := range conv.order.order(componentsPointer, names) {
			ref := spec.Components.Schemas[name]
			def, ok := conv.definition(ref, join(componentsPointer, name), name)
			if !ok {
				continue
			}
			catalog.Schemas[name] = def
			catalog.Names = append(catalog.Names, name)
		}
	}

	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, operation := range item.Operations() {
				if err := ctx.Err(); err != nil {
					return pkgopenapi.Catalog{}, err
				}
				if operation == nil {
					continue
				}
				op := conv.operation(method, path, operation)
				catalog.Operations[op.ID] = op
			}
		}
	}

	if conv.err != nil {
		return pkgopenapi.Catalog{}, fmt.Errorf("openapi parser: %w", conv.err)
	}
	if len(catalog.Schemas) == 0 && len(catalog.Operations) == 0 && !p.options.AllowPartialDocuments {
		return pkgopenapi.Catalog{}, errors.New("openapi parser: no schemas or operations extracted")
	}

	return catalog, nil
}

func (c *converter) operation(method, path string, operation *openapi3.Operation) pkgopenapi.Operation {
	opPtr := join("#", "paths", path, strings.ToLower(method))
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}

	op := pkgopenapi.Operation{
		ID:          id,
		Method:      strings.ToUpper(method),
		Path:        path,
		Summary:     operation.Summary,
		Description: operation.Description,
		Responses:   make(map[string]*schema.Definition),
		Lists:       make(map[string]bool),
	}

	if body := operation.RequestBody; body != nil && body.Value != nil {
		ptr := localPointer(body.Ref, join(opPtr, "requestBody"))
		if ref, mediaPtr := pickContent(body.Value.Content, ptr); ref != nil {
			if def, many, ok := c.body(ref, mediaPtr, id+"Request"); ok {
				op.Request = def
				op.Lists[""] = many
			}
		}
	}

	if operation.Responses != nil {
		for status, response := range operation.Responses.Map() {
			if response == nil || response.Value == nil {
				continue
			}
			ptr := localPointer(response.Ref, join(opPtr, "responses", status))
			ref, mediaPtr := pickContent(response.Value.Content, ptr)
			if ref == nil {
				continue
			}
			if def, many, ok := c.body(ref, mediaPtr, id+"Response"+status); ok {
				op.Responses[status] = def
				op.Lists[status] = many
			}
		}
	}
	return op
}

// pickContent selects the schema of the preferred media type and returns it
// with its JSON pointer.
func pickContent(content openapi3.Content, ptr string) (*openapi3.SchemaRef, string) {
	if len(content) == 0 {
		return nil, ""
	}
	for _, mediaType := range preferredMediaTypes {
		if mt, ok := content[mediaType]; ok && mt != nil && mt.Schema != nil {
			return mt.Schema, join(ptr, "content", mediaType, "schema")
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema, join(ptr, "content", key, "schema")
		}
	}
	return nil, ""
}

// localPointer prefers the target of a local $ref over the inline location.
func localPointer(ref, fallback string) string {
	switch {
	case ref == "":
		return fallback
	case strings.HasPrefix(ref, "#/"):
		return ref
	default:
		return ""
	}
}
