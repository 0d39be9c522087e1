package annotate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	internalParser "github.com/goliatone/go-exampledump/internal/openapi/parser"
	"github.com/goliatone/go-exampledump/internal/yamlconv"
	"github.com/goliatone/go-exampledump/pkg/examples"
	pkgopenapi "github.com/goliatone/go-exampledump/pkg/openapi"
)

// Annotator implements pkgopenapi.Annotator by setting the example keyword on
// component schemas. Examples are patched into the document's own node tree,
// so key order, comments and untouched values survive the round trip.
type Annotator struct {
	parser    pkgopenapi.Parser
	generator *examples.Generator
	logger    *slog.Logger
	overwrite bool
	only      map[string]struct{}
}

var _ pkgopenapi.Annotator = (*Annotator)(nil)

// New constructs an Annotator, filling in the built-in parser, a default
// generator and a discarding logger where options leave them unset.
func New(options pkgopenapi.AnnotatorOptions) *Annotator {
	parser := options.Parser
	if parser == nil {
		parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	gen := options.Generator
	if gen == nil {
		gen = examples.New()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var only map[string]struct{}
	if len(options.Schemas) > 0 {
		only = make(map[string]struct{}, len(options.Schemas))
		for _, name := range options.Schemas {
			only[name] = struct{}{}
		}
	}

	return &Annotator{
		parser:    parser,
		generator: gen,
		logger:    logger,
		overwrite: options.Overwrite,
		only:      only,
	}
}

// Annotate generates an example for every selected component schema and
// returns the document in its original syntax (JSON or YAML). Components
// that nest past the generator's depth limit are skipped with a warning.
func (a *Annotator) Annotate(ctx context.Context, doc pkgopenapi.Document) ([]byte, error) {
	catalog, err := a.parser.Parse(ctx, doc)
	if err != nil {
		return nil, err
	}
	root, err := yamlconv.Decode(doc.Raw())
	if err != nil {
		return nil, fmt.Errorf("openapi annotate: %w", err)
	}
	schemas := yamlconv.Lookup(root, "components", "schemas")
	if schemas == nil {
		return nil, errors.New("openapi annotate: document has no components")
	}

	for name := range a.only {
		if _, ok := catalog.Schema(name); !ok {
			return nil, fmt.Errorf("openapi annotate: unknown component schema %q", name)
		}
	}

	for _, name := range catalog.Names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if a.only != nil {
			if _, ok := a.only[name]; !ok {
				continue
			}
		}
		node := yamlconv.Get(schemas, name)
		if node == nil || node.Kind != yaml.MappingNode || yamlconv.Get(node, "$ref") != nil {
			continue
		}
		if yamlconv.Get(node, "example") != nil && !a.overwrite {
			continue
		}

		def, _ := catalog.Schema(name)
		obj, err := a.generator.Generate(def)
		if errors.Is(err, examples.ErrRecursionLimit) {
			a.logger.Warn("openapi annotate: skipping recursive component",
				slog.String("schema", name),
				slog.String("error", err.Error()),
			)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("openapi annotate: %s: %w", name, err)
		}

		example, err := exampleNode(obj)
		if err != nil {
			return nil, fmt.Errorf("openapi annotate: %s: %w", name, err)
		}
		yamlconv.Set(node, "example", example)
	}

	if doc.IsJSON() {
		return yamlconv.ToJSON(root)
	}
	return yamlconv.Encode(root)
}

func exampleNode(obj *examples.Object) (*yaml.Node, error) {
	payload, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	return yamlconv.NodeFromJSON(payload)
}
