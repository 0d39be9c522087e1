package examples

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-exampledump/pkg/schema"
)

// Generator turns schema definitions into example objects. A Generator is
// immutable after construction and safe for concurrent use.
type Generator struct {
	base     TypeMap
	extend   map[TypeKey]any
	exclude  map[string]struct{}
	renew    bool
	maxDepth int
	logger   *slog.Logger
	now      func() time.Time
	newID    func() uuid.UUID
}

// New constructs a Generator backed by DefaultTypeMap unless WithTypeMap says
// otherwise.
func New(options ...Option) *Generator {
	g := &Generator{
		base:     DefaultTypeMap(),
		maxDepth: DefaultMaxDepth,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		newID:    uuid.New,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

// Generate is shorthand for New(options...).Generate(def).
func Generate(def *schema.Definition, options ...Option) (*Object, error) {
	return New(options...).Generate(def)
}

// TypeMap returns the effective map used by Generate: the base map with the
// configured extensions overlaid.
func (g *Generator) TypeMap() TypeMap {
	if len(g.extend) == 0 {
		return g.base
	}
	return g.base.Extend(g.extend)
}

// Generate walks def in declaration order and returns the example object.
// Nothing is returned on failure; the error wraps one of ErrInvalidSchema,
// ErrSchemaResolution, ErrLookup or ErrRecursionLimit.
func (g *Generator) Generate(def *schema.Definition) (*Object, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	run := &generation{
		gen:     g,
		typeMap: g.TypeMap(),
	}
	if g.renew {
		run.snapshot = Snapshot{Now: g.now(), ID: g.newID()}
	}

	return run.object(def, "", 0)
}

// generation carries the call-scoped state of one Generate call.
type generation struct {
	gen      *Generator
	typeMap  TypeMap
	snapshot Snapshot
}

func (r *generation) object(def *schema.Definition, path string, depth int) (*Object, error) {
	if depth > r.gen.maxDepth {
		return nil, fieldError(path, fmt.Errorf("%w: depth %d exceeds %d at %s", ErrRecursionLimit, depth, r.gen.maxDepth, def.Name))
	}
	if depth > 0 {
		if err := def.Validate(); err != nil {
			return nil, fieldError(path, err)
		}
	}

	out := NewObject()
	for _, field := range def.Fields {
		if _, skip := r.gen.exclude[field.Name]; skip {
			continue
		}
		if field.WriteOnly {
			continue
		}
		fieldPath := joinPath(path, field.Name)
		value, err := r.resolve(field.Kind, fieldPath, depth)
		if err != nil {
			return nil, err
		}
		out.Set(field.Name, value)
	}

	r.gen.logger.Debug("examples: generated definition",
		"definition", def.Name,
		"path", path,
		"fields", out.Len(),
	)
	return out, nil
}

func (r *generation) resolve(kind schema.Kind, path string, depth int) (any, error) {
	if err := schema.CheckKind(kind); err != nil {
		return nil, fieldError(path, err)
	}

	switch k := kind.(type) {
	case schema.Scalar:
		return r.scalar(k, path)
	case schema.Nested:
		return r.object(k.Definition, path, depth+1)
	case schema.NestedMany:
		item, err := r.object(k.Definition, path+"[0]", depth+1)
		if err != nil {
			return nil, err
		}
		return []any{item}, nil
	case schema.List:
		item, err := r.resolve(k.Item, path+"[0]", depth)
		if err != nil {
			return nil, err
		}
		return []any{item}, nil
	default:
		return nil, fieldError(path, fmt.Errorf("%w: %T", ErrSchemaResolution, kind))
	}
}

func (r *generation) scalar(kind schema.Scalar, path string) (any, error) {
	key := TypeKey{Type: kind.Type, Format: kind.Format}
	example, matched, ok := r.typeMap.Resolve(key)
	if !ok {
		return nil, fieldError(path, fmt.Errorf("%w: %s", ErrLookup, key))
	}
	if matched == Fallback && key != Fallback {
		r.gen.logger.Warn("examples: type resolved through fallback",
			"field", path,
			"type", key.String(),
		)
	}

	return cloneValue(example.Resolve(r.gen.renew, r.snapshot)), nil
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
