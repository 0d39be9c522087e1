package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-exampledump/pkg/schema"
)

// converter maps kin-openapi schemas onto schema definitions. Definitions are
// cached by JSON pointer so every $ref to the same component shares one
// *schema.Definition and property cycles terminate. Cycles that run only
// through allOf or oneOf/anyOf cannot be represented and are recorded in err.
type converter struct {
	order orderIndex
	defs  map[string]*schema.Definition
	err   error
}

// schemaSet tracks the schemas on the current allOf or variant walk.
type schemaSet map[*openapi3.Schema]bool

func newConverter(order orderIndex) *converter {
	return &converter{
		order: order,
		defs:  make(map[string]*schema.Definition),
	}
}

// cycle records the first composition cycle found during conversion.
func (c *converter) cycle(ptr string) {
	if c.err != nil {
		return
	}
	if ptr == "" {
		ptr = "<inline schema>"
	}
	c.err = fmt.Errorf("%w: composition cycle at %s", schema.ErrSchemaResolution, ptr)
}

// definition converts an object-shaped schema. ok is false for anything that
// is not an object (arrays, scalars, unresolved references).
func (c *converter) definition(ref *openapi3.SchemaRef, ptr, name string) (*schema.Definition, bool) {
	return c.definitionVia(ref, ptr, name, nil)
}

func (c *converter) definitionVia(ref *openapi3.SchemaRef, ptr, name string, hops schemaSet) (*schema.Definition, bool) {
	if ref == nil || ref.Value == nil {
		return nil, false
	}
	ptr = localPointer(ref.Ref, ptr)
	if def, ok := c.defs[ptr]; ok && ptr != "" {
		return def, true
	}

	src := ref.Value
	if variant, variantPtr := firstVariant(src, ptr); variant != nil && !c.hasFields(src, ptr) {
		if hops == nil {
			hops = make(schemaSet)
		}
		if hops[src] {
			c.cycle(ptr)
			return nil, false
		}
		hops[src] = true
		return c.definitionVia(variant, variantPtr, name, hops)
	}
	if !c.isObject(src, ptr) {
		return nil, false
	}

	if refName := componentName(ref.Ref); refName != "" {
		name = refName
	}
	def := &schema.Definition{Name: name}
	if ptr != "" {
		c.defs[ptr] = def
	}
	def.Fields = c.fields(src, ptr, make(schemaSet))
	return def, true
}

// body converts a request or response body. Arrays of objects yield the item
// definition with many set.
func (c *converter) body(ref *openapi3.SchemaRef, ptr, name string) (def *schema.Definition, many, ok bool) {
	if def, ok := c.definition(ref, ptr, name); ok {
		return def, false, true
	}
	if ref == nil || ref.Value == nil {
		return nil, false, false
	}
	src := ref.Value
	if primaryType(src) != openapi3.TypeArray || src.Items == nil {
		return nil, false, false
	}
	def, ok = c.definition(src.Items, join(localPointer(ref.Ref, ptr), "items"), name)
	return def, true, ok
}

// fields collects allOf parts in order, then the schema's own properties.
// Later declarations replace earlier ones with the same name in place.
func (c *converter) fields(src *openapi3.Schema, ptr string, open schemaSet) []schema.Field {
	if open[src] {
		c.cycle(ptr)
		return nil
	}
	open[src] = true
	defer delete(open, src)

	var out []schema.Field
	position := make(map[string]int)
	add := func(field schema.Field) {
		if idx, exists := position[field.Name]; exists {
			out[idx] = field
			return
		}
		position[field.Name] = len(out)
		out = append(out, field)
	}

	for i, part := range src.AllOf {
		if part == nil || part.Value == nil {
			continue
		}
		partPtr := localPointer(part.Ref, join(ptr, "allOf", strconv.Itoa(i)))
		for _, field := range c.fields(part.Value, partPtr, open) {
			add(field)
		}
	}

	for _, name := range c.order.properties(ptr, src.Properties) {
		add(c.field(name, src.Properties[name], join(ptr, "properties", name)))
	}
	return out
}

func (c *converter) field(name string, ref *openapi3.SchemaRef, ptr string) schema.Field {
	field := schema.Field{Name: name}
	if ref == nil || ref.Value == nil {
		// Unresolved references surface as resolution errors at generation.
		return field
	}
	src := ref.Value
	field.ReadOnly = src.ReadOnly
	field.WriteOnly = src.WriteOnly
	field.Description = src.Description
	field.Kind = c.kind(ref, ptr, name)
	return field
}

func (c *converter) kind(ref *openapi3.SchemaRef, ptr, hint string) schema.Kind {
	return c.kindVia(ref, ptr, hint, nil)
}

func (c *converter) kindVia(ref *openapi3.SchemaRef, ptr, hint string, hops schemaSet) schema.Kind {
	if ref == nil || ref.Value == nil {
		return nil
	}
	ptr = localPointer(ref.Ref, ptr)
	src := ref.Value

	// hops holds the schemas reached through variants and list items since the
	// last object definition. Only an object definition can close a cycle.
	if hops == nil {
		hops = make(schemaSet)
	}
	if hops[src] {
		c.cycle(ptr)
		return nil
	}
	hops[src] = true

	if variant, variantPtr := firstVariant(src, ptr); variant != nil && primaryType(src) == "" && !c.hasFields(src, ptr) {
		return c.kindVia(variant, variantPtr, hint, hops)
	}

	typ := primaryType(src)
	switch {
	case typ == openapi3.TypeArray || (typ == "" && src.Items != nil):
		if src.Items == nil {
			return schema.List{Item: schema.Scalar{Type: schema.TypeAny}}
		}
		itemPtr := join(ptr, "items")
		if def, ok := c.definition(src.Items, itemPtr, hint); ok {
			return schema.NestedMany{Definition: def}
		}
		return schema.List{Item: c.kindVia(src.Items, itemPtr, hint, hops)}
	case c.isObject(src, ptr):
		def, _ := c.definition(ref, ptr, hint)
		return schema.Nested{Definition: def}
	case typ == "":
		return schema.Scalar{Type: schema.TypeAny}
	default:
		return schema.Scalar{Type: typ, Format: src.Format}
	}
}

// firstVariant picks the first oneOf/anyOf alternative.
func firstVariant(src *openapi3.Schema, ptr string) (*openapi3.SchemaRef, string) {
	if len(src.OneOf) > 0 && src.OneOf[0] != nil {
		return src.OneOf[0], join(ptr, "oneOf", "0")
	}
	if len(src.AnyOf) > 0 && src.AnyOf[0] != nil {
		return src.AnyOf[0], join(ptr, "anyOf", "0")
	}
	return nil, ""
}

// primaryType returns the first non-null declared type. A schema declaring
// only null yields "null".
func primaryType(src *openapi3.Schema) string {
	if src.Type == nil {
		return ""
	}
	values := src.Type.Slice()
	for _, value := range values {
		if value != openapi3.TypeNull {
			return value
		}
	}
	if len(values) > 0 {
		return schema.TypeNull
	}
	return ""
}

func (c *converter) isObject(src *openapi3.Schema, ptr string) bool {
	return primaryType(src) == openapi3.TypeObject || c.hasFields(src, ptr)
}

func (c *converter) hasFields(src *openapi3.Schema, ptr string) bool {
	return c.declaresFields(src, ptr, make(schemaSet))
}

// declaresFields reports whether src or one of its allOf parts carries
// properties. Shared parts reached twice through different branches are
// fine; a part that contains itself is a cycle.
func (c *converter) declaresFields(src *openapi3.Schema, ptr string, open schemaSet) bool {
	if len(src.Properties) > 0 {
		return true
	}
	if open[src] {
		c.cycle(ptr)
		return false
	}
	open[src] = true
	defer delete(open, src)

	for i, part := range src.AllOf {
		if part == nil || part.Value == nil {
			continue
		}
		if primaryType(part.Value) == openapi3.TypeObject {
			return true
		}
		partPtr := localPointer(part.Ref, join(ptr, "allOf", strconv.Itoa(i)))
		if c.declaresFields(part.Value, partPtr, open) {
			return true
		}
	}
	return false
}

func componentName(ref string) string {
	if !strings.HasPrefix(ref, componentsPointer+"/") {
		return ""
	}
	name := strings.TrimPrefix(ref, componentsPointer+"/")
	name = strings.ReplaceAll(name, "~1", "/")
	return strings.ReplaceAll(name, "~0", "~")
}
