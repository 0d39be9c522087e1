// Package structschema derives schema definitions from Go struct types, so a
// struct can stand in for a serializer declaration.
//
//	type Car struct {
//		Name  string `json:"car_name"`
//		Price int    `json:"car_price"`
//	}
//	type Person struct {
//		Name     string `json:"name"`
//		Password string `json:"password" writeonly:"true"`
//		Cars     []Car  `json:"cars"`
//	}
//	def, err := structschema.FromStruct(Person{})
package structschema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-exampledump/pkg/schema"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	uuidType     = reflect.TypeOf(uuid.UUID{})
)

// FromStruct builds a definition from the dynamic type of v, which must be a
// struct or a pointer to one.
func FromStruct(v any) (*schema.Definition, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil, fmt.Errorf("%w: structschema: cannot build a definition from nil", schema.ErrInvalidSchema)
	}
	return FromType(t)
}

// FromType builds a definition from a struct type. Pointer types are
// dereferenced. Self-referencing types share one definition per type.
func FromType(t reflect.Type) (*schema.Definition, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: structschema: type is nil", schema.ErrInvalidSchema)
	}
	t = indirect(t)
	if t.Kind() != reflect.Struct || isLeaf(t) {
		return nil, fmt.Errorf("%w: structschema: %s is not a struct", schema.ErrInvalidSchema, t)
	}

	r := &reflector{defs: make(map[reflect.Type]*schema.Definition)}
	return r.definition(t, t.Name())
}

type reflector struct {
	defs map[reflect.Type]*schema.Definition
}

func (r *reflector) definition(t reflect.Type, name string) (*schema.Definition, error) {
	if def, ok := r.defs[t]; ok {
		return def, nil
	}
	if t.Name() != "" {
		name = t.Name()
	}
	def := &schema.Definition{Name: name}
	r.defs[t] = def

	fields, err := r.fields(t, name, 0, map[reflect.Type]bool{t: true})
	if err != nil {
		return nil, err
	}
	def.Fields = dominant(fields)
	return def, nil
}

type flatField struct {
	schema.Field
	depth  int
	tagged bool
}

// fields walks exported fields in declaration order, inlining embedded
// structs. Name conflicts are left for dominant to settle.
func (r *reflector) fields(t reflect.Type, owner string, depth int, visiting map[reflect.Type]bool) ([]flatField, error) {
	var out []flatField
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, skip := jsonName(sf)
		if skip {
			continue
		}

		if sf.Anonymous && !hasJSONName(sf) {
			embedded := indirect(sf.Type)
			if embedded.Kind() == reflect.Struct && !isLeaf(embedded) {
				if visiting[embedded] {
					continue
				}
				visiting[embedded] = true
				inner, err := r.fields(embedded, owner, depth+1, visiting)
				delete(visiting, embedded)
				if err != nil {
					return nil, err
				}
				out = append(out, inner...)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}

		kind, err := r.kind(sf.Type, name)
		if err != nil {
			return nil, fmt.Errorf("structschema: %s.%s: %w", owner, sf.Name, err)
		}
		field := schema.Field{
			Name:        name,
			Kind:        applyFormat(kind, sf.Tag.Get("format")),
			WriteOnly:   boolTag(sf, "writeonly"),
			ReadOnly:    boolTag(sf, "readonly"),
			Description: sf.Tag.Get("description"),
		}
		out = append(out, flatField{Field: field, depth: depth, tagged: hasJSONName(sf)})
	}
	return out, nil
}

// dominant resolves duplicate JSON names the way encoding/json does: the
// shallowest field wins, a tie is broken by a lone tagged field, and any other
// tie drops the name entirely. Survivors keep declaration order.
func dominant(fields []flatField) []schema.Field {
	type tally struct {
		depth  int
		count  int
		tagged int
	}
	names := make(map[string]*tally, len(fields))
	for _, f := range fields {
		t, ok := names[f.Name]
		switch {
		case !ok || f.depth < t.depth:
			t = &tally{depth: f.depth}
			names[f.Name] = t
		case f.depth > t.depth:
			continue
		}
		t.count++
		if f.tagged {
			t.tagged++
		}
	}

	out := make([]schema.Field, 0, len(names))
	for _, f := range fields {
		t := names[f.Name]
		if f.depth != t.depth {
			continue
		}
		if t.count == 1 || (t.tagged == 1 && f.tagged) {
			out = append(out, f.Field)
		}
	}
	return out
}

func (r *reflector) kind(t reflect.Type, hint string) (schema.Kind, error) {
	t = indirect(t)

	switch t {
	case timeType:
		return schema.Scalar{Type: schema.TypeString, Format: schema.FormatDateTime}, nil
	case durationType:
		return schema.Scalar{Type: schema.TypeString, Format: schema.FormatDuration}, nil
	case uuidType:
		return schema.Scalar{Type: schema.TypeString, Format: schema.FormatUUID}, nil
	}

	switch t.Kind() {
	case reflect.String:
		return schema.Scalar{Type: schema.TypeString}, nil
	case reflect.Bool:
		return schema.Scalar{Type: schema.TypeBoolean}, nil
	case reflect.Int32, reflect.Uint32:
		return schema.Scalar{Type: schema.TypeInteger, Format: schema.FormatInt32}, nil
	case reflect.Int64, reflect.Uint64:
		return schema.Scalar{Type: schema.TypeInteger, Format: schema.FormatInt64}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uintptr:
		return schema.Scalar{Type: schema.TypeInteger}, nil
	case reflect.Float32:
		return schema.Scalar{Type: schema.TypeNumber, Format: schema.FormatFloat}, nil
	case reflect.Float64:
		return schema.Scalar{Type: schema.TypeNumber, Format: schema.FormatDouble}, nil
	case reflect.Map:
		return schema.Scalar{Type: schema.TypeObject}, nil
	case reflect.Interface:
		return schema.Scalar{Type: schema.TypeAny}, nil
	case reflect.Struct:
		def, err := r.definition(t, hint)
		if err != nil {
			return nil, err
		}
		return schema.Nested{Definition: def}, nil
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return schema.Scalar{Type: schema.TypeString, Format: schema.FormatBinary}, nil
		}
		elem := indirect(t.Elem())
		if elem.Kind() == reflect.Struct && !isLeaf(elem) {
			def, err := r.definition(elem, hint)
			if err != nil {
				return nil, err
			}
			return schema.NestedMany{Definition: def}, nil
		}
		item, err := r.kind(elem, hint)
		if err != nil {
			return nil, err
		}
		return schema.List{Item: item}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported Go kind %s", schema.ErrSchemaResolution, t.Kind())
	}
}

// applyFormat replaces the format hint of scalar kinds, including list items.
func applyFormat(kind schema.Kind, format string) schema.Kind {
	if format == "" {
		return kind
	}
	switch k := kind.(type) {
	case schema.Scalar:
		k.Format = format
		return k
	case schema.List:
		k.Item = applyFormat(k.Item, format)
		return k
	default:
		return kind
	}
}

func jsonName(sf reflect.StructField) (string, bool) {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", true
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = sf.Name
	}
	return name, false
}

func hasJSONName(sf reflect.StructField) bool {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	return name != ""
}

func boolTag(sf reflect.StructField, key string) bool {
	value, ok := sf.Tag.Lookup(key)
	if !ok {
		return false
	}
	parsed, err := strconv.ParseBool(value)
	return err == nil && parsed
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// isLeaf reports struct types that serialise as scalars.
func isLeaf(t reflect.Type) bool {
	return t == timeType || t == uuidType
}
