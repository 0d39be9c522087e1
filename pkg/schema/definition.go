package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSchema reports an input that does not expose an ordered set of
	// named fields.
	ErrInvalidSchema = errors.New("schema: invalid schema definition")

	// ErrSchemaResolution reports a field whose kind cannot be classified as a
	// scalar, nested or list kind.
	ErrSchemaResolution = errors.New("schema: unresolvable field kind")
)

// JSON-schema type vocabulary used by Scalar kinds.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeNull    = "null"
	TypeAny     = "any"
)

// Well-known format hints.
const (
	FormatUUID     = "uuid"
	FormatDateTime = "date-time"
	FormatDate     = "date"
	FormatTime     = "time"
	FormatDuration = "duration"
	FormatBinary   = "binary"
	FormatByte     = "byte"
	FormatInt32    = "int32"
	FormatInt64    = "int64"
	FormatFloat    = "float"
	FormatDouble   = "double"
)

// Kind is the tagged variant describing a field's declared type. The set of
// implementations is closed: Scalar, Nested, NestedMany and List.
type Kind interface {
	kind()
	String() string
}

// Scalar is a leaf value identified by type and optional format hint.
type Scalar struct {
	Type   string
	Format string
}

func (Scalar) kind() {}

func (s Scalar) String() string {
	if s.Format == "" {
		return s.Type
	}
	return s.Type + "/" + s.Format
}

// Nested references a singular sub-schema.
type Nested struct {
	Definition *Definition
}

func (Nested) kind() {}

func (n Nested) String() string {
	return "nested(" + n.Definition.label() + ")"
}

// NestedMany references a sequence of sub-schema items.
type NestedMany struct {
	Definition *Definition
}

func (NestedMany) kind() {}

func (n NestedMany) String() string {
	return "many(" + n.Definition.label() + ")"
}

// List is a sequence of non-nested items, e.g. an array of strings.
type List struct {
	Item Kind
}

func (List) kind() {}

func (l List) String() string {
	if l.Item == nil {
		return "list(?)"
	}
	return "list(" + l.Item.String() + ")"
}

// Field describes one named entry of a Definition.
type Field struct {
	Name        string
	Kind        Kind
	WriteOnly   bool
	ReadOnly    bool
	Description string
}

// AsWriteOnly returns a copy of the field flagged as write-only.
func (f Field) AsWriteOnly() Field {
	f.WriteOnly = true
	return f
}

// AsReadOnly returns a copy of the field flagged as read-only.
func (f Field) AsReadOnly() Field {
	f.ReadOnly = true
	return f
}

// Definition is an ordered mapping of field name to field descriptor.
// Definitions may reference each other (including themselves) through Nested
// and NestedMany kinds.
type Definition struct {
	Name   string
	Fields []Field
}

// NewDefinition builds a Definition from fields in declaration order.
func NewDefinition(name string, fields ...Field) *Definition {
	return &Definition{Name: name, Fields: append([]Field(nil), fields...)}
}

// MustNewDefinition builds and validates a Definition, panicking on invalid
// input. Useful for fixtures.
func MustNewDefinition(name string, fields ...Field) *Definition {
	def := NewDefinition(name, fields...)
	if err := def.Validate(); err != nil {
		panic(err)
	}
	return def
}

// Field returns the named field.
func (d *Definition) Field(name string) (Field, bool) {
	if d == nil {
		return Field{}, false
	}
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Names lists field names in declaration order.
func (d *Definition) Names() []string {
	if d == nil || len(d.Fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(d.Fields))
	for _, field := range d.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Validate checks the shallow shape of the definition: it must exist and
// every field needs a unique, non-empty name. Kinds are checked lazily by
// generators since nested definitions may be cyclic.
func (d *Definition) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: definition is nil", ErrInvalidSchema)
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for idx, field := range d.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("%w: %s field %d has no name", ErrInvalidSchema, d.label(), idx)
		}
		if _, exists := seen[field.Name]; exists {
			return fmt.Errorf("%w: %s declares field %q twice", ErrInvalidSchema, d.label(), field.Name)
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}

func (d *Definition) label() string {
	if d == nil {
		return "<nil>"
	}
	if d.Name == "" {
		return "<anonymous>"
	}
	return d.Name
}

// CheckKind reports whether k is a resolvable kind. Nested definitions are
// not descended into.
func CheckKind(k Kind) error {
	switch v := k.(type) {
	case nil:
		return fmt.Errorf("%w: kind is not declared", ErrSchemaResolution)
	case Scalar:
		if strings.TrimSpace(v.Type) == "" {
			return fmt.Errorf("%w: scalar without type", ErrSchemaResolution)
		}
	case Nested:
		if v.Definition == nil {
			return fmt.Errorf("%w: nested field without definition", ErrSchemaResolution)
		}
	case NestedMany:
		if v.Definition == nil {
			return fmt.Errorf("%w: many field without definition", ErrSchemaResolution)
		}
	case List:
		if v.Item == nil {
			return fmt.Errorf("%w: list without item kind", ErrSchemaResolution)
		}
		return CheckKind(v.Item)
	}
	return nil
}
