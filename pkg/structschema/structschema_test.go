package structschema

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-exampledump/pkg/examples"
	"github.com/goliatone/go-exampledump/pkg/schema"
)

type car struct {
	Name  string `json:"car_name"`
	Price int    `json:"car_price"`
}

type person struct {
	Name     string `json:"name"`
	Password string `json:"password" writeonly:"true"`
	Cars     []car  `json:"cars"`
	internal string
}

type audit struct {
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at" readonly:"true"`
	Name      string    `json:"name" format:"email"`
}

type account struct {
	audit
	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Timeout  time.Duration     `json:"timeout"`
	Avatar   []byte            `json:"avatar"`
	Tags     []string          `json:"tags"`
	Scores   []float64         `json:"scores"`
	Labels   map[string]string `json:"labels"`
	Extra    any               `json:"extra"`
	Owner    *person           `json:"owner,omitempty"`
	Contact  string            `json:"contact" format:"email" description:"where to reach the owner"`
	Count32  int32             `json:"count32"`
	Ignored  string            `json:"-"`
	Untagged bool
}

type node struct {
	Value    string  `json:"value"`
	Children []*node `json:"children"`
}

func TestFromStructMirrorsSerializerExample(t *testing.T) {
	def, err := FromStruct(person{})
	require.NoError(t, err)

	require.Equal(t, "person", def.Name)
	require.Equal(t, []string{"name", "password", "cars"}, def.Names())

	password, _ := def.Field("password")
	assert.True(t, password.WriteOnly)

	obj, err := examples.Generate(def)
	require.NoError(t, err)

	payload, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"string","cars":[{"car_name":"string","car_price":1}]}`, string(payload))
}

func TestFromStructMapsGoTypes(t *testing.T) {
	def, err := FromStruct(&account{})
	require.NoError(t, err)

	require.Equal(t, []string{
		"created_by", "created_at", "id", "name", "timeout", "avatar", "tags",
		"scores", "labels", "extra", "owner", "contact", "count32", "Untagged",
	}, def.Names())

	expect := map[string]string{
		"created_by": "string",
		"created_at": "string/date-time",
		"name":       "string",
		"id":         "string/uuid",
		"timeout":    "string/duration",
		"avatar":     "string/binary",
		"tags":       "list(string)",
		"scores":     "list(number/double)",
		"labels":     "object",
		"extra":      "any",
		"owner":      "nested(person)",
		"contact":    "string/email",
		"count32":    "integer/int32",
		"Untagged":   "boolean",
	}
	for name, want := range expect {
		field, ok := def.Field(name)
		require.Truef(t, ok, "field %s missing", name)
		assert.Equalf(t, want, field.Kind.String(), "field %s", name)
	}

	createdAt, _ := def.Field("created_at")
	assert.True(t, createdAt.ReadOnly)
	contact, _ := def.Field("contact")
	assert.Equal(t, "where to reach the owner", contact.Description)
}

type labelled struct {
	Code  string `json:"code"`
	Label string
}

type coded struct {
	Code  string `json:"code"`
	Label string `json:"Label"`
}

type plainCode struct {
	Code string
}

type conflicting struct {
	labelled
	coded
	plainCode
	Kept string `json:"kept"`
}

func TestFromStructResolvesNameConflictsLikeEncodingJSON(t *testing.T) {
	def, err := FromStruct(conflicting{})
	require.NoError(t, err)

	// code: two tagged fields at one depth cancel out. Label: the tagged one
	// beats the untagged one. Code from plainCode is distinct from code.
	assert.Equal(t, []string{"Label", "Code", "kept"}, def.Names())

	value := conflicting{Kept: "k"}
	value.coded.Label = "tagged"
	value.plainCode.Code = "plain"
	payload, err := json.Marshal(value)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Label":"tagged","Code":"plain","kept":"k"}`, string(payload))
}

func TestFromStructSharesRecursiveDefinitions(t *testing.T) {
	def, err := FromType(reflect.TypeOf(node{}))
	require.NoError(t, err)

	children, ok := def.Field("children")
	require.True(t, ok)
	many, ok := children.Kind.(schema.NestedMany)
	require.True(t, ok, "children kind = %T", children.Kind)
	assert.Same(t, def, many.Definition)

	_, err = examples.Generate(def, examples.WithMaxDepth(3))
	require.ErrorIs(t, err, examples.ErrRecursionLimit)
}

func TestFromStructRejectsUnsupportedInput(t *testing.T) {
	_, err := FromStruct(nil)
	require.ErrorIs(t, err, schema.ErrInvalidSchema)

	_, err = FromStruct("not a struct")
	require.ErrorIs(t, err, schema.ErrInvalidSchema)

	_, err = FromStruct(time.Time{})
	require.ErrorIs(t, err, schema.ErrInvalidSchema)

	type withChan struct {
		Events chan string `json:"events"`
	}
	_, err = FromStruct(withChan{})
	require.ErrorIs(t, err, schema.ErrSchemaResolution)
	assert.Contains(t, err.Error(), "withChan.Events")
}
