package examples_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-exampledump/pkg/examples"
	"github.com/goliatone/go-exampledump/pkg/schema"
)

func TestTypeMapResolveOrder(t *testing.T) {
	m := examples.NewTypeMap(map[examples.TypeKey]any{
		examples.Key(schema.TypeString):         "plain",
		examples.Key(schema.TypeString, "uuid"): "id",
		examples.Fallback:                       "fallback",
	})

	cases := []struct {
		key         examples.TypeKey
		wantValue   any
		wantMatched examples.TypeKey
	}{
		{examples.Key(schema.TypeString, "uuid"), "id", examples.Key(schema.TypeString, "uuid")},
		{examples.Key(schema.TypeString, "email"), "plain", examples.Key(schema.TypeString)},
		{examples.Key(schema.TypeString), "plain", examples.Key(schema.TypeString)},
		{examples.Key(schema.TypeInteger, "int64"), "fallback", examples.Fallback},
	}
	for _, tc := range cases {
		example, matched, ok := m.Resolve(tc.key)
		if !ok {
			t.Fatalf("%s: expected a match", tc.key)
		}
		if example.Value != tc.wantValue || matched != tc.wantMatched {
			t.Fatalf("%s: got (%v, %s), want (%v, %s)", tc.key, example.Value, matched, tc.wantValue, tc.wantMatched)
		}
	}

	if _, _, ok := examples.NewTypeMap(nil).Resolve(examples.Key(schema.TypeString)); ok {
		t.Fatalf("empty map should not resolve")
	}
}

func TestTypeMapExtendIsNonDestructive(t *testing.T) {
	base := examples.DefaultTypeMap()
	before := base.Len()

	derived := base.Extend(map[examples.TypeKey]any{
		examples.Key(schema.TypeInteger):        7,
		examples.Key(schema.TypeString, "slug"): "my-slug",
	})

	if base.Len() != before {
		t.Fatalf("base map grew from %d to %d", before, base.Len())
	}
	if got, _ := base.Lookup(examples.Key(schema.TypeInteger)); got.Value != 1 {
		t.Fatalf("base integer changed to %v", got.Value)
	}
	if got, _ := derived.Lookup(examples.Key(schema.TypeInteger)); got.Value != 7 {
		t.Fatalf("derived integer = %v, want 7", got.Value)
	}
	if _, ok := base.Lookup(examples.Key(schema.TypeString, "slug")); ok {
		t.Fatalf("base map gained the slug entry")
	}
	if derived.Len() != before+1 {
		t.Fatalf("derived len = %d, want %d", derived.Len(), before+1)
	}
}

func TestDefaultTypeMapVolatileKinds(t *testing.T) {
	m := examples.DefaultTypeMap()
	var volatile []string
	for _, key := range m.Keys() {
		example, _ := m.Lookup(key)
		if example.Volatile() {
			volatile = append(volatile, key.String())
		}
	}
	want := []string{"string/date", "string/date-time", "string/time", "string/uuid"}
	if diff := cmp.Diff(want, volatile); diff != "" {
		t.Fatalf("volatile kinds mismatch (-want +got):\n%s", diff)
	}
	if _, ok := m.Lookup(examples.Fallback); !ok {
		t.Fatalf("default map must carry a fallback entry")
	}
}
