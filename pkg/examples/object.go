package examples

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is the ordered field-name → example-value mapping produced by the
// generator. JSON encoding keeps insertion order.
type Object = orderedmap.OrderedMap[string, any]

// NewObject returns an empty Object.
func NewObject() *Object {
	return orderedmap.New[string, any]()
}

// emptyObject marks type map entries that resolve to a fresh empty Object.
type emptyObject struct{}

func (emptyObject) MarshalJSON() ([]byte, error) {
	return []byte("{}"), nil
}

// Keys lists the object's keys in insertion order.
func Keys(obj *Object) []string {
	if obj == nil {
		return nil
	}
	keys := make([]string, 0, obj.Len())
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// ToMap converts an Object (recursively, including inside slices) into plain
// maps, dropping order. Handy for comparisons in tests and for encoders that
// do not understand ordered maps.
func ToMap(obj *Object) map[string]any {
	if obj == nil {
		return nil
	}
	out := make(map[string]any, obj.Len())
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = plain(pair.Value)
	}
	return out
}

// cloneValue deep-copies the composite values a type map entry may hold so
// no two generated payloads share mutable state.
func cloneValue(value any) any {
	switch v := value.(type) {
	case emptyObject:
		return NewObject()
	case *Object:
		if v == nil {
			return v
		}
		out := NewObject()
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, cloneValue(pair.Value))
		}
		return out
	case map[string]any:
		if v == nil {
			return v
		}
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = cloneValue(item)
		}
		return out
	case []any:
		if v == nil {
			return v
		}
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), v...)
	default:
		return v
	}
}

func plain(value any) any {
	switch v := value.(type) {
	case *Object:
		return ToMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}
