package examples

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-exampledump/pkg/schema"
)

// TypeKey identifies a type map entry by scalar type and optional format.
type TypeKey struct {
	Type   string
	Format string
}

// Fallback is the general entry used when neither (type, format) nor
// (type, "") has an example.
var Fallback = TypeKey{}

// Key builds a TypeKey.
func Key(typ string, format ...string) TypeKey {
	key := TypeKey{Type: typ}
	if len(format) > 0 {
		key.Format = format[0]
	}
	return key
}

func (k TypeKey) String() string {
	switch {
	case k == Fallback:
		return "<fallback>"
	case k.Format == "":
		return k.Type
	default:
		return k.Type + "/" + k.Format
	}
}

// Snapshot holds the values volatile examples are derived from. A single
// snapshot is taken per generation so every volatile field of one call shares
// the same identifier and instant.
type Snapshot struct {
	Now time.Time
	ID  uuid.UUID
}

// RenewFunc derives a fresh example value from a snapshot.
type RenewFunc func(Snapshot) any

// Example is a type map entry. Value is the static placeholder; a non-nil
// Renew marks the kind as volatile.
type Example struct {
	Value any
	Renew RenewFunc
}

// Volatile reports whether the example can be regenerated per call.
func (e Example) Volatile() bool {
	return e.Renew != nil
}

// Resolve returns the fresh value when renew is requested for a volatile
// example, otherwise the static placeholder.
func (e Example) Resolve(renew bool, snap Snapshot) any {
	if renew && e.Renew != nil {
		return e.Renew(snap)
	}
	return e.Value
}

// VolatileExample builds an Example whose placeholder is derived from the
// canonical placeholder snapshot.
func VolatileExample(fn RenewFunc) Example {
	return Example{Value: fn(PlaceholderSnapshot()), Renew: fn}
}

// Canonical placeholders used when volatile values are not renewed.
var (
	PlaceholderUUID = uuid.MustParse("3fa85f64-5717-4562-b3fc-2c963f66afa6")
	PlaceholderTime = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
)

// PlaceholderSnapshot returns the deterministic snapshot behind the default
// placeholders.
func PlaceholderSnapshot() Snapshot {
	return Snapshot{Now: PlaceholderTime, ID: PlaceholderUUID}
}

// TypeMap is an immutable mapping of TypeKey to Example. The zero value is an
// empty map.
type TypeMap struct {
	entries map[TypeKey]Example
}

// NewTypeMap builds a TypeMap from plain values or Example entries. Plain
// values become static examples.
func NewTypeMap(entries map[TypeKey]any) TypeMap {
	return TypeMap{}.Extend(entries)
}

// Lookup returns the example stored under key without any fallback.
func (m TypeMap) Lookup(key TypeKey) (Example, bool) {
	example, ok := m.entries[key]
	return example, ok
}

// Resolve looks up (type, format), then (type, ""), then Fallback. The
// returned key is the entry that matched.
func (m TypeMap) Resolve(key TypeKey) (Example, TypeKey, bool) {
	if example, ok := m.entries[key]; ok {
		return example, key, true
	}
	if key.Format != "" {
		general := TypeKey{Type: key.Type}
		if example, ok := m.entries[general]; ok {
			return example, general, true
		}
	}
	if example, ok := m.entries[Fallback]; ok {
		return example, Fallback, true
	}
	return Example{}, TypeKey{}, false
}

// Extend returns a derived map with entries overlaid; the receiver is left
// untouched and caller entries win on collision.
func (m TypeMap) Extend(entries map[TypeKey]any) TypeMap {
	merged := make(map[TypeKey]Example, len(m.entries)+len(entries))
	for key, example := range m.entries {
		merged[key] = example
	}
	for key, value := range entries {
		merged[key] = asExample(value)
	}
	return TypeMap{entries: merged}
}

// Len reports the number of entries.
func (m TypeMap) Len() int {
	return len(m.entries)
}

// Keys lists the entry keys sorted by type then format.
func (m TypeMap) Keys() []TypeKey {
	keys := make([]TypeKey, 0, len(m.entries))
	for key := range m.entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Type != keys[j].Type {
			return keys[i].Type < keys[j].Type
		}
		return keys[i].Format < keys[j].Format
	})
	return keys
}

func asExample(value any) Example {
	switch v := value.(type) {
	case Example:
		return v
	case *Example:
		if v == nil {
			return Example{}
		}
		return *v
	case RenewFunc:
		return VolatileExample(v)
	case func(Snapshot) any:
		return VolatileExample(v)
	default:
		return Example{Value: v}
	}
}

var (
	defaultTypeMapOnce sync.Once
	defaultTypeMap     TypeMap
)

// DefaultTypeMap returns the process-wide default map. It is built once and
// never mutated; use Extend to derive variations.
func DefaultTypeMap() TypeMap {
	defaultTypeMapOnce.Do(func() {
		defaultTypeMap = NewTypeMap(defaultEntries())
	})
	return defaultTypeMap
}

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
	placeholderStr = "string"
)

func defaultEntries() map[TypeKey]any {
	return map[TypeKey]any{
		Key(schema.TypeString):                        placeholderStr,
		Key(schema.TypeString, schema.FormatBinary):   placeholderStr,
		Key(schema.TypeString, schema.FormatByte):     "c3RyaW5n",
		Key(schema.TypeString, schema.FormatDuration): "00:00:05",
		Key(schema.TypeString, schema.FormatUUID): VolatileExample(func(s Snapshot) any {
			return s.ID.String()
		}),
		Key(schema.TypeString, schema.FormatDateTime): VolatileExample(func(s Snapshot) any {
			return s.Now.Format(time.RFC3339)
		}),
		Key(schema.TypeString, schema.FormatDate): VolatileExample(func(s Snapshot) any {
			return s.Now.Format(dateLayout)
		}),
		Key(schema.TypeString, schema.FormatTime): VolatileExample(func(s Snapshot) any {
			return s.Now.Format(timeLayout)
		}),
		Key(schema.TypeInteger): 1,
		Key(schema.TypeNumber):  json.Number("1.0"),
		Key(schema.TypeBoolean): false,
		Key(schema.TypeObject):  emptyObjectExample(),
		Key(schema.TypeAny):     emptyObjectExample(),
		Key(schema.TypeNull):    nil,
		Fallback:                nil,
	}
}

// emptyObjectExample yields a fresh empty object on every resolution so
// callers mutating one output never leak into another.
func emptyObjectExample() Example {
	return Example{Value: emptyObject{}}
}
