package examples

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxDepth bounds nested definition recursion.
const DefaultMaxDepth = 32

// Option customises a Generator.
type Option func(*Generator)

// WithExcludeFields omits the named fields at every nesting level. Excluded
// fields are dropped before resolution, so their nested schemas are never
// visited.
func WithExcludeFields(names ...string) Option {
	return func(g *Generator) {
		if len(names) == 0 {
			return
		}
		if g.exclude == nil {
			g.exclude = make(map[string]struct{}, len(names))
		}
		for _, name := range names {
			g.exclude[name] = struct{}{}
		}
	}
}

// WithRenewTypeValue regenerates volatile examples (identifiers, date/time
// values) on every call instead of using the fixed placeholders.
func WithRenewTypeValue(renew bool) Option {
	return func(g *Generator) {
		g.renew = renew
	}
}

// WithExtendTypeMap overlays entries on the base type map. Values may be plain
// example values, Example structs or RenewFunc generators. Repeated calls
// accumulate; later entries win.
func WithExtendTypeMap(entries map[TypeKey]any) Option {
	return func(g *Generator) {
		if len(entries) == 0 {
			return
		}
		if g.extend == nil {
			g.extend = make(map[TypeKey]any, len(entries))
		}
		for key, value := range entries {
			g.extend[key] = value
		}
	}
}

// WithTypeMap replaces the base type map (DefaultTypeMap by default).
func WithTypeMap(m TypeMap) Option {
	return func(g *Generator) {
		g.base = m
	}
}

// WithMaxDepth caps nested definition depth. Values below one are ignored.
func WithMaxDepth(depth int) Option {
	return func(g *Generator) {
		if depth > 0 {
			g.maxDepth = depth
		}
	}
}

// WithLogger sets the logger used for debug traces and fallback warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithClock overrides the time source used when renewing volatile values.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithIDGenerator overrides the identifier source used when renewing
// volatile values.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(g *Generator) {
		if newID != nil {
			g.newID = newID
		}
	}
}
