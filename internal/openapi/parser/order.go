package parser

import (
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// orderIndex maps the JSON pointer of every mapping node in the raw document
// to its keys in declaration order. kin-openapi stores properties in Go maps,
// so this is the only place document order survives.
type orderIndex map[string][]string

func buildOrderIndex(raw []byte) orderIndex {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return orderIndex{}
	}
	idx := orderIndex{}
	idx.walk(&root, "#")
	return idx
}

func (idx orderIndex) walk(node *yaml.Node, ptr string) {
	if node == nil {
		return
	}
	switch node.Kind {
	case yaml.DocumentNode:
		for _, child := range node.Content {
			idx.walk(child, ptr)
		}
	case yaml.MappingNode:
		keys := make([]string, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			keys = append(keys, key)
			idx.walk(node.Content[i+1], ptr+"/"+escapePointer(key))
		}
		idx[ptr] = keys
	case yaml.SequenceNode:
		for i, child := range node.Content {
			idx.walk(child, ptr+"/"+strconv.Itoa(i))
		}
	}
}

// properties returns the property names of the schema at ptr in document
// order. Names the index does not know about (external refs, merged input)
// follow in lexical order.
func (idx orderIndex) properties(ptr string, props openapi3.Schemas) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	return idx.order(join(ptr, "properties"), names)
}

func (idx orderIndex) order(ptr string, names []string) []string {
	present := make(map[string]struct{}, len(names))
	for _, name := range names {
		present[name] = struct{}{}
	}

	ordered := make([]string, 0, len(names))
	if ptr != "" {
		for _, key := range idx[ptr] {
			if _, ok := present[key]; ok {
				ordered = append(ordered, key)
				delete(present, key)
			}
		}
	}
	rest := make([]string, 0, len(present))
	for name := range present {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

func escapePointer(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

func join(ptr string, tokens ...string) string {
	if ptr == "" {
		return ""
	}
	for _, token := range tokens {
		ptr += "/" + escapePointer(token)
	}
	return ptr
}
