// Package yamlconv converts between JSON payloads and yaml.v3 node trees
// while keeping key order.
package yamlconv

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// FromJSON converts a JSON document into YAML. JSON is valid YAML, so the
// payload is decoded into a node tree and re-encoded with flow and quoting
// styles cleared; the encoder re-quotes scalars that would change type.
func FromJSON(payload []byte) ([]byte, error) {
	root, err := NodeFromJSON(payload)
	if err != nil {
		return nil, err
	}
	return Encode(root)
}

// NodeFromJSON decodes a JSON payload into a block-style node.
func NodeFromJSON(payload []byte) (*yaml.Node, error) {
	root, err := Decode(payload)
	if err != nil {
		return nil, err
	}
	resetStyle(root)
	return root, nil
}

// Decode parses a YAML or JSON document into a node tree, keeping styles and
// comments.
func Decode(payload []byte) (*yaml.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(payload, &root); err != nil {
		return nil, fmt.Errorf("yamlconv: decode: %w", err)
	}
	return &root, nil
}

// Encode writes a node tree as YAML with two-space indentation.
func Encode(root *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("yamlconv: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yamlconv: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// ToJSON writes a node tree as indented JSON. Mapping keys keep document
// order and numbers keep their literal spelling when it is valid JSON.
func ToJSON(root *yaml.Node) ([]byte, error) {
	value, err := toValue(root)
	if err != nil {
		return nil, err
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("yamlconv: encode json: %w", err)
	}
	return append(payload, '\n'), nil
}

func toValue(node *yaml.Node) (any, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return toValue(node.Content[0])
	case yaml.AliasNode:
		return toValue(node.Alias)
	case yaml.MappingNode:
		out := orderedmap.New[string, any]()
		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := toValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			out.Set(node.Content[i].Value, value)
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := toValue(child)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	default:
		return scalar(node)
	}
}

func scalar(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!int", "!!float":
		if json.Valid([]byte(node.Value)) {
			return json.Number(node.Value), nil
		}
		var n float64
		if err := node.Decode(&n); err != nil {
			return nil, fmt.Errorf("yamlconv: line %d: %w", node.Line, err)
		}
		return n, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, fmt.Errorf("yamlconv: line %d: %w", node.Line, err)
		}
		return b, nil
	default:
		return node.Value, nil
	}
}

// Lookup follows a path of mapping keys from root and returns the value node,
// or nil when any key is missing.
func Lookup(root *yaml.Node, keys ...string) *yaml.Node {
	node := root
	if node != nil && node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	for _, key := range keys {
		node = Get(node, key)
		if node == nil {
			return nil
		}
	}
	return node
}

// Get returns the value stored under key in a mapping node.
func Get(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// Set replaces the value under key in a mapping node, appending the pair
// when the key is new.
func Set(mapping *yaml.Node, key string, value *yaml.Node) {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return
	}
	if value.Kind == yaml.DocumentNode && len(value.Content) > 0 {
		value = value.Content[0]
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

func resetStyle(node *yaml.Node) {
	if node == nil {
		return
	}
	node.Style = 0
	for _, child := range node.Content {
		resetStyle(child)
	}
}
