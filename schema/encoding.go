package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	typeKey       = "type"
	propertiesKey = "properties"
)

// MarshalJSON encodes the tree as {"properties": {...}} in insertion order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"properties":`)

	if err := t.writeProperties(&buf); err != nil {
		return nil, err
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalJSON encodes the node as {"type": ..., params..., "properties": {...}}.
// Parameters are written in key order.
func (n Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"type":`)
	writeJSONString(&buf, string(n.Kind))

	for _, key := range n.paramKeys() {
		buf.WriteByte(',')
		writeJSONString(&buf, key)
		buf.WriteByte(':')

		v, err := json.Marshal(n.Params[key])
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", key, err)
		}

		buf.Write(v)
	}

	if n.Properties != nil {
		buf.WriteString(`,"properties":`)

		if err := n.Properties.writeProperties(&buf); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (t *Tree) writeProperties(buf *bytes.Buffer) error {
	buf.WriteByte('{')

	i := 0
	for name, node := range t.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++

		writeJSONString(buf, name)
		buf.WriteByte(':')

		v, err := node.MarshalJSON()
		if err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}

		buf.Write(v)
	}

	buf.WriteByte('}')

	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	// json.Marshal of a string cannot fail.
	v, _ := json.Marshal(s)
	buf.Write(v)
}

func (n Node) paramKeys() []string {
	keys := make([]string, 0, len(n.Params))
	for k := range n.Params {
		if k == typeKey || k == propertiesKey {
			continue
		}

		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// MarshalYAML encodes the tree as a "properties" mapping in insertion order.
func (t *Tree) MarshalYAML() (any, error) {
	props, err := t.yamlProperties()
	if err != nil {
		return nil, err
	}

	return &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{scalar(propertiesKey), props},
	}, nil
}

// MarshalYAML encodes the node with the same layout as MarshalJSON.
func (n Node) MarshalYAML() (any, error) {
	out := &yaml.Node{Kind: yaml.MappingNode}
	out.Content = append(out.Content, scalar(typeKey), scalar(string(n.Kind)))

	for _, key := range n.paramKeys() {
		var v yaml.Node
		if err := v.Encode(n.Params[key]); err != nil {
			return nil, fmt.Errorf("param %s: %w", key, err)
		}

		out.Content = append(out.Content, scalar(key), &v)
	}

	if n.Properties != nil {
		props, err := n.Properties.yamlProperties()
		if err != nil {
			return nil, err
		}

		out.Content = append(out.Content, scalar(propertiesKey), props)
	}

	return out, nil
}

func (t *Tree) yamlProperties() (*yaml.Node, error) {
	out := &yaml.Node{Kind: yaml.MappingNode}

	for name, node := range t.All() {
		v, err := node.MarshalYAML()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}

		out.Content = append(out.Content, scalar(name), v.(*yaml.Node))
	}

	return out, nil
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// UnmarshalYAML decodes a node. Besides the full mapping form
//
//	{type: geo_point, ignore_malformed: true}
//
// a bare scalar is accepted as the kind: "keyword".
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Value == "" {
			return fmt.Errorf("line %d: empty field type", value.Line)
		}

		*n = Leaf(Kind(value.Value))

		return nil

	case yaml.MappingNode:
		var out Node

		for i := 0; i+1 < len(value.Content); i += 2 {
			key, val := value.Content[i].Value, value.Content[i+1]

			switch key {
			case typeKey:
				out.Kind = Kind(val.Value)

			case propertiesKey:
				props, err := decodeProperties(val)
				if err != nil {
					return err
				}

				out.Properties = props

			default:
				var v any
				if err := val.Decode(&v); err != nil {
					return fmt.Errorf("line %d: param %s: %w", val.Line, key, err)
				}

				if out.Params == nil {
					out.Params = make(map[string]any)
				}

				out.Params[key] = v
			}
		}

		if out.Kind == "" {
			if out.Properties == nil {
				return fmt.Errorf("line %d: field mapping without type", value.Line)
			}

			out.Kind = KindObject
		}

		*n = out

		return nil

	default:
		return fmt.Errorf("line %d: expected field type or mapping, got %v", value.Line, value.Kind)
	}
}

// UnmarshalYAML decodes a {properties: {...}} mapping keeping field order.
func (t *Tree) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected mapping, got %v", value.Line, value.Kind)
	}

	*t = Tree{nodes: make(map[string]Node)}

	for i := 0; i+1 < len(value.Content); i += 2 {
		if value.Content[i].Value != propertiesKey {
			return fmt.Errorf("line %d: unexpected key %q", value.Content[i].Line, value.Content[i].Value)
		}

		props, err := decodeProperties(value.Content[i+1])
		if err != nil {
			return err
		}

		*t = *props
	}

	return nil
}

func decodeProperties(value *yaml.Node) (*Tree, error) {
	if value.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: properties must be a mapping", value.Line)
	}

	tree := NewTree()

	for i := 0; i+1 < len(value.Content); i += 2 {
		var n Node
		if err := value.Content[i+1].Decode(&n); err != nil {
			return nil, fmt.Errorf("field %s: %w", value.Content[i].Value, err)
		}

		tree.Set(value.Content[i].Value, n)
	}

	return tree, nil
}
