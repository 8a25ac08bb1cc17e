package overrides

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"es-mapper/schema"
)

// CurrentVersion is the only file version understood.
const CurrentVersion = "1"

// File is a parsed overrides file.
type File struct {
	Version       string                 `yaml:"version"`
	Cycles        string                 `yaml:"cycles,omitempty"`
	Duplicates    string                 `yaml:"duplicates,omitempty"`
	MaxDepth      int                    `yaml:"max_depth,omitempty"`
	ScalingFactor float64                `yaml:"scaling_factor,omitempty"`
	Kinds         map[string]schema.Node `yaml:"kinds,omitempty"`
	Types         []TypeOverride         `yaml:"types,omitempty"`
}

// TypeOverride holds the overrides of one struct type.
type TypeOverride struct {
	// Type is a type reference: "es-mapper/catalog.Order", "catalog.Order"
	// or "Order" when unambiguous.
	Type   string               `yaml:"type"`
	Fields map[string]FieldSpec `yaml:"fields,omitempty"`
	// Ignore is shorthand for fields with ignore: true.
	Ignore []string `yaml:"ignore,omitempty"`
}

// FieldSpec overrides one field.
type FieldSpec struct {
	Name    string       `yaml:"name,omitempty"`
	Ignore  bool         `yaml:"ignore,omitempty"`
	Text    bool         `yaml:"text,omitempty"`
	Keyword bool         `yaml:"keyword,omitempty"`
	Nested  bool         `yaml:"nested,omitempty"`
	Mapping *schema.Node `yaml:"mapping,omitempty"`
}

// UnmarshalYAML accepts either a mapping or one of the scalar shorthands
// "text", "keyword", "nested", "ignore" and "-".
func (f *FieldSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Value {
		case "text":
			*f = FieldSpec{Text: true}
		case "keyword":
			*f = FieldSpec{Keyword: true}
		case "nested":
			*f = FieldSpec{Nested: true}
		case "ignore", "-":
			*f = FieldSpec{Ignore: true}
		default:
			return fmt.Errorf("line %d: unknown field shorthand %q", node.Line, node.Value)
		}

		return nil

	case yaml.MappingNode:
		type plain FieldSpec

		return node.Decode((*plain)(f))

	default:
		return fmt.Errorf("line %d: expected field shorthand or mapping", node.Line)
	}
}

// IsZero reports whether the spec changes nothing.
func (f FieldSpec) IsZero() bool {
	return f == FieldSpec{}
}
