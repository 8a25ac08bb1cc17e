package schema

import (
	"maps"
	"reflect"
)

// Kind is the field data type name understood by the search backend.
type Kind string

const (
	KindText         Kind = "text"
	KindKeyword      Kind = "keyword"
	KindLong         Kind = "long"
	KindInteger      Kind = "integer"
	KindUnsignedLong Kind = "unsigned_long"
	KindDouble       Kind = "double"
	KindScaledFloat  Kind = "scaled_float"
	KindDate         Kind = "date"
	KindBoolean      Kind = "boolean"
	KindBinary       Kind = "binary"
	KindIP           Kind = "ip"
	KindObject       Kind = "object"
	KindNested       Kind = "nested"
)

// DefaultScalingFactor is the scaling_factor used for scaled_float nodes
// when none is configured.
const DefaultScalingFactor = 100

// IsContainer reports whether nodes of this kind carry nested properties.
func (k Kind) IsContainer() bool {
	return k == KindObject || k == KindNested
}

// Node is a single field declaration of a mapping.
type Node struct {
	// Kind is emitted as "type".
	Kind Kind
	// Properties is the nested tree of object and nested nodes, nil otherwise.
	Properties *Tree
	// Params are extra kind parameters such as "scaling_factor" or "enabled".
	Params map[string]any
}

// Leaf returns a node of the given kind without parameters.
func Leaf(kind Kind) Node {
	return Node{Kind: kind}
}

// Object returns an object node over the given tree. A nil tree yields an
// object with no declared properties.
func Object(properties *Tree) Node {
	if properties == nil {
		properties = NewTree()
	}

	return Node{Kind: KindObject, Properties: properties}
}

// Nested returns a nested node over the given tree.
func Nested(properties *Tree) Node {
	if properties == nil {
		properties = NewTree()
	}

	return Node{Kind: KindNested, Properties: properties}
}

// ScaledFloat returns a scaled_float node with the given scaling factor.
func ScaledFloat(factor float64) Node {
	return Node{Kind: KindScaledFloat, Params: map[string]any{"scaling_factor": factor}}
}

// Disabled returns an object node that the backend stores but never parses
// or indexes. It marks the point where a recursive type was cut.
func Disabled() Node {
	return Node{Kind: KindObject, Params: map[string]any{"enabled": false}}
}

// IsDisabled reports whether the node was produced by Disabled.
func (n Node) IsDisabled() bool {
	enabled, ok := n.Params["enabled"].(bool)
	return n.Kind == KindObject && ok && !enabled
}

// WithParam returns a copy of the node with one parameter set.
func (n Node) WithParam(key string, value any) Node {
	params := make(map[string]any, len(n.Params)+1)
	maps.Copy(params, n.Params)
	params[key] = value
	n.Params = params

	return n
}

// Equal reports whether two nodes declare the same mapping.
func (n Node) Equal(other Node) bool {
	if n.Kind != other.Kind {
		return false
	}

	if len(n.Params) != len(other.Params) {
		return false
	}

	for k, v := range n.Params {
		ov, ok := other.Params[k]
		if !ok || !paramEqual(v, ov) {
			return false
		}
	}

	return n.Properties.Equal(other.Properties)
}

// Clone returns a copy of the node that shares no tree or parameter map
// with n. The copy is never frozen.
func (n Node) Clone() Node {
	n.Properties = n.Properties.Clone()
	n.Params = maps.Clone(n.Params)

	return n
}

// paramEqual compares numbers by value, so 100 decoded from YAML equals
// the float64 100 of ScaledFloat.
func paramEqual(a, b any) bool {
	x, aok := number(a)
	y, bok := number(b)

	if aok && bok {
		return x == y
	}

	return reflect.DeepEqual(a, b)
}

func number(v any) (float64, bool) {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
