package mapper

import (
	"reflect"

	"es-mapper/schema"
	"es-mapper/typeinfo"
)

// CustomMapper supplies a complete field mapping, bypassing classification.
//
// It can be attached to a single field (WithFieldOverride, Field, the
// "type=" tag option) or implemented by a type, in which case every field of
// that type uses it. An error returned by Mapping is passed to the caller of
// the mapper unchanged.
type CustomMapper interface {
	Mapping() (schema.Node, error)
}

// CustomMapperFunc adapts a function to CustomMapper.
type CustomMapperFunc func() (schema.Node, error)

// Mapping calls f.
func (f CustomMapperFunc) Mapping() (schema.Node, error) {
	return f()
}

// Literal returns a CustomMapper that always yields node.
func Literal(node schema.Node) CustomMapper {
	return CustomMapperFunc(func() (schema.Node, error) { return node, nil })
}

// customNode calls c and copies the node, so that freezing the mapping
// never freezes a tree the caller still owns.
func customNode(c CustomMapper) (schema.Node, error) {
	node, err := c.Mapping()
	if err != nil {
		return schema.Node{}, err
	}

	return node.Clone(), nil
}

var customMapperType = reflect.TypeFor[CustomMapper]()

// typeMapper returns the CustomMapper implemented by a runtime type, if any.
// Pointer-receiver implementations are called on a fresh zero value.
func typeMapper(t *typeinfo.TypeInfo) (CustomMapper, bool) {
	if t == nil || t.ReflectType == nil {
		return nil, false
	}

	rt := t.ReflectType
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	switch {
	case rt.Kind() == reflect.Interface:
		return nil, false
	case rt.Implements(customMapperType):
		return reflect.Zero(rt).Interface().(CustomMapper), true
	case reflect.PointerTo(rt).Implements(customMapperType):
		return reflect.New(rt).Interface().(CustomMapper), true
	default:
		return nil, false
	}
}
