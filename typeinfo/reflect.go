package typeinfo

import (
	"encoding"
	"fmt"
	"reflect"
	"unsafe"

	"es-mapper/schema"
)

var (
	stringerType      = reflect.TypeFor[fmt.Stringer]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	schemaNodeType    = reflect.TypeFor[schema.Node]()
	errorType         = reflect.TypeFor[error]()
)

// IDOf returns the identity of a runtime type without walking it.
// Pointers are not dereferenced: the ID of *T is empty.
func IDOf(t reflect.Type) TypeID {
	if t == nil {
		return TypeID{}
	}

	if t.Name() != "" {
		return TypeID{PkgPath: t.PkgPath(), Name: t.Name()}
	}

	if t.Kind() == reflect.Struct {
		return TypeID{Name: t.String()}
	}

	return TypeID{}
}

// FromReflect describes a runtime type. Recursive types produce a cyclic
// graph: every reflect.Type maps to exactly one TypeInfo.
func FromReflect(t reflect.Type) *TypeInfo {
	if t == nil {
		return nil
	}

	b := &reflectBuilder{typeCache: make(map[reflect.Type]*TypeInfo)}

	return b.build(t)
}

type reflectBuilder struct {
	typeCache map[reflect.Type]*TypeInfo // Cache to handle recursive types
}

func (b *reflectBuilder) build(t reflect.Type) *TypeInfo {
	if cached, ok := b.typeCache[t]; ok {
		return cached
	}

	info := &TypeInfo{ReflectType: t}

	// Pre-cache to handle recursive types (we'll fill in details)
	b.typeCache[t] = info

	defined := t.Name() != "" && t.PkgPath() != ""

	switch t.Kind() {
	case reflect.Struct:
		info.Kind = TypeKindStruct
		info.ID = IDOf(t)
		info.HasMapping = hasMapping(t)
		b.buildStructFields(t, info)

	case reflect.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = b.build(t.Elem())

	case reflect.Interface:
		info.Kind = TypeKindInterface
		info.ID = IDOf(t)

	case reflect.Chan, reflect.Func:
		info.Kind = TypeKindUnknown
		info.ID = TypeID{PkgPath: t.PkgPath(), Name: t.String()}

	default:
		if defined {
			// Defined type over a basic or composite type (e.g., type OrderStatus string)
			info.Kind = TypeKindNamed
			info.ID = IDOf(t)
			info.Underlying = b.build(underlyingOf(t))
			info.TextLike = isTextLike(t)
			info.HasMapping = hasMapping(t)

			break
		}

		b.buildUnnamed(t, info)
	}

	return info
}

func (b *reflectBuilder) buildUnnamed(t reflect.Type, info *TypeInfo) {
	switch t.Kind() {
	case reflect.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = b.build(t.Elem())

	case reflect.Array:
		info.Kind = TypeKindArray
		info.ElemType = b.build(t.Elem())

	case reflect.Map:
		info.Kind = TypeKindMap
		info.KeyType = b.build(t.Key())
		info.ElemType = b.build(t.Elem())

	default:
		info.Kind = TypeKindBasic
		info.ID = TypeID{Name: t.Kind().String()}
	}
}

func (b *reflectBuilder) buildStructFields(t reflect.Type, info *TypeInfo) {
	for i := range t.NumField() {
		field := t.Field(i)

		// Unexported embedded structs still promote their exported fields.
		if !field.IsExported() && !field.Anonymous {
			continue
		}

		info.Fields = append(info.Fields, FieldInfo{
			Name:     field.Name,
			Exported: field.IsExported(),
			Type:     b.build(field.Type),
			Tag:      field.Tag,
			Embedded: field.Anonymous,
			Index:    i,
		})
	}
}

// underlyingOf returns the unnamed type a defined non-struct type is built on.
func underlyingOf(t reflect.Type) reflect.Type {
	switch t.Kind() {
	case reflect.Slice:
		return reflect.SliceOf(t.Elem())
	case reflect.Array:
		return reflect.ArrayOf(t.Len(), t.Elem())
	case reflect.Map:
		return reflect.MapOf(t.Key(), t.Elem())
	default:
		return basicTypes[t.Kind()]
	}
}

var basicTypes = map[reflect.Kind]reflect.Type{
	reflect.Bool:          reflect.TypeFor[bool](),
	reflect.Int:           reflect.TypeFor[int](),
	reflect.Int8:          reflect.TypeFor[int8](),
	reflect.Int16:         reflect.TypeFor[int16](),
	reflect.Int32:         reflect.TypeFor[int32](),
	reflect.Int64:         reflect.TypeFor[int64](),
	reflect.Uint:          reflect.TypeFor[uint](),
	reflect.Uint8:         reflect.TypeFor[uint8](),
	reflect.Uint16:        reflect.TypeFor[uint16](),
	reflect.Uint32:        reflect.TypeFor[uint32](),
	reflect.Uint64:        reflect.TypeFor[uint64](),
	reflect.Uintptr:       reflect.TypeFor[uintptr](),
	reflect.Float32:       reflect.TypeFor[float32](),
	reflect.Float64:       reflect.TypeFor[float64](),
	reflect.Complex64:     reflect.TypeFor[complex64](),
	reflect.Complex128:    reflect.TypeFor[complex128](),
	reflect.String:        reflect.TypeFor[string](),
	reflect.UnsafePointer: reflect.TypeFor[unsafe.Pointer](),
}

func isTextLike(t reflect.Type) bool {
	return t.Implements(stringerType) || t.Implements(textMarshalerType) ||
		reflect.PointerTo(t).Implements(stringerType) || reflect.PointerTo(t).Implements(textMarshalerType)
}

// hasMapping reports whether t or *t has Mapping() (schema.Node, error).
func hasMapping(t reflect.Type) bool {
	m, ok := reflect.PointerTo(t).MethodByName("Mapping")
	if !ok {
		return false
	}

	// m.Type includes the receiver.
	return m.Type.NumIn() == 1 && m.Type.NumOut() == 2 &&
		m.Type.Out(0) == schemaNodeType && m.Type.Out(1) == errorType
}
