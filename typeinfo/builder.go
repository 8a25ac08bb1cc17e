package typeinfo

import (
	"go/token"
	"reflect"
)

// Basic describes a predeclared type by its reflect kind name
// ("string", "int64", "uint8", "unsafe.Pointer", ...).
func Basic(name string) *TypeInfo {
	return &TypeInfo{ID: TypeID{Name: name}, Kind: TypeKindBasic}
}

// Named describes a defined type over a non-struct underlying type.
func Named(id TypeID, underlying *TypeInfo) *TypeInfo {
	return &TypeInfo{ID: id, Kind: TypeKindNamed, Underlying: underlying}
}

// Enum describes a defined type whose values print as text
// (it implements fmt.Stringer or encoding.TextMarshaler).
func Enum(id TypeID, underlying *TypeInfo) *TypeInfo {
	t := Named(id, underlying)
	t.TextLike = true

	return t
}

// Opaque describes a named struct whose fields are not visible,
// such as time.Time.
func Opaque(id TypeID) *TypeInfo {
	return &TypeInfo{ID: id, Kind: TypeKindStruct}
}

// PointerTo describes *elem.
func PointerTo(elem *TypeInfo) *TypeInfo {
	return &TypeInfo{Kind: TypeKindPointer, ElemType: elem}
}

// SliceOf describes []elem.
func SliceOf(elem *TypeInfo) *TypeInfo {
	return &TypeInfo{Kind: TypeKindSlice, ElemType: elem}
}

// ArrayOf describes a fixed-length array of elem.
func ArrayOf(elem *TypeInfo) *TypeInfo {
	return &TypeInfo{Kind: TypeKindArray, ElemType: elem}
}

// MapOf describes map[key]elem.
func MapOf(key, elem *TypeInfo) *TypeInfo {
	return &TypeInfo{Kind: TypeKindMap, KeyType: key, ElemType: elem}
}

// Interface describes an interface type.
func Interface() *TypeInfo {
	return &TypeInfo{Kind: TypeKindInterface}
}

// StructBuilder assembles a struct TypeInfo field by field.
//
//	order := typeinfo.NewStruct(typeinfo.TypeID{PkgPath: "shop", Name: "Order"})
//	order.Field("ID", typeinfo.Basic("int64"), `es:"order_id"`).
//		Field("Items", typeinfo.SliceOf(item), "")
type StructBuilder struct {
	info *TypeInfo
}

// NewStruct starts a struct description.
func NewStruct(id TypeID) *StructBuilder {
	return &StructBuilder{info: &TypeInfo{ID: id, Kind: TypeKindStruct}}
}

// Field appends an exported field.
func (b *StructBuilder) Field(name string, t *TypeInfo, tag string) *StructBuilder {
	b.info.Fields = append(b.info.Fields, FieldInfo{
		Name:     name,
		Exported: true,
		Type:     t,
		Tag:      reflect.StructTag(tag),
		Index:    len(b.info.Fields),
	})

	return b
}

// Embed appends an embedded field of type t (or *t).
func (b *StructBuilder) Embed(t *TypeInfo, tag string) *StructBuilder {
	name := t.Deref().ID.Name
	b.info.Fields = append(b.info.Fields, FieldInfo{
		Name:     name,
		Exported: token.IsExported(name),
		Type:     t,
		Tag:      reflect.StructTag(tag),
		Embedded: true,
		Index:    len(b.info.Fields),
	})

	return b
}

// Info returns the struct under construction. It can be referenced by its
// own fields to describe recursive types.
func (b *StructBuilder) Info() *TypeInfo {
	return b.info
}

// Build returns the finished struct description.
func (b *StructBuilder) Build() *TypeInfo {
	return b.info
}
