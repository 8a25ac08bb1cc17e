// Package typeinfo describes Go types as a graph the mapper can walk
// without caring where the description came from.
//
// Three producers build the same model:
//   - FromReflect, from a runtime reflect.Type
//   - the static source loader in internal/analyze, from go/types
//   - the builder functions (NewStruct, Basic, SliceOf, ...), for callers
//     that want to describe a type by hand
//
// Key types:
//   - TypeID: package import path + type name, the type identity
//   - TypeInfo: kind (basic/struct/pointer/slice/array/map/interface/named)
//     plus element, underlying and field information
//   - FieldInfo: field name, type, tag and embedding
//   - TypePath: readable field paths such as "Order.Items[].SKU"
package typeinfo
