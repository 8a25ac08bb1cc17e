// Package mapper turns Go struct types into search index mappings.
//
// A Mapper walks the exported fields of a struct, names each one with
// naming.ToFieldName unless overridden, classifies its type into a
// schema.Node and caches the resulting tree per type for the life of the
// Mapper.
//
//	type Product struct {
//		ID    uuid.UUID
//		Title string `es:",text"`
//		Price decimal.Decimal
//		Tags  []string
//		Notes string `es:"-"`
//	}
//
//	tree, err := mapper.Map[Product]()
//
// Classification order, first match wins:
//   - a CustomMapper attached to the field (option or "type=" tag)
//   - pointers and database/sql Null wrappers are unwrapped
//   - a CustomMapper implemented by the unwrapped field type (runtime types
//     only; the source loader reports such types in TypeInfo.HasMapping)
//   - well-known types (time.Time, uuid.UUID, net.IP, ...) and WithKind
//   - named types implementing fmt.Stringer or encoding.TextMarshaler are keyword
//   - other named types use their underlying type
//   - predeclared types (string is keyword, or text with the "text" hint)
//   - []byte is binary, other slices and arrays use their element
//   - structs are object, or nested with the "nested" tag option
//   - anything else is an empty object
//
// Types that contain themselves fail with ErrCyclicType unless
// CycleTruncate is set.
package mapper
