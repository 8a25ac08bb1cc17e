package typeinfo

import (
	"fmt"
	"go/types"
	"reflect"
	"sort"
	"strings"

	"es-mapper/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
// Anonymous struct types carry their structural type string as Name.
type TypeID struct {
	PkgPath string // e.g., "es-mapper/catalog"
	Name    string // e.g., "Product"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// IsZero reports whether the ID is empty (unnamed pointer, slice, map ...).
func (t TypeID) IsZero() bool {
	return t.PkgPath == "" && t.Name == ""
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type, named or anonymous
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map type
	TypeKindInterface          // interface type
	TypeKindNamed              // defined type over a non-struct type (e.g., type Status string)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindInterface:
		return "interface"
	case TypeKindNamed:
		return "named"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID      // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind    // Kind of type
	Underlying *TypeInfo   // For named types, the underlying type
	ElemType   *TypeInfo   // For pointers, slices, arrays and maps, the element type
	KeyType    *TypeInfo   // For maps, the key type
	Fields     []FieldInfo // For structs, the list of fields
	// TextLike is set when the type or its pointer implements fmt.Stringer
	// or encoding.TextMarshaler.
	TextLike bool
	// HasMapping is set when the type or its pointer declares
	// Mapping() (schema.Node, error). The node itself is only available
	// from a runtime value.
	HasMapping bool

	GoType      types.Type   // Set by the source loader
	ReflectType reflect.Type // Set by FromReflect
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// Key is the cache key of the type: its ID string.
func (t *TypeInfo) Key() string {
	return t.ID.String()
}

// Deref follows pointers down to the first non-pointer type.
func (t *TypeInfo) Deref() *TypeInfo {
	for t != nil && t.Kind == TypeKindPointer {
		t = t.ElemType
	}

	return t
}

// Field returns the field with the given Go name.
func (t *TypeInfo) Field(name string) (*FieldInfo, bool) {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i], true
		}
	}

	return nil, false
}

// String returns a Go-like spelling of the type.
func (t *TypeInfo) String() string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeKindPointer:
		return "*" + t.ElemType.String()
	case TypeKindSlice:
		return "[]" + t.ElemType.String()
	case TypeKindArray:
		return "[...]" + t.ElemType.String()
	case TypeKindMap:
		return "map[" + t.KeyType.String() + "]" + t.ElemType.String()
	}

	if t.IsNamed() {
		return t.ID.String()
	}

	switch t.Kind {
	case TypeKindStruct:
		return "struct{...}"
	case TypeKindInterface:
		return "interface{...}"
	default:
		return common.UnknownStr
	}
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// Lookup resolves a type reference like:
//   - "es-mapper/catalog.Product" (full)
//   - "catalog.Product" (short)
//   - "Product" (name only, must be unambiguous).
func (g *TypeGraph) Lookup(ref string) (*TypeInfo, error) {
	if ref == "" {
		return nil, fmt.Errorf("empty type reference")
	}

	for id, t := range g.Types {
		if id.String() == ref {
			return t, nil
		}
	}

	pkgStr, name := "", ref
	if lastDot := strings.LastIndex(ref, "."); lastDot >= 0 && !strings.Contains(ref, "[") {
		pkgStr, name = ref[:lastDot], ref[lastDot+1:]
	}

	var matches []TypeID

	for id := range g.Types {
		if id.Name != name {
			continue
		}

		if pkgStr == "" || id.PkgPath == pkgStr || strings.HasSuffix(id.PkgPath, "/"+pkgStr) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("type %s not found", ref)
	case 1:
		return g.Types[matches[0]], nil
	default:
		sort.Slice(matches, func(i, j int) bool { return matches[i].String() < matches[j].String() })
		return nil, fmt.Errorf("type %s is ambiguous: %v", ref, matches)
	}
}

// Struct resolves ref with Lookup and checks it is a struct type.
func (g *TypeGraph) Struct(ref string) (*TypeInfo, error) {
	info, err := g.Lookup(ref)
	if err != nil {
		return nil, err
	}

	if info.Kind != TypeKindStruct {
		return nil, fmt.Errorf("type %s is not a struct (kind: %s)", info.ID, info.Kind)
	}

	return info, nil
}

// MappingTypes returns the IDs of the types with HasMapping set, ordered
// by their string form.
func (g *TypeGraph) MappingTypes() []TypeID {
	var ids []TypeID
	for id, t := range g.Types {
		if t.HasMapping {
			ids = append(ids, id)
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	return ids
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package
}
