package analyze

import (
	"fmt"
	"go/token"
	"go/types"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"

	"es-mapper/internal/common"
	"es-mapper/schema"
	"es-mapper/typeinfo"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	// Dir is the directory packages are resolved from. Empty means the
	// current directory.
	Dir string

	graph     *typeinfo.TypeGraph
	typeCache map[types.Type]*typeinfo.TypeInfo // Cache to handle recursive types
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph:     typeinfo.NewTypeGraph(),
		typeCache: make(map[types.Type]*typeinfo.TypeInfo),
	}
}

// LoadPackages loads the specified packages and adds their exported named
// types to the graph. Patterns are standard Go package patterns
// (e.g., "./catalog", "es-mapper/catalog").
func (a *Analyzer) LoadPackages(patterns ...string) (*typeinfo.TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *typeinfo.TypeGraph {
	return a.graph
}

// processPackage extracts types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &typeinfo.PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		// Only exported, non-alias type names
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		// Generic declarations have no field types until instantiated.
		if named, ok := typeName.Type().(*types.Named); ok && named.TypeParams().Len() > 0 {
			continue
		}

		info := a.analyzeType(typeName.Type())

		a.graph.Types[info.ID] = info
		pkgInfo.Types = append(pkgInfo.Types, info.ID)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) *typeinfo.TypeInfo {
	t = types.Unalias(t)

	// Check cache to handle recursive types
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &typeinfo.TypeInfo{
		GoType: t,
	}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Basic:
		info.Kind = typeinfo.TypeKindBasic
		info.ID = typeinfo.TypeID{Name: basicName(tt)}

	case *types.Pointer:
		info.Kind = typeinfo.TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = typeinfo.TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = typeinfo.TypeKindArray
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Map:
		info.Kind = typeinfo.TypeKindMap
		info.KeyType = a.analyzeType(tt.Key())
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Interface:
		info.Kind = typeinfo.TypeKindInterface

	case *types.Struct:
		// Anonymous struct
		info.Kind = typeinfo.TypeKindStruct
		info.ID = typeinfo.TypeID{Name: types.TypeString(tt, shortQualifier)}
		a.analyzeStructFields(tt, info)

	default:
		// Channels, funcs, type parameters
		info.Kind = typeinfo.TypeKindUnknown
		info.ID = typeinfo.TypeID{Name: types.TypeString(t, pathQualifier)}
	}

	return info
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *typeinfo.TypeInfo) {
	info.ID = namedID(named)
	info.HasMapping = hasMapping(named)

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = typeinfo.TypeKindStruct
		a.analyzeStructFields(ut, info)

	case *types.Interface:
		info.Kind = typeinfo.TypeKindInterface

	case *types.Signature, *types.Chan:
		info.Kind = typeinfo.TypeKindUnknown

	default:
		// Defined type over a basic or composite type (e.g., type OrderStatus string)
		info.Kind = typeinfo.TypeKindNamed
		info.Underlying = a.analyzeType(ut)
		info.TextLike = isTextLike(named)
	}
}

// analyzeStructFields extracts exported fields, plus unexported embedded
// fields whose exported fields are promoted.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *typeinfo.TypeInfo) {
	for i := range st.NumFields() {
		field := st.Field(i)

		if !field.Exported() && !field.Embedded() {
			continue
		}

		info.Fields = append(info.Fields, typeinfo.FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     a.analyzeType(field.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		})
	}
}

// GetStruct returns the TypeInfo for a named struct.
func (a *Analyzer) GetStruct(pkgPath, typeName string) (*typeinfo.TypeInfo, error) {
	id := typeinfo.TypeID{PkgPath: pkgPath, Name: typeName}

	info := a.graph.GetType(id)
	if info == nil {
		return nil, fmt.Errorf("type %s not found", id)
	}

	if info.Kind != typeinfo.TypeKindStruct {
		return nil, fmt.Errorf("type %s is not a struct (kind: %s)", id, info.Kind)
	}

	return info, nil
}

// namedID spells a named type the way reflect does: instantiated generics
// carry their type arguments with full package paths ("Null[time.Time]").
func namedID(named *types.Named) typeinfo.TypeID {
	obj := named.Obj()

	var id typeinfo.TypeID
	if obj.Pkg() != nil {
		id.PkgPath = obj.Pkg().Path()
	}

	args := named.TypeArgs()
	if args.Len() == 0 {
		id.Name = obj.Name()
		return id
	}

	parts := make([]string, args.Len())
	for i := range args.Len() {
		parts[i] = types.TypeString(args.At(i), pathQualifier)
	}

	id.Name = obj.Name() + "[" + strings.Join(parts, ",") + "]"

	return id
}

// basicName returns the reflect kind name of a basic type, so byte and rune
// read as uint8 and int32.
func basicName(b *types.Basic) string {
	switch b.Kind() {
	case types.Byte:
		return "uint8"
	case types.Rune:
		return "int32"
	case types.UnsafePointer:
		return "unsafe.Pointer"
	default:
		return b.Name()
	}
}

func pathQualifier(p *types.Package) string {
	return p.Path()
}

func shortQualifier(p *types.Package) string {
	return common.PkgAlias(p.Path())
}

var (
	stringerIface      = methodIface("String", types.Typ[types.String])
	textMarshalerIface = methodIface("MarshalText", types.NewSlice(types.Typ[types.Byte]), types.Universe.Lookup("error").Type())
)

// methodIface builds interface{ name() (results...) }.
func methodIface(name string, results ...types.Type) *types.Interface {
	vars := make([]*types.Var, len(results))
	for i, r := range results {
		vars[i] = types.NewVar(token.NoPos, nil, "", r)
	}

	sig := types.NewSignatureType(nil, nil, nil, nil, types.NewTuple(vars...), false)
	fn := types.NewFunc(token.NoPos, nil, name, sig)

	return types.NewInterfaceType([]*types.Func{fn}, nil).Complete()
}

// isTextLike reports whether the type or its pointer implements
// fmt.Stringer or encoding.TextMarshaler.
func isTextLike(named *types.Named) bool {
	ptr := types.NewPointer(named)

	return types.Implements(ptr, stringerIface) || types.Implements(ptr, textMarshalerIface)
}

var schemaNodeType = reflect.TypeFor[schema.Node]()

// hasMapping reports whether the type or its pointer has
// Mapping() (schema.Node, error).
func hasMapping(named *types.Named) bool {
	obj, _, _ := types.LookupFieldOrMethod(named, true, named.Obj().Pkg(), "Mapping")

	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}

	sig := fn.Type().(*types.Signature)
	if sig.Params().Len() != 0 || sig.Results().Len() != 2 {
		return false
	}

	node, ok := types.Unalias(sig.Results().At(0).Type()).(*types.Named)
	if !ok || node.Obj().Pkg() == nil {
		return false
	}

	return node.Obj().Pkg().Path() == schemaNodeType.PkgPath() &&
		node.Obj().Name() == schemaNodeType.Name() &&
		types.Identical(sig.Results().At(1).Type(), types.Universe.Lookup("error").Type())
}
