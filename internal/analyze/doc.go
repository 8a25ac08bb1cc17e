// Package analyze loads Go packages from source and describes their types
// as a typeinfo graph, so mappings can be computed without compiling or
// running the code that declares the types.
//
// It uses golang.org/x/tools/go/packages with go/types. The graph matches
// what typeinfo.FromReflect produces for the same types: same IDs, same
// field lists, same enum detection.
package analyze
