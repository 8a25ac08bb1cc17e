package mapper

import (
	"reflect"
	"sync"

	"es-mapper/schema"
)

// Default is the process-wide mapper used by Map.
var Default = sync.OnceValue(func() *Mapper { return New() })

// Map returns the mapping of T from the Default mapper.
func Map[T any]() (*schema.Tree, error) {
	return For[T](Default())
}

// For returns the mapping of T from m.
func For[T any](m *Mapper) (*schema.Tree, error) {
	return m.GetMapping(reflect.TypeFor[T]())
}
