package mapper

import "errors"

var (
	// ErrNotStruct is returned when the requested root type is not a struct
	// (or pointer to one).
	ErrNotStruct = errors.New("mapping root is not a struct")
	// ErrCyclicType is returned under CycleError when a struct type contains
	// itself, directly or through other types.
	ErrCyclicType = errors.New("cyclic type")
	// ErrMaxDepth is returned when struct nesting exceeds the configured depth.
	ErrMaxDepth = errors.New("max mapping depth exceeded")
	// ErrDuplicateField is returned under DuplicateError when two fields
	// resolve to the same output name.
	ErrDuplicateField = errors.New("duplicate field name")
)
