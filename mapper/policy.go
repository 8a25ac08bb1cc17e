package mapper

import "fmt"

//go:generate go tool stringer -type=StringHint,CyclePolicy,DuplicatePolicy -linecomment -output=policy_string.go

// StringHint selects how string fields are indexed.
type StringHint int

const (
	HintNone    StringHint = iota // none
	HintKeyword                   // keyword
	HintText                      // text
)

// CyclePolicy decides what happens when a struct type is reached again
// while it is still being mapped.
type CyclePolicy int

const (
	// CycleError fails the mapping with ErrCyclicType.
	CycleError CyclePolicy = iota // error
	// CycleTruncate maps the revisiting field as a disabled object.
	CycleTruncate // truncate
)

// DuplicatePolicy decides what happens when two fields of one struct resolve
// to the same output name.
type DuplicatePolicy int

const (
	// DuplicateOverwrite keeps the first position and the later field's node.
	DuplicateOverwrite DuplicatePolicy = iota // overwrite
	// DuplicateError fails the mapping with ErrDuplicateField.
	DuplicateError // error
)

// ParseCyclePolicy parses "error" or "truncate".
func ParseCyclePolicy(s string) (CyclePolicy, error) {
	for _, p := range []CyclePolicy{CycleError, CycleTruncate} {
		if p.String() == s {
			return p, nil
		}
	}

	return 0, fmt.Errorf("unknown cycle policy %q", s)
}

// ParseDuplicatePolicy parses "overwrite" or "error".
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	for _, p := range []DuplicatePolicy{DuplicateOverwrite, DuplicateError} {
		if p.String() == s {
			return p, nil
		}
	}

	return 0, fmt.Errorf("unknown duplicate policy %q", s)
}
