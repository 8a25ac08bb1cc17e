// Package diagnostic collects structured errors, warnings and infos found
// while checking an overrides file against the loaded types.
//
// Each diagnostic carries a stable code, the struct type and field it is
// about, and optional "did you mean" suggestions.
package diagnostic
