// Package match ranks known identifiers against an unknown one, to offer
// "did you mean" suggestions in override diagnostics.
//
// Key functions:
//   - Distance: edit distance between two strings
//   - Similarity: 0..1 score of two identifiers after normalization
//   - Suggest: the closest known names above a threshold
package match
