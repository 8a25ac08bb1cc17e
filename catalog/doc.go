// Package catalog holds the documents of a small shop index. The CLI uses
// them as its default example and tests use them to check that the source
// loader and reflection agree.
package catalog
