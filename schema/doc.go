// Package schema holds the index mapping tree produced by the mapper.
//
// A Tree is an insertion-ordered set of field name to Node. A Node carries a
// field kind ("keyword", "long", "object", ...), optional kind parameters
// and, for object and nested nodes, the nested Tree.
//
// Trees encode to the JSON shape search backends accept under
// "mappings":
//
//	{"properties": {"user_id": {"type": "keyword"}, ...}}
//
// Trees returned by the mapper are frozen and shared between callers; they
// must be treated as read-only.
package schema
