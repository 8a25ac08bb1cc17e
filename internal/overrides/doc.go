// Package overrides reads mapping overrides from a YAML file, checks them
// against a type graph and turns them into mapper options.
//
// An overrides file changes how fields are mapped without touching the
// struct tags of the types:
//
//	version: "1"
//	cycles: truncate          # error (default) | truncate
//	duplicates: error         # overwrite (default) | error
//	max_depth: 32
//	scaling_factor: 1000
//	kinds:
//	  github.com/shopspring/decimal.Decimal: scaled_float
//	  es-mapper/catalog.Money:
//	    type: scaled_float
//	    scaling_factor: 10000
//	types:
//	  - type: catalog.Order
//	    ignore: [Currency]
//	    fields:
//	      Notes: text                  # shorthand: text | keyword | nested | ignore
//	      OrderNumber:
//	        name: number
//	        keyword: true
//	      Items:
//	        nested: true
//	      Location:
//	        mapping: geo_point         # full node, bypasses classification
//
// # Priority
//
// Overrides from the file win over struct tags field by field: a file entry
// that only sets "text" keeps the tag's name. "mapping" replaces the node
// entirely, like a CustomMapper.
//
// Fields are named by their Go name on the struct that declares them. A
// field promoted from an embedded struct is overridden on the embedded
// struct's type.
package overrides
