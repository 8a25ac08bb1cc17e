package mapper

import (
	"reflect"
	"strings"

	"es-mapper/naming"
	"es-mapper/schema"
	"es-mapper/typeinfo"
)

// TagKey is the struct tag read by the mapper.
//
//	Name     string `es:"full_name,text"`
//	Internal string `es:"-"`
//	Location Point  `es:",type=geo_point"`
//	Lines    []Line `es:",nested"`
//
// The first element overrides the output name. Options: "keyword" and
// "text" select the string kind, "nested" maps structs as nested instead of
// object, "type=<kind>" replaces the whole mapping with a bare node of that
// kind. A lone "-" ignores the field.
const TagKey = "es"

// FieldDescriptor is one field of a struct as seen by the classifier.
type FieldDescriptor struct {
	// Name is the declared Go field name.
	Name string
	// Path is the dotted Go path from the mapped struct, through promoted
	// embedded structs ("Audit.CreatedBy").
	Path string
	// Type is the declared field type.
	Type *typeinfo.TypeInfo

	NameOverride string
	Ignore       bool
	Custom       CustomMapper
	Hint         StringHint
	Nested       bool
}

// OutputName is the field name in the mapping.
func (d FieldDescriptor) OutputName() string {
	if d.NameOverride != "" {
		return d.NameOverride
	}

	return naming.ToFieldName(d.Name)
}

// FieldOverride replaces what a struct tag would declare for one field.
// Zero values leave the tag's setting in place.
type FieldOverride struct {
	Name   string
	Ignore bool
	Hint   StringHint
	Nested bool
	Custom CustomMapper
}

func (d *FieldDescriptor) apply(o FieldOverride) {
	if o.Name != "" {
		d.NameOverride = o.Name
	}

	if o.Ignore {
		d.Ignore = true
	}

	if o.Hint != HintNone {
		d.Hint = o.Hint
	}

	if o.Nested {
		d.Nested = true
	}

	if o.Custom != nil {
		d.Custom = o.Custom
	}
}

// parseTag reads the es tag of a field. Unknown options are returned so the
// caller can report them.
func parseTag(tag reflect.StructTag) (d FieldDescriptor, unknown []string) {
	value, ok := tag.Lookup(TagKey)
	if !ok {
		return d, nil
	}

	if value == "-" {
		d.Ignore = true
		return d, nil
	}

	name, opts, _ := strings.Cut(value, ",")
	d.NameOverride = name

	for opt := range strings.SplitSeq(opts, ",") {
		switch {
		case opt == "":
		case opt == "keyword":
			d.Hint = HintKeyword
		case opt == "text":
			d.Hint = HintText
		case opt == "nested":
			d.Nested = true
		case strings.HasPrefix(opt, "type="):
			if kind := strings.TrimPrefix(opt, "type="); kind != "" {
				d.Custom = Literal(schema.Leaf(schema.Kind(kind)))
			}
		default:
			unknown = append(unknown, opt)
		}
	}

	return d, unknown
}

// describe lists the mappable fields of a struct in declaration order.
// Fields of untagged embedded structs are promoted in place, as
// encoding/json does. Ignored fields are dropped.
func (m *Mapper) describe(info *typeinfo.TypeInfo) []FieldDescriptor {
	var out []FieldDescriptor

	m.collectFields(info, "", make(map[*typeinfo.TypeInfo]bool), &out)

	return out
}

func (m *Mapper) collectFields(t *typeinfo.TypeInfo, prefix string, visiting map[*typeinfo.TypeInfo]bool, out *[]FieldDescriptor) {
	if visiting[t] {
		return
	}

	visiting[t] = true
	defer delete(visiting, t)

	overrides := m.overrides[t.Key()]

	for i := range t.Fields {
		field := &t.Fields[i]

		d, unknown := parseTag(field.Tag)
		if len(unknown) > 0 {
			m.log().Debug("unknown es tag options", "type", t.Key(), "field", field.Name, "options", unknown)
		}

		d.Name = field.Name
		d.Path = prefix + field.Name
		d.Type = field.Type

		if o, ok := overrides[field.Name]; ok {
			d.apply(o)
		}

		if d.Ignore {
			continue
		}

		if field.Embedded && m.promotes(&d) {
			m.collectFields(field.Type.Deref(), d.Path+".", visiting, out)
			continue
		}

		if !field.Exported {
			continue
		}

		*out = append(*out, d)
	}
}

// promotes reports whether an embedded field is flattened into its parent.
func (m *Mapper) promotes(d *FieldDescriptor) bool {
	if d.NameOverride != "" || d.Custom != nil || d.Nested {
		return false
	}

	t := d.Type.Deref()
	if t == nil || t.Kind != typeinfo.TypeKindStruct {
		return false
	}

	if _, ok := m.classifier.wellKnown(t); ok {
		return false
	}

	_, custom := typeMapper(t)

	return !custom
}
