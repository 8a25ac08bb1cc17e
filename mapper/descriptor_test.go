package mapper

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"es-mapper/schema"
	"es-mapper/typeinfo"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag      reflect.StructTag
		name     string
		ignore   bool
		hint     StringHint
		nested   bool
		custom   bool
		unknowns []string
	}{
		{tag: ``},
		{tag: `json:"x"`},
		{tag: `es:"-"`, ignore: true},
		{tag: `es:"-,"`, name: "-"},
		{tag: `es:"full_name"`, name: "full_name"},
		{tag: `es:",text"`, hint: HintText},
		{tag: `es:"sku,keyword"`, name: "sku", hint: HintKeyword},
		{tag: `es:",nested"`, nested: true},
		{tag: `es:",type=geo_point"`, custom: true},
		{tag: `es:",type="`},
		{tag: `es:",text,bogus"`, hint: HintText, unknowns: []string{"bogus"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			d, unknown := parseTag(tt.tag)

			assert.Equal(t, tt.name, d.NameOverride)
			assert.Equal(t, tt.ignore, d.Ignore)
			assert.Equal(t, tt.hint, d.Hint)
			assert.Equal(t, tt.nested, d.Nested)
			assert.Equal(t, tt.custom, d.Custom != nil)
			assert.Equal(t, tt.unknowns, unknown)
		})
	}
}

func TestParseTag_TypeOption(t *testing.T) {
	d, _ := parseTag(`es:",type=geo_point"`)
	require.NotNil(t, d.Custom)

	node, err := d.Custom.Mapping()
	require.NoError(t, err)
	assert.Equal(t, schema.Leaf("geo_point"), node)
}

func TestFieldDescriptor_OutputName(t *testing.T) {
	assert.Equal(t, "user_id", FieldDescriptor{Name: "UserID"}.OutputName())
	assert.Equal(t, "uid", FieldDescriptor{Name: "UserID", NameOverride: "uid"}.OutputName())
}

func TestFieldDescriptor_ApplyKeepsTagValues(t *testing.T) {
	d := FieldDescriptor{NameOverride: "tagged", Hint: HintText}
	d.apply(FieldOverride{Nested: true})

	assert.Equal(t, "tagged", d.NameOverride)
	assert.Equal(t, HintText, d.Hint)
	assert.True(t, d.Nested)

	d.apply(FieldOverride{Name: "renamed", Hint: HintKeyword, Ignore: true})
	assert.Equal(t, "renamed", d.NameOverride)
	assert.Equal(t, HintKeyword, d.Hint)
	assert.True(t, d.Ignore)
}

func TestDescribe_PromotesEmbeddedStructs(t *testing.T) {
	str := typeinfo.Basic("string")
	audit := typeinfo.NewStruct(typeinfo.TypeID{PkgPath: "shop", Name: "audit"}).
		Field("CreatedBy", str, "").
		Build()
	meta := typeinfo.NewStruct(typeinfo.TypeID{PkgPath: "shop", Name: "Meta"}).
		Field("Source", str, "").
		Build()
	stamp := typeinfo.Opaque(typeinfo.TypeID{PkgPath: "time", Name: "Time"})

	doc := typeinfo.NewStruct(typeinfo.TypeID{PkgPath: "shop", Name: "Doc"}).
		Field("Title", str, "").
		Embed(audit, "").
		Embed(typeinfo.PointerTo(meta), `es:"meta"`).
		Embed(stamp, "").
		Field("Secret", str, `es:"-"`).
		Build()

	m := New()

	var paths []string
	for _, d := range m.describe(doc) {
		paths = append(paths, d.Path)
	}

	assert.Equal(t, []string{"Title", "audit.CreatedBy", "Meta", "Time"}, paths)
}

func TestDescribe_OverridesWinOverTags(t *testing.T) {
	str := typeinfo.Basic("string")
	doc := typeinfo.NewStruct(typeinfo.TypeID{PkgPath: "shop", Name: "Doc"}).
		Field("Title", str, `es:"heading,keyword"`).
		Field("Body", str, "").
		Build()

	m := New(
		WithFieldOverride("shop.Doc", "Title", FieldOverride{Hint: HintText}),
		WithFieldOverride("shop.Doc", "Body", FieldOverride{Ignore: true}),
	)

	fields := m.describe(doc)
	require.Len(t, fields, 1)
	assert.Equal(t, "heading", fields[0].OutputName())
	assert.Equal(t, HintText, fields[0].Hint)
}

func TestDescribe_SelfEmbeddingTerminates(t *testing.T) {
	loop := typeinfo.NewStruct(typeinfo.TypeID{PkgPath: "shop", Name: "Loop"})
	info := loop.Info()
	loop.Field("Name", typeinfo.Basic("string"), "")
	loop.Embed(typeinfo.PointerTo(info), "")
	loop.Build()

	fields := New().describe(info)
	require.Len(t, fields, 1)
	assert.Equal(t, "Name", fields[0].Path)
}
