package typeinfo

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type status string

func (s status) String() string { return string(s) }

type level int

type base struct {
	ID int64
}

type node struct {
	base
	Name     string
	Tags     []string
	Parent   *node
	Children []node
	Status   status
	Level    level
	Attrs    map[string]any
	Inner    struct{ X int }
	Callback func()
	hidden   bool
}

func TestIDOf(t *testing.T) {
	assert.Equal(t, TypeID{PkgPath: "es-mapper/typeinfo", Name: "node"}, IDOf(reflect.TypeFor[node]()))
	assert.Equal(t, TypeID{Name: "int"}, IDOf(reflect.TypeFor[int]()))
	assert.Equal(t, TypeID{PkgPath: "time", Name: "Time"}, IDOf(reflect.TypeFor[time.Time]()))
	assert.True(t, IDOf(reflect.TypeFor[*node]()).IsZero())
	assert.True(t, IDOf(reflect.TypeFor[[]node]()).IsZero())
	assert.Equal(t, TypeID{Name: "struct { X int }"}, IDOf(reflect.TypeFor[struct{ X int }]()))
	assert.True(t, IDOf(nil).IsZero())
}

func TestFromReflect_Struct(t *testing.T) {
	info := FromReflect(reflect.TypeFor[node]())
	require.NotNil(t, info)

	assert.Equal(t, TypeKindStruct, info.Kind)
	assert.Equal(t, "es-mapper/typeinfo.node", info.Key())

	var names []string
	for _, f := range info.Fields {
		names = append(names, f.Name)
	}

	// hidden is dropped, the unexported embedded base is kept for promotion
	assert.Equal(t, []string{"base", "Name", "Tags", "Parent", "Children", "Status", "Level", "Attrs", "Inner", "Callback"}, names)

	embedded, ok := info.Field("base")
	require.True(t, ok)
	assert.True(t, embedded.Embedded)
	assert.False(t, embedded.Exported)
}

func TestFromReflect_RecursiveTypesShareInfo(t *testing.T) {
	info := FromReflect(reflect.TypeFor[node]())

	parent, ok := info.Field("Parent")
	require.True(t, ok)
	assert.Equal(t, TypeKindPointer, parent.Type.Kind)
	assert.Same(t, info, parent.Type.ElemType)

	children, ok := info.Field("Children")
	require.True(t, ok)
	assert.Equal(t, TypeKindSlice, children.Type.Kind)
	assert.Same(t, info, children.Type.ElemType)
}

func TestFromReflect_Kinds(t *testing.T) {
	info := FromReflect(reflect.TypeFor[node]())

	tests := []struct {
		field string
		kind  TypeKind
	}{
		{"Name", TypeKindBasic},
		{"Tags", TypeKindSlice},
		{"Status", TypeKindNamed},
		{"Level", TypeKindNamed},
		{"Attrs", TypeKindMap},
		{"Inner", TypeKindStruct},
		{"Callback", TypeKindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f, ok := info.Field(tt.field)
			require.True(t, ok)
			assert.Equal(t, tt.kind, f.Type.Kind)
		})
	}
}

func TestFromReflect_NamedTypes(t *testing.T) {
	info := FromReflect(reflect.TypeFor[node]())

	st, _ := info.Field("Status")
	assert.True(t, st.Type.TextLike)
	assert.Equal(t, "string", st.Type.Underlying.ID.Name)
	assert.Equal(t, TypeKindBasic, st.Type.Underlying.Kind)

	lv, _ := info.Field("Level")
	assert.False(t, lv.Type.TextLike)
	assert.Equal(t, "int", lv.Type.Underlying.ID.Name)

	raw := FromReflect(reflect.TypeFor[[]byte]())
	assert.Equal(t, TypeKindSlice, raw.Kind)
	assert.Equal(t, "uint8", raw.ElemType.ID.Name)

	dur := FromReflect(reflect.TypeFor[time.Duration]())
	assert.Equal(t, TypeKindNamed, dur.Kind)
	assert.Equal(t, TypeID{PkgPath: "time", Name: "Duration"}, dur.ID)
	assert.Equal(t, "int64", dur.Underlying.ID.Name)
}

func TestFromReflect_Nil(t *testing.T) {
	assert.Nil(t, FromReflect(nil))
}

func TestTypeInfo_String(t *testing.T) {
	info := FromReflect(reflect.TypeFor[node]())
	children, _ := info.Field("Children")
	parent, _ := info.Field("Parent")
	attrs, _ := info.Field("Attrs")

	assert.Equal(t, "[]es-mapper/typeinfo.node", children.Type.String())
	assert.Equal(t, "*es-mapper/typeinfo.node", parent.Type.String())
	assert.Equal(t, "map[string]interface{...}", attrs.Type.String())
}

func ExampleFromReflect() {
	type Address struct {
		Street string
		Zip    *string
	}

	info := FromReflect(reflect.TypeFor[Address]())
	for _, f := range info.Fields {
		fmt.Println(f.Name, f.Type.Kind)
	}
	// Output:
	// Street basic
	// Zip pointer
}
