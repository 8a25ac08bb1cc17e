package schema

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTree_SetKeepsInsertionOrder(t *testing.T) {
	tree := NewTree()
	assert.False(t, tree.Set("b", Leaf(KindKeyword)))
	assert.False(t, tree.Set("a", Leaf(KindLong)))
	assert.False(t, tree.Set("c", Leaf(KindDate)))

	assert.Equal(t, []string{"b", "a", "c"}, tree.Names())
	assert.Equal(t, 3, tree.Len())
}

func TestTree_SetOverwritesInPlace(t *testing.T) {
	tree := NewTree()
	tree.Set("id", Leaf(KindLong))
	tree.Set("name", Leaf(KindText))

	assert.True(t, tree.Set("id", Leaf(KindKeyword)))

	assert.Equal(t, []string{"id", "name"}, tree.Names())

	n, ok := tree.Get("id")
	require.True(t, ok)
	assert.Equal(t, KindKeyword, n.Kind)
}

func TestTree_NilIsEmpty(t *testing.T) {
	var tree *Tree

	assert.Equal(t, 0, tree.Len())
	assert.Nil(t, tree.Names())
	assert.False(t, tree.Has("x"))
	assert.True(t, tree.Equal(nil))
	assert.False(t, tree.Equal(NewTree()))

	for range tree.All() {
		t.Fatal("nil tree must not yield")
	}
}

func TestTree_FreezeIsDeep(t *testing.T) {
	inner := NewTree()
	inner.Set("street", Leaf(KindKeyword))

	tree := NewTree()
	tree.Set("address", Object(inner))
	tree.Freeze()

	assert.True(t, tree.Frozen())
	assert.True(t, inner.Frozen())
	assert.Panics(t, func() { tree.Set("x", Leaf(KindLong)) })
	assert.Panics(t, func() { inner.Set("x", Leaf(KindLong)) })
}

func TestTree_CloneIsUnfrozen(t *testing.T) {
	inner := NewTree()
	inner.Set("lat", Leaf(KindDouble))

	tree := NewTree()
	tree.Set("point", Object(inner).WithParam("dynamic", false))

	c := tree.Clone()
	tree.Freeze()

	require.True(t, c.Equal(tree))
	assert.False(t, c.Frozen())

	point, _ := c.Get("point")
	assert.False(t, point.Properties.Frozen())
	assert.NotPanics(t, func() { point.Properties.Set("lon", Leaf(KindDouble)) })
	assert.Equal(t, 1, inner.Len())

	assert.Nil(t, (*Tree)(nil).Clone())
}

func TestTree_AllStopsEarly(t *testing.T) {
	tree := NewTree()
	tree.Set("a", Leaf(KindLong))
	tree.Set("b", Leaf(KindLong))

	var seen []string
	for name := range tree.All() {
		seen = append(seen, name)
		break
	}

	assert.Equal(t, []string{"a"}, seen)
}

func TestNode_Equal(t *testing.T) {
	a := NewTree()
	a.Set("x", Leaf(KindKeyword))

	b := NewTree()
	b.Set("x", Leaf(KindKeyword))

	assert.True(t, Object(a).Equal(Object(b)))
	assert.False(t, Object(a).Equal(Nested(b)))
	assert.False(t, Object(a).Equal(Object(nil)))
	assert.True(t, ScaledFloat(100).Equal(ScaledFloat(100)))
	assert.False(t, ScaledFloat(100).Equal(ScaledFloat(10)))
	assert.False(t, Leaf(KindObject).Equal(Disabled()))
}

func TestNode_EqualComparesNumbersByValue(t *testing.T) {
	var decoded Node
	require.NoError(t, yaml.Unmarshal([]byte("{type: scaled_float, scaling_factor: 100}"), &decoded))

	assert.IsType(t, 0, decoded.Params["scaling_factor"])
	assert.True(t, decoded.Equal(ScaledFloat(100)))
	assert.True(t, ScaledFloat(100).Equal(decoded))
	assert.False(t, decoded.Equal(ScaledFloat(1000)))
	assert.False(t, ScaledFloat(100).Equal(Leaf(KindScaledFloat).WithParam("scaling_factor", "100")))
}

func TestNode_WithParamCopies(t *testing.T) {
	base := ScaledFloat(100)
	changed := base.WithParam("scaling_factor", 10.0)

	assert.Equal(t, 100.0, base.Params["scaling_factor"])
	assert.Equal(t, 10.0, changed.Params["scaling_factor"])
}

func TestDisabled(t *testing.T) {
	assert.True(t, Disabled().IsDisabled())
	assert.False(t, Object(nil).IsDisabled())
	assert.True(t, KindNested.IsContainer())
	assert.False(t, KindKeyword.IsContainer())
}

func sampleTree() *Tree {
	address := NewTree()
	address.Set("street", Leaf(KindKeyword))
	address.Set("city", Leaf(KindText))

	tree := NewTree()
	tree.Set("user_id", Leaf(KindKeyword))
	tree.Set("price", ScaledFloat(DefaultScalingFactor))
	tree.Set("address", Object(address))
	tree.Set("parent", Disabled())

	return tree
}

func TestTree_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(sampleTree())
	require.NoError(t, err)

	assert.JSONEq(t, `{"properties":{
		"user_id":{"type":"keyword"},
		"price":{"type":"scaled_float","scaling_factor":100},
		"address":{"type":"object","properties":{
			"street":{"type":"keyword"},
			"city":{"type":"text"}}},
		"parent":{"type":"object","enabled":false}}}`, string(data))

	// JSONEq ignores order; the raw output must keep it.
	assert.Equal(t,
		`{"properties":{"user_id":{"type":"keyword"},"price":{"type":"scaled_float","scaling_factor":100},`+
			`"address":{"type":"object","properties":{"street":{"type":"keyword"},"city":{"type":"text"}}},`+
			`"parent":{"type":"object","enabled":false}}}`,
		string(data))
}

func TestTree_MarshalJSONEmpty(t *testing.T) {
	data, err := json.Marshal(NewTree())
	require.NoError(t, err)
	assert.Equal(t, `{"properties":{}}`, string(data))

	data, err = json.Marshal(Object(nil))
	require.NoError(t, err)
	assert.Equal(t, `{"type":"object","properties":{}}`, string(data))
}

func TestTree_MarshalYAMLKeepsOrder(t *testing.T) {
	data, err := yaml.Marshal(sampleTree())
	require.NoError(t, err)

	expected := `properties:
    user_id:
        type: keyword
    price:
        type: scaled_float
        scaling_factor: 100
    address:
        type: object
        properties:
            street:
                type: keyword
            city:
                type: text
    parent:
        type: object
        enabled: false
`
	assert.Equal(t, expected, string(data))
}

func TestNode_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Node
	}{
		{"scalar shorthand", `keyword`, Leaf(KindKeyword)},
		{"full form", `{type: geo_point}`, Leaf("geo_point")},
		{"params", `{type: scaled_float, scaling_factor: 10.0}`, ScaledFloat(10)},
		{"properties without type", `{properties: {a: long}}`, Node{Kind: KindObject, Properties: func() *Tree {
			tr := NewTree()
			tr.Set("a", Leaf(KindLong))
			return tr
		}()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Node
			require.NoError(t, yaml.Unmarshal([]byte(tt.input), &n))
			assert.True(t, tt.expected.Equal(n), "got %#v", n)
		})
	}
}

func TestNode_UnmarshalYAMLErrors(t *testing.T) {
	for _, input := range []string{`{scaling_factor: 1}`, `[a, b]`, `""`} {
		var n Node
		assert.Error(t, yaml.Unmarshal([]byte(input), &n), input)
	}
}

func TestTree_UnmarshalYAMLKeepsOrder(t *testing.T) {
	input := `
properties:
  zeta: keyword
  alpha: {type: long}
  mid:
    type: nested
    properties:
      inner: text
`
	var tree Tree
	require.NoError(t, yaml.Unmarshal([]byte(input), &tree))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, tree.Names())

	mid, ok := tree.Get("mid")
	require.True(t, ok)
	assert.Equal(t, KindNested, mid.Kind)
	assert.True(t, slices.Equal([]string{"inner"}, mid.Properties.Names()))
}
