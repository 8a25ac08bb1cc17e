package mapper_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"es-mapper/mapper"
	"es-mapper/schema"
)

func TestGroupByKind(t *testing.T) {
	tm, err := mapper.New().TypeMapping(reflect.TypeFor[order]())
	require.NoError(t, err)

	groups := mapper.GroupByKind(tm)

	var kinds []schema.Kind
	for _, g := range groups {
		kinds = append(kinds, g.Kind)
	}

	assert.Equal(t, []schema.Kind{
		schema.KindBinary,
		schema.KindBoolean,
		schema.KindDate,
		schema.KindDouble,
		schema.KindInteger,
		schema.KindIP,
		schema.KindKeyword,
		schema.KindLong,
		schema.KindObject,
		schema.KindText,
		schema.KindUnsignedLong,
	}, kinds)

	assert.Equal(t, mapper.KindGroup{Kind: schema.KindDate, Fields: []string{"placed", "shipped"}}, groups[2])
}

func TestDescribe_MarksContainers(t *testing.T) {
	m := mapper.New(mapper.WithCyclePolicy(mapper.CycleTruncate))

	tm, err := m.TypeMapping(reflect.TypeFor[category]())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, mapper.Describe(&buf, tm))

	assert.Contains(t, buf.String(), "object (disabled)")

	tm, err = m.TypeMapping(reflect.TypeFor[customer]())
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, mapper.Describe(&buf, tm))
	assert.Contains(t, buf.String(), "object{2}")
}
