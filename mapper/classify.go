package mapper

import (
	"maps"
	"strings"

	"es-mapper/schema"
	"es-mapper/typeinfo"
)

// Recurse maps a nested struct type. A nil tree with a nil error means the
// type was cut off by CycleTruncate and the field becomes a disabled object.
type Recurse func(t *typeinfo.TypeInfo) (*schema.Tree, error)

// wellKnownKinds maps type IDs to the node emitted for them. scaled_float
// entries are completed with the classifier's scaling factor.
var wellKnownKinds = map[string]schema.Kind{
	"time.Time":                             schema.KindDate,
	"cloud.google.com/go/civil.Date":        schema.KindDate,
	"cloud.google.com/go/civil.DateTime":    schema.KindDate,
	"cloud.google.com/go/civil.Time":        schema.KindDate,
	"time.Duration":                         schema.KindLong,
	"math/big.Int":                          schema.KindLong,
	"github.com/google/uuid.UUID":           schema.KindKeyword,
	"net/url.URL":                           schema.KindKeyword,
	"net/mail.Address":                      schema.KindKeyword,
	"net.IP":                                schema.KindIP,
	"net/netip.Addr":                        schema.KindIP,
	"math/big.Float":                        schema.KindScaledFloat,
	"math/big.Rat":                          schema.KindScaledFloat,
	"github.com/shopspring/decimal.Decimal": schema.KindScaledFloat,
	"encoding/json.RawMessage":              schema.KindObject,
	"gorm.io/datatypes.JSON":                schema.KindObject,
}

// basicKinds maps predeclared type names to their node kind.
var basicKinds = map[string]schema.Kind{
	"string":  schema.KindKeyword,
	"bool":    schema.KindBoolean,
	"int":     schema.KindLong,
	"int32":   schema.KindLong,
	"rune":    schema.KindLong,
	"int64":   schema.KindLong,
	"uint32":  schema.KindLong,
	"int8":    schema.KindInteger,
	"int16":   schema.KindInteger,
	"uint8":   schema.KindInteger,
	"byte":    schema.KindInteger,
	"uint16":  schema.KindInteger,
	"uint":    schema.KindUnsignedLong,
	"uint64":  schema.KindUnsignedLong,
	"uintptr": schema.KindUnsignedLong,
	"float32": schema.KindDouble,
	"float64": schema.KindDouble,
}

// Classifier decides the node of a single field.
type Classifier struct {
	kinds         map[string]schema.Node
	scalingFactor float64
}

// NewClassifier returns a classifier knowing the built-in well-known types
// plus extra, which take precedence. A non-positive scaling factor selects
// schema.DefaultScalingFactor.
func NewClassifier(extra map[string]schema.Node, scalingFactor float64) *Classifier {
	if scalingFactor <= 0 {
		scalingFactor = schema.DefaultScalingFactor
	}

	kinds := make(map[string]schema.Node, len(wellKnownKinds)+len(extra))

	for id, kind := range wellKnownKinds {
		if kind == schema.KindScaledFloat {
			kinds[id] = schema.ScaledFloat(scalingFactor)
			continue
		}

		kinds[id] = schema.Leaf(kind)
	}

	maps.Copy(kinds, extra)

	return &Classifier{kinds: kinds, scalingFactor: scalingFactor}
}

var defaultClassifier = NewClassifier(nil, 0)

// Classify resolves a field with the built-in rules.
func Classify(d FieldDescriptor, recurse Recurse) (schema.Node, error) {
	return defaultClassifier.Classify(d, recurse)
}

// Classify resolves the node of d. Only a CustomMapper or recurse can fail;
// their errors are returned as is.
func (c *Classifier) Classify(d FieldDescriptor, recurse Recurse) (schema.Node, error) {
	if d.Custom != nil {
		return customNode(d.Custom)
	}

	return c.classify(d, d.Type, recurse)
}

func (c *Classifier) classify(d FieldDescriptor, t *typeinfo.TypeInfo, recurse Recurse) (schema.Node, error) {
	t = c.unwrap(t)
	if t == nil {
		return schema.Object(nil), nil
	}

	if custom, ok := typeMapper(t); ok {
		return customNode(custom)
	}

	if node, ok := c.wellKnown(t); ok {
		return node, nil
	}

	switch t.Kind {
	case typeinfo.TypeKindNamed:
		if t.TextLike {
			return stringNode(d.Hint), nil
		}

		return c.classify(d, t.Underlying, recurse)

	case typeinfo.TypeKindBasic:
		return basicNode(t.ID.Name, d.Hint), nil

	case typeinfo.TypeKindSlice, typeinfo.TypeKindArray:
		if isByte(t.ElemType) {
			return schema.Leaf(schema.KindBinary), nil
		}

		return c.classify(d, t.ElemType, recurse)

	case typeinfo.TypeKindStruct:
		tree, err := recurse(t)
		if err != nil {
			return schema.Node{}, err
		}

		if tree == nil {
			return schema.Disabled(), nil
		}

		if d.Nested {
			return schema.Nested(tree), nil
		}

		return schema.Object(tree), nil

	default:
		return schema.Object(nil), nil
	}
}

// unwrap strips pointers and database/sql null wrappers.
func (c *Classifier) unwrap(t *typeinfo.TypeInfo) *typeinfo.TypeInfo {
	for {
		t = t.Deref()
		if !isSQLNull(t) {
			return t
		}

		t = t.Fields[0].Type
	}
}

func (c *Classifier) wellKnown(t *typeinfo.TypeInfo) (schema.Node, bool) {
	if !t.IsNamed() {
		return schema.Node{}, false
	}

	node, ok := c.kinds[t.Key()]

	return node, ok
}

func isSQLNull(t *typeinfo.TypeInfo) bool {
	return t != nil &&
		t.Kind == typeinfo.TypeKindStruct &&
		t.ID.PkgPath == "database/sql" &&
		strings.HasPrefix(t.ID.Name, "Null") &&
		len(t.Fields) > 0
}

func isByte(t *typeinfo.TypeInfo) bool {
	for t != nil && t.Kind == typeinfo.TypeKindNamed && !t.TextLike {
		t = t.Underlying
	}

	return t != nil && t.Kind == typeinfo.TypeKindBasic && (t.ID.Name == "uint8" || t.ID.Name == "byte")
}

func basicNode(name string, hint StringHint) schema.Node {
	if name == "string" {
		return stringNode(hint)
	}

	if kind, ok := basicKinds[name]; ok {
		return schema.Leaf(kind)
	}

	// complex64, complex128, unsafe.Pointer
	return schema.Object(nil)
}

func stringNode(hint StringHint) schema.Node {
	if hint == HintText {
		return schema.Leaf(schema.KindText)
	}

	return schema.Leaf(schema.KindKeyword)
}
