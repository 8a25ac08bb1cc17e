package mapper

import (
	"log/slog"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"

	"es-mapper/schema"
	"es-mapper/typeinfo"
)

// DefaultMaxDepth is the deepest chain of nested structs mapped before
// ErrMaxDepth is returned.
const DefaultMaxDepth = 64

type config struct {
	logger        *slog.Logger
	registerer    prometheus.Registerer
	cycles        CyclePolicy
	duplicates    DuplicatePolicy
	maxDepth      int
	kinds         map[string]schema.Node
	scalingFactor float64
	overrides     map[string]map[string]FieldOverride
}

// Option configures a Mapper.
type Option func(*config)

// WithLogger sets the logger. Without it the mapper logs to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRegisterer registers the mapper's metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) {
		c.registerer = reg
	}
}

// WithCyclePolicy sets how self-referencing types are handled.
func WithCyclePolicy(p CyclePolicy) Option {
	return func(c *config) {
		c.cycles = p
	}
}

// WithDuplicatePolicy sets how clashing output names are handled.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(c *config) {
		c.duplicates = p
	}
}

// WithMaxDepth limits struct nesting. Non-positive values keep the default.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithKind maps every field of the type with the given ID
// ("github.com/shopspring/decimal.Decimal") to node.
func WithKind(typeID string, node schema.Node) Option {
	return func(c *config) {
		if c.kinds == nil {
			c.kinds = make(map[string]schema.Node)
		}

		c.kinds[typeID] = node
	}
}

// WithScalingFactor sets the scaling_factor of scaled_float nodes emitted
// for well-known decimal types.
func WithScalingFactor(factor float64) Option {
	return func(c *config) {
		c.scalingFactor = factor
	}
}

// WithFieldOverride overrides one field of the struct with the given ID.
// It wins over the field's struct tag.
func WithFieldOverride(typeID, field string, o FieldOverride) Option {
	return func(c *config) {
		if c.overrides == nil {
			c.overrides = make(map[string]map[string]FieldOverride)
		}

		if c.overrides[typeID] == nil {
			c.overrides[typeID] = make(map[string]FieldOverride)
		}

		c.overrides[typeID][field] = o
	}
}

// Field overrides a field of T.
//
//	mapper.New(mapper.Field[Order]("Notes", mapper.FieldOverride{Hint: mapper.HintText}))
func Field[T any](field string, o FieldOverride) Option {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return WithFieldOverride(typeinfo.IDOf(t).String(), field, o)
}
