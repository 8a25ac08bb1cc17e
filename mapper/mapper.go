package mapper

import (
	"fmt"
	"log/slog"
	"reflect"

	"es-mapper/schema"
	"es-mapper/typeinfo"
)

// FieldMapping pairs a field with the node it produced.
type FieldMapping struct {
	Descriptor FieldDescriptor
	Name       string
	Node       schema.Node
}

// TypeMapping is the cached result for one struct type. It is shared by all
// callers and must not be modified.
type TypeMapping struct {
	Type   typeinfo.TypeID
	Tree   *schema.Tree
	Fields []FieldMapping
	// Cyclic is set when the tree holds a disabled object left by
	// CycleTruncate.
	Cyclic bool
}

// Mapper builds and caches mappings of struct types.
// It is safe for concurrent use.
type Mapper struct {
	logger     *slog.Logger
	classifier *Classifier
	overrides  map[string]map[string]FieldOverride
	cycles     CyclePolicy
	duplicates DuplicatePolicy
	maxDepth   int
	metrics    *metrics
	cache      cache
}

// New returns a Mapper with an empty cache.
func New(opts ...Option) *Mapper {
	cfg := config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Mapper{
		logger:     cfg.logger,
		classifier: NewClassifier(cfg.kinds, cfg.scalingFactor),
		overrides:  cfg.overrides,
		cycles:     cfg.cycles,
		duplicates: cfg.duplicates,
		maxDepth:   cfg.maxDepth,
		metrics:    newMetrics(cfg.registerer),
	}
}

func (m *Mapper) log() *slog.Logger {
	if m.logger != nil {
		return m.logger
	}

	return slog.Default()
}

// Len returns the number of cached type mappings.
func (m *Mapper) Len() int {
	return m.cache.len()
}

// GetMapping returns the mapping tree of a struct type (or pointer to one).
func (m *Mapper) GetMapping(t reflect.Type) (*schema.Tree, error) {
	tm, err := m.TypeMapping(t)
	if err != nil {
		return nil, err
	}

	return tm.Tree, nil
}

// MapInfo returns the mapping tree of a described struct type.
func (m *Mapper) MapInfo(info *typeinfo.TypeInfo) (*schema.Tree, error) {
	tm, err := m.TypeMappingInfo(info)
	if err != nil {
		return nil, err
	}

	return tm.Tree, nil
}

// TypeMapping returns the cached unit of a struct type, computing it on
// first use.
func (m *Mapper) TypeMapping(t reflect.Type) (*TypeMapping, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrNotStruct, t)
	}

	key := m.cache.reflectKey(t)
	if tm, ok := m.cache.load(key); ok {
		m.metrics.hits.Inc()
		return tm, nil
	}

	return m.compute(key, func() *typeinfo.TypeInfo {
		return typeinfo.FromReflect(t)
	})
}

// TypeMappingInfo is TypeMapping for a described type. Anonymous structs
// without an ID are mapped on every call.
func (m *Mapper) TypeMappingInfo(info *typeinfo.TypeInfo) (*TypeMapping, error) {
	info = info.Deref()
	if info == nil || info.Kind != typeinfo.TypeKindStruct {
		return nil, fmt.Errorf("%w: %v", ErrNotStruct, info)
	}

	if info.ID.IsZero() {
		m.metrics.misses.Inc()

		tm, _, err := m.newWalk(info).build(info)

		return tm, err
	}

	key := m.key(info)
	if tm, ok := m.cache.load(key); ok {
		m.metrics.hits.Inc()
		return tm, nil
	}

	return m.compute(key, func() *typeinfo.TypeInfo { return info })
}

func (m *Mapper) compute(key string, resolve func() *typeinfo.TypeInfo) (*TypeMapping, error) {
	return m.cache.once(key, func() (*TypeMapping, error) {
		if tm, ok := m.cache.load(key); ok {
			m.metrics.hits.Inc()
			return tm, nil
		}

		m.metrics.misses.Inc()
		m.log().Debug("mapping type", "type", key)

		info := resolve()

		tm, _, err := m.newWalk(info).build(info)
		if err != nil {
			return nil, err
		}

		return m.store(key, tm), nil
	})
}

func (m *Mapper) store(key string, tm *TypeMapping) *TypeMapping {
	stored, added := m.cache.store(key, tm)
	if added {
		m.metrics.cached.Inc()
	}

	return stored
}

// walk is the state of one top-level computation.
type walk struct {
	m *Mapper

	path    *typeinfo.TypePath
	keys    []string
	cyclic  map[string]bool
	tainted map[string]bool
}

func (m *Mapper) newWalk(root *typeinfo.TypeInfo) *walk {
	return &walk{
		m:       m,
		path:    typeinfo.NewTypePath(root.ID.Name),
		cyclic:  make(map[string]bool),
		tainted: make(map[string]bool),
	}
}

// key identifies t on the walk stack and in the cache. Runtime types are
// keyed by reflect.Type identity; types without an ID fall back to their
// address.
func (m *Mapper) key(t *typeinfo.TypeInfo) string {
	switch {
	case t.ReflectType != nil:
		return m.cache.reflectKey(t.ReflectType)
	case t.ID.IsZero():
		return fmt.Sprintf("%p", t)
	default:
		return t.Key()
	}
}

// build maps one struct. storable is false when the tree was cut short by a
// cycle through a type above t, which makes it depend on the entry point.
func (w *walk) build(t *typeinfo.TypeInfo) (tm *TypeMapping, storable bool, err error) {
	if len(w.keys) >= w.m.maxDepth {
		return nil, false, fmt.Errorf("%w: %d at %s", ErrMaxDepth, w.m.maxDepth, w.path)
	}

	key := w.m.key(t)
	w.keys = append(w.keys, key)

	defer func() {
		w.keys = w.keys[:len(w.keys)-1]
		delete(w.cyclic, key)
		delete(w.tainted, key)
	}()

	fields := w.m.describe(t)
	tm = &TypeMapping{
		Type:   t.ID,
		Tree:   schema.NewTree(),
		Fields: make([]FieldMapping, 0, len(fields)),
	}

	parent := w.path
	defer func() { w.path = parent }()

	for _, d := range fields {
		name := d.OutputName()

		w.path = parent.Field(d.Name)
		if ft := d.Type.Deref(); ft != nil && (ft.Kind == typeinfo.TypeKindSlice || ft.Kind == typeinfo.TypeKindArray) {
			w.path = w.path.Slice()
		}

		node, err := w.m.classifier.Classify(d, w.nested)
		if err != nil {
			return nil, false, err
		}

		w.m.metrics.classified.Inc()

		if tm.Tree.Has(name) {
			if w.m.duplicates == DuplicateError {
				return nil, false, fmt.Errorf("%w: %q at %s", ErrDuplicateField, name, w.path)
			}

			w.m.log().Warn("duplicate field name, overwriting", "type", t.Key(), "field", d.Path, "name", name)
		}

		tm.Tree.Set(name, node)
		tm.Fields = append(tm.Fields, FieldMapping{Descriptor: d, Name: name, Node: node})
	}

	tm.Tree.Freeze()
	tm.Cyclic = w.cyclic[key]

	return tm, !w.tainted[key], nil
}

// nested is the Recurse callback of the walk.
func (w *walk) nested(t *typeinfo.TypeInfo) (*schema.Tree, error) {
	key := w.m.key(t)

	for i, k := range w.keys {
		if k == key {
			return w.cut(i, t)
		}
	}

	cacheable := !t.ID.IsZero()
	if cacheable {
		if tm, ok := w.m.cache.load(key); ok && !tm.Cyclic {
			w.m.metrics.hits.Inc()
			return tm.Tree, nil
		}
	}

	tm, storable, err := w.build(t)
	if err != nil {
		return nil, err
	}

	if !cacheable || !storable {
		return tm.Tree, nil
	}

	return w.m.store(key, tm).Tree, nil
}

// cut handles a field that leads back to the type at stack index i.
func (w *walk) cut(i int, t *typeinfo.TypeInfo) (*schema.Tree, error) {
	if w.m.cycles == CycleError {
		return nil, fmt.Errorf("%w: %s at %s", ErrCyclicType, t, w.path)
	}

	for _, k := range w.keys {
		w.cyclic[k] = true
	}

	for _, k := range w.keys[i+1:] {
		w.tainted[k] = true
	}

	w.m.log().Warn("cycle truncated", "type", t.Key(), "path", w.path.String())

	return nil, nil
}
