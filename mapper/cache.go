package mapper

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"es-mapper/typeinfo"
)

// cache holds one TypeMapping per type key for the life of the mapper.
type cache struct {
	entries sync.Map // string -> *TypeMapping
	flight  singleflight.Group
	size    atomic.Int64

	// Runtime types get keys of their own: function-local types share
	// package path and name.
	typeKeys sync.Map // reflect.Type -> string
	mu       sync.Mutex
	claimed  map[string]int // type ID -> runtime types keyed under it
}

// reflectKey returns the cache key of a runtime type. The first type seen
// with a given ID is keyed by the ID itself, later distinct types by the
// ID and a "#n" suffix.
func (c *cache) reflectKey(t reflect.Type) string {
	if k, ok := c.typeKeys.Load(t); ok {
		return k.(string)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if k, ok := c.typeKeys.Load(t); ok {
		return k.(string)
	}

	if c.claimed == nil {
		c.claimed = make(map[string]int)
	}

	id := typeinfo.IDOf(t).String()
	n := c.claimed[id] + 1
	c.claimed[id] = n

	key := id
	if n > 1 {
		key = fmt.Sprintf("%s#%d", id, n)
	}

	c.typeKeys.Store(t, key)

	return key
}

func (c *cache) load(key string) (*TypeMapping, bool) {
	v, ok := c.entries.Load(key)
	if !ok {
		return nil, false
	}

	return v.(*TypeMapping), true
}

// store keeps the first mapping stored under key and returns it.
func (c *cache) store(key string, tm *TypeMapping) (stored *TypeMapping, added bool) {
	v, loaded := c.entries.LoadOrStore(key, tm)
	if !loaded {
		c.size.Add(1)
	}

	return v.(*TypeMapping), !loaded
}

// once runs fn at most once at a time per key; concurrent callers share
// the result.
func (c *cache) once(key string, fn func() (*TypeMapping, error)) (*TypeMapping, error) {
	v, err, _ := c.flight.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		return nil, err
	}

	return v.(*TypeMapping), nil
}

func (c *cache) len() int {
	return int(c.size.Load())
}
