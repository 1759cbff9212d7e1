package typex

import (
	"fmt"
	"reflect"
	"strings"
)

var _ Mapping = (*OrderedMap)(nil)

// Pair is a single key/value entry of an [OrderedMap].
type Pair struct {
	Key   any
	Value any
}

// OrderedMap is a [Mapping] that preserves insertion order.
// Keys are compared with [reflect.DeepEqual], so they don't need to be comparable.
//
// Note that an OrderedMap is not concurrency safe.
type OrderedMap struct {
	pairs []Pair
}

// NewOrderedMap creates an [OrderedMap] from the given pairs, in order.
// Later pairs replace the values of earlier pairs with an equal key.
func NewOrderedMap(pairs ...Pair) *OrderedMap {
	m := &OrderedMap{}
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// Set adds a key/value pair, or replaces the value of an existing key without changing its position.
func (m *OrderedMap) Set(key, value any) *OrderedMap {
	for i := range m.pairs {
		if reflect.DeepEqual(m.pairs[i].Key, key) {
			m.pairs[i].Value = value
			return m
		}
	}
	m.pairs = append(m.pairs, Pair{Key: key, Value: value})
	return m
}

func (m *OrderedMap) Get(key any) (any, bool) {
	if m == nil {
		return nil, false
	}
	for _, p := range m.pairs {
		if reflect.DeepEqual(p.Key, key) {
			return p.Value, true
		}
	}
	return nil, false
}

func (m *OrderedMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

func (m *OrderedMap) Range(fn func(key, value any) bool) {
	if m == nil {
		return
	}
	for _, p := range m.pairs {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// Pairs returns a copy of the entries in order.
func (m *OrderedMap) Pairs() []Pair {
	if m == nil {
		return nil
	}
	return append([]Pair(nil), m.pairs...)
}

func (m *OrderedMap) GoString() string {
	var buf strings.Builder
	buf.WriteString("typex.OrderedMap{")
	m.Range(func(key, value any) bool {
		if buf.Len() > len("typex.OrderedMap{") {
			buf.WriteString(", ")
		}
		buf.WriteString(fmt.Sprintf("%#v: %#v", key, value))
		return true
	})
	buf.WriteString("}")
	return buf.String()
}
