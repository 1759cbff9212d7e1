package typex

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Mapping is a key/value container with a natural iteration order.
// Range must visit pairs in the same order every time, stopping early if fn returns false.
type Mapping interface {
	Len() int
	Range(fn func(key, value any) bool)
}

// container is a value whose elements can be inspected without consuming it.
type container struct {
	rv      reflect.Value
	mapping Mapping
}

// inspect returns a container if value is iterable, but not an iterator.
// Channels and functions are iterators, and strings are treated as atoms.
func inspect(value any) (container, bool) {
	if m, ok := value.(Mapping); ok {
		return container{mapping: m}, true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return container{rv: rv}, true
	default:
		return container{}, false
	}
}

func (c container) Len() int {
	if c.mapping != nil {
		return c.mapping.Len()
	}
	return c.rv.Len()
}

// elements visits each element in order.
// Maps yield their keys.
func (c container) elements(fn func(i int, elem any) bool) {
	if c.mapping != nil {
		i := 0
		c.mapping.Range(func(key, _ any) bool {
			ok := fn(i, key)
			i++
			return ok
		})
		return
	}
	if c.rv.Kind() == reflect.Map {
		for i, key := range sortedKeys(c.rv) {
			if !fn(i, key.Interface()) {
				return
			}
		}
		return
	}
	for i := 0; i < c.rv.Len(); i++ {
		if !fn(i, c.rv.Index(i).Interface()) {
			return
		}
	}
}

// pairs visits each key/value pair in order.
// Sequences yield their index as the key.
func (c container) pairs(fn func(i int, key, value any) bool) {
	if c.mapping != nil {
		i := 0
		c.mapping.Range(func(key, value any) bool {
			ok := fn(i, key, value)
			i++
			return ok
		})
		return
	}
	if c.rv.Kind() == reflect.Map {
		for i, key := range sortedKeys(c.rv) {
			if !fn(i, key.Interface(), c.rv.MapIndex(key).Interface()) {
				return
			}
		}
		return
	}
	for i := 0; i < c.rv.Len(); i++ {
		if !fn(i, i, c.rv.Index(i).Interface()) {
			return
		}
	}
}

func sortedKeys(rv reflect.Value) []reflect.Value {
	keys := rv.MapKeys()
	slices.SortFunc(keys, compareKeys)
	return keys
}

const (
	rankNil = iota
	rankBool
	rankInt
	rankUint
	rankFloat
	rankString
	rankOther
)

func keyRank(v reflect.Value) int {
	switch v.Kind() {
	case reflect.Invalid:
		return rankNil
	case reflect.Bool:
		return rankBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rankInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rankUint
	case reflect.Float32, reflect.Float64:
		return rankFloat
	case reflect.String:
		return rankString
	default:
		return rankOther
	}
}

// compareKeys orders map keys deterministically.
// Keys of the same basic kind compare by value, otherwise keys are grouped by kind, and anything else is compared by its Go-syntax representation.
func compareKeys(a, b reflect.Value) int {
	if a.Kind() == reflect.Interface {
		a = a.Elem()
	}
	if b.Kind() == reflect.Interface {
		b = b.Elem()
	}
	ra, rb := keyRank(a), keyRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case rankNil:
		return 0
	case rankBool:
		switch {
		case a.Bool() == b.Bool():
			return 0
		case !a.Bool():
			return -1
		default:
			return 1
		}
	case rankInt:
		return cmp.Compare(a.Int(), b.Int())
	case rankUint:
		return cmp.Compare(a.Uint(), b.Uint())
	case rankFloat:
		return cmp.Compare(a.Float(), b.Float())
	case rankString:
		return strings.Compare(a.String(), b.String())
	default:
		return strings.Compare(fmt.Sprintf("%#v", a.Interface()), fmt.Sprintf("%#v", b.Interface()))
	}
}
