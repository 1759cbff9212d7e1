package typex

import (
	"fmt"
	"reflect"
	"slices"
)

// Predicate reports whether a value is an instance of a [Class].
// It may be called with a nil value.
type Predicate func(v any) bool

// Class is a concrete type, identified by name and a [Predicate] that decides membership.
type Class struct {
	name string
	is   Predicate
}

// NewClass creates a [Class] with the given name and membership [Predicate].
func NewClass(name string, is Predicate) *Class {
	if len(name) == 0 {
		panic(fmt.Sprintf("%v: empty class name", ErrInvalidExpr))
	}
	if is == nil {
		panic(fmt.Sprintf("%v: nil predicate for class '%s'", ErrInvalidExpr, name))
	}
	return &Class{name: name, is: is}
}

// Of creates a [Class] that accepts values assignable to T with a type assertion.
// If T is an interface, then any value implementing it is accepted.
func Of[T any]() *Class {
	return NewClass(reflect.TypeFor[T]().String(), func(v any) bool {
		_, ok := v.(T)
		return ok
	})
}

func (c *Class) Name() string {
	return c.name
}

// IsInstance reports whether v is a member of this [Class].
func (c *Class) IsInstance(v any) bool {
	return c.is(v)
}

func (c *Class) String() string {
	return c.name
}

func (*Class) isExpr() {}

func kindClass(name string, kinds ...reflect.Kind) *Class {
	return NewClass(name, func(v any) bool {
		return slices.Contains(kinds, reflect.ValueOf(v).Kind())
	})
}

// Built-in classes match on the underlying kind, so named types like "type ID string" are accepted by [String].
var (
	String  = kindClass("string", reflect.String)
	Int     = kindClass("int", reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64)
	Uint    = kindClass("uint", reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr)
	Float   = kindClass("float", reflect.Float32, reflect.Float64)
	Complex = kindClass("complex", reflect.Complex64, reflect.Complex128)
	Bool    = kindClass("bool", reflect.Bool)
	Bytes   = NewClass("bytes", func(v any) bool {
		rv := reflect.ValueOf(v)
		return rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8
	})
	Error = NewClass("error", func(v any) bool {
		_, ok := v.(error)
		return ok
	})

	// List is the origin of [SequenceExpr], matching any slice or array.
	List = kindClass("list", reflect.Slice, reflect.Array)
	// TupleClass is the origin of [TupleExpr].
	// Go has no tuple type, so positional values are carried in slices and arrays.
	TupleClass = kindClass("tuple", reflect.Slice, reflect.Array)
	// Dict is the origin of [MappingExpr], matching any map or [Mapping].
	Dict = NewClass("map", func(v any) bool {
		if _, ok := v.(Mapping); ok {
			return true
		}
		return reflect.ValueOf(v).Kind() == reflect.Map
	})
)

// IsNil reports whether v is nil, or a typed nil of a nillable kind.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

// originOf returns the class that a value must be an instance of before container elements are inspected.
func originOf(expr Expr) *Class {
	switch e := expr.(type) {
	case *Class:
		return e
	case *SequenceExpr:
		return List
	case *TupleExpr:
		return TupleClass
	case *MappingExpr:
		return Dict
	case *GenericExpr:
		return e.origin
	default:
		panic(fmt.Sprintf("%v: unknown expression type %T", ErrInvalidExpr, expr))
	}
}
