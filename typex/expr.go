package typex

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidExpr = errors.New("invalid type expression")
)

// Expr is a declared type constraint for a value.
// The set of implementations is closed: sentinels ([Any], [Object], [Ellipsis], [Never], [None]), [*UnionExpr], [*Class], [*SequenceExpr], [*TupleExpr], [*MappingExpr], and [*GenericExpr].
type Expr interface {
	fmt.Stringer
	isExpr()
}

type sentinel struct {
	name string
}

func (s *sentinel) String() string {
	return s.name
}

func (*sentinel) isExpr() {}

var (
	Any      Expr = &sentinel{name: "any"} // Any accepts every value, including nil.
	Object        = Any                    // Object is an alias of [Any].
	Ellipsis Expr = &sentinel{name: "..."} // Ellipsis marks the repeated form of a tuple, and otherwise accepts every value.
	Never    Expr = &sentinel{name: "never"}
	None     Expr = &sentinel{name: "nil"} // None accepts only nil values.
)

// UnionExpr accepts a value if any of its members accept it.
type UnionExpr struct {
	members []Expr
}

// Union creates a union of the given expressions.
// Nested unions are flattened, a union of one expression is that expression, and a union of nothing is [Never].
func Union(members ...Expr) Expr {
	flat := make([]Expr, 0, len(members))
	for _, m := range members {
		if m == nil {
			panic(fmt.Sprintf("%v: nil union member", ErrInvalidExpr))
		}
		if u, ok := m.(*UnionExpr); ok {
			flat = append(flat, u.members...)
			continue
		}
		flat = append(flat, m)
	}
	switch len(flat) {
	case 0:
		return Never
	case 1:
		return flat[0]
	default:
		return &UnionExpr{members: flat}
	}
}

// Optional is shorthand for a union of expr and [None].
func Optional(expr Expr) Expr {
	return Union(expr, None)
}

// Members returns a copy of the union's members.
func (u *UnionExpr) Members() []Expr {
	return append([]Expr(nil), u.members...)
}

func (u *UnionExpr) String() string {
	parts := make([]string, len(u.members))
	for i, m := range u.members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

func (*UnionExpr) isExpr() {}

// SequenceExpr is a homogeneous sequence, satisfied by slices and arrays where every element matches the element expression.
type SequenceExpr struct {
	elem Expr
}

func Sequence(elem Expr) *SequenceExpr {
	mustExpr(elem)
	return &SequenceExpr{elem: elem}
}

func (s *SequenceExpr) Elem() Expr {
	return s.elem
}

func (s *SequenceExpr) String() string {
	return "[]" + grouped(s.elem)
}

func (*SequenceExpr) isExpr() {}

// TupleExpr is either a fixed arity tuple, where each position has its own expression, or a repeated tuple of any length where every element matches the same expression.
type TupleExpr struct {
	elems  []Expr
	repeat bool
}

// Tuple creates a fixed arity tuple expression.
// If the last of exactly two expressions is [Ellipsis], then the repeated form is created instead, the same as [TupleOf].
// A tuple with no expressions only checks the origin class.
func Tuple(elems ...Expr) *TupleExpr {
	t, err := newTuple(elems)
	if err != nil {
		panic(err)
	}
	return t
}

// TupleOf creates a tuple expression of any length where every element must match elem.
func TupleOf(elem Expr) *TupleExpr {
	return Tuple(elem, Ellipsis)
}

func newTuple(elems []Expr) (*TupleExpr, error) {
	for i, e := range elems {
		if e == nil {
			return nil, fmt.Errorf("%w: nil tuple element at position %d", ErrInvalidExpr, i)
		}
		if e == Ellipsis && (i != 1 || len(elems) != 2) {
			return nil, fmt.Errorf("%w: '...' may only follow a single tuple element", ErrInvalidExpr)
		}
	}
	if len(elems) == 2 && elems[1] == Ellipsis {
		return &TupleExpr{elems: []Expr{elems[0]}, repeat: true}, nil
	}
	return &TupleExpr{elems: append([]Expr(nil), elems...)}, nil
}

// Elems returns a copy of the tuple's element expressions.
// A repeated tuple has exactly one.
func (t *TupleExpr) Elems() []Expr {
	return append([]Expr(nil), t.elems...)
}

// Repeat reports whether this is the repeated form of tuple.
func (t *TupleExpr) Repeat() bool {
	return t.repeat
}

func (t *TupleExpr) String() string {
	if len(t.elems) == 0 {
		return "tuple"
	}
	if t.repeat {
		return fmt.Sprintf("tuple[%s, ...]", t.elems[0])
	}
	return "tuple[" + joinExprs(t.elems) + "]"
}

func (*TupleExpr) isExpr() {}

// MappingExpr is satisfied by maps and [Mapping] implementations where every key and value matches the given expressions.
type MappingExpr struct {
	key, value Expr
}

func MappingOf(key, value Expr) *MappingExpr {
	mustExpr(key)
	mustExpr(value)
	return &MappingExpr{key: key, value: value}
}

func (m *MappingExpr) Key() Expr {
	return m.key
}

func (m *MappingExpr) Value() Expr {
	return m.value
}

func (m *MappingExpr) String() string {
	return fmt.Sprintf("map[%s]%s", m.key, grouped(m.value))
}

func (*MappingExpr) isExpr() {}

// GenericExpr applies arguments to an arbitrary origin [Class].
// When a value is an instance of the origin, one argument is applied to every element.
// Multiple arguments are applied positionally, and the number of elements must match the number of arguments.
type GenericExpr struct {
	origin *Class
	args   []Expr
}

func Generic(origin *Class, args ...Expr) *GenericExpr {
	if origin == nil {
		panic(fmt.Sprintf("%v: nil generic origin", ErrInvalidExpr))
	}
	for _, a := range args {
		mustExpr(a)
	}
	return &GenericExpr{origin: origin, args: append([]Expr(nil), args...)}
}

func (g *GenericExpr) Origin() *Class {
	return g.origin
}

// Args returns a copy of the generic arguments.
func (g *GenericExpr) Args() []Expr {
	return append([]Expr(nil), g.args...)
}

func (g *GenericExpr) String() string {
	if len(g.args) == 0 {
		return g.origin.String()
	}
	return g.origin.String() + "[" + joinExprs(g.args) + "]"
}

func (*GenericExpr) isExpr() {}

func mustExpr(e Expr) {
	if e == nil {
		panic(fmt.Sprintf("%v: nil expression", ErrInvalidExpr))
	}
}

func grouped(e Expr) string {
	if _, ok := e.(*UnionExpr); ok {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
