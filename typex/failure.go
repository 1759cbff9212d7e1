package typex

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// NoIndex is used as [Failure.Index] when a failure isn't tied to a container element.
const NoIndex = -1

// Failure records one nesting level's mismatch.
type Failure struct {
	Value any  // Value is the value that failed the check.
	Expr  Expr // Expr is the expression that Value failed.
	Index int  // Index is the position of the failing element within Value, or NoIndex.
	Level int  // Level is the nesting depth at which the failure occurred.
}

// Describe returns the description of the failed expression, including the nesting level and element index if applicable.
func (f Failure) Describe() string {
	if f.Index == NoIndex {
		return fmt.Sprintf("%s (at level %d)", f.Expr, f.Level)
	}
	return fmt.Sprintf("%s (at level %d, index %d)", f.Expr, f.Level, f.Index)
}

func (f Failure) String() string {
	return fmt.Sprintf("type: %s -> fails: %s (from value: %s)", TypeName(f.Value), f.Describe(), Repr(f.Value))
}

// Trace is an ordered list of [Failure], with the deepest failure first and the top level expression last.
// A nil Trace means that a check passed.
type Trace []Failure

// Deepest returns the innermost failure, if any.
func (t Trace) Deepest() (Failure, bool) {
	if len(t) == 0 {
		return Failure{}, false
	}
	return t[0], true
}

// Root returns the failure for the top level expression, if any.
func (t Trace) Root() (Failure, bool) {
	if len(t) == 0 {
		return Failure{}, false
	}
	return t[len(t)-1], true
}

// Lines renders each [Failure] in order.
func (t Trace) Lines() []string {
	if len(t) == 0 {
		return nil
	}
	lines := make([]string, len(t))
	for i, f := range t {
		lines[i] = f.String()
	}
	return lines
}

func (t Trace) String() string {
	return strings.Join(t.Lines(), "\n")
}

// TypeName returns the runtime type name of v, or "nil".
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// Repr returns a Go-syntax representation of v.
// Whole floating point values keep a decimal point, so 5.0 isn't shown as the integer 5.
func Repr(v any) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	case reflect.Float64:
		return formatFloat(rv.Float(), 64)
	default:
		return fmt.Sprintf("%#v", v)
	}
}

func formatFloat(f float64, bitSize int) string {
	s := strconv.FormatFloat(f, 'g', -1, bitSize)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}

func failure(value any, expr Expr, level int) Trace {
	return Trace{{Value: value, Expr: expr, Index: NoIndex, Level: level}}
}
