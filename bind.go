package forcetypes

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/saylorsolutions/forcetypes/typex"
)

var (
	ErrNoArgument = errors.New("no argument bound")
)

// Argument is a value bound to a named parameter.
// Arguments for [VarPositional] parameters are []any, and for [VarKeyword] parameters are map[string]any.
type Argument struct {
	Name  string
	Kind  ParamKind
	Value any
	param int
}

// BoundCall maps parameter names to argument values for a single invocation.
// Only explicitly given arguments are bound, defaults are available from [BoundCall.Get].
type BoundCall struct {
	sig    Signature
	args   []any
	kwargs map[string]any
	bound  []Argument
}

// Bind binds positional and keyword arguments to the parameters of the [Signature].
// A [*BindingError] is returned if there are too many positional arguments, a missing required argument, more than one value for the same parameter, or an unexpected keyword argument.
//
// Keyword arguments are processed in name order, so errors are deterministic.
func (s Signature) Bind(args []any, kwargs map[string]any) (*BoundCall, error) {
	var (
		values   = map[int]any{}
		extras   []any
		extraKws map[string]any
		varPos   = -1
		varKw    = -1
		posIdx   []int
	)
	for i, p := range s.Params {
		switch p.Kind {
		case Positional:
			posIdx = append(posIdx, i)
		case VarPositional:
			varPos = i
		case VarKeyword:
			varKw = i
		}
	}

	for i, arg := range args {
		if i < len(posIdx) {
			values[posIdx[i]] = arg
			continue
		}
		if varPos < 0 {
			return nil, newBindingError(s.Name, "", ErrTooManyArgs, "takes %d positional arguments but %d were given", len(posIdx), len(args))
		}
		extras = append(extras, arg)
	}

	for _, name := range slices.Sorted(maps.Keys(kwargs)) {
		val := kwargs[name]
		idx := slices.IndexFunc(s.Params, func(p Param) bool {
			return p.Name == name && (p.Kind == Positional || p.Kind == KeywordOnly)
		})
		if idx >= 0 {
			if _, ok := values[idx]; ok {
				return nil, newBindingError(s.Name, name, ErrMultipleValues, "'%s'", name)
			}
			values[idx] = val
			continue
		}
		if varKw < 0 {
			return nil, newBindingError(s.Name, name, ErrUnexpectedKeyword, "'%s'", name)
		}
		if extraKws == nil {
			extraKws = map[string]any{}
		}
		extraKws[name] = val
	}

	for i, p := range s.Params {
		if p.Kind != Positional && p.Kind != KeywordOnly {
			continue
		}
		if _, ok := values[i]; !ok && !p.HasDefault {
			return nil, newBindingError(s.Name, p.Name, ErrMissingArg, "'%s'", p.Name)
		}
	}
	if len(extras) > 0 {
		values[varPos] = extras
	}
	if len(extraKws) > 0 {
		values[varKw] = extraKws
	}

	call := &BoundCall{
		sig:    s,
		args:   args,
		kwargs: kwargs,
	}
	for i, p := range s.Params {
		val, ok := values[i]
		if !ok {
			continue
		}
		call.bound = append(call.bound, Argument{Name: p.Name, Kind: p.Kind, Value: val, param: i})
	}
	return call, nil
}

// Args returns the positional arguments exactly as they were given.
func (c *BoundCall) Args() []any {
	return c.args
}

// Kwargs returns the keyword arguments exactly as they were given.
func (c *BoundCall) Kwargs() map[string]any {
	return c.kwargs
}

// Arguments returns the bound arguments in parameter order.
func (c *BoundCall) Arguments() []Argument {
	return slices.Clone(c.bound)
}

// Has reports whether an argument was explicitly bound to the named parameter.
func (c *BoundCall) Has(name string) bool {
	return slices.ContainsFunc(c.bound, func(arg Argument) bool {
		return arg.Name == name
	})
}

// Get returns the argument bound to the named parameter, or the parameter's default.
// Unbound variadic parameters return an empty []any or map[string]any.
func (c *BoundCall) Get(name string) (any, bool) {
	for _, arg := range c.bound {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	p, ok := c.sig.Param(name)
	if !ok {
		return nil, false
	}
	switch {
	case p.HasDefault:
		return p.Default, true
	case p.Kind == VarPositional:
		return []any{}, true
	case p.Kind == VarKeyword:
		return map[string]any{}, true
	default:
		return nil, false
	}
}

// Value gets an argument from the [BoundCall] and asserts its type.
// This is intended for use inside of a [Callable], where argument types have already been checked.
// A nil argument returns the zero value of T.
func Value[T any](call *BoundCall, name string) (T, error) {
	var zero T
	val, ok := call.Get(name)
	if !ok {
		return zero, fmt.Errorf("%w: '%s'", ErrNoArgument, name)
	}
	if val == nil {
		return zero, nil
	}
	typed, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("%w: argument '%s' is %s, not %s", ErrTypeMismatch, name, typex.TypeName(val), reflect.TypeFor[T]())
	}
	return typed, nil
}
