package forcetypes

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeFor[error]()

// WrapFunc wraps a plain Go function, returning a function of the same type that checks its arguments and results against the [Signature].
//
// The [Signature] must have one [Positional] parameter for each fixed parameter of F, and a [VarPositional] parameter if F is variadic.
// [KeywordOnly] and [VarKeyword] parameters are not allowed, since Go functions have no keyword arguments.
//
// If the last result of F is an error, then mismatches are returned through it with zero values for the other results.
// Otherwise, the wrapped function panics with the [*MismatchError].
// The declared return type is checked against nil if F has no other results, the single result if there is one, or a []any of all results otherwise.
// Results are not checked if the function returns a non-nil error.
func WrapFunc[F any](fn F, sig Signature, opts ...Option) (F, error) {
	var zero F
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return zero, fmt.Errorf("%w: %T is not a function", ErrInvalidSignature, fn)
	}
	if fv.IsNil() {
		return zero, fmt.Errorf("%w: %s", ErrNilCallable, sig.Name)
	}
	e, err := newEnforcer(sig, opts)
	if err != nil {
		return zero, err
	}
	ft := fv.Type()
	if err := matchArity(ft, e.sig); err != nil {
		return zero, err
	}

	returnsErr := ft.NumOut() > 0 && ft.Out(ft.NumOut()-1) == errorType
	fail := func(err error) []reflect.Value {
		if !returnsErr {
			panic(err)
		}
		out := make([]reflect.Value, ft.NumOut())
		for i := range out {
			out[i] = reflect.Zero(ft.Out(i))
		}
		errVal := reflect.New(errorType).Elem()
		errVal.Set(reflect.ValueOf(err))
		out[len(out)-1] = errVal
		return out
	}

	wrapped := reflect.MakeFunc(ft, func(in []reflect.Value) []reflect.Value {
		args := make([]any, 0, len(in))
		for i, v := range in {
			if ft.IsVariadic() && i == len(in)-1 {
				for j := 0; j < v.Len(); j++ {
					args = append(args, v.Index(j).Interface())
				}
				continue
			}
			args = append(args, v.Interface())
		}
		call, err := e.bind(args, nil)
		if err != nil {
			return fail(err)
		}
		if err := e.checkArgs(call); err != nil {
			return fail(err)
		}

		var out []reflect.Value
		if ft.IsVariadic() {
			out = fv.CallSlice(in)
		} else {
			out = fv.Call(in)
		}
		results := out
		if returnsErr {
			if !out[len(out)-1].IsNil() {
				return out
			}
			results = out[:len(out)-1]
		}
		if err := e.checkResult(resultValue(results)); err != nil {
			return fail(err)
		}
		return out
	})
	return wrapped.Interface().(F), nil
}

// MustWrapFunc is the same as [WrapFunc], but panics if the function can't be wrapped.
func MustWrapFunc[F any](fn F, sig Signature, opts ...Option) F {
	f, err := WrapFunc(fn, sig, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func matchArity(ft reflect.Type, sig Signature) error {
	var (
		positional int
		variadic   bool
	)
	for _, p := range sig.Params {
		switch p.Kind {
		case Positional:
			positional++
		case VarPositional:
			variadic = true
		default:
			return fmt.Errorf("%w: %s parameter '%s' is not supported for Go functions", ErrInvalidSignature, p.Kind, p.Name)
		}
	}
	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
	}
	if fixed != positional || ft.IsVariadic() != variadic {
		return fmt.Errorf("%w: signature declares %d positional parameters (variadic: %t), but %s has %d (variadic: %t)",
			ErrInvalidSignature, positional, variadic, ft, fixed, ft.IsVariadic())
	}
	return nil
}

func resultValue(results []reflect.Value) any {
	switch len(results) {
	case 0:
		return nil
	case 1:
		return results[0].Interface()
	default:
		vals := make([]any, len(results))
		for i, r := range results {
			vals[i] = r.Interface()
		}
		return vals
	}
}
