package forcetypes

import (
	"fmt"
)

// Callable is a function that receives its arguments as a [BoundCall].
type Callable func(call *BoundCall) (any, error)

// Enforced is a [Callable] wrapped with argument and return type validation.
// An Enforced is safe for concurrent use if the wrapped [Callable] is.
type Enforced struct {
	*enforcer
	fn Callable
}

// Wrap validates the [Signature] and wraps fn so that every call is checked against it.
// A [*SignatureError] is returned if the [Signature] is invalid.
func Wrap(sig Signature, fn Callable, opts ...Option) (*Enforced, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrNilCallable, sig.Name)
	}
	e, err := newEnforcer(sig, opts)
	if err != nil {
		return nil, err
	}
	return &Enforced{enforcer: e, fn: fn}, nil
}

// MustWrap is the same as [Wrap], but panics if the callable can't be wrapped.
func MustWrap(sig Signature, fn Callable, opts ...Option) *Enforced {
	e, err := Wrap(sig, fn, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// Signature returns the declared [Signature].
func (e *Enforced) Signature() Signature {
	return e.sig
}

// Call binds and checks the arguments, calls the wrapped [Callable], and then checks its result.
//
// Binding failures are returned as a [*BindingError] and argument mismatches as a [*MismatchError], and in both cases the [Callable] is not invoked.
// An error returned by the [Callable] is passed through unchanged, and the result is not checked.
// A result that doesn't match the declared return type is reported as a [*MismatchError], with a nil result.
func (e *Enforced) Call(args []any, kwargs map[string]any) (any, error) {
	call, err := e.bind(args, kwargs)
	if err != nil {
		return nil, err
	}
	if err := e.checkArgs(call); err != nil {
		return nil, err
	}
	result, err := e.fn(call)
	if err != nil {
		return result, err
	}
	if err := e.checkResult(result); err != nil {
		return nil, err
	}
	return result, nil
}
