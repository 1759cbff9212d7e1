package forcetypes

import (
	"context"
	"fmt"
)

// AsyncCallable is a suspending function that returns a [Future] for its result.
// The context given to the wrapper is passed through unchanged.
type AsyncCallable func(ctx context.Context, call *BoundCall) *Future[any]

// AsyncEnforced is an [AsyncCallable] wrapped with argument and return type validation.
type AsyncEnforced struct {
	*enforcer
	fn AsyncCallable
}

// WrapAsync validates the [Signature] and wraps fn so that every call is checked against it.
func WrapAsync(sig Signature, fn AsyncCallable, opts ...Option) (*AsyncEnforced, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrNilCallable, sig.Name)
	}
	e, err := newEnforcer(sig, opts)
	if err != nil {
		return nil, err
	}
	return &AsyncEnforced{enforcer: e, fn: fn}, nil
}

// Signature returns the declared [Signature].
func (a *AsyncEnforced) Signature() Signature {
	return a.sig
}

// Call checks arguments in the same way as [Enforced.Call], and then awaits the [Future] returned by the wrapped [AsyncCallable].
// Awaiting is the only point where Call blocks.
// If ctx is cancelled while waiting, then the context's error is returned unchanged.
func (a *AsyncEnforced) Call(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
	call, err := a.bind(args, kwargs)
	if err != nil {
		return nil, err
	}
	if err := a.checkArgs(call); err != nil {
		return nil, err
	}
	future := a.fn(ctx, call)
	if future == nil {
		return nil, ErrNilFuture
	}
	result, err := future.Await(ctx)
	if err != nil {
		return result, err
	}
	if err := a.checkResult(result); err != nil {
		return nil, err
	}
	return result, nil
}
