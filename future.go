package forcetypes

import (
	"context"
	"sync"
)

// Future is a value that is resolved asynchronously at a later time.
// Once resolved, the value and error are cached for every call to Await.
type Future[T any] struct {
	done    chan struct{}
	resolve sync.Once
	val     T
	err     error
}

func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved creates a [Future] that is already resolved.
func Resolved[T any](val T, err error) *Future[T] {
	f := NewFuture[T]()
	f.Resolve(val, err)
	return f
}

// Go runs fn in a new goroutine, resolving the returned [Future] with its result.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := NewFuture[T]()
	go func() {
		f.Resolve(fn(ctx))
	}()
	return f
}

// Resolve sets the value and error of the [Future] so it can be awaited by consumers.
// Only the first call to Resolve sets the result, and true is returned if this call did so.
func (f *Future[T]) Resolve(val T, err error) bool {
	resolved := false
	f.resolve.Do(func() {
		f.val = val
		f.err = err
		close(f.done)
		resolved = true
	})
	return resolved
}

// Done returns a channel that is closed once the [Future] is resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the [Future] is resolved, or the context is done.
// If the context is done first, then the zero value is returned with the context's error.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	default:
	}
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
