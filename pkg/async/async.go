// Package async carries collaborator results back to the goroutine that owns
// journal state. Collaborators never touch that state themselves.
package async

import "context"

// Result is the outcome of an asynchronous collaborator call.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Go runs fn on its own goroutine and delivers exactly one Result on the
// returned channel. The channel is buffered so an abandoned receiver never
// leaks the goroutine.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		v, err := fn(ctx)
		ch <- Result[T]{Value: v, Err: err}
	}()
	return ch
}

// Done returns an already-delivered result.
func Done[T any](v T, err error) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	ch <- Result[T]{Value: v, Err: err}
	close(ch)
	return ch
}

// Await blocks until the result arrives or ctx ends.
func Await[T any](ctx context.Context, ch <-chan Result[T]) Result[T] {
	select {
	case r, ok := <-ch:
		if !ok {
			var zero T
			return Result[T]{Value: zero, Err: context.Canceled}
		}
		return r
	case <-ctx.Done():
		var zero T
		return Result[T]{Value: zero, Err: ctx.Err()}
	}
}
