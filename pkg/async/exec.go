package async

import (
	"context"
	"time"
)

// ExecFuture represents an asynchronous computation that only returns an error.
// It is a thin view over Future for functions with no result value.
type ExecFuture struct {
	f *Future[struct{}]
}

// Exec executes fn asynchronously. It is Async for functions that only return an error.
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *ExecFuture {
	return &ExecFuture{f: Async(ctx, param, func(ctx context.Context, p T) (struct{}, error) {
		return struct{}{}, fn(ctx, p)
	})}
}

// Await waits for the function to complete and returns its error.
func (e *ExecFuture) Await() error {
	_, err := e.f.Await()
	return err
}

// AwaitWithTimeout waits at most timeout for completion, returning ErrTimeout otherwise.
func (e *ExecFuture) AwaitWithTimeout(timeout time.Duration) error {
	_, err := e.f.AwaitWithTimeout(timeout)
	return err
}

// IsComplete reports whether the function has finished without blocking.
func (e *ExecFuture) IsComplete() bool {
	return e.f.IsComplete()
}

// ExecAll waits for all futures and returns the first error in argument order.
func ExecAll(futures ...*ExecFuture) error {
	for _, future := range futures {
		if err := future.Await(); err != nil {
			return err
		}
	}
	return nil
}

// ExecAny returns the index and error of the first future to complete.
func ExecAny(futures ...*ExecFuture) (int, error) {
	inner := make([]*Future[struct{}], len(futures))
	for i, e := range futures {
		inner[i] = e.f
	}
	idx, _, err := WaitAny(inner...)
	return idx, err
}
