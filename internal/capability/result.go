package capability

import (
	"context"
	"fmt"
	"time"
)

// Result is the outcome of one capability call: either Value or Err.
type Result[T any] struct {
	Value   T
	Err     error
	Elapsed time.Duration
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Call runs fn with a deadline of timeout (none if timeout <= 0) and turns
// every outcome into a Result. A panic inside fn becomes a failed Result; a
// nil fn fails with ErrUnavailable. Call returns when the deadline passes
// even if fn ignores its context.
func Call[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) Result[T] {
	if fn == nil {
		return Result[T]{Err: ErrUnavailable}
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	done := make(chan Result[T], 1)
	go func() {
		var res Result[T]
		defer func() {
			if p := recover(); p != nil {
				res = Result[T]{Err: fmt.Errorf("capability panicked: %v", p)}
			}
			done <- res
		}()
		res.Value, res.Err = fn(ctx)
	}()

	select {
	case res := <-done:
		res.Elapsed = time.Since(start)
		return res
	case <-ctx.Done():
		return Result[T]{Err: ctx.Err(), Elapsed: time.Since(start)}
	}
}
