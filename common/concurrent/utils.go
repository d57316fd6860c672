package concurrent

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrWaitTimeout = errors.New("wait timed out")

// WaitFor calls fn every tick until it reports done, returns an error, or the timeout expires.
// If timeout is positive, it is added to the context. Otherwise, it is ignored.
func WaitFor[T any](
	ctx context.Context,
	timeout, tick time.Duration,
	fn func(context.Context) (T, bool, error),
) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		res, done, err := fn(ctx)
		if err != nil || done {
			return res, err
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return res, fmt.Errorf("%w after %s", ErrWaitTimeout, timeout)
			}
			return res, ctx.Err()
		case <-ticker.C:
		}
	}
}
