package util

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
)

var ErrWaitNotReady = errors.New("condition not met")

// WaitFor polls condition at a fixed interval until it reports done, the
// condition fails, the context is cancelled, or timeout elapses. The last
// error is ErrWaitNotReady when the wait runs out without the condition
// becoming true.
func WaitFor(ctx context.Context, timeout, interval time.Duration, condition func(ctx context.Context) (bool, error)) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	attempts := uint(timeout/interval) + 1
	return retry.Do(
		func() error {
			done, err := condition(ctx)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			if !done {
				return ErrWaitNotReady
			}
			return nil
		},
		retry.Attempts(attempts),
		retry.Delay(interval),
		retry.DelayType(retry.FixedDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
}
