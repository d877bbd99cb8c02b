package framework

import (
	"context"
	"fmt"
	"time"
)

const minPollInterval = time.Millisecond

// WaitFor calls condition every interval until it returns true, it returns an error, ctx is
// done, or timeout elapses. The condition is always evaluated at least once. An interval
// below one millisecond is raised to one millisecond.
func WaitFor(ctx context.Context, timeout, interval time.Duration, condition func() (bool, error)) error {
	if interval < minPollInterval {
		interval = minPollInterval
	}
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr error
	for {
		ok, err := condition()
		if err == nil && ok {
			return nil
		}
		lastErr = err
		if !time.Now().Before(deadline) {
			if lastErr != nil {
				return fmt.Errorf("condition not met within %s, last error: %w", timeout, lastErr)
			}
			return fmt.Errorf("condition not met within %s", timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
