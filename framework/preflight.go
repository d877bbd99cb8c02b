package framework

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AwaitService polls url until the service answers, printing a dot per attempt. Any HTTP
// response counts, since a 404 for an unknown route still proves the service is up. The
// timeout must be positive.
func AwaitService(ctx context.Context, client *http.Client, url string, timeout time.Duration, output io.Writer) error {
	if timeout <= 0 {
		return fmt.Errorf("preflight timeout must be positive, got %s", timeout)
	}
	if client == nil {
		client = http.DefaultClient
	}
	fmt.Fprintf(output, "Connecting to %s", url)

	var lastErr error
	err := WaitFor(ctx, timeout, 100*time.Millisecond, func() (bool, error) {
		fmt.Fprintf(output, ".")
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
		if err != nil {
			return false, err
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			return false, nil
		}
		_ = resp.Body.Close()
		fmt.Fprintf(output, " HTTP %d\n", resp.StatusCode)
		return true, nil
	})
	if err != nil {
		fmt.Fprintln(output)
		if lastErr != nil {
			return fmt.Errorf("service at %s did not respond: %w", url, lastErr)
		}
		return fmt.Errorf("service at %s did not respond: %w", url, err)
	}
	return nil
}
