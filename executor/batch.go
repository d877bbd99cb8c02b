package executor

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/deliveryqa/cart-contract-tests/contract"
	"github.com/deliveryqa/cart-contract-tests/fixtures"
)

// Call is one request in a batch.
type Call struct {
	Fixture   fixtures.Fixture
	Overrides Overrides
}

// Outcome is the result of the call at the same index in the batch.
type Outcome struct {
	Index  int
	Result contract.ScenarioResult
	Err    error
}

// Batch sends all calls concurrently, at most BatchConcurrency at a time, and returns only
// once every call has finished. Outcomes are indexed by call, so the order in which responses
// arrived is not observable. A failed call does not cancel the others.
func (e *Executor) Batch(ctx context.Context, calls []Call) []Outcome {
	outcomes := make([]Outcome, len(calls))
	var g errgroup.Group
	if e.concurrency > 0 {
		g.SetLimit(e.concurrency)
	}
	for i, call := range calls {
		i, call := i, call
		g.Go(func() error {
			result, err := e.Execute(ctx, call.Fixture, call.Overrides)
			outcomes[i] = Outcome{Index: i, Result: result, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}
