package carttests

import (
	"github.com/deliveryqa/cart-contract-tests/contract"
	"github.com/deliveryqa/cart-contract-tests/executor"
	"github.com/deliveryqa/cart-contract-tests/fixtures"
	"github.com/deliveryqa/cart-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const concurrentRequests = 5

func DoPerformanceTests(t *T) {
	t.Run("concurrent GETs", func(t *T) {
		f := t.Fixture(fixtures.GetCart)
		calls := make([]executor.Call, concurrentRequests)
		for i := range calls {
			calls[i] = executor.Call{Fixture: f}
		}
		outcomes := t.ExecuteBatch(calls)

		require.Len(t, outcomes, concurrentRequests)
		answered := make(map[string]bool)
		for i, o := range outcomes {
			t.Require(o.Err)
			assert.Equal(t, i, o.Index)
			t.Check(contract.AssertStatusIn(o.Result, 200, 404, 429))

			echoed := o.Result.Header.Get(executor.RequestIDHeader)
			if echoed == "" {
				t.Debug("response %d does not echo %s", i, executor.RequestIDHeader)
				continue
			}
			assert.Equal(t, o.Result.RequestID, echoed, "response %d answers another request", i)
			assert.False(t, answered[echoed], "request %s answered twice", echoed)
			answered[echoed] = true
		}
	})

	t.Run("mixed GET and PUT", func(t *T) {
		get := t.Fixture(fixtures.GetCart)
		put := t.Fixture(fixtures.UpdateValidProduct)
		var calls []executor.Call
		for i := 0; i < 3; i++ {
			calls = append(calls,
				executor.Call{Fixture: get},
				executor.Call{Fixture: put, Overrides: executor.Overrides{Body: servicedef.Product(1, i+1).AsValue()}},
			)
		}
		for _, o := range t.ExecuteBatch(calls) {
			t.Require(o.Err)
			t.Check(contract.AssertStatusIn(o.Result, 200, 404))
			if o.Result.Status == 200 {
				t.Check(contract.AssertShape(o.Result.Body, contract.ExpectedShape{RequiredKeys: []string{"id", "products"}}))
			}
		}
	})

	t.Run("large payload", func(t *T) {
		result := t.ExecuteVerified(fixtures.UpdateLargePayload, executor.Overrides{})
		if result.Status == 200 {
			assert.Equal(t, fixtures.LargePayloadSize, result.Body.GetByKey("products").Count())
		}
	})

	t.Run("responds within timeout", func(t *T) {
		timeout := t.Config().RequestTimeout
		result := t.Execute(fixtures.GetCart, executor.Overrides{})
		t.RequireStatusIn(result, 200)
		assert.Less(t, result.Duration, timeout)
	})
}
