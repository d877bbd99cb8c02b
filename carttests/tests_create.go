package carttests

import (
	"github.com/deliveryqa/cart-contract-tests/executor"
	"github.com/deliveryqa/cart-contract-tests/fixtures"

	"github.com/stretchr/testify/assert"
)

func DoCreateTests(t *T) {
	t.Run("valid cart", func(t *T) {
		result := t.ExecuteVerified(fixtures.CreateValidCart, executor.Overrides{})
		assert.Equal(t, 1, result.Body.GetByKey("products").GetByIndex(0).GetByKey("id").IntValue())
	})

	t.Run("multiple products", func(t *T) {
		result := t.ExecuteVerified(fixtures.CreateMultiProductCart, executor.Overrides{})
		if !result.Successful() {
			t.Debug("creating a cart with several products is not supported (status %d)", result.Status)
			return
		}
		assert.Equal(t, 3, result.Body.GetByKey("products").Count())
		assert.Equal(t, 3, result.Body.GetByKey("totalProducts").IntValue())
	})

	t.Run("discounted cart", func(t *T) {
		result := t.ExecuteVerified(fixtures.CreateDiscountedCart, executor.Overrides{})
		if !result.Successful() {
			t.Debug("creating a discounted cart is not supported (status %d)", result.Status)
			return
		}
		assert.Less(t, result.Body.GetByKey("discountedTotal").Float64Value(),
			result.Body.GetByKey("total").Float64Value())
	})

	t.Run("created cart can be fetched", func(t *T) {
		created := t.CreateCart(fixtures.CreateValidCart)
		result := t.ExecuteVerified(fixtures.GetCreatedCart, executor.Overrides{Vars: CartVars(created)})
		if result.Status != 200 {
			t.Tolerate("created cart %d was not persisted (status %d)", created.ID, result.Status)
			return
		}
		assert.Equal(t, 1, result.Body.GetByKey("products").GetByIndex(0).GetByKey("quantity").IntValue())
		assert.Equal(t, 1, result.Body.GetByKey("totalQuantity").IntValue())
	})
}
