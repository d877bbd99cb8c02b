package carttests

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/deliveryqa/cart-contract-tests/contract"
	"github.com/deliveryqa/cart-contract-tests/executor"
	"github.com/deliveryqa/cart-contract-tests/fixtures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// productShape describes one line of a cart's products array.
var productShape = contract.ExpectedShape{
	RequiredKeys: []string{"id", "title", "price", "quantity", "total", "discountPercentage"},
	FieldTypes: map[string]ldvalue.ValueType{
		"id":                 ldvalue.NumberType,
		"title":              ldvalue.StringType,
		"price":              ldvalue.NumberType,
		"quantity":           ldvalue.NumberType,
		"total":              ldvalue.NumberType,
		"discountPercentage": ldvalue.NumberType,
	},
	FieldRanges: map[string]contract.Range{
		"quantity":           contract.AtLeast(0),
		"total":              contract.AtLeast(0),
		"discountPercentage": contract.Between(0, 100),
		"discountedPrice":    contract.AtLeast(0),
		"stock":              contract.AtLeast(0),
		"rating":             contract.Between(0, 5),
	},
}

func DoBasicTests(t *T) {
	t.Run("returns existing cart", func(t *T) {
		result := t.ExecuteVerified(fixtures.GetCart, executor.Overrides{})
		if result.Status != 200 {
			t.Debug("cart %d does not exist", t.Config().CartID)
		}
	})

	t.Run("product structure", func(t *T) {
		result := t.ExecuteVerified(fixtures.GetCart, executor.Overrides{})
		products := result.Body.GetByKey("products")
		if result.Status != 200 || products.Count() == 0 {
			return
		}
		for i := 0; i < products.Count(); i++ {
			product := products.GetByIndex(i)
			t.RequireShape(product, productShape)
			price, _ := contract.Lookup(product, "price")
			assert.Greater(t, price.Float64Value(), 0.0, "products[%d].price", i)
			if thumbnail, ok := contract.Lookup(product, "thumbnail"); ok {
				assert.Contains(t, thumbnail.StringValue(), "https://", "products[%d].thumbnail", i)
			}
		}
	})

	t.Run("update quantity of existing item", func(t *T) {
		result := t.ExecuteVerified(fixtures.UpdateValidProduct, executor.Overrides{})
		if result.Status != 200 {
			return
		}
		body := result.Body
		require.Equal(t, 1, body.GetByKey("products").Count())
		assert.Equal(t, 1, body.GetByKey("products").GetByIndex(0).GetByKey("quantity").IntValue())
		assert.Equal(t, 1, body.GetByKey("totalQuantity").IntValue())
		assert.InDelta(t, body.GetByKey("products").GetByIndex(0).GetByKey("price").Float64Value(),
			body.GetByKey("total").Float64Value(), 0.005)
	})

	t.Run("zero quantity", func(t *T) {
		result := t.ExecuteVerified(fixtures.UpdateZeroQuantity, executor.Overrides{})
		if result.Status != 200 {
			t.Debug("zero quantity answered with status %d", result.Status)
			return
		}
		body := result.Body
		assert.Equal(t, 0, body.GetByKey("products").GetByIndex(0).GetByKey("quantity").IntValue())
		assert.Equal(t, 0.0, body.GetByKey("total").Float64Value())
		assert.Equal(t, 0, body.GetByKey("totalQuantity").IntValue())
	})

	t.Run("GET is idempotent", func(t *T) {
		first := t.ExecuteVerified(fixtures.GetCart, executor.Overrides{})
		second := t.ExecuteVerified(fixtures.GetCart, executor.Overrides{})
		if first.Status != 200 || second.Status != 200 {
			return
		}
		assert.JSONEq(t, first.Body.JSONString(), second.Body.JSONString())
	})

	t.Run("discounted total not above total", func(t *T) {
		result := t.ExecuteVerified(fixtures.GetCart, executor.Overrides{})
		if result.Status == 200 {
			t.CheckInvariants(result.Body, contract.DiscountNotAboveTotal)
		}
	})

	t.Run("totals match line items", func(t *T) {
		result := t.ExecuteVerified(fixtures.GetCart, executor.Overrides{})
		if result.Status == 200 {
			t.CheckInvariants(result.Body, contract.CartInvariants...)
		}
	})
}
