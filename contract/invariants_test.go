package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestCartInvariantsHoldForConsistentCart(t *testing.T) {
	body := ldvalue.Parse([]byte(cartJSON))
	for _, inv := range CartInvariants {
		assert.NoError(t, inv.Check(body), inv.Description)
	}
}

func TestDiscountNotAboveTotal(t *testing.T) {
	assert.NoError(t, DiscountNotAboveTotal.Check(ldvalue.Parse([]byte(`{"total": 10, "discountedTotal": 10}`))))
	assert.Error(t, DiscountNotAboveTotal.Check(ldvalue.Parse([]byte(`{"total": 10, "discountedTotal": 11}`))))
	assert.Error(t, DiscountNotAboveTotal.Check(ldvalue.Parse([]byte(`{"total": 10}`))))
}

func TestTotalMatchesLineItems(t *testing.T) {
	zero := ldvalue.Parse([]byte(`{"total": 0, "products": [{"price": 9.99, "quantity": 0}]}`))
	assert.NoError(t, TotalMatchesLineItems.Check(zero))

	wrong := ldvalue.Parse([]byte(`{"total": 5, "products": [{"price": 9.99, "quantity": 1}]}`))
	assert.Error(t, TotalMatchesLineItems.Check(wrong))
}

func TestTotalQuantityAndProducts(t *testing.T) {
	body := ldvalue.Parse([]byte(`{"totalQuantity": 3, "totalProducts": 1, "products": [{"quantity": 3}]}`))
	assert.NoError(t, TotalQuantityMatchesLineItems.Check(body))
	assert.NoError(t, TotalProductsMatchesLineItems.Check(body))

	body = ldvalue.Parse([]byte(`{"totalQuantity": 4, "totalProducts": 2, "products": [{"quantity": 3}]}`))
	assert.Error(t, TotalQuantityMatchesLineItems.Check(body))
	assert.Error(t, TotalProductsMatchesLineItems.Check(body))
}

func TestRatingWithinBounds(t *testing.T) {
	inv := RatingWithinBounds("rating")
	assert.Equal(t, "0 <= rating <= 5", inv.Description)
	for _, r := range []string{"0", "2.5", "5"} {
		assert.NoError(t, inv.Check(ldvalue.Parse([]byte(`{"rating": `+r+`}`))), r)
	}
	for _, r := range []string{"-0.1", "5.01", `"4"`} {
		assert.Error(t, inv.Check(ldvalue.Parse([]byte(`{"rating": `+r+`}`))), r)
	}
}

func TestLookup(t *testing.T) {
	body := ldvalue.Parse([]byte(cartJSON))

	v, ok := Lookup(body, "products[1].quantity")
	assert.True(t, ok)
	assert.Equal(t, 4, v.IntValue())

	v, ok = Lookup(body, "$.products.0.title")
	assert.True(t, ok)
	assert.Equal(t, "Essence Mascara", v.StringValue())

	_, ok = Lookup(body, "products[2].id")
	assert.False(t, ok)

	_, ok = Lookup(body, "total.cents")
	assert.False(t, ok)

	v, ok = Lookup(ldvalue.Parse([]byte(`{"a": null}`)), "a")
	assert.True(t, ok)
	assert.True(t, v.IsNull())

	v, ok = Lookup(body, "")
	assert.True(t, ok)
	assert.True(t, v.Equal(body))
}
