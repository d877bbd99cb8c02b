package carttests

import (
	"fmt"

	"github.com/deliveryqa/cart-contract-tests/executor"
	"github.com/deliveryqa/cart-contract-tests/fixtures"
	"github.com/deliveryqa/cart-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoDeleteTests(t *T) {
	t.Run("delete created cart", func(t *T) {
		created := t.CreateCart(fixtures.CreateValidCart)
		vars := CartVars(created)

		result := t.ExecuteVerified(fixtures.DeleteCart, executor.Overrides{Vars: vars})
		switch result.Status {
		case 200:
			assert.True(t, result.Body.GetByKey("isDeleted").BoolValue(), "isDeleted")
		case 404:
			t.Tolerate("created cart %d could not be deleted because it was not persisted", created.ID)
			return
		}
		after := t.Execute(fixtures.GetCreatedCart, executor.Overrides{Vars: vars})
		t.RequireStatusIn(after, 404, 400)
	})

	t.Run("delete missing cart", func(t *T) {
		t.ExecuteVerified(fixtures.DeleteMissingCart, executor.Overrides{})
	})

	t.Run("delete product from created cart", func(t *T) {
		created := t.CreateCart(fixtures.CreateMultiProductCart)
		require.NotEmpty(t, created.Products)
		productID := created.Products[0].ID
		vars := CartVars(created)
		vars["productId"] = fmt.Sprint(productID)

		result := t.ExecuteVerified(fixtures.DeleteCartProduct, executor.Overrides{Vars: vars})
		if result.Status != 200 {
			t.Debug("product deletion answered with status %d", result.Status)
			return
		}
		cart, err := servicedef.ParseCart(result.Body)
		require.NoError(t, err)
		_, stillThere := cart.Product(productID)
		assert.False(t, stillThere, "product %d still in cart", productID)
		assert.Less(t, cart.TotalProducts, len(created.Products))
		assert.Less(t, cart.Total, created.Total)
		assert.Less(t, cart.TotalQuantity, created.TotalQuantity)
	})
}
