package carttests

import (
	"strconv"

	"github.com/deliveryqa/cart-contract-tests/contract"
	"github.com/deliveryqa/cart-contract-tests/executor"
)

// DoPropertyTests executes every registered fixture and accepts any status: a fixture the
// registry lists must always be found and must always produce a response. Placeholders for
// created carts point at the missing cart so that nothing real is deleted.
func DoPropertyTests(t *T) {
	vars := map[string]string{
		"createdId": strconv.Itoa(t.Config().MissingCartID),
		"productId": "1",
	}
	for _, name := range t.env.Fixtures.Names() {
		t.Run("fixture "+name, func(t *T) {
			result := t.Execute(name, executor.Overrides{Vars: vars})
			t.Require(contract.AssertStatusIn(result, contract.AnyStatus...))
		})
	}
}
