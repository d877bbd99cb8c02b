package carttests

import (
	"github.com/deliveryqa/cart-contract-tests/executor"
	"github.com/deliveryqa/cart-contract-tests/fixtures"
)

func DoErrorTests(t *T) {
	t.Run("missing cart", func(t *T) {
		t.ExecuteVerified(fixtures.GetMissingCart, executor.Overrides{})
	})

	t.Run("invalid cart id", func(t *T) {
		t.ExecuteVerified(fixtures.GetCartInvalidID, executor.Overrides{})
	})

	t.Run("invalid payload", func(t *T) {
		result := t.ExecuteVerified(fixtures.UpdateInvalidPayload, executor.Overrides{})
		if result.Status == 200 {
			t.Tolerate("payload without products accepted")
		}
	})

	t.Run("empty payload", func(t *T) {
		result := t.ExecuteVerified(fixtures.UpdateEmptyPayload, executor.Overrides{})
		if result.Status == 200 {
			t.Tolerate("empty payload accepted")
		}
	})

	t.Run("update without body", func(t *T) {
		t.ExecuteVerified(fixtures.UpdateWithoutBody, executor.Overrides{})
	})

	t.Run("update missing cart", func(t *T) {
		t.ExecuteVerified(fixtures.UpdateMissingCart, executor.Overrides{})
	})
}
