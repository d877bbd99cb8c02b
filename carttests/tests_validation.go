package carttests

import (
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/deliveryqa/cart-contract-tests/executor"
	"github.com/deliveryqa/cart-contract-tests/fixtures"
)

func DoValidationTests(t *T) {
	t.Run("negative quantity", func(t *T) {
		result := t.ExecuteVerified(fixtures.UpdateNegativeQuantity, executor.Overrides{})
		if result.Status == 200 {
			q := result.Body.GetByKey("products").GetByIndex(0).GetByKey("quantity")
			t.Tolerate("negative quantity accepted, returned quantity %s", q.JSONString())
		}
	})

	t.Run("non-numeric quantity", func(t *T) {
		result := t.ExecuteVerified(fixtures.UpdateStringQuantity, executor.Overrides{})
		if result.Status == 200 {
			t.Tolerate("non-numeric quantity accepted")
		}
	})

	t.Run("invalid product id", func(t *T) {
		result := t.ExecuteVerified(fixtures.UpdateInvalidProductID, executor.Overrides{})
		if result.Status == 200 {
			t.Tolerate("product id -1 accepted")
		}
	})

	for _, id := range []ldvalue.Value{ldvalue.Int(0), ldvalue.String("abc"), ldvalue.Null()} {
		t.Run(fmt.Sprintf("product id %s", id.JSONString()), func(t *T) {
			body := ldvalue.ObjectBuild().Set("products", ldvalue.ArrayOf(
				ldvalue.ObjectBuild().Set("id", id).Set("quantity", ldvalue.Int(1)).Build(),
			)).Build()
			result := t.ExecuteVerified(fixtures.UpdateInvalidProductID, executor.Overrides{Body: body})
			if result.Status == 200 {
				t.Tolerate("product id %s accepted", id.JSONString())
			}
		})
	}
}
