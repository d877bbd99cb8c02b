package fixtures

import (
	_ "embed"
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/deliveryqa/cart-contract-tests/config"
	"github.com/deliveryqa/cart-contract-tests/contract"
)

// Names of the fixtures in the default registry.
const (
	GetCart                = "getCart"
	GetMissingCart         = "getMissingCart"
	GetCartInvalidID       = "getCartInvalidId"
	GetCreatedCart         = "getCreatedCart"
	GetCartInvalidToken    = "getCartInvalidToken"
	UpdateValidProduct     = "updateValidProduct"
	UpdateZeroQuantity     = "updateZeroQuantity"
	UpdateNegativeQuantity = "updateNegativeQuantity"
	UpdateStringQuantity   = "updateStringQuantity"
	UpdateInvalidProductID = "updateInvalidProductId"
	UpdateEmptyPayload     = "updateEmptyPayload"
	UpdateInvalidPayload   = "updateInvalidPayload"
	UpdateWithoutBody      = "updateWithoutBody"
	UpdateMissingCart      = "updateMissingCart"
	UpdateXSS              = "updateXSS"
	UpdateExtraFields      = "updateExtraFields"
	UpdateRepeatedProducts = "updateRepeatedProducts"
	UpdateInvalidToken     = "updateInvalidToken"
	UpdateLargePayload     = "updateLargePayload"
	CreateValidCart        = "createValidCart"
	CreateMultiProductCart = "createMultiProductCart"
	CreateDiscountedCart   = "createDiscountedCart"
	DeleteCart             = "deleteCart"
	DeleteMissingCart      = "deleteMissingCart"
	DeleteCartProduct      = "deleteCartProduct"
)

// LargePayloadSize is the number of distinct products in the large-payload fixture.
const LargePayloadSize = 100

//go:embed cart.yaml
var cartYAML []byte

// Default builds the registry of cart API fixtures for cfg.
func Default(cfg config.Config) (*Registry, error) {
	entries, err := LoadYAML(cartYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded cart fixtures: %w", err)
	}
	entries = append(entries, Entry{
		Fixture: Fixture{
			Name:        UpdateLargePayload,
			Method:      "PUT",
			URLTemplate: "{{baseURL}}/{{cartId}}",
			Body:        ldvalue.ObjectBuild().Set("products", ProductLines(LargePayloadSize)).Build(),
		},
		Shape: &contract.ExpectedShape{
			AcceptableStatuses: contract.Statuses(200, 400, 413),
			RequiredKeys:       []string{"products"},
			FieldTypes:         map[string]ldvalue.ValueType{"products": ldvalue.ArrayType},
		},
	})
	return NewRegistry(cfg, entries...)
}

// ProductLines builds n product lines with ids 1..n and quantity 1.
func ProductLines(n int) ldvalue.Value {
	lines := ldvalue.ArrayBuildWithCapacity(n)
	for i := 1; i <= n; i++ {
		lines.Add(ldvalue.ObjectBuild().Set("id", ldvalue.Int(i)).Set("quantity", ldvalue.Int(1)).Build())
	}
	return lines.Build()
}
