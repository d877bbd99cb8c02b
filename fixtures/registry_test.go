package fixtures

import (
	"errors"
	"testing"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/deliveryqa/cart-contract-tests/config"
	"github.com/deliveryqa/cart-contract-tests/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusOnly(codes ...int) *contract.ExpectedShape {
	return &contract.ExpectedShape{AcceptableStatuses: contract.Statuses(codes...)}
}

func TestRegistryResolvesConfigPlaceholders(t *testing.T) {
	cfg := config.Default().WithCartBaseURL("http://localhost:8080/carts/")
	r, err := NewRegistry(cfg,
		Entry{Fixture: Fixture{Name: "get", Method: "get", URLTemplate: "{{baseURL}}/{{cartId}}"}},
		Entry{Fixture: Fixture{Name: "delete", Method: "DELETE", URLTemplate: "{{baseURL}}/{{createdId}}"}},
	)
	require.NoError(t, err)

	get, err := r.Get("get")
	require.NoError(t, err)
	assert.Equal(t, "GET", get.Method)
	assert.Equal(t, "http://localhost:8080/carts/1", get.URLTemplate)
	assert.Empty(t, get.Placeholders())

	del, err := r.Get("delete")
	require.NoError(t, err)
	assert.Equal(t, []string{"createdId"}, del.Placeholders())
	url, err := del.Resolve(map[string]string{"createdId": "51"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/carts/51", url)
}

func TestResolveWithMissingPlaceholderIsPreconditionFailure(t *testing.T) {
	f := Fixture{Name: "delete", URLTemplate: "http://x/carts/{{createdId}}"}
	_, err := f.Resolve(nil)
	require.Error(t, err)
	var te *TemplateError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "createdId", te.Placeholder)
	assert.Equal(t, contract.KindPreconditionFailed, te.FailureKind())
}

func TestRegistryGetUnknownFixture(t *testing.T) {
	r, err := NewRegistry(config.Default())
	require.NoError(t, err)

	_, err = r.Get("nope")
	var ue *UnknownFixtureError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "nope", ue.Name)
	assert.Equal(t, contract.KindUnknownFixture, ue.FailureKind())
}

func TestRegistryRejectsInvalidEntries(t *testing.T) {
	for _, tc := range []struct {
		name    string
		entries []Entry
	}{
		{"mutating fixture without shape", []Entry{
			{Fixture: Fixture{Name: "put", Method: "PUT", URLTemplate: "{{baseURL}}/1"}},
		}},
		{"duplicate name", []Entry{
			{Fixture: Fixture{Name: "get", Method: "GET", URLTemplate: "/a"}},
			{Fixture: Fixture{Name: "get", Method: "GET", URLTemplate: "/b"}},
		}},
		{"missing name", []Entry{
			{Fixture: Fixture{Method: "GET", URLTemplate: "/a"}},
		}},
		{"unknown method", []Entry{
			{Fixture: Fixture{Name: "x", Method: "BREW", URLTemplate: "/a"}, Shape: statusOnly(200)},
		}},
		{"unterminated placeholder", []Entry{
			{Fixture: Fixture{Name: "x", Method: "GET", URLTemplate: "{{baseURL"}},
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegistry(config.Default(), tc.entries...)
			assert.Error(t, err)
		})
	}
}

func TestRegistryHandsOutCopies(t *testing.T) {
	r, err := NewRegistry(config.Default(), Entry{
		Fixture: Fixture{
			Name:        "auth",
			Method:      "GET",
			URLTemplate: "{{baseURL}}/1",
			Headers:     map[string]string{"Authorization": "Bearer a"},
		},
	})
	require.NoError(t, err)

	f1, err := r.Get("auth")
	require.NoError(t, err)
	f1.Headers["Authorization"] = "Bearer b"
	f1.URLTemplate = "changed"

	f2, err := r.Get("auth")
	require.NoError(t, err)
	assert.Equal(t, "Bearer a", f2.Headers["Authorization"])
	assert.NotEqual(t, "changed", f2.URLTemplate)
}

func TestDefaultRegistry(t *testing.T) {
	r, err := Default(config.Default())
	require.NoError(t, err)

	for _, name := range []string{
		GetCart, GetMissingCart, GetCartInvalidID, GetCreatedCart, GetCartInvalidToken,
		UpdateValidProduct, UpdateZeroQuantity, UpdateNegativeQuantity, UpdateStringQuantity,
		UpdateInvalidProductID, UpdateEmptyPayload, UpdateInvalidPayload, UpdateWithoutBody,
		UpdateMissingCart, UpdateXSS, UpdateExtraFields, UpdateRepeatedProducts, UpdateInvalidToken,
		UpdateLargePayload, CreateValidCart, CreateMultiProductCart, CreateDiscountedCart,
		DeleteCart, DeleteMissingCart, DeleteCartProduct,
	} {
		_, err := r.Get(name)
		assert.NoError(t, err, name)
	}
	assert.Len(t, r.Names(), 25)

	for _, name := range r.Names() {
		f, _ := r.Get(name)
		if f.Mutating() {
			_, ok := r.Shape(name)
			assert.True(t, ok, "%s has no shape", name)
		}
	}
}

func TestDefaultFixtureContents(t *testing.T) {
	r, err := Default(config.Default())
	require.NoError(t, err)

	get, _ := r.Get(GetCart)
	assert.Equal(t, "https://dummyjson.com/carts/1", get.URLTemplate)
	assert.False(t, get.HasBody())
	shape, ok := r.Shape(GetCart)
	require.True(t, ok)
	assert.True(t, shape.ExactKeys)
	assert.Equal(t, ldvalue.ArrayType, shape.FieldTypes["products"])
	assert.True(t, shape.AcceptableStatuses.Contains(404))

	invalid, _ := r.Get(UpdateInvalidProductID)
	assert.Equal(t, -1, invalid.Body.GetByKey("products").GetByIndex(0).GetByKey("id").IntValue())

	str, _ := r.Get(UpdateStringQuantity)
	assert.Equal(t, ldvalue.String("dois"), str.Body.GetByKey("products").GetByIndex(0).GetByKey("quantity"))

	empty, _ := r.Get(UpdateEmptyPayload)
	assert.True(t, empty.HasBody())
	assert.Equal(t, 0, empty.Body.Count())

	noBody, _ := r.Get(UpdateWithoutBody)
	assert.False(t, noBody.HasBody())

	large, _ := r.Get(UpdateLargePayload)
	assert.Equal(t, LargePayloadSize, large.Body.GetByKey("products").Count())

	token, _ := r.Get(GetCartInvalidToken)
	assert.Equal(t, "Bearer invalid-token", token.Headers["Authorization"])

	missing, _ := r.Get(GetMissingCart)
	assert.Equal(t, "https://dummyjson.com/carts/999999", missing.URLTemplate)
}

func TestLoadYAMLErrors(t *testing.T) {
	_, err := LoadYAML([]byte("fixtures: [\n"))
	assert.Error(t, err)

	_, err = LoadYAML([]byte(`
fixtures:
  - name: x
    method: GET
    url: /x
    shape: {statuses: [200], types: {a: integer}}
`))
	assert.Error(t, err)

	_, err = LoadYAML([]byte(`
fixtures:
  - name: x
    method: GET
    url: /x
    shape: {requiredKeys: [a]}
`))
	assert.Error(t, err)
}

func TestLoadYAMLAnyStatusAndRanges(t *testing.T) {
	entries, err := LoadYAML([]byte(`
fixtures:
  - name: rating
    method: GET
    url: /x
    shape:
      anyStatus: true
      ranges: {rating: {min: 0, max: 5}}
`))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	shape := entries[0].Shape
	require.NotNil(t, shape)
	assert.True(t, shape.AcceptableStatuses.Contains(599))
	assert.True(t, shape.FieldRanges["rating"].Contains(5))
	assert.False(t, shape.FieldRanges["rating"].Contains(5.5))
}
