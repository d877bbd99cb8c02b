package contract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const cartJSON = `{
	"id": 1,
	"products": [
		{"id": 1, "title": "Essence Mascara", "price": 10.5, "quantity": 2, "total": 21, "discountPercentage": 10},
		{"id": 2, "title": "Eyeshadow Palette", "price": 4.25, "quantity": 4, "total": 17, "discountPercentage": 0}
	],
	"total": 38,
	"discountedTotal": 35.9,
	"userId": 33,
	"totalProducts": 2,
	"totalQuantity": 6
}`

var cartShape = ExpectedShape{
	AcceptableStatuses: Statuses(200, 404),
	RequiredKeys:       []string{"id", "products", "total", "discountedTotal", "userId", "totalProducts", "totalQuantity"},
	ExactKeys:          true,
	FieldTypes: map[string]ldvalue.ValueType{
		"id":                   ldvalue.NumberType,
		"products":             ldvalue.ArrayType,
		"total":                ldvalue.NumberType,
		"products[0].title":    ldvalue.StringType,
		"products[1].quantity": ldvalue.NumberType,
	},
	FieldRanges: map[string]Range{
		"total":         AtLeast(0),
		"totalQuantity": AtLeast(0),
	},
}

func requireKind(t *testing.T, err error, kind Kind) *Failure {
	t.Helper()
	require.Error(t, err)
	var f *Failure
	require.True(t, errors.As(err, &f), "expected a *Failure, got %T", err)
	assert.Equal(t, kind, f.Kind)
	return f
}

func TestAssertStatusIn(t *testing.T) {
	assert.NoError(t, AssertStatusIn(ScenarioResult{Status: 404}, 200, 404))

	f := requireKind(t, AssertStatusIn(ScenarioResult{Status: 500}, 422, 200, 400), KindUnexpectedStatus)
	assert.Equal(t, "one of {200, 400, 422}", f.Expected)
	assert.Equal(t, "500", f.Actual)
	assert.Contains(t, f.Error(), "UnexpectedStatus")
}

func TestAssertStatusInWithFullRangeAcceptsAnything(t *testing.T) {
	for _, status := range []int{100, 200, 301, 404, 429, 599} {
		assert.NoError(t, AssertStatusIn(ScenarioResult{Status: status}, AnyStatus...))
	}
	assert.Equal(t, "{100..599}", AnyStatus.String())
}

func TestAssertShape(t *testing.T) {
	body := ldvalue.Parse([]byte(cartJSON))

	t.Run("exact keys present", func(t *testing.T) {
		assert.NoError(t, AssertShape(body, cartShape))
	})

	t.Run("missing and extra keys", func(t *testing.T) {
		shape := cartShape
		shape.RequiredKeys = []string{"id", "products", "isDeleted"}
		f := requireKind(t, AssertShape(body, shape), KindShapeMismatch)
		assert.Contains(t, f.Message, "missing keys [isDeleted]")
		assert.Contains(t, f.Message, "unexpected keys [discountedTotal, total, totalProducts, totalQuantity, userId]")
	})

	t.Run("extra keys allowed when not exact", func(t *testing.T) {
		shape := ExpectedShape{RequiredKeys: []string{"id"}}
		assert.NoError(t, AssertShape(body, shape))
	})

	t.Run("non-object body", func(t *testing.T) {
		f := requireKind(t, AssertShape(ldvalue.ArrayOf(), cartShape), KindShapeMismatch)
		assert.Equal(t, "array", f.Actual)
	})
}

func TestAssertFieldTypes(t *testing.T) {
	body := ldvalue.Parse([]byte(cartJSON))
	assert.NoError(t, AssertFieldTypes(body, cartShape))

	wrong := ExpectedShape{FieldTypes: map[string]ldvalue.ValueType{"userId": ldvalue.StringType}}
	f := requireKind(t, AssertFieldTypes(body, wrong), KindTypeMismatch)
	assert.Equal(t, "string", f.Expected)
	assert.Equal(t, "number", f.Actual)
	assert.Contains(t, f.Message, `"userId"`)

	absent := ExpectedShape{FieldTypes: map[string]ldvalue.ValueType{"products[5].id": ldvalue.NumberType}}
	f = requireKind(t, AssertFieldTypes(body, absent), KindTypeMismatch)
	assert.Equal(t, "absent", f.Actual)
}

func TestAssertFieldRanges(t *testing.T) {
	body := ldvalue.Parse([]byte(`{"rating": 4.5, "stock": -1, "title": "x"}`))

	assert.NoError(t, AssertFieldRanges(body, ExpectedShape{FieldRanges: map[string]Range{
		"rating":  Between(0, 5),
		"missing": AtLeast(0),
	}}))

	f := requireKind(t, AssertFieldRanges(body, ExpectedShape{FieldRanges: map[string]Range{
		"stock": AtLeast(0),
	}}), KindInvariantViolation)
	assert.Equal(t, "[0, +inf]", f.Expected)
	assert.Equal(t, "-1", f.Actual)

	requireKind(t, AssertFieldRanges(body, ExpectedShape{FieldRanges: map[string]Range{
		"title": AtMost(10),
	}}), KindTypeMismatch)
}

func TestAssertInvariant(t *testing.T) {
	body := ldvalue.Parse([]byte(cartJSON))
	assert.NoError(t, AssertInvariant(body, func(v ldvalue.Value) bool { return v.GetByKey("id").IntValue() == 1 }, "id is 1"))

	f := requireKind(t, AssertInvariant(body, func(ldvalue.Value) bool { return false }, "never"), KindInvariantViolation)
	assert.Contains(t, f.Message, "never")
}

func TestVerify(t *testing.T) {
	body := ldvalue.Parse([]byte(cartJSON))

	t.Run("passes", func(t *testing.T) {
		assert.NoError(t, Verify(ScenarioResult{Status: 200, Body: body, HasBody: true}, cartShape))
	})

	t.Run("status only for non-2xx", func(t *testing.T) {
		assert.NoError(t, Verify(ScenarioResult{Status: 404, Body: ldvalue.String("not found"), HasBody: true}, cartShape))
	})

	t.Run("unacceptable status", func(t *testing.T) {
		requireKind(t, Verify(ScenarioResult{Status: 500}, cartShape), KindUnexpectedStatus)
	})

	t.Run("2xx without body", func(t *testing.T) {
		requireKind(t, Verify(ScenarioResult{Status: 200}, cartShape), KindShapeMismatch)
	})

	t.Run("status-only shape ignores body", func(t *testing.T) {
		assert.NoError(t, Verify(ScenarioResult{Status: 200}, ExpectedShape{AcceptableStatuses: Statuses(200)}))
	})
}
