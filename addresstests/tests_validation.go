package addresstests

import (
	"github.com/stretchr/testify/assert"
)

const (
	shortAddress       = "A"
	specialCharAddress = "Rua #@!"
)

func DoValidationTests(t *T) {
	t.RunOnPage("short input does not advance", func(t *T) {
		input := t.AddressInput()
		t.TypeAddress(input, shortAddress, true)

		t.RequireValue(input, shortAddress)
		t.RequireStaysOn("/delivery", "/cardapio")
	})

	t.RunOnPage("special characters are kept", func(t *T) {
		input := t.AddressInput()
		t.TypeAddress(input, specialCharAddress, true)

		t.RequireValue(input, specialCharAddress)
	})

	t.RunOnPage("field attributes", func(t *T) {
		input := t.AddressInput()
		assert.Equal(t, "text", t.Attribute(input, "type"))
		assert.NotEmpty(t, t.Attribute(input, "placeholder"), "placeholder")

		t.TypeAddress(input, "Avenida", false)
		t.RequireValue(input, "Avenida")
	})

	t.RunOnPage("clearing the field", func(t *T) {
		input := t.AddressInput()
		t.TypeAddress(input, specialCharAddress, false)
		t.RequireValue(input, specialCharAddress)

		t.Require(input.Clear(t.Ctx()))
		t.RequireValue(input, "")
	})
}
