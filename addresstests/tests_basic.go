package addresstests

import (
	"strings"

	"github.com/stretchr/testify/assert"

	"github.com/deliveryqa/cart-contract-tests/webdriver"
)

const (
	validAddress   = "Avenida Paulista, 1000, São Paulo"
	invalidAddress = "Endereço Inválido"
)

func DoBasicTests(t *T) {
	t.RunOnPage("valid address advances", func(t *T) {
		input := t.AddressInput()
		t.TypeAddress(input, validAddress, true)

		t.RequireValue(input, validAddress)
		assert.NotContains(t, strings.Fields(t.Attribute(input, "class")), "error")
		t.WaitForURL("/delivery", "/cardapio")
	})

	t.RunOnPage("invalid address does not advance", func(t *T) {
		input := t.AddressInput()
		t.TypeAddress(input, invalidAddress, true)

		t.RequireValue(input, invalidAddress)
		t.RequireStaysOn("/delivery", "/cardapio")
	})

	t.RunOnPage("use current location", func(t *T) {
		button := t.Visible(webdriver.ByXPath, currentLocationXPath)
		t.Require(button.Click(t.Ctx()))
		t.WaitForURL("/delivery", "/cardapio")
	})
}
