package addresstests

import (
	"errors"
	"strings"

	"github.com/stretchr/testify/assert"

	"github.com/deliveryqa/cart-contract-tests/webdriver"
)

var landmarks = []struct {
	element, role string
}{
	{"main", "main"},
	{"header", "banner"},
	{"nav", "navigation"},
}

var vagueLinkTexts = []string{"clique aqui", "saiba mais"}

func DoAccessibilityTests(t *T) {
	t.RunOnPage("semantic structure", func(t *T) {
		t.Visible(webdriver.ByCSS, ".app-content")
		t.Visible(webdriver.ByCSS, "h1, h2, h3, .title, .subtitle")
	})

	t.RunOnPage("landmark roles", func(t *T) {
		for _, l := range landmarks {
			e, err := t.Browser().FindElement(t.Ctx(), webdriver.ByCSS, l.element)
			if errors.Is(err, webdriver.ErrNoSuchElement) {
				t.Tolerate("page has no <%s> landmark", l.element)
				continue
			}
			t.Require(err)
			if role := t.Attribute(e, "role"); role != l.role {
				t.Tolerate("<%s> has role %q, not %q", l.element, role, l.role)
			}
		}
	})

	t.RunOnPage("interactive elements are enabled", func(t *T) {
		input := t.AddressInput()
		assert.Equal(t, "text", t.Attribute(input, "type"))

		for i, button := range t.FindAll("button") {
			shown, err := button.Displayed(t.Ctx())
			t.Require(err)
			if !shown {
				continue
			}
			enabled, err := button.Enabled(t.Ctx())
			t.Require(err)
			assert.True(t, enabled, "button %d is disabled", i)
		}
	})

	t.RunOnPage("images have alt text", func(t *T) {
		for i, img := range t.FindAll("img") {
			assert.NotEmpty(t, strings.TrimSpace(t.Attribute(img, "alt")), "image %d (%s) has no alt text",
				i, t.Attribute(img, "src"))
		}
	})

	t.RunOnPage("links are descriptive", func(t *T) {
		for _, link := range t.FindAll(`a, [role="link"]`) {
			text, err := link.Text(t.Ctx())
			t.Require(err)
			text = strings.ToLower(strings.TrimSpace(text))
			assert.NotContains(t, vagueLinkTexts, text, "link text")
		}
	})

	t.RunOnPage("text colours are defined", func(t *T) {
		for _, e := range t.FindAll("h1, h2, h3, p, span, a, .text, .label") {
			shown, err := e.Displayed(t.Ctx())
			t.Require(err)
			if !shown {
				continue
			}
			assert.NotEmpty(t, t.CSS(e, "color"), "color")
			assert.NotEmpty(t, t.CSS(e, "background-color"), "background-color")
		}
	})
}
