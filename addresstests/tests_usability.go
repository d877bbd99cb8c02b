package addresstests

import (
	"strconv"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deliveryqa/cart-contract-tests/webdriver"
)

const minReadableFontSize = 12

// viewport is a device size, named as in browser device emulation presets.
type viewport struct {
	name          string
	width, height int
}

var viewports = []viewport{
	{"iphone-6", 375, 667},
	{"macbook-13", 1280, 800},
}

func DoUsabilityTests(t *T) {
	t.RunOnPage("readable font size", func(t *T) {
		body := t.Visible(webdriver.ByCSS, "body")
		size, err := parsePixels(t.CSS(body, "font-size"))
		require.NoError(t, err)
		assert.Greater(t, size, float64(minReadableFontSize))
	})

	t.RunOnPage("input spacing", func(t *T) {
		input := t.AddressInput()
		for _, property := range []string{"margin-top", "margin-bottom", "padding-left", "padding-right"} {
			_, err := parsePixels(t.CSS(input, property))
			assert.NoError(t, err, property)
		}
	})

	t.RunOnPage("focus outline", func(t *T) {
		input := t.AddressInput()
		t.Require(input.Click(t.Ctx()))
		assert.NotEmpty(t, t.CSS(input, "outline"))
	})

	t.RunOnPage("responsive layout", func(t *T) {
		cfg := t.Config()
		t.context.Defer(func() {
			_ = t.Browser().SetWindowSize(t.Ctx(), cfg.ViewportWidth, cfg.ViewportHeight)
		})
		for _, v := range viewports {
			t.Require(t.Browser().SetWindowSize(t.Ctx(), v.width, v.height))
			t.Debug("viewport %s (%dx%d)", v.name, v.width, v.height)
			t.AddressInput()
		}
	})
}

// parsePixels parses a computed CSS length such as "16px".
func parsePixels(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 64)
}
