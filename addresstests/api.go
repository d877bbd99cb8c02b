package addresstests

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deliveryqa/cart-contract-tests/config"
	"github.com/deliveryqa/cart-contract-tests/contract"
	"github.com/deliveryqa/cart-contract-tests/framework"
	"github.com/deliveryqa/cart-contract-tests/webdriver"
)

const (
	addressInputSelector = "input.search-address-input"
	currentLocationXPath = "//*[contains(text(), 'Usar localização atual')]"

	defaultSettleTime = 2 * time.Second
	pollInterval      = 100 * time.Millisecond
)

// resetPageScript clears client-side state left by an earlier scenario and makes the
// geolocation API unavailable, so the page falls back to manual address entry.
const resetPageScript = `window.localStorage.clear();
window.sessionStorage.clear();
if (window.navigator.geolocation) { window.navigator.geolocation.getCurrentPosition = null; }`

// Environment is what every scenario in a run shares.
type Environment struct {
	Config  config.Config
	Browser webdriver.Browser
	// SettleTime is how long a scenario watches the page to confirm that it did not navigate.
	// Zero means two seconds.
	SettleTime time.Duration
}

// T represents a scenario or group of scenarios in the address suite. Like carttests.T, it can
// be passed to testify's assert and require packages.
type T struct {
	context *framework.Context
	env     Environment
}

func newTestScope(c *framework.Context, env Environment) *T {
	return &T{context: c, env: env}
}

// Errorf is called by assertions to log a failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by the require package to stop the scenario.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a child scenario or group without touching the page.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// RunOnPage runs a child scenario that starts from a freshly loaded delivery page.
func (t *T) RunOnPage(name string, action func(*T)) {
	t.Run(name, func(t *T) {
		t.openDeliveryPage()
		action(t)
	})
}

func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Tolerate records a deviation from good practice that does not fail the scenario.
func (t *T) Tolerate(format string, args ...interface{}) {
	t.context.Tolerate(format, args...)
}

func (t *T) Config() config.Config {
	return t.env.Config
}

func (t *T) Ctx() context.Context {
	return t.context.Ctx()
}

func (t *T) Browser() webdriver.Browser {
	return t.env.Browser
}

// Require records err as a failure and stops the scenario if it is non-nil.
func (t *T) Require(err error) {
	if err != nil {
		t.context.Fail(err)
		t.context.FailNow()
	}
}

func (t *T) openDeliveryPage() {
	cfg := t.env.Config
	b := t.env.Browser
	ctx := t.Ctx()

	t.context.Arrange()
	t.context.Precondition("clear cookies", b.DeleteAllCookies(ctx))
	t.context.Precondition("set window size", b.SetWindowSize(ctx, cfg.ViewportWidth, cfg.ViewportHeight))
	t.context.Precondition("open "+cfg.DeliveryAppURL, b.Navigate(ctx, cfg.DeliveryAppURL))
	_, err := b.ExecuteScript(ctx, resetPageScript)
	t.context.Precondition("reset page state", err)
	_, err = t.waitForVisible(webdriver.ByCSS, addressInputSelector)
	t.context.Precondition("wait for address input", err)
	t.context.Executed()
	t.Debug("delivery page ready")
}

// waitForVisible polls until the first element matching selector is displayed.
func (t *T) waitForVisible(by webdriver.By, selector string) (webdriver.Element, error) {
	var found webdriver.Element
	err := framework.WaitFor(t.Ctx(), t.env.Config.PageReadyTimeout, pollInterval, func() (bool, error) {
		e, err := t.env.Browser.FindElement(t.Ctx(), by, selector)
		if err != nil {
			return false, err
		}
		shown, err := e.Displayed(t.Ctx())
		if shown {
			found = e
		}
		return shown, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s is not visible: %w", selector, err)
	}
	return found, nil
}

// Visible waits for the element to be displayed, stopping the scenario if it never is.
func (t *T) Visible(by webdriver.By, selector string) webdriver.Element {
	e, err := t.waitForVisible(by, selector)
	t.Require(err)
	return e
}

// AddressInput waits for the address search field and requires it to be enabled.
func (t *T) AddressInput() webdriver.Element {
	input := t.Visible(webdriver.ByCSS, addressInputSelector)
	enabled, err := input.Enabled(t.Ctx())
	t.Require(err)
	if !enabled {
		t.Errorf("address input is disabled")
		t.FailNow()
	}
	return input
}

// FindAll returns every element matching a CSS selector. A page with none is not an error.
func (t *T) FindAll(selector string) []webdriver.Element {
	elements, err := t.env.Browser.FindElements(t.Ctx(), webdriver.ByCSS, selector)
	t.Require(err)
	return elements
}

// TypeAddress replaces the input's contents with text, optionally pressing Enter afterward.
func (t *T) TypeAddress(input webdriver.Element, text string, submit bool) {
	t.Require(input.Clear(t.Ctx()))
	keys := text
	if submit {
		keys += webdriver.KeyEnter
	}
	t.Require(input.SendKeys(t.Ctx(), keys))
	t.Debug("typed %q", text)
}

// RequireValue requires the element's current value to be expected.
func (t *T) RequireValue(e webdriver.Element, expected string) {
	value, err := webdriver.Value(t.Ctx(), e)
	t.Require(err)
	if value != expected {
		t.Require(&contract.Failure{
			Kind:     contract.KindInvariantViolation,
			Message:  "input value",
			Expected: fmt.Sprintf("%q", expected),
			Actual:   fmt.Sprintf("%q", value),
		})
	}
}

// Attribute returns the named attribute of e, or "" if it is absent.
func (t *T) Attribute(e webdriver.Element, name string) string {
	v, err := e.Attribute(t.Ctx(), name)
	t.Require(err)
	return v
}

// CSS returns the computed value of a CSS property of e.
func (t *T) CSS(e webdriver.Element, property string) string {
	v, err := e.CSSValue(t.Ctx(), property)
	t.Require(err)
	return v
}

func (t *T) currentURL() string {
	url, err := t.env.Browser.CurrentURL(t.Ctx())
	t.Require(err)
	return url
}

// WaitForURL polls the page URL until it contains one of the fragments, stopping the scenario
// with a Timeout failure if it never does within PAGE_READY_TIMEOUT.
func (t *T) WaitForURL(fragments ...string) string {
	var url string
	err := framework.WaitFor(t.Ctx(), t.env.Config.PageReadyTimeout, pollInterval, func() (bool, error) {
		var err error
		url, err = t.env.Browser.CurrentURL(t.Ctx())
		return err == nil && containsAny(url, fragments), err
	})
	if err != nil {
		t.Require(&contract.Failure{
			Kind:     contract.KindTimeout,
			Message:  fmt.Sprintf("page did not navigate within %s: %s", t.env.Config.PageReadyTimeout, err),
			Expected: "URL containing " + strings.Join(fragments, " or "),
			Actual:   url,
		})
	}
	t.Debug("navigated to %s", url)
	return url
}

// RequireStaysOn watches the page URL for the settle time and fails the scenario if it stops
// containing mustContain or comes to contain mustNotContain.
func (t *T) RequireStaysOn(mustContain, mustNotContain string) {
	settle := t.env.SettleTime
	if settle == 0 {
		settle = defaultSettleTime
	}
	var url string
	var urlErr error
	navigated := framework.WaitFor(t.Ctx(), settle, pollInterval, func() (bool, error) {
		url, urlErr = t.env.Browser.CurrentURL(t.Ctx())
		if urlErr != nil {
			return true, nil
		}
		return !strings.Contains(url, mustContain) || strings.Contains(url, mustNotContain), nil
	}) == nil
	t.Require(urlErr)
	if err := t.Ctx().Err(); err != nil {
		t.Require(&contract.Failure{Kind: contract.KindTimeout, Message: "scenario ended while watching the page: " + err.Error()})
	}
	if navigated {
		t.Require(&contract.Failure{
			Kind:     contract.KindInvariantViolation,
			Message:  "page navigated away",
			Expected: fmt.Sprintf("URL containing %q and not %q", mustContain, mustNotContain),
			Actual:   url,
		})
	}
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}
