package addresstests

import (
	"context"
	"strings"
	"sync"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/deliveryqa/cart-contract-tests/webdriver"
)

// fakePage is an in-memory webdriver.Browser showing one page whose elements are looked up by
// the exact selector string a scenario uses.
type fakePage struct {
	lock     sync.Mutex
	url      string
	elements map[string][]*fakeElement
	scripts  []string
	windows  [][2]int
	cleared  int
}

type fakeElement struct {
	page     *fakePage
	attrs    map[string]string
	css      map[string]string
	text     string
	hidden   bool
	disabled bool
	value    string
	onSubmit func(p *fakePage, value string)
	onClick  func(p *fakePage)
}

// newDeliveryPage builds a page that behaves like the delivery app: an address with a street
// number separated by commas goes to the menu, anything else stays put. It has no <nav>.
func newDeliveryPage() *fakePage {
	p := &fakePage{elements: make(map[string][]*fakeElement)}
	p.add(addressInputSelector, &fakeElement{
		attrs: map[string]string{"type": "text", "placeholder": "Digite seu endereço", "class": "search-address-input"},
		css: map[string]string{
			"margin-top": "0px", "margin-bottom": "8px", "padding-left": "12px", "padding-right": "12px",
			"outline": "rgb(0, 0, 0) auto 1px",
		},
		onSubmit: func(p *fakePage, value string) {
			if strings.Count(value, ",") >= 1 {
				p.url = "https://delivery.example/cardapio"
			}
		},
	})
	p.add(currentLocationXPath, &fakeElement{
		text:    "Usar localização atual",
		onClick: func(p *fakePage) { p.url = "https://delivery.example/cardapio" },
	})
	p.add(".app-content", &fakeElement{})
	p.add("h1, h2, h3, .title, .subtitle", &fakeElement{text: "Onde você está?"})
	p.add("main", &fakeElement{attrs: map[string]string{"role": "main"}})
	p.add("header", &fakeElement{attrs: map[string]string{"role": "banner"}})
	p.add("button", &fakeElement{text: "Confirmar"}, &fakeElement{text: "Fechar", hidden: true, disabled: true})
	p.add("img", &fakeElement{attrs: map[string]string{"alt": "Logo", "src": "/logo.png"}})
	p.add(`a, [role="link"]`, &fakeElement{text: " Ver cardápio "}, &fakeElement{})
	p.add("h1, h2, h3, p, span, a, .text, .label",
		&fakeElement{css: map[string]string{"color": "rgb(33, 33, 33)", "background-color": "rgba(0, 0, 0, 0)"}},
		&fakeElement{hidden: true})
	p.add("body", &fakeElement{css: map[string]string{"font-size": "16px"}})
	return p
}

func (p *fakePage) add(selector string, elements ...*fakeElement) {
	for _, e := range elements {
		e.page = p
		if e.attrs == nil {
			e.attrs = map[string]string{}
		}
		if e.css == nil {
			e.css = map[string]string{}
		}
	}
	p.elements[selector] = append(p.elements[selector], elements...)
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.url = url
	for _, list := range p.elements {
		for _, e := range list {
			e.value = ""
		}
	}
	return nil
}

func (p *fakePage) CurrentURL(ctx context.Context) (string, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.url, nil
}

func (p *fakePage) FindElement(ctx context.Context, by webdriver.By, selector string) (webdriver.Element, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	list := p.elements[selector]
	if len(list) == 0 {
		return nil, &webdriver.Error{Status: 404, Code: "no such element", Message: selector}
	}
	return list[0], nil
}

func (p *fakePage) FindElements(ctx context.Context, by webdriver.By, selector string) ([]webdriver.Element, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	var ret []webdriver.Element
	for _, e := range p.elements[selector] {
		ret = append(ret, e)
	}
	return ret, nil
}

func (p *fakePage) SetWindowSize(ctx context.Context, width, height int) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.windows = append(p.windows, [2]int{width, height})
	return nil
}

func (p *fakePage) ExecuteScript(ctx context.Context, script string, args ...ldvalue.Value) (ldvalue.Value, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.scripts = append(p.scripts, script)
	return ldvalue.Null(), nil
}

func (p *fakePage) DeleteAllCookies(ctx context.Context) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.cleared++
	return nil
}

func (p *fakePage) Close(ctx context.Context) error {
	return nil
}

func (e *fakeElement) Property(ctx context.Context, name string) (ldvalue.Value, error) {
	e.page.lock.Lock()
	defer e.page.lock.Unlock()
	if name == "value" {
		return ldvalue.String(e.value), nil
	}
	return ldvalue.Null(), nil
}

func (e *fakeElement) Attribute(ctx context.Context, name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeElement) CSSValue(ctx context.Context, name string) (string, error) {
	return e.css[name], nil
}

func (e *fakeElement) Text(ctx context.Context) (string, error) {
	return e.text, nil
}

func (e *fakeElement) Displayed(ctx context.Context) (bool, error) {
	return !e.hidden, nil
}

func (e *fakeElement) Enabled(ctx context.Context) (bool, error) {
	return !e.disabled, nil
}

func (e *fakeElement) Clear(ctx context.Context) error {
	e.page.lock.Lock()
	defer e.page.lock.Unlock()
	e.value = ""
	return nil
}

func (e *fakeElement) SendKeys(ctx context.Context, keys string) error {
	e.page.lock.Lock()
	defer e.page.lock.Unlock()
	text, submitted := strings.CutSuffix(keys, webdriver.KeyEnter)
	e.value += text
	if submitted && e.onSubmit != nil {
		e.onSubmit(e.page, e.value)
	}
	return nil
}

func (e *fakeElement) Click(ctx context.Context) error {
	e.page.lock.Lock()
	defer e.page.lock.Unlock()
	if e.onClick != nil {
		e.onClick(e.page)
	}
	return nil
}
