// Package webdriver is a minimal client for the W3C WebDriver protocol, enough to drive the
// delivery page's address form through chromedriver, geckodriver or a Selenium grid.
//
// Scenarios depend on the Browser and Element interfaces rather than on Session, so they can
// be tested against an in-memory page.
package webdriver

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// By is a W3C element location strategy.
type By string

const (
	ByCSS   By = "css selector"
	ByXPath By = "xpath"
)

// Special keys for SendKeys.
const (
	KeyEnter = "\uE007"
	KeyTab   = "\uE004"
)

// ErrNoSuchElement is matched (with errors.Is) by the error returned when a selector finds
// nothing.
var ErrNoSuchElement = errors.New("no such element")

type Browser interface {
	Navigate(ctx context.Context, url string) error
	CurrentURL(ctx context.Context) (string, error)
	FindElement(ctx context.Context, by By, selector string) (Element, error)
	FindElements(ctx context.Context, by By, selector string) ([]Element, error)
	SetWindowSize(ctx context.Context, width, height int) error
	ExecuteScript(ctx context.Context, script string, args ...ldvalue.Value) (ldvalue.Value, error)
	DeleteAllCookies(ctx context.Context) error
	Close(ctx context.Context) error
}

type Element interface {
	Property(ctx context.Context, name string) (ldvalue.Value, error)
	Attribute(ctx context.Context, name string) (string, error)
	CSSValue(ctx context.Context, name string) (string, error)
	Text(ctx context.Context) (string, error)
	Displayed(ctx context.Context) (bool, error)
	Enabled(ctx context.Context) (bool, error)
	Clear(ctx context.Context) error
	SendKeys(ctx context.Context, keys string) error
	Click(ctx context.Context) error
}

// Value reads the element's current "value" property, as typed by the user.
func Value(ctx context.Context, e Element) (string, error) {
	v, err := e.Property(ctx, "value")
	if err != nil {
		return "", err
	}
	return v.StringValue(), nil
}

// Error is an error response from the WebDriver endpoint.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("webdriver error %q (HTTP %d): %s", e.Code, e.Status, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == ErrNoSuchElement && e.Code == "no such element"
}
