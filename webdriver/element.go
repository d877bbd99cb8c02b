package webdriver

import (
	"context"
	"net/http"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type remoteElement struct {
	session *Session
	id      string
}

func (e *remoteElement) path(elems ...string) string {
	return e.session.path(append([]string{"element", e.id}, elems...)...)
}

func (e *remoteElement) get(ctx context.Context, elems ...string) (ldvalue.Value, error) {
	return e.session.do(ctx, http.MethodGet, e.path(elems...), ldvalue.Null())
}

func (e *remoteElement) Property(ctx context.Context, name string) (ldvalue.Value, error) {
	return e.get(ctx, "property", name)
}

// Attribute returns "" for an attribute that is not present.
func (e *remoteElement) Attribute(ctx context.Context, name string) (string, error) {
	v, err := e.get(ctx, "attribute", name)
	return v.StringValue(), err
}

func (e *remoteElement) CSSValue(ctx context.Context, name string) (string, error) {
	v, err := e.get(ctx, "css", name)
	return v.StringValue(), err
}

func (e *remoteElement) Text(ctx context.Context) (string, error) {
	v, err := e.get(ctx, "text")
	return v.StringValue(), err
}

func (e *remoteElement) Displayed(ctx context.Context) (bool, error) {
	v, err := e.get(ctx, "displayed")
	return v.BoolValue(), err
}

func (e *remoteElement) Enabled(ctx context.Context) (bool, error) {
	v, err := e.get(ctx, "enabled")
	return v.BoolValue(), err
}

func (e *remoteElement) Clear(ctx context.Context) error {
	_, err := e.session.do(ctx, http.MethodPost, e.path("clear"), ldvalue.Null())
	return err
}

func (e *remoteElement) SendKeys(ctx context.Context, keys string) error {
	_, err := e.session.do(ctx, http.MethodPost, e.path("value"),
		ldvalue.ObjectBuild().Set("text", ldvalue.String(keys)).Build())
	return err
}

func (e *remoteElement) Click(ctx context.Context) error {
	_, err := e.session.do(ctx, http.MethodPost, e.path("click"), ldvalue.Null())
	return err
}
