// Package fixtures holds the named request templates that scenarios execute, each paired with
// the shape of an acceptable response.
package fixtures

import (
	"net/http"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Fixture is a named request template. A null Body means the request is sent without a body.
//
// URLTemplate may contain {{name}} placeholders. Those naming configuration values are
// resolved when the fixture is registered; the rest (such as {{createdId}}) must be supplied
// by the scenario when it executes the fixture.
type Fixture struct {
	Name        string
	Method      string
	URLTemplate string
	Body        ldvalue.Value
	Headers     map[string]string
}

// Resolve expands the URL template. Every placeholder must have a value in vars.
func (f Fixture) Resolve(vars map[string]string) (string, error) {
	return expand(f.URLTemplate, vars, false)
}

// Placeholders lists the placeholders still present in the URL template.
func (f Fixture) Placeholders() []string {
	return placeholders(f.URLTemplate)
}

func (f Fixture) HasBody() bool {
	return !f.Body.IsNull()
}

// Mutating is true for the methods whose fixtures must declare an expected shape.
func (f Fixture) Mutating() bool {
	switch strings.ToUpper(f.Method) {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// clone returns a copy that shares nothing mutable with f. ldvalue.Value is immutable, so
// only the header map needs copying.
func (f Fixture) clone() Fixture {
	if f.Headers != nil {
		h := make(map[string]string, len(f.Headers))
		for k, v := range f.Headers {
			h[k] = v
		}
		f.Headers = h
	}
	return f
}
