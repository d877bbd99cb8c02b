package fixtures

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/deliveryqa/cart-contract-tests/config"
	"github.com/deliveryqa/cart-contract-tests/contract"
)

// Entry is a fixture as registered, with its expected response. Shape may be nil only for
// fixtures that do not mutate anything.
type Entry struct {
	Fixture
	Shape *contract.ExpectedShape
}

// UnknownFixtureError is returned by Registry.Get for a name that was never registered.
type UnknownFixtureError struct {
	Name string
}

func (e *UnknownFixtureError) Error() string {
	return fmt.Sprintf("%s: no fixture named %q", contract.KindUnknownFixture, e.Name)
}

func (e *UnknownFixtureError) FailureKind() contract.Kind { return contract.KindUnknownFixture }

// Registry is the read-only set of fixtures for a run. It is safe for concurrent use because
// nothing changes after NewRegistry returns.
type Registry struct {
	fixtures map[string]Fixture
	shapes   map[string]contract.ExpectedShape
}

var knownMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// NewRegistry validates the entries and resolves the configuration placeholders in their URLs.
func NewRegistry(cfg config.Config, entries ...Entry) (*Registry, error) {
	r := &Registry{
		fixtures: make(map[string]Fixture, len(entries)),
		shapes:   make(map[string]contract.ExpectedShape, len(entries)),
	}
	vars := cfg.TemplateVars()
	for _, e := range entries {
		f := e.Fixture.clone()
		f.Method = strings.ToUpper(f.Method)
		if f.Name == "" {
			return nil, fmt.Errorf("fixture with URL %q has no name", f.URLTemplate)
		}
		if _, dup := r.fixtures[f.Name]; dup {
			return nil, fmt.Errorf("fixture %q registered twice", f.Name)
		}
		if !knownMethods[f.Method] {
			return nil, fmt.Errorf("fixture %q: unsupported method %q", f.Name, e.Method)
		}
		if f.Mutating() && e.Shape == nil {
			return nil, fmt.Errorf("fixture %q: %s fixtures must declare an expected shape", f.Name, f.Method)
		}
		url, err := expand(f.URLTemplate, vars, true)
		if err != nil {
			return nil, fmt.Errorf("fixture %q: %w", f.Name, err)
		}
		f.URLTemplate = url
		r.fixtures[f.Name] = f
		if e.Shape != nil {
			r.shapes[f.Name] = *e.Shape
		}
	}
	return r, nil
}

// Get returns a copy of the named fixture.
func (r *Registry) Get(name string) (Fixture, error) {
	f, ok := r.fixtures[name]
	if !ok {
		return Fixture{}, &UnknownFixtureError{Name: name}
	}
	return f.clone(), nil
}

// Shape returns the expected response for the named fixture, if it declared one.
func (r *Registry) Shape(name string) (contract.ExpectedShape, bool) {
	s, ok := r.shapes[name]
	return s, ok
}

// Names returns every registered fixture name in sorted order.
func (r *Registry) Names() []string {
	ret := make([]string, 0, len(r.fixtures))
	for name := range r.fixtures {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}
