package fixtures

import (
	"fmt"
	"strings"

	"github.com/deliveryqa/cart-contract-tests/contract"
)

// TemplateError means a fixture URL could not be expanded. A scenario that hits it was not set
// up with the values it needs, so it counts as a failed precondition.
type TemplateError struct {
	Template    string
	Placeholder string
	Reason      string
}

func (e *TemplateError) Error() string {
	if e.Placeholder == "" {
		return fmt.Sprintf("template %q: %s", e.Template, e.Reason)
	}
	return fmt.Sprintf("template %q: %s: %q", e.Template, e.Reason, e.Placeholder)
}

func (e *TemplateError) FailureKind() contract.Kind { return contract.KindPreconditionFailed }

// expand replaces {{name}} placeholders with values from vars. If partial is true, unknown
// placeholders are left in place; otherwise they are an error.
func expand(s string, vars map[string]string, partial bool) (string, error) {
	var out strings.Builder
	rest := s
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}
		end := strings.Index(rest[start:], "}}")
		if end == -1 {
			return "", &TemplateError{Template: s, Reason: "unterminated placeholder"}
		}
		end += start + 2

		name := strings.TrimSpace(rest[start+2 : end-2])
		out.WriteString(rest[:start])
		if value, ok := vars[name]; ok {
			out.WriteString(value)
		} else if partial {
			out.WriteString(rest[start:end])
		} else {
			return "", &TemplateError{Template: s, Placeholder: name, Reason: "no value for placeholder"}
		}
		rest = rest[end:]
	}
}

func placeholders(s string) []string {
	var ret []string
	for {
		start := strings.Index(s, "{{")
		if start == -1 {
			return ret
		}
		end := strings.Index(s[start:], "}}")
		if end == -1 {
			return ret
		}
		ret = append(ret, strings.TrimSpace(s[start+2:start+end]))
		s = s[start+end+2:]
	}
}
