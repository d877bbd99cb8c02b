package contract

import (
	"fmt"
	"strings"
)

// Kind classifies why a scenario failed.
type Kind string

const (
	KindUnknownFixture     Kind = "UnknownFixture"
	KindTimeout            Kind = "Timeout"
	KindUnexpectedStatus   Kind = "UnexpectedStatus"
	KindShapeMismatch      Kind = "ShapeMismatch"
	KindTypeMismatch       Kind = "TypeMismatch"
	KindInvariantViolation Kind = "InvariantViolation"
	KindPreconditionFailed Kind = "PreconditionFailed"
	KindTransportError     Kind = "TransportError"
	KindPanic              Kind = "Panic"
)

// Failure is the error returned by every assertion in this package.
type Failure struct {
	Kind     Kind
	Message  string
	Expected string
	Actual   string
}

func (f *Failure) Error() string {
	var b strings.Builder
	b.WriteString(string(f.Kind))
	b.WriteString(": ")
	b.WriteString(f.Message)
	if f.Expected != "" || f.Actual != "" {
		fmt.Fprintf(&b, " (expected %s, got %s)", f.Expected, f.Actual)
	}
	return b.String()
}

// FailureKind lets the scenario runner classify the failure without importing this package's
// concrete types.
func (f *Failure) FailureKind() Kind {
	return f.Kind
}

func failf(kind Kind, expected, actual string, format string, args ...interface{}) *Failure {
	return &Failure{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Expected: expected,
		Actual:   actual,
	}
}
