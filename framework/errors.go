package framework

import (
	"errors"
	"fmt"

	"github.com/deliveryqa/cart-contract-tests/contract"
)

type kindedError interface {
	FailureKind() contract.Kind
}

// KindOf classifies an error recorded by a scenario. Errors that do not carry a kind, such as
// the messages produced by testify assertions, are invariant violations: they are checks on
// the data the scenario got back.
func KindOf(err error) contract.Kind {
	var k kindedError
	if errors.As(err, &k) {
		return k.FailureKind()
	}
	return contract.KindInvariantViolation
}

// PreconditionError means a setup step that a scenario depends on did not succeed, so the
// scenario's own assertions were never run.
type PreconditionError struct {
	Description string
	Err         error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s: %s", contract.KindPreconditionFailed, e.Description, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

func (e *PreconditionError) FailureKind() contract.Kind { return contract.KindPreconditionFailed }

type panicError struct {
	value interface{}
	stack string
}

func (e *panicError) Error() string {
	return fmt.Sprintf("unexpected panic in test: %+v\n%s", e.value, e.stack)
}

func (e *panicError) FailureKind() contract.Kind { return contract.KindPanic }
