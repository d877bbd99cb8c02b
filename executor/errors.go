package executor

import (
	"fmt"
	"time"

	"github.com/deliveryqa/cart-contract-tests/contract"
)

// TimeoutError means no complete response arrived before the deadline. It is distinct from a
// slow response that did complete, which is returned as a normal result.
type TimeoutError struct {
	Method  string
	URL     string
	Timeout time.Duration
	Err     error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: %s %s did not complete within %s: %s", contract.KindTimeout, e.Method, e.URL, e.Timeout, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

func (e *TimeoutError) FailureKind() contract.Kind { return contract.KindTimeout }

// TransportError means the request could not be made or the response could not be read, for a
// reason other than a timeout.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s %s: %s", contract.KindTransportError, e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) FailureKind() contract.Kind { return contract.KindTransportError }
