package framework

import (
	"bytes"
	"errors"
	"testing"

	"github.com/deliveryqa/cart-contract-tests/contract"

	"github.com/stretchr/testify/assert"
)

func TestPrintResults(t *testing.T) {
	failure := TestResult{
		TestID: id("cart", "errors", "missing cart"),
		State:  StateFailed,
		Kind:   contract.KindUnexpectedStatus,
		Errors: []error{errors.New("status 500 not in {404, 400}")},
	}
	results := Results{
		Tests: []TestResult{
			{TestID: id("cart", "basic", "get"), State: StatePassed},
			{TestID: id("cart", "advanced", "xss"), State: StatePassed, Deviations: []string{"title echoed"}},
			failure,
			{TestID: id("address"), State: StateSkipped},
		},
		Failures: []TestResult{failure},
		Skipped:  []TestResult{{TestID: id("address"), State: StateSkipped}},
	}

	var buf bytes.Buffer
	PrintResults(&buf, results)
	out := buf.String()

	assert.Contains(t, out, "4 scenarios: 2 passed, 1 failed, 1 skipped, 1 tolerated deviations")
	assert.Contains(t, out, "FAILED:")
	assert.Contains(t, out, "cart/errors/missing cart")
	assert.Contains(t, out, "UnexpectedStatus")
	assert.Contains(t, out, "status 500 not in {404, 400}")
	assert.Contains(t, out, "TOLERATED:")
	assert.Contains(t, out, "title echoed")
}

func TestPrintResultsWhenAllPassed(t *testing.T) {
	var buf bytes.Buffer
	PrintResults(&buf, Results{Tests: []TestResult{{TestID: id("a"), State: StatePassed}}})
	assert.Equal(t, "1 scenarios: 1 passed, 0 failed, 0 skipped, 0 tolerated deviations\n", buf.String())
}

func TestMergeResults(t *testing.T) {
	a := Results{Tests: []TestResult{{TestID: id("a")}}, Failures: []TestResult{{TestID: id("a")}}}
	b := Results{Tests: []TestResult{{TestID: id("b")}}, Skipped: []TestResult{{TestID: id("b")}}}
	merged := MergeResults(a, b)
	assert.Len(t, merged.Tests, 2)
	assert.Len(t, merged.Failures, 1)
	assert.Len(t, merged.Skipped, 1)
}
