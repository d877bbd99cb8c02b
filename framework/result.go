package framework

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/deliveryqa/cart-contract-tests/contract"
)

// State is the position of a scenario in its lifecycle.
type State int

const (
	StatePending State = iota
	StateArranged
	StateExecuted
	StatePassed
	StateFailed
	StateSkipped
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateArranged:
		return "Arranged"
	case StateExecuted:
		return "Executed"
	case StatePassed:
		return "Passed"
	case StateFailed:
		return "Failed"
	case StateSkipped:
		return "Skipped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal is true for Passed, Failed and Skipped.
func (s State) Terminal() bool {
	return s >= StatePassed
}

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

type TestResult struct {
	TestID     TestID
	State      State
	Kind       contract.Kind // set only if State is StateFailed
	Errors     []error
	Deviations []string
	SkipReason string
	Duration   time.Duration
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Passed counts scenarios that ended in StatePassed, with or without tolerated deviations.
func (r Results) Passed() int {
	n := 0
	for _, t := range r.Tests {
		if t.State == StatePassed {
			n++
		}
	}
	return n
}

// Deviations returns every tolerated deviation, in scenario order.
func (r Results) Deviations() []TestFailure {
	var ret []TestFailure
	for _, t := range r.Tests {
		for _, d := range t.Deviations {
			ret = append(ret, TestFailure{ID: t.TestID, Err: errors.New(d)})
		}
	}
	return ret
}

// MergeResults concatenates the results of several runs.
func MergeResults(all ...Results) Results {
	var ret Results
	for _, r := range all {
		ret.Tests = append(ret.Tests, r.Tests...)
		ret.Failures = append(ret.Failures, r.Failures...)
		ret.Skipped = append(ret.Skipped, r.Skipped...)
	}
	return ret
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Child returns the ID of a child scenario. The parent's path is copied, so sibling IDs never
// share a backing array.
func (t TestID) Child(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	path = append(path, t.Path...)
	return TestID{Path: append(path, name)}
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
