package framework

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/deliveryqa/cart-contract-tests/contract"
)

type environment struct {
	results         Results
	testLogger      TestLogger
	filter          Filter
	scenarioTimeout time.Duration
}

// Context is the state of one running scenario (or group of scenarios).
type Context struct {
	env         *environment
	id          TestID
	ctx         context.Context
	cancel      context.CancelFunc
	debugLogger CapturingLogger
	state       State
	started     time.Time
	children    int
	failed      bool
	skipped     bool
	skipReason  string
	excluded    bool
	errors      []error
	deviations  []string
	deferred    []func()
}

// Run runs the root scenario and returns the results of every scenario started beneath it.
//
// If scenarioTimeout is non-zero, each child scenario gets a context.Context with that
// deadline (see Ctx). The deadline is per scenario, not cumulative for a group.
func Run(
	filter Filter,
	testLogger TestLogger,
	scenarioTimeout time.Duration,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:          filter,
		testLogger:      testLogger,
		scenarioTimeout: scenarioTimeout,
	}
	c := newContext(env, TestID{})
	c.run(action)
	return env.results
}

func newContext(env *environment, id TestID) *Context {
	c := &Context{env: env, id: id, started: time.Now()}
	if env.scenarioTimeout > 0 {
		c.ctx, c.cancel = context.WithTimeout(context.Background(), env.scenarioTimeout)
	} else {
		c.ctx, c.cancel = context.WithCancel(context.Background())
	}
	return c
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if !c.skipped {
				c.failed = true
				var addError error
				if _, ok := r.(*Context); ok {
					if len(c.errors) == 0 {
						addError = errors.New("test failed with no failure message")
					}
				} else {
					addError = &panicError{value: r, stack: string(debug.Stack())}
				}
				if addError != nil {
					c.errors = append(c.errors, addError)
					c.env.testLogger.TestError(c.id, addError)
				}
			}
		}
		c.runDeferred()
		c.cancel()
		c.finish()
	}()

	action(c)
}

func (c *Context) runDeferred() {
	for i := len(c.deferred) - 1; i >= 0; i-- {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.Debug("panic in deferred cleanup: %v", r)
				}
			}()
			c.deferred[i]()
		}()
	}
	c.deferred = nil
}

func (c *Context) finish() {
	if c.excluded && c.children == 0 && !c.failed {
		c.skipped = true
		c.skipReason = filteredOutReason
	}
	switch {
	case c.skipped:
		c.state = StateSkipped
	case c.failed:
		c.state = StateFailed
	default:
		c.state = StatePassed
	}
	// A group that only ran children is not a scenario of its own, unless it failed or
	// tolerated something itself.
	if c.children > 0 && len(c.errors) == 0 && len(c.deviations) == 0 && !c.skipped {
		return
	}
	result := TestResult{
		TestID:     c.id,
		State:      c.state,
		Errors:     c.errors,
		Deviations: c.deviations,
		SkipReason: c.skipReason,
		Duration:   time.Since(c.started),
	}
	if c.failed {
		result.Kind = c.Kind()
	}
	c.env.results.Tests = append(c.env.results.Tests, result)
	switch c.state {
	case StateFailed:
		c.env.results.Failures = append(c.env.results.Failures, result)
	case StateSkipped:
		c.env.results.Skipped = append(c.env.results.Skipped, result)
	}
}

func (c *Context) ID() TestID {
	return c.id
}

// Ctx returns the context.Context that bounds this scenario. It is cancelled when the
// scenario ends or its timeout expires; blocking operations made on behalf of the scenario
// should use it.
func (c *Context) Ctx() context.Context {
	return c.ctx
}

// State returns the current lifecycle state.
func (c *Context) State() State {
	return c.state
}

// Kind returns the failure kind of the first recorded error, or "" if nothing failed.
func (c *Context) Kind() contract.Kind {
	if len(c.errors) == 0 {
		return ""
	}
	return KindOf(c.errors[0])
}

// Run runs a child scenario. A failure in the child is recorded and does not affect the
// caller, which continues with its next statement.
//
// The filter is consulted for every child, but a child it rejects is still entered: if it
// turns out to be a group, each scenario beneath it is filtered on its own path. A rejected
// child that has no children of its own is skipped at its first step (Arrange, Executed, a
// failure or a deviation), before it touches the system under test.
func (c *Context) Run(name string, action func(*Context)) {
	id := c.id.Child(name)
	c.children++

	c.env.testLogger.TestStarted(id)
	c1 := newContext(c.env, id)
	c1.excluded = c.env.filter != nil && !c.env.filter(id)
	c1.run(action)
	if c1.skipped {
		c.env.testLogger.TestSkipped(id, c1.skipReason)
	} else {
		c.env.testLogger.TestFinished(id, c1.failed, c1.debugLogger.Output())
	}
}

// Arrange marks the scenario as having built its request.
func (c *Context) Arrange() {
	c.advance(StateArranged)
}

// Executed marks the scenario as having received its response.
func (c *Context) Executed() {
	c.advance(StateExecuted)
}

func (c *Context) advance(to State) {
	c.skipIfExcluded()
	if c.state < to {
		c.state = to
	}
}

// Errorf records a failure without stopping the scenario. It is called by testify's assert
// package.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.Fail(fmt.Errorf(format, args...))
}

// Fail records an error without stopping the scenario. Errors that carry a failure kind keep
// it, so the first recorded error determines how the scenario is classified.
func (c *Context) Fail(err error) {
	c.skipIfExcluded()
	c.failed = true
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// FailNow stops the scenario. It is called by testify's require package.
func (c *Context) FailNow() {
	panic(c)
}

// Precondition stops the scenario with a PreconditionFailed outcome if err is non-nil.
func (c *Context) Precondition(description string, err error) {
	if err == nil {
		return
	}
	c.Fail(&PreconditionError{Description: description, Err: err})
	c.FailNow()
}

// Tolerate records a known deviation of the system under test. The scenario still passes, but
// the deviation is reported.
func (c *Context) Tolerate(format string, args ...interface{}) {
	c.skipIfExcluded()
	message := fmt.Sprintf(format, args...)
	c.deviations = append(c.deviations, message)
	c.debugLogger.Printf("tolerated: %s", message)
	c.env.testLogger.TestDeviation(c.id, message)
}

// Defer schedules a cleanup function to run when the scenario ends, in reverse order of
// registration. It runs even if the scenario failed or was skipped.
func (c *Context) Defer(fn func()) {
	c.deferred = append(c.deferred, fn)
}

const filteredOutReason = "excluded by filter parameters"

func (c *Context) skipIfExcluded() {
	if c.excluded && c.children == 0 && !c.skipped {
		c.SkipWithReason(filteredOutReason)
	}
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}
