package carttests

import (
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/deliveryqa/cart-contract-tests/config"
	"github.com/deliveryqa/cart-contract-tests/contract"
	"github.com/deliveryqa/cart-contract-tests/executor"
	"github.com/deliveryqa/cart-contract-tests/fixtures"
	"github.com/deliveryqa/cart-contract-tests/framework"
	"github.com/deliveryqa/cart-contract-tests/servicedef"
)

// Environment is what every scenario in a run shares. None of it is modified by scenarios.
type Environment struct {
	Config   config.Config
	Fixtures *fixtures.Registry
	Executor *executor.Executor
}

// T represents a scenario or group of scenarios in the cart suite.
//
// To make assertions, use the assert and require packages, passing the *T as if it were a
// *testing.T. The Execute and Require methods fail the scenario and stop it immediately if
// something unexpected happens.
type T struct {
	context *framework.Context
	env     Environment
	exec    *executor.Executor
}

func newTestScope(c *framework.Context, env Environment) *T {
	return &T{
		context: c,
		env:     env,
		exec:    env.Executor.WithLogger(c.DebugLogger()),
	}
}

// Errorf is called by assertions to log a failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by the require package to stop the scenario.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a child scenario.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Tolerate records that the API did something a strict implementation would not, without
// failing the scenario.
func (t *T) Tolerate(format string, args ...interface{}) {
	t.context.Tolerate(format, args...)
}

func (t *T) Config() config.Config {
	return t.env.Config
}

// Check records err as a failure if it is non-nil, and lets the scenario continue.
func (t *T) Check(err error) {
	if err != nil {
		t.context.Fail(err)
	}
}

// Require records err as a failure and stops the scenario if it is non-nil.
func (t *T) Require(err error) {
	if err != nil {
		t.context.Fail(err)
		t.context.FailNow()
	}
}

// Fixture returns the named fixture. An unknown name stops the scenario with UnknownFixture.
func (t *T) Fixture(name string) fixtures.Fixture {
	f, err := t.env.Fixtures.Get(name)
	t.Require(err)
	return f
}

// Shape returns the expected response of the named fixture. Fixtures without one accept any
// status.
func (t *T) Shape(name string) contract.ExpectedShape {
	if s, ok := t.env.Fixtures.Shape(name); ok {
		return s
	}
	return contract.ExpectedShape{AcceptableStatuses: contract.AnyStatus}
}

// TryExecute executes the named fixture and returns any executor error to the caller.
func (t *T) TryExecute(name string, overrides executor.Overrides) (contract.ScenarioResult, error) {
	f := t.Fixture(name)
	t.context.Arrange()
	result, err := t.exec.Execute(t.context.Ctx(), f, overrides)
	if err == nil {
		t.context.Executed()
	}
	return result, err
}

// Execute executes the named fixture. A timeout or transport error stops the scenario.
func (t *T) Execute(name string, overrides executor.Overrides) contract.ScenarioResult {
	result, err := t.TryExecute(name, overrides)
	t.Require(err)
	return result
}

// ExecuteVerified executes the named fixture and requires the response to match the fixture's
// expected shape.
func (t *T) ExecuteVerified(name string, overrides executor.Overrides) contract.ScenarioResult {
	result := t.Execute(name, overrides)
	t.Require(contract.Verify(result, t.Shape(name)))
	return result
}

// ExecuteBatch sends all calls concurrently and returns once every one has finished.
func (t *T) ExecuteBatch(calls []executor.Call) []executor.Outcome {
	t.context.Arrange()
	outcomes := t.exec.Batch(t.context.Ctx(), calls)
	t.context.Executed()
	return outcomes
}

// RequireStatusIn stops the scenario unless the result has one of the given statuses.
func (t *T) RequireStatusIn(result contract.ScenarioResult, statuses ...int) {
	t.Require(contract.AssertStatusIn(result, statuses...))
}

// RequireShape stops the scenario unless body matches shape's keys, types and ranges.
func (t *T) RequireShape(body ldvalue.Value, shape contract.ExpectedShape) {
	if len(shape.RequiredKeys) != 0 {
		t.Require(contract.AssertShape(body, shape))
	}
	t.Require(contract.AssertFieldTypes(body, shape))
	t.Require(contract.AssertFieldRanges(body, shape))
}

// CheckInvariants checks each invariant against body, recording every violation.
func (t *T) CheckInvariants(body ldvalue.Value, invariants ...contract.Invariant) {
	for _, inv := range invariants {
		t.Check(inv.Check(body))
	}
}

// CreateCart executes a cart-creating fixture as a setup step. If the cart cannot be created
// the scenario stops with PreconditionFailed.
func (t *T) CreateCart(name string) servicedef.Cart {
	description := fmt.Sprintf("create cart with %s", name)
	result, err := t.TryExecute(name, executor.Overrides{})
	t.context.Precondition(description, err)
	t.context.Precondition(description, contract.AssertStatusIn(result, 200, 201))
	if !result.HasBody {
		t.context.Precondition(description, fmt.Errorf("response had no JSON body"))
	}
	c, err := servicedef.ParseCart(result.Body)
	t.context.Precondition(description, err)
	t.Debug("created cart %d", c.ID)
	return c
}

// CartVars are the URL variables naming a cart created by the scenario.
func CartVars(c servicedef.Cart) map[string]string {
	return map[string]string{"createdId": fmt.Sprint(c.ID)}
}
