// Package framework contains the low-level scenario runner that is shared by the cart API
// suites and the browser suites.
//
// The general model is:
//
// 1. A scenario is a named piece of test logic, run through a Context that is similar to Go's
// *testing.T: it implements the interface used by testify's assert and require packages,
// accumulates errors, and can have child scenarios.
//
// 2. Each scenario moves through Pending, Arranged and Executed before ending as Passed,
// Failed (with a failure kind) or Skipped. A failed scenario never stops the run; the runner
// records it and moves on to the next one.
//
// 3. Debug output is captured per scenario and handed to the TestLogger when the scenario
// finishes, so it can be printed only for failures.
//
// The domain-specific code that knows what is being tested is responsible for the fixtures,
// the requests and the assertions, and for a domain-specific test API on top of Context.
package framework
