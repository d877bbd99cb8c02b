// Package carttests contains the scenarios that verify the cart API contract.
//
// Scenarios are written against the T type, which wraps a framework.Context with the fixture
// registry and request executor for the run. Each scenario follows the same pattern: take a
// fixture, execute it (optionally with overrides), check the response against the fixture's
// expected shape, then check whatever relations the scenario is about.
//
// The API under test is external and only loosely specified, so fixtures accept a set of
// plausible status codes, and acceptance of invalid input is recorded with T.Tolerate instead
// of failing the scenario.
package carttests
