// Package contract contains the response assertion engine: declarative expected shapes for
// response bodies, status-code sets, and cross-field invariants.
//
// Every assertion is a pure function. It returns nil if the response satisfies the contract,
// or a *Failure describing the mismatch. Callers decide whether a failure ends the scenario;
// the assertions themselves never panic and never log.
package contract
