// Package executor dispatches named tool invocations against a
// registry under timeout, retry, and parallelism policy.
//
// Invariants:
// - Execute always returns a populated envelope; failures are in-band.
// - Invalid parameters and missing tools are never retried.
// - A timed-out or failed parallel request never cancels its siblings.
// - Panics in tool code are recovered at the attempt boundary.
package executor
