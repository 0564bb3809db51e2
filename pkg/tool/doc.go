// Package tool defines the capability contract shared by the registry
// and executor: typed tools, their metadata and input schemas, the
// type-erased invocation handle, and the closed error taxonomy.
//
// Invariants:
// - A handle's metadata and input schema are fixed at construction.
// - Invoke decodes and validates before the tool runs; validation
//   failures never reach Execute.
// - Every error crossing the handle boundary carries a Kind.
package tool
