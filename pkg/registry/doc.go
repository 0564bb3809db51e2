// Package registry keeps the authoritative mapping from tool name to
// erased tool handle.
//
// Invariants:
// - At most one entry per name; duplicates are rejected, never
//   silently overwritten.
// - Readers never observe a partially registered entry.
// - The internal lock covers single map accesses only; tool execution
//   happens outside it and cannot block other lookups.
package registry
