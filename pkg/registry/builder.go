package registry

import "github.com/toolmesh/toolmesh/pkg/tool"

// Builder assembles a registry fluently. The three posture methods are
// thin wrappers over the same Register call and differ only in how a
// failure is handled:
//
//   - WithTool records the first failure and surfaces it from Build;
//   - MustTool panics, for prototyping where a conflict is programmer
//     error (not recommended at production entry points);
//   - TryTool drops failures and continues with whatever succeeded.
type Builder struct {
	registry *Registry
	err      error
}

// NewBuilder starts a builder over a fresh registry.
func NewBuilder() *Builder {
	return &Builder{registry: New()}
}

// WithTool registers strictly: the first failure is kept and returned
// by Build, and later additions still apply so the error reflects the
// first conflict rather than the last.
func (b *Builder) WithTool(h tool.Handle) *Builder {
	if err := b.registry.Register(h); err != nil && b.err == nil {
		b.err = err
	}
	return b
}

// MustTool registers and panics on failure.
func (b *Builder) MustTool(h tool.Handle) *Builder {
	if err := b.registry.Register(h); err != nil {
		panic(err)
	}
	return b
}

// TryTool registers best-effort, ignoring failures.
func (b *Builder) TryTool(h tool.Handle) *Builder {
	_ = b.registry.Register(h)
	return b
}

// Build returns the registry and the first WithTool failure, if any.
func (b *Builder) Build() (*Registry, error) {
	return b.registry, b.err
}
