package executor

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/toolmesh/toolmesh/pkg/registry"
)

// Builder assembles an executor fluently:
//
//	exec := executor.NewBuilder(reg).
//		Timeout(10 * time.Second).
//		Retries(2).
//		Backoff(executor.ExponentialBackoff(100*time.Millisecond, 2*time.Second)).
//		Build()
type Builder struct {
	registry *registry.Registry
	config   Config
}

// NewBuilder starts a builder with default policy.
func NewBuilder(reg *registry.Registry) *Builder {
	return &Builder{registry: reg, config: DefaultConfig()}
}

// Timeout bounds each execution attempt.
func (b *Builder) Timeout(timeout time.Duration) *Builder {
	b.config.Timeout = timeout
	return b
}

// Retries sets how many times a failed attempt is retried.
func (b *Builder) Retries(maxRetries int) *Builder {
	b.config.MaxRetries = maxRetries
	return b
}

// Backoff sets the wait strategy between attempts.
func (b *Builder) Backoff(backoff Backoff) *Builder {
	b.config.Backoff = backoff
	return b
}

// RetryPolicy selects which execution failures are retried.
func (b *Builder) RetryPolicy(policy RetryPolicy) *Builder {
	b.config.RetryPolicy = policy
	return b
}

// Logging enables structured logging through the given logger.
func (b *Builder) Logging(log zerolog.Logger) *Builder {
	b.config.EnableLogging = true
	b.config.Logger = log
	return b
}

// Observer attaches an execution observer, e.g. Prometheus metrics.
func (b *Builder) Observer(observer Observer) *Builder {
	b.config.Observer = observer
	return b
}

// ToolOverride narrows timeout or retry policy for one tool.
func (b *Builder) ToolOverride(toolName string, override Override) *Builder {
	if b.config.ToolOverrides == nil {
		b.config.ToolOverrides = make(map[string]Override)
	}
	b.config.ToolOverrides[toolName] = override
	return b
}

// Build returns the configured executor.
func (b *Builder) Build() *Executor {
	return WithConfig(b.registry, b.config)
}
