package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/toolmesh/toolmesh/pkg/registry"
	"github.com/toolmesh/toolmesh/pkg/tool"
)

// Executor applies timeout, retry, logging, and parallelism policy
// uniformly to every invocation dispatched through a registry.
type Executor struct {
	registry *registry.Registry
	config   Config
}

// Request names one invocation for ExecuteParallel.
type Request struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

// New creates an executor with default policy.
func New(reg *registry.Registry) *Executor {
	return WithConfig(reg, DefaultConfig())
}

// WithConfig creates an executor with explicit policy.
func WithConfig(reg *registry.Registry, cfg Config) *Executor {
	return &Executor{registry: reg, config: cfg.normalized()}
}

// Registry returns the registry this executor dispatches against.
func (e *Executor) Registry() *registry.Registry { return e.registry }

// Config returns the policy shared by all invocations.
func (e *Executor) Config() Config { return e.config }

// Execute dispatches one invocation and always returns a populated
// envelope; no error ever crosses this boundary. Failure modes land in
// the Error field with the taxonomy kind's message.
func (e *Executor) Execute(ctx context.Context, toolName string, args map[string]any) Result {
	result, _ := e.execute(ctx, toolName, args)
	return result
}

// ExecuteSimple collapses the envelope to the raw payload or the
// terminal taxonomy error, for callers that want error returns instead
// of envelopes.
func (e *Executor) ExecuteSimple(ctx context.Context, toolName string, args map[string]any) (any, error) {
	result, err := e.execute(ctx, toolName, args)
	if err != nil {
		return nil, err
	}
	return result.Result, nil
}

// ExecuteParallel launches every request concurrently and returns the
// results index-for-index with the input, regardless of completion
// order. One request's failure or timeout never affects its siblings.
func (e *Executor) ExecuteParallel(ctx context.Context, requests []Request) []Result {
	results := make([]Result, len(requests))

	var wg sync.WaitGroup
	for i, req := range requests {
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			results[i] = e.Execute(ctx, req.Tool, req.Args)
		}(i, req)
	}
	wg.Wait()

	return results
}

// execute runs the full attempt sequence and reports both the envelope
// and the terminal error (nil on success).
func (e *Executor) execute(ctx context.Context, toolName string, args map[string]any) (Result, error) {
	start := time.Now()
	id := uuid.NewString()
	timeout, maxRetries := e.policyFor(toolName)

	log := e.config.Logger.With().
		Str("tool", toolName).
		Str("invocation_id", id).
		Logger()

	handle, ok := e.registry.Lookup(toolName)
	if !ok || !e.registry.Enabled(toolName) {
		err := tool.NewNotFound(toolName)
		log.Error().Msg("Tool not found")
		e.observe(toolName, err, time.Since(start))
		return failureResult(id, toolName, err, time.Since(start), 0), err
	}

	var lastErr error
	retries := 0

	for attempt := 1; ; attempt++ {
		value, err := e.attempt(ctx, handle, toolName, args, timeout)
		if err == nil {
			duration := time.Since(start)
			log.Debug().Dur("duration", duration).Int("retries", retries).Msg("Tool execution completed")
			e.observe(toolName, nil, duration)
			return successResult(id, toolName, value, duration, retries), nil
		}

		lastErr = err
		if !e.shouldRetry(err) || attempt > maxRetries {
			break
		}

		retries++
		log.Warn().Err(err).Int("attempt", attempt).Msg("Tool execution failed, retrying")
		if e.config.Observer != nil {
			e.config.Observer.ObserveRetry(toolName)
		}

		select {
		case <-time.After(e.config.Backoff.Delay(attempt)):
		case <-ctx.Done():
			lastErr = tool.NewExecutionFailed(toolName, ctx.Err())
			duration := time.Since(start)
			e.observe(toolName, lastErr, duration)
			return failureResult(id, toolName, lastErr, duration, retries), lastErr
		}
	}

	duration := time.Since(start)
	log.Error().Err(lastErr).Dur("duration", duration).Int("retries", retries).Msg("Tool execution failed")
	e.observe(toolName, lastErr, duration)
	return failureResult(id, toolName, lastErr, duration, retries), lastErr
}

// attempt runs a single bounded invocation. The tool runs in its own
// goroutine so a timeout cancels the wait, not the worker; the tool is
// expected to honor the attempt context for true cancellation. Panics
// from tool code are recovered here and never cross this boundary.
func (e *Executor) attempt(ctx context.Context, h tool.Handle, toolName string, args map[string]any, timeout time.Duration) (any, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		value any
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: tool.NewUnknown(toolName, fmt.Sprintf("tool panicked: %v", r))}
			}
		}()
		value, err := h.Invoke(attemptCtx, args)
		done <- outcome{value: value, err: err}
	}()

	select {
	case out := <-done:
		if errors.Is(out.err, context.DeadlineExceeded) {
			return nil, tool.NewTimeout(toolName, timeout)
		}
		return out.value, out.err
	case <-attemptCtx.Done():
		if ctx.Err() != nil {
			// The caller's context ended, not the attempt deadline.
			return nil, tool.NewExecutionFailed(toolName, ctx.Err())
		}
		return nil, tool.NewTimeout(toolName, timeout)
	}
}

func (e *Executor) shouldRetry(err error) bool {
	switch tool.KindOf(err) {
	case tool.KindNotFound, tool.KindInvalidParameters, tool.KindAlreadyExists:
		return false
	case tool.KindTimeout:
		return true
	default:
		if e.config.RetryPolicy == RetryAll {
			return true
		}
		return tool.IsTransient(err)
	}
}

func (e *Executor) policyFor(toolName string) (time.Duration, int) {
	timeout := e.config.Timeout
	maxRetries := e.config.MaxRetries

	if override, ok := e.config.ToolOverrides[toolName]; ok {
		if override.Timeout > 0 {
			timeout = override.Timeout
		}
		if override.MaxRetries != nil {
			maxRetries = *override.MaxRetries
		}
	}
	return timeout, maxRetries
}

func (e *Executor) observe(toolName string, err error, duration time.Duration) {
	if e.config.Observer == nil {
		return
	}
	status := "success"
	if err != nil {
		status = tool.KindOf(err).String()
	}
	e.config.Observer.ObserveExecution(toolName, status, duration)
}
