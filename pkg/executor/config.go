package executor

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds each execution attempt unless configured
// otherwise.
const DefaultTimeout = 30 * time.Second

// RetryPolicy selects which execution failures are retried. Timeouts
// are always retried while attempts remain; NotFound and
// InvalidParameters never are, regardless of policy.
type RetryPolicy int

const (
	// RetryTransientOnly retries timeouts and failures the tool marked
	// transient. This is the default.
	RetryTransientOnly RetryPolicy = iota
	// RetryAll retries every execution failure.
	RetryAll
)

// Backoff yields the wait before retry number attempt (1-based). It
// applies strictly between attempts of the same logical invocation.
type Backoff interface {
	Delay(attempt int) time.Duration
}

type fixedBackoff struct {
	delay time.Duration
}

func (b fixedBackoff) Delay(int) time.Duration { return b.delay }

// FixedBackoff waits the same delay between every retry.
func FixedBackoff(delay time.Duration) Backoff { return fixedBackoff{delay: delay} }

type exponentialBackoff struct {
	base time.Duration
	cap  time.Duration
}

func (b exponentialBackoff) Delay(attempt int) time.Duration {
	d := b.base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= b.cap {
			return b.cap
		}
	}
	if d > b.cap {
		return b.cap
	}
	return d
}

// ExponentialBackoff doubles the delay each retry, starting at base
// and never exceeding cap.
func ExponentialBackoff(base, cap time.Duration) Backoff {
	return exponentialBackoff{base: base, cap: cap}
}

// Override narrows policy for a single tool, taking precedence over
// the executor-wide values when set.
type Override struct {
	Timeout    time.Duration
	MaxRetries *int
}

// Observer receives execution outcomes, e.g. for Prometheus counters.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveExecution(toolName, status string, duration time.Duration)
	ObserveRetry(toolName string)
}

// Config is the policy shared by every invocation issued through an
// executor. It is fixed once the executor is built.
type Config struct {
	Timeout       time.Duration
	MaxRetries    int
	Backoff       Backoff
	RetryPolicy   RetryPolicy
	EnableLogging bool
	Logger        zerolog.Logger
	Observer      Observer
	ToolOverrides map[string]Override
}

// DefaultConfig mirrors the documented defaults: 30s timeout, no
// retries, 100ms fixed backoff, transient-only retry classification,
// logging off.
func DefaultConfig() Config {
	return Config{
		Timeout:     DefaultTimeout,
		MaxRetries:  0,
		Backoff:     FixedBackoff(100 * time.Millisecond),
		RetryPolicy: RetryTransientOnly,
		Logger:      zerolog.Nop(),
	}
}

func (c Config) normalized() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Backoff == nil {
		c.Backoff = FixedBackoff(100 * time.Millisecond)
	}
	if !c.EnableLogging {
		c.Logger = zerolog.Nop()
	}
	return c
}
