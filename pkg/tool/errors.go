package tool

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a tool error. The set is closed: every error that
// crosses the registry or executor boundary carries exactly one Kind.
type Kind int

const (
	// KindUnknown is the defensive catch-all, e.g. a recovered panic.
	KindUnknown Kind = iota
	// KindNotFound means the named tool is not registered or is disabled.
	KindNotFound
	// KindInvalidParameters means the payload failed decoding or validation.
	KindInvalidParameters
	// KindExecutionFailed means the tool's own operation returned an error.
	KindExecutionFailed
	// KindTimeout means an attempt exceeded the configured bound.
	KindTimeout
	// KindAlreadyExists means a registration conflicted on name.
	KindAlreadyExists
)

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidParameters:
		return "invalid_parameters"
	case KindExecutionFailed:
		return "execution_failed"
	case KindTimeout:
		return "timeout"
	case KindAlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

// Error is the structured error threaded through the registry and
// executor. Tool is the tool name when known, Timeout is set for
// KindTimeout, and Transient marks an execution failure worth retrying.
type Error struct {
	Kind      Kind
	Tool      string
	Message   string
	Timeout   time.Duration
	Transient bool
	Err       error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("tool %q not found", e.Tool)
	case KindInvalidParameters:
		return fmt.Sprintf("invalid parameters for tool %q: %s", e.Tool, e.Message)
	case KindExecutionFailed:
		return fmt.Sprintf("tool %q execution failed: %s", e.Tool, e.Message)
	case KindTimeout:
		return fmt.Sprintf("tool %q timed out after %v", e.Tool, e.Timeout)
	case KindAlreadyExists:
		return fmt.Sprintf("tool %q is already registered", e.Tool)
	default:
		return fmt.Sprintf("unknown tool error: %s", e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// NewNotFound reports that no enabled tool answers to name.
func NewNotFound(name string) *Error {
	return &Error{Kind: KindNotFound, Tool: name}
}

// NewInvalidParameters reports a payload that failed decoding or validation.
func NewInvalidParameters(tool, message string) *Error {
	return &Error{Kind: KindInvalidParameters, Tool: tool, Message: message}
}

// NewExecutionFailed wraps a tool's own error. The wrapped cause is
// preserved for errors.Is/As; transient classification survives wrapping.
func NewExecutionFailed(tool string, err error) *Error {
	if te := asError(err); te != nil && te.Kind == KindExecutionFailed {
		return &Error{Kind: KindExecutionFailed, Tool: tool, Message: te.Message, Transient: te.Transient, Err: te.Err}
	}
	return &Error{Kind: KindExecutionFailed, Tool: tool, Message: err.Error(), Transient: isTransient(err), Err: err}
}

// NewTimeout reports an attempt that exceeded the configured bound.
func NewTimeout(tool string, timeout time.Duration) *Error {
	return &Error{Kind: KindTimeout, Tool: tool, Timeout: timeout, Transient: true}
}

// NewAlreadyExists reports a registration conflict on name.
func NewAlreadyExists(name string) *Error {
	return &Error{Kind: KindAlreadyExists, Tool: name}
}

// NewUnknown reports a fault the taxonomy cannot place, e.g. a
// recovered panic from tool code.
func NewUnknown(tool, message string) *Error {
	return &Error{Kind: KindUnknown, Tool: tool, Message: message}
}

// MarkTransient flags err as worth retrying. Tools return this around
// failures they know to be temporary (connection reset, 503, ...).
func MarkTransient(err error) error {
	if err == nil {
		return nil
	}
	if te := asError(err); te != nil {
		te.Transient = true
		return te
	}
	return &Error{Kind: KindExecutionFailed, Message: err.Error(), Transient: true, Err: err}
}

// KindOf returns the Kind carried by err, or KindUnknown when err is
// not part of the taxonomy.
func KindOf(err error) Kind {
	if te := asError(err); te != nil {
		return te.Kind
	}
	return KindUnknown
}

// IsTransient reports whether err is classified as worth retrying.
// Timeouts are always transient; execution failures only when marked.
func IsTransient(err error) bool {
	return isTransient(err)
}

func isTransient(err error) bool {
	if te := asError(err); te != nil {
		return te.Transient || te.Kind == KindTimeout
	}
	return false
}

func asError(err error) *Error {
	var te *Error
	if errors.As(err, &te) {
		return te
	}
	return nil
}
