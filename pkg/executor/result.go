package executor

import (
	"time"
)

// Result is the outcome envelope for one logical invocation: the whole
// attempt sequence, retries and backoff included. Success implies
// Result is populated and Error empty, and vice versa. Duration is
// wall-clock from invocation start to terminal outcome.
type Result struct {
	ToolName     string        `json:"tool_name"`
	Success      bool          `json:"success"`
	Result       any           `json:"result,omitempty"`
	Error        string        `json:"error,omitempty"`
	Duration     time.Duration `json:"duration"`
	Retries      int           `json:"retries"`
	Timestamp    time.Time     `json:"timestamp"`
	InvocationID string        `json:"invocation_id"`
}

func successResult(id, toolName string, value any, duration time.Duration, retries int) Result {
	return Result{
		ToolName:     toolName,
		Success:      true,
		Result:       value,
		Duration:     duration,
		Retries:      retries,
		Timestamp:    time.Now(),
		InvocationID: id,
	}
}

func failureResult(id, toolName string, err error, duration time.Duration, retries int) Result {
	return Result{
		ToolName:     toolName,
		Success:      false,
		Error:        err.Error(),
		Duration:     duration,
		Retries:      retries,
		Timestamp:    time.Now(),
		InvocationID: id,
	}
}
