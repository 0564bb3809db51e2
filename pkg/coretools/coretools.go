// Package coretools registers the baseline tools shipped with the
// engine: a calculator, an echo tool, and a timestamp tool. They
// double as working references for writing typed tools.
package coretools

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/toolmesh/toolmesh/pkg/registry"
	"github.com/toolmesh/toolmesh/pkg/tool"
)

// CalculatorInput selects an arithmetic operation over two operands.
// B is ignored for the unary operations sqrt and abs.
type CalculatorInput struct {
	Operation string  `json:"operation" jsonschema:"description=Operation to perform,enum=add,enum=subtract,enum=multiply,enum=divide,enum=power,enum=sqrt,enum=abs"`
	A         float64 `json:"a" jsonschema:"description=First operand"`
	B         float64 `json:"b,omitempty" jsonschema:"description=Second operand (unused for sqrt and abs)"`
}

// Validate rejects operations outside the supported set before any
// execution attempt is made.
func (in CalculatorInput) Validate() error {
	switch in.Operation {
	case "add", "subtract", "multiply", "divide", "power", "sqrt", "abs":
		return nil
	default:
		return fmt.Errorf("unsupported operation %q; supported: add, subtract, multiply, divide, power, sqrt, abs", in.Operation)
	}
}

// CalculatorOutput carries the result and a readable expression.
type CalculatorOutput struct {
	Result     float64 `json:"result"`
	Expression string  `json:"expression"`
	Operation  string  `json:"operation"`
}

// EchoInput is the payload echoed back verbatim.
type EchoInput struct {
	Message string `json:"message" jsonschema:"description=Text to echo back"`
}

// EchoOutput returns the echoed message.
type EchoOutput struct {
	Message string `json:"message"`
}

// TimestampOutput reports the current time.
type TimestampOutput struct {
	Unix    int64  `json:"unix"`
	RFC3339 string `json:"rfc3339"`
}

// Register adds the core tools to the registry. Registration stops at
// the first conflict so a caller-owned name is never shadowed.
func Register(reg *registry.Registry) error {
	handles := []tool.Handle{
		Calculator(),
		Echo(),
		Timestamp(),
	}

	for _, h := range handles {
		if err := reg.Register(h); err != nil {
			return fmt.Errorf("register core tool %s: %w", h.Metadata().Name, err)
		}
	}
	return nil
}

// Calculator builds the arithmetic tool handle.
func Calculator() tool.Handle {
	return tool.Func("calculator",
		"Perform mathematical operations including basic arithmetic, power, square root, and absolute value",
		calculate,
		tool.WithVersion("2.0.0"),
		tool.WithTags("math", "calculator", "arithmetic"),
	)
}

// Echo builds the echo tool handle.
func Echo() tool.Handle {
	return tool.Func("echo", "Echo the given message back",
		func(ctx context.Context, in EchoInput) (EchoOutput, error) {
			return EchoOutput{Message: in.Message}, nil
		},
		tool.WithTags("text"),
	)
}

// Timestamp builds the current-time tool handle.
func Timestamp() tool.Handle {
	return tool.Func("timestamp", "Report the current time",
		func(ctx context.Context, in struct{}) (TimestampOutput, error) {
			now := time.Now()
			return TimestampOutput{Unix: now.Unix(), RFC3339: now.Format(time.RFC3339)}, nil
		},
		tool.WithTags("time"),
	)
}

func calculate(ctx context.Context, in CalculatorInput) (CalculatorOutput, error) {
	var result float64
	var expression string

	switch in.Operation {
	case "add":
		result = in.A + in.B
		expression = fmt.Sprintf("%g + %g = %g", in.A, in.B, result)
	case "subtract":
		result = in.A - in.B
		expression = fmt.Sprintf("%g - %g = %g", in.A, in.B, result)
	case "multiply":
		result = in.A * in.B
		expression = fmt.Sprintf("%g * %g = %g", in.A, in.B, result)
	case "divide":
		if in.B == 0 {
			return CalculatorOutput{}, fmt.Errorf("division by zero")
		}
		result = in.A / in.B
		expression = fmt.Sprintf("%g / %g = %g", in.A, in.B, result)
	case "power":
		result = math.Pow(in.A, in.B)
		expression = fmt.Sprintf("%g ^ %g = %g", in.A, in.B, result)
	case "sqrt":
		if in.A < 0 {
			return CalculatorOutput{}, fmt.Errorf("square root of negative number %g", in.A)
		}
		result = math.Sqrt(in.A)
		expression = fmt.Sprintf("sqrt(%g) = %g", in.A, result)
	case "abs":
		result = math.Abs(in.A)
		expression = fmt.Sprintf("abs(%g) = %g", in.A, result)
	default:
		return CalculatorOutput{}, fmt.Errorf("unsupported operation %q", in.Operation)
	}

	return CalculatorOutput{Result: result, Expression: expression, Operation: in.Operation}, nil
}
