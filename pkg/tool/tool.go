package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"
)

// Tool is the typed capability contract. Implementations stay fully
// type-safe internally; the registry only ever sees the erased Handle
// produced by NewHandle.
type Tool[I, O any] interface {
	// Metadata returns the tool's descriptive record.
	Metadata() Metadata

	// Execute runs the tool. This is the only blocking point below the
	// executor layer; implementations must honor ctx cancellation for
	// timeouts to cancel in-flight work rather than just the wait.
	Execute(ctx context.Context, input I) (O, error)
}

// Validator is implemented by input types that carry semantic checks
// beyond the structural schema. Validate must be pure; a failure
// short-circuits execution before any attempt is made.
type Validator interface {
	Validate() error
}

// Handle is the type-erased invocation surface stored by the registry.
// Invoke decodes the structured payload into the tool's input type,
// validates it, executes, and encodes the typed output back to a
// structured value.
type Handle interface {
	Metadata() Metadata
	InputSchema() map[string]any
	Invoke(ctx context.Context, args map[string]any) (any, error)
}

type handle[I, O any] struct {
	tool     Tool[I, O]
	meta     Metadata
	compiled *gojsonschema.Schema
}

// NewHandle erases a typed tool behind the uniform Handle surface.
// The input schema is derived once, here, from I's struct shape (or
// the tool's SchemaProvider input), stored in metadata, and compiled
// for payload validation.
func NewHandle[I, O any](t Tool[I, O]) Handle {
	meta := t.Metadata()
	if meta.Version == "" {
		meta.Version = "1.0.0"
	}
	meta.InputSchema = SchemaFor[I]()
	meta.InputType = typeName[I]()
	meta.OutputType = typeName[O]()

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(meta.InputSchema))
	if err != nil {
		// Structural validation is skipped for this tool; decoding still
		// rejects type mismatches and unknown fields.
		log.Warn().
			Str("tool", meta.Name).
			Err(err).
			Msg("Input schema failed to compile, structural validation disabled")
		compiled = nil
	}

	return &handle[I, O]{tool: t, meta: meta, compiled: compiled}
}

func (h *handle[I, O]) Metadata() Metadata { return h.meta }

func (h *handle[I, O]) InputSchema() map[string]any { return h.meta.InputSchema }

func (h *handle[I, O]) Invoke(ctx context.Context, args map[string]any) (any, error) {
	input, err := h.decode(args)
	if err != nil {
		return nil, err
	}

	// Check both the value and its address so Validate counts whether
	// it is declared on a value or a pointer receiver.
	v, ok := any(input).(Validator)
	if !ok {
		v, ok = any(&input).(Validator)
	}
	if ok {
		if err := v.Validate(); err != nil {
			return nil, NewInvalidParameters(h.meta.Name, err.Error())
		}
	}

	output, err := h.tool.Execute(ctx, input)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			// The attempt deadline elapsed while the tool was running;
			// report the timeout, not the tool's secondary error.
			return nil, ctx.Err()
		}
		return nil, NewExecutionFailed(h.meta.Name, err)
	}

	return encodeOutput(h.meta.Name, output)
}

// decode validates args against the compiled schema and round-trips
// them through JSON into the typed input. Unknown fields are rejected
// so a misspelled argument surfaces as InvalidParameters rather than
// silently dropping.
func (h *handle[I, O]) decode(args map[string]any) (I, error) {
	var input I
	if args == nil {
		args = map[string]any{}
	}

	if h.compiled != nil {
		result, err := h.compiled.Validate(gojsonschema.NewGoLoader(args))
		if err != nil {
			return input, NewInvalidParameters(h.meta.Name, err.Error())
		}
		if !result.Valid() {
			msgs := make([]string, 0, len(result.Errors()))
			for _, e := range result.Errors() {
				msgs = append(msgs, e.String())
			}
			return input, NewInvalidParameters(h.meta.Name, strings.Join(msgs, "; "))
		}
	}

	raw, err := json.Marshal(args)
	if err != nil {
		return input, NewInvalidParameters(h.meta.Name, err.Error())
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		return input, NewInvalidParameters(h.meta.Name, err.Error())
	}
	return input, nil
}

// encodeOutput serializes the typed output back to the structured
// interchange form: objects become map[string]any, everything else the
// matching JSON value. The round trip is lossless for the JSON type set.
func encodeOutput(name string, output any) (any, error) {
	raw, err := json.Marshal(output)
	if err != nil {
		return nil, NewExecutionFailed(name, fmt.Errorf("encode output: %w", err))
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, NewExecutionFailed(name, fmt.Errorf("decode output: %w", err))
	}
	return value, nil
}

func typeName[T any]() string {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.Name()
}
