package tool

import (
	"reflect"
	"strings"
)

// SchemaFor derives a JSON Schema document from the input type's
// struct shape. Fields are named by their json tags; non-pointer
// fields without omitempty are required. A `jsonschema` struct tag
// supplies descriptions and enums:
//
//	Operation string `json:"operation" jsonschema:"description=Operation to perform,enum=add,enum=subtract"`
//
// Non-struct types map to their JSON primitive. The resulting document
// is what the registry stores in metadata and what callers advertise
// to a language model as a function-calling specification.
func SchemaFor[I any]() map[string]any {
	var zero I
	if sp, ok := any(zero).(SchemaProvider); ok {
		return sp.Schema()
	}
	return schemaForType(reflect.TypeFor[I]())
}

// SchemaProvider lets an input type replace the reflected schema with
// a hand-written one.
type SchemaProvider interface {
	Schema() map[string]any
}

func schemaForType(t reflect.Type) map[string]any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct:
		return structSchema(t)
	case reflect.String:
		return map[string]any{"type": "string"}
	case reflect.Bool:
		return map[string]any{"type": "boolean"}
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}
	case reflect.Slice, reflect.Array:
		return map[string]any{
			"type":  "array",
			"items": schemaForType(t.Elem()),
		}
	case reflect.Map:
		return map[string]any{
			"type":                 "object",
			"additionalProperties": schemaForType(t.Elem()),
		}
	case reflect.Interface:
		// Dynamic fields (any, map[string]any values) accept every JSON
		// value; an empty schema is unconstrained.
		return map[string]any{}
	default:
		return map[string]any{"type": "object"}
	}
}

func structSchema(t reflect.Type) map[string]any {
	properties := make(map[string]any)
	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitEmpty, skip := jsonFieldName(field)
		if skip {
			continue
		}

		fieldSchema := schemaForType(field.Type)
		requiredByTag := applySchemaTag(field, fieldSchema)

		properties[name] = fieldSchema

		if requiredByTag || (field.Type.Kind() != reflect.Pointer && !omitEmpty) {
			required = append(required, name)
		}
	}

	schema := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func jsonFieldName(field reflect.StructField) (name string, omitEmpty, skip bool) {
	name = field.Name
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	if tag != "" {
		parts := strings.Split(tag, ",")
		if parts[0] != "" {
			name = parts[0]
		}
		for _, p := range parts[1:] {
			if p == "omitempty" {
				omitEmpty = true
			}
		}
	}
	return name, omitEmpty, false
}

// applySchemaTag folds `jsonschema` tag entries into the field schema
// and reports whether the tag marks the field required.
func applySchemaTag(field reflect.StructField, schema map[string]any) bool {
	tag := field.Tag.Get("jsonschema")
	if tag == "" {
		return false
	}

	required := false
	for _, item := range strings.Split(tag, ",") {
		key, value, hasValue := strings.Cut(item, "=")
		switch {
		case key == "required" && !hasValue:
			required = true
		case key == "description" && hasValue:
			schema["description"] = value
		case key == "enum" && hasValue:
			enum, _ := schema["enum"].([]any)
			schema["enum"] = append(enum, value)
		}
	}
	return required
}
