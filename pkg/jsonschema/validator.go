// Package jsonschema validates response payloads against JSON Schema
// documents and exposes a converter wrapper that enforces a schema inside
// the request pipeline.
package jsonschema

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	http "github.com/riposte-dev/riposte/http"
)

// Compile compiles a schema document.
func Compile(schemaStr string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(schemaStr)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return schema, nil
}

// Check validates a decoded JSON payload against a schema document.
func Check(payload interface{}, schemaStr string) error {
	schema, err := Compile(schemaStr)
	if err != nil {
		return err
	}
	if err := schema.Validate(payload); err != nil {
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			return fmt.Errorf("schema violation: %s", flatten(verr))
		}
		return err
	}
	return nil
}

// Validated wraps a converter so the payload must satisfy the schema before
// conversion runs. A violation fails the call through the pipeline's
// exception path.
func Validated[T any](schemaStr string, next http.Convert[T]) http.Convert[T] {
	return func(payload interface{}) (T, error) {
		if err := Check(payload, schemaStr); err != nil {
			var zero T
			return zero, err
		}
		return next(payload)
	}
}

// flatten renders a validation error tree as a single line, leaf causes
// first.
func flatten(err *jsonschema.ValidationError) string {
	if len(err.Causes) == 0 {
		return fmt.Sprintf("%s: %s", instanceLocation(err), err.Message)
	}
	parts := make([]string, 0, len(err.Causes))
	for _, cause := range err.Causes {
		parts = append(parts, flatten(cause))
	}
	return strings.Join(parts, "; ")
}

func instanceLocation(err *jsonschema.ValidationError) string {
	if err.InstanceLocation == "" {
		return "$"
	}
	return err.InstanceLocation
}
