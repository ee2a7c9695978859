// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cvdoc

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"go.yaml.in/yaml/v3"
)

//go:embed cv.schema.json
var schemaJSON []byte

// ValidateSchema checks a YAML data file against the embedded JSON Schema.
// Violations are reported as a *MalformedDocumentError wrapping a
// *SchemaError.
func ValidateSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &MalformedDocumentError{Reason: "invalid YAML", Cause: err}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(jsonCompatible(doc)),
	)
	if err != nil {
		return fmt.Errorf("running schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{}
	for _, re := range result.Errors() {
		schemaErr.Errors = append(schemaErr.Errors, FieldError{
			Field:   re.Field(),
			Message: re.Description(),
		})
	}
	return &MalformedDocumentError{Reason: "schema validation failed", Cause: schemaErr}
}

// jsonCompatible converts YAML-decoded values into the shapes the JSON
// loader understands: string-keyed maps only.
func jsonCompatible(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = jsonCompatible(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = jsonCompatible(val)
		}
		return out
	default:
		return v
	}
}
