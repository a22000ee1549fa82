package jsonschema

import (
	"encoding/json"
	"strings"
)

// A Schema is a JSON Schema fragment as embedded in OpenAPI documents.
type Schema struct {
	Type       string             `json:"type,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Ref        string             `json:"$ref,omitempty"`
}

// String returns a schema for a string value.
func String() *Schema {
	return &Schema{Type: "string"}
}

// Ref returns a schema pointing to a registered component schema.
func Ref(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

// Infer builds the schema describing the given example value.
// The value is expected to come from encoding/json with UseNumber enabled.
func Infer(v any) *Schema {
	switch v := v.(type) {
	case map[string]any:
		properties := make(map[string]*Schema, len(v))
		for key, value := range v {
			properties[key] = Infer(value)
		}
		return &Schema{Type: "object", Properties: properties}
	case []any:
		items := &Schema{}
		if len(v) > 0 {
			items = Infer(v[0])
		}
		return &Schema{Type: "array", Items: items}
	case string:
		return &Schema{Type: "string"}
	case json.Number:
		if strings.ContainsAny(v.String(), ".eE") {
			return &Schema{Type: "number"}
		}
		return &Schema{Type: "integer"}
	case float64:
		return &Schema{Type: "number"}
	case int, int64:
		return &Schema{Type: "integer"}
	case bool:
		return &Schema{Type: "boolean"}
	default:
		return &Schema{Type: "object"}
	}
}
