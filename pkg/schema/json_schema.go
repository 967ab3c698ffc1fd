// Package schema renders configuration structs as JSON schema documents.
package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// ToJSONSchema converts a struct to a JSON schema
func ToJSONSchema[T any](t T) (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(t)

	jsonSchemaBytes, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}

// ToIndentedJSONSchema is ToJSONSchema with two space indentation, for printing.
func ToIndentedJSONSchema[T any](t T) (string, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	r.FieldNameTag = "yaml"

	jsonSchemaBytes, err := json.MarshalIndent(r.Reflect(t), "", "  ")
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}
