// Package resultschema cross-checks a serialized ValidationResult
// against a bundled JSON Schema before the CLI driver emits it, the
// same defensive role the teacher gives gojsonschema ahead of its own
// JSON output.
package resultschema

import (
	"embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed validationresult-schema.json
var schemaFS embed.FS

// Validate checks resultJSON (the already-marshaled ValidationResult
// document) against the bundled schema, returning a human-readable
// error describing every violation found.
func Validate(resultJSON []byte) error {
	schemaBytes, err := schemaFS.ReadFile("validationresult-schema.json")
	if err != nil {
		return fmt.Errorf("resultschema: failed to read embedded schema: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	docLoader := gojsonschema.NewBytesLoader(resultJSON)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("resultschema: schema validation error: %w", err)
	}

	if result.Valid() {
		return nil
	}

	var msg string

	for _, verr := range result.Errors() {
		msg += verr.Field() + ": " + verr.Description() + "; "
	}

	return fmt.Errorf("resultschema: output does not conform to ValidationResult schema: %s", msg)
}
