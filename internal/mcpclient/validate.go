package mcpclient

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// validateArguments checks args against the tool's advertised JSON
// schema before any frame is written. A nil schema validates everything.
func validateArguments(schema map[string]any, args map[string]any) error {
	if schema == nil {
		return nil
	}

	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(args)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("arguments rejected by schema: %s", strings.Join(errs, ", "))
}
