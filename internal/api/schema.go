package api

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const scenarioListSchemaURL = "schema://scenario-list.json"

const scenarioListSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "competency_name", "options"],
    "properties": {
      "id": {"type": "integer"},
      "text": {"type": "string", "minLength": 1},
      "competency_name": {"type": "string"},
      "options": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["letter", "text"],
          "properties": {
            "letter": {"type": "string", "minLength": 1},
            "text": {"type": "string"}
          }
        }
      }
    }
  }
}`

var compileScenarioSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(scenarioListSchema))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(scenarioListSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(scenarioListSchemaURL)
})

// validateScenarios checks a raw /scenarios payload before it is decoded.
func validateScenarios(raw []byte) error {
	compiled, err := compileScenarioSchema()
	if err != nil {
		return fmt.Errorf("compile scenario schema: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiled.Validate(inst); err != nil {
		return fmt.Errorf("scenario payload: %w", err)
	}
	return nil
}
