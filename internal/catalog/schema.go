package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const documentSchemaURL = "https://cotizador.schemas.local/catalog.schema.json"

// documentSchema is the JSON Schema every catalog document must satisfy.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["allServices", "monthlyPlans"],
  "properties": {
    "allServices": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["name", "items"],
        "properties": {
          "name": {"type": "string"},
          "isExclusive": {"type": "boolean"},
          "items": {"type": "array", "items": {"$ref": "#/$defs/item"}}
        }
      }
    },
    "monthlyPlans": {"type": "array", "items": {"$ref": "#/$defs/plan"}}
  },
  "$defs": {
    "item": {
      "type": "object",
      "required": ["id", "name", "price"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "name": {"type": "string"},
        "price": {"type": "number", "minimum": 0},
        "pointCost": {"type": "integer", "minimum": 0},
        "description": {"type": "string"}
      }
    },
    "plan": {
      "type": "object",
      "required": ["id", "name", "price", "points"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "name": {"type": "string"},
        "price": {"type": "number", "minimum": 0},
        "points": {"type": "integer", "minimum": 0},
        "description": {"type": "string"}
      }
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(documentSchemaURL, strings.NewReader(documentSchema)); err != nil {
			compileErr = fmt.Errorf("catalog schema load failed: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(documentSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("catalog schema compile failed: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// validateDocument checks raw JSON against the catalog schema.
func validateDocument(data []byte) error {
	s, err := schema()
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("parsing catalog: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("catalog does not match schema: %w", err)
	}
	return nil
}
