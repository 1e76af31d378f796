package schemaio

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/formforge/formforge/pkg/models"
	"github.com/formforge/formforge/pkg/visibility"
	"github.com/xeipuuv/gojsonschema"
)

// Import rejection errors. Imports are all-or-nothing: any invalid field
// rejects the whole document with no partial result.
var (
	ErrInvalidJSON      = errors.New("file contains invalid JSON syntax")
	ErrInvalidStructure = errors.New("invalid JSON structure, expected a field array, a 'fields' array or a 'schema' array")
	ErrInvalidField     = errors.New("invalid field data")
)

// fieldSchema validates the structural minimum every imported node must
// carry, recursively through repeater children. Type-specific attribute
// checks happen after decoding.
const fieldSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {"$ref": "#/definitions/field"},
  "definitions": {
    "field": {
      "type": "object",
      "required": ["id", "type", "label"],
      "properties": {
        "id": {"type": "integer", "minimum": 1},
        "type": {"type": "string", "minLength": 1},
        "label": {"type": "string", "minLength": 1},
        "options": {"type": "array", "items": {"type": "string"}},
        "maxEntries": {"type": "integer", "minimum": 0},
        "conditional": {
          "type": "object",
          "required": ["triggerId"],
          "properties": {"triggerId": {"type": "integer", "minimum": 1}}
        },
        "children": {"type": "array", "items": {"$ref": "#/definitions/field"}}
      }
    }
  }
}`

// ParseImport decodes a journey-creation upload. Three shapes are accepted:
// a root field array, an object with a "fields" array, or an exported
// document with a "schema" array. The result is structurally validated,
// type-normalized and checked for trigger cycles before being returned.
func ParseImport(data []byte) ([]models.Field, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ErrInvalidJSON
	}

	fieldsRaw, err := extractFieldArray(raw)
	if err != nil {
		return nil, err
	}

	if err := validateStructure(fieldsRaw); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(fieldsRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidField, err)
	}

	var fields []models.Field
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidField, err)
	}

	fields, err = normalizeTypes(fields)
	if err != nil {
		return nil, err
	}

	if err := visibility.ValidateConditions(fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidField, err)
	}

	return fields, nil
}

func extractFieldArray(raw any) (any, error) {
	if _, isArray := raw.([]any); isArray {
		return raw, nil
	}

	obj, isObject := raw.(map[string]any)
	if !isObject {
		return nil, ErrInvalidStructure
	}

	for _, key := range []string{"fields", "schema"} {
		if arr, ok := obj[key].([]any); ok {
			return arr, nil
		}
	}

	return nil, ErrInvalidStructure
}

func validateStructure(fieldsRaw any) error {
	schemaLoader := gojsonschema.NewStringLoader(fieldSchema)
	dataLoader := gojsonschema.NewGoLoader(fieldsRaw)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidField, err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}

		return fmt.Errorf("%w: %s", ErrInvalidField, strings.Join(details, "; "))
	}

	return nil
}

// normalizeTypes folds raw type strings to their canonical lowercase form
// and rejects unknown types, any level deep.
func normalizeTypes(fields []models.Field) ([]models.Field, error) {
	for i, f := range fields {
		parsed, err := models.ParseFieldType(string(f.Type))
		if err != nil {
			return nil, fmt.Errorf("%w: field %d: %w", ErrInvalidField, f.ID, err)
		}

		fields[i].Type = parsed

		if len(f.Children) > 0 {
			children, err := normalizeTypes(f.Children)
			if err != nil {
				return nil, err
			}

			fields[i].Children = children
		}
	}

	return fields, nil
}
