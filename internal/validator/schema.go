package validator

import "github.com/santhosh-tekuri/jsonschema/v5"

// schemaJSON is the structural contract for the model output: nutrition
// and allergens must be present; each nutrition entry carries nullable
// string per_100g and unit fields.
const schemaJSON = `{
  "type": "object",
  "required": ["nutrition", "allergens"],
  "properties": {
    "nutrition": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "per_100g": {"type": ["string", "null"]},
          "unit": {"type": ["string", "null"]}
        }
      }
    },
    "allergens": {
      "type": "object",
      "additionalProperties": {"type": "boolean"}
    }
  }
}`

var resultSchema = jsonschema.MustCompileString("extraction_result.json", schemaJSON)
