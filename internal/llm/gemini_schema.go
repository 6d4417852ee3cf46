package llm

import (
	"encoding/json"

	"github.com/google/generative-ai-go/genai"
)

// ToGeminiSchema converts a JSON Schema document into a Gemini response schema.
// It reports false when the document uses constructs Gemini cannot express,
// such as free-form maps (additionalProperties) or untyped values.
func ToGeminiSchema(jsonSchema string) (*genai.Schema, bool) {
	if jsonSchema == "" {
		return nil, false
	}
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(jsonSchema), &doc); err != nil {
		return nil, false
	}
	return convertSchemaNode(doc)
}

func convertSchemaNode(node map[string]interface{}) (*genai.Schema, bool) {
	typeName, nullable, ok := schemaType(node["type"])
	if !ok {
		return nil, false
	}

	out := &genai.Schema{Nullable: nullable}
	if desc, ok := node["description"].(string); ok {
		out.Description = desc
	}

	switch typeName {
	case "string":
		out.Type = genai.TypeString
		if enum, ok := node["enum"].([]interface{}); ok {
			for _, v := range enum {
				s, ok := v.(string)
				if !ok {
					return nil, false
				}
				out.Enum = append(out.Enum, s)
			}
		}
	case "number":
		out.Type = genai.TypeNumber
	case "integer":
		out.Type = genai.TypeInteger
	case "boolean":
		out.Type = genai.TypeBoolean
	case "array":
		out.Type = genai.TypeArray
		items, ok := node["items"].(map[string]interface{})
		if !ok {
			return nil, false
		}
		itemSchema, ok := convertSchemaNode(items)
		if !ok {
			return nil, false
		}
		out.Items = itemSchema
	case "object":
		out.Type = genai.TypeObject
		if extra, present := node["additionalProperties"]; present {
			if allowed, isBool := extra.(bool); !isBool || allowed {
				return nil, false
			}
		}
		props, _ := node["properties"].(map[string]interface{})
		if len(props) == 0 {
			return nil, false
		}
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			child, ok := raw.(map[string]interface{})
			if !ok {
				return nil, false
			}
			converted, ok := convertSchemaNode(child)
			if !ok {
				return nil, false
			}
			out.Properties[name] = converted
		}
		if required, ok := node["required"].([]interface{}); ok {
			for _, r := range required {
				if s, ok := r.(string); ok {
					out.Required = append(out.Required, s)
				}
			}
		}
	default:
		return nil, false
	}

	return out, true
}

// schemaType reads a JSON Schema "type" keyword. A two-element union with
// "null" is reported as the non-null type plus nullable.
func schemaType(raw interface{}) (typeName string, nullable bool, ok bool) {
	switch t := raw.(type) {
	case string:
		return t, false, t != "null"
	case []interface{}:
		for _, v := range t {
			s, isString := v.(string)
			if !isString {
				return "", false, false
			}
			if s == "null" {
				nullable = true
				continue
			}
			if typeName != "" {
				return "", false, false
			}
			typeName = s
		}
		return typeName, nullable, typeName != ""
	default:
		return "", false, false
	}
}
