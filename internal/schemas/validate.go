// Package schemas validates structured data exchanged with the reasoning
// service against JSON Schema documents.
package schemas

import (
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is a compiled JSON Schema
type Schema struct {
	compiled *gojsonschema.Schema
}

// compiled schemas keyed by their source text; stage schemas are reused for
// every call so each is compiled once per process
var compiled sync.Map

// Compile parses schema source, reusing an earlier compilation of the same text
func Compile(source string) (*Schema, error) {
	if s, ok := compiled.Load(source); ok {
		return s.(*Schema), nil
	}

	c, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		return nil, &SchemaLoadError{Message: "invalid schema", Cause: err}
	}
	s, _ := compiled.LoadOrStore(source, &Schema{compiled: c})
	return s.(*Schema), nil
}

// ValidateJSON checks a JSON document
func (s *Schema) ValidateJSON(document string) error {
	return s.validate(gojsonschema.NewStringLoader(document))
}

// ValidateGo checks an in-memory value. The value is marshaled with
// encoding/json first, so custom marshalers apply.
func (s *Schema) ValidateGo(value any) error {
	return s.validate(gojsonschema.NewGoLoader(value))
}

func (s *Schema) validate(document gojsonschema.JSONLoader) error {
	result, err := s.compiled.Validate(document)
	if err != nil {
		return &DocumentError{Cause: err}
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{
			Field:   field,
			Rule:    desc.Type(),
			Message: desc.Description(),
		})
	}
	return ve
}

// ValidateJSONString compiles schemaSource and validates a JSON document
func ValidateJSONString(schemaSource, document string) error {
	s, err := Compile(schemaSource)
	if err != nil {
		return err
	}
	return s.ValidateJSON(document)
}

// ValidateGo compiles schemaSource and validates an in-memory value
func ValidateGo(schemaSource string, value any) error {
	s, err := Compile(schemaSource)
	if err != nil {
		return err
	}
	return s.ValidateGo(value)
}
