package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"tags": {"type": "array", "items": {"type": "string"}, "maxItems": 2},
		"address": {
			"type": "object",
			"required": ["city"],
			"properties": {"city": {"type": "string"}}
		}
	}
}`

func TestValidateJSONString(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		wantField string
		wantRule  string
	}{
		{name: "valid", document: `{"name": "Ada"}`},
		{name: "missing required", document: `{"tags": []}`, wantField: "(root)", wantRule: "required"},
		{name: "wrong type", document: `{"name": 42}`, wantField: "name", wantRule: "invalid_type"},
		{name: "too many items", document: `{"name": "Ada", "tags": ["a", "b", "c"]}`, wantField: "tags", wantRule: "array_max_items"},
		{name: "nested", document: `{"name": "Ada", "address": {}}`, wantField: "address", wantRule: "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONString(personSchema, tt.document)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.NotEmpty(t, ve.Errors)
			assert.Equal(t, tt.wantField, ve.Errors[0].Field)
			assert.Equal(t, tt.wantRule, ve.Errors[0].Rule)
		})
	}
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(personSchema, `{ invalid json }`)

	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Error(t, docErr.Cause)
	var ve *ValidationError
	assert.NotErrorAs(t, err, &ve)
}

func TestCompile(t *testing.T) {
	first, err := Compile(personSchema)
	require.NoError(t, err)
	second, err := Compile(personSchema)
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = Compile(`{"type": 12}`)
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)

	err = ValidateJSONString(`{"type": 12}`, `{}`)
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateGo(t *testing.T) {
	type person struct {
		Name string   `json:"name"`
		Tags []string `json:"tags,omitempty"`
	}

	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{name: "struct", value: person{Name: "Ada"}},
		{name: "map", value: map[string]any{"name": "Ada"}},
		{name: "too many tags", value: person{Name: "Ada", Tags: []string{"a", "b", "c"}}, wantErr: true},
		{name: "missing name", value: map[string]any{"tags": []string{}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGo(personSchema, tt.value)
			if tt.wantErr {
				var ve *ValidationError
				assert.ErrorAs(t, err, &ve)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationError_Messages(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	assert.Equal(t, "validation failed:\n  1. name: is required\n  2. age: must be a number\n", err.Error())
	assert.Equal(t, "name: is required; age: must be a number", err.Summary())
}
