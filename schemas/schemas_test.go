package schemas

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range Names() {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := Get(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal([]byte(data), &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, schemaFile := range Names() {
		t.Run(schemaFile, func(t *testing.T) {
			data := MustGet(schemaFile)

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(data), &schemaObj))

			assert.Equal(t, "object", schemaObj["type"])
			assert.Contains(t, schemaObj, "$schema")
			assert.Contains(t, schemaObj, "properties")

			// An empty document must load the schema without a SchemaLoadError
			err := schemas.ValidateJSONString(data, `{}`)
			if err != nil {
				_, isLoadErr := err.(*schemas.SchemaLoadError)
				assert.False(t, isLoadErr, "schema should compile: %v", err)
			}
		})
	}
}

func TestGet_UnknownSchema(t *testing.T) {
	_, err := Get("missing.schema.json")
	assert.Error(t, err)
	assert.Panics(t, func() { MustGet("missing.schema.json") })
}

func TestGeneratedProjectsSchema(t *testing.T) {
	project := `{"name": "P", "technologies": ["Go"], "date": "2024", "achievements": ["a", "b"]}`

	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{
			name: "three projects",
			json: `{"projects": [` + project + `,` + project + `,` + project + `]}`,
		},
		{
			name:    "two projects",
			json:    `{"projects": [` + project + `,` + project + `]}`,
			wantErr: true,
		},
		{
			name: "four technologies",
			json: `{"projects": [` + project + `,` + project + `,
				{"name": "P", "technologies": ["a", "b", "c", "d"], "date": "", "achievements": ["a", "b"]}]}`,
			wantErr: true,
		},
		{
			name: "single achievement",
			json: `{"projects": [` + project + `,` + project + `,
				{"name": "P", "technologies": [], "date": "", "achievements": ["a"]}]}`,
			wantErr: true,
		},
		{
			name:    "unknown field",
			json:    `{"projects": [` + project + `,` + project + `,` + project + `], "extra": true}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schemas.ValidateJSONString(MustGet(GeneratedProjects), tt.json)
			if tt.wantErr {
				var vErr *schemas.ValidationError
				assert.ErrorAs(t, err, &vErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTechnicalSkillsSchema(t *testing.T) {
	assert.NoError(t, schemas.ValidateJSONString(MustGet(TechnicalSkills),
		`{"skills": {"Languages": ["Go", "Python"], "Tools": []}}`))

	assert.Error(t, schemas.ValidateJSONString(MustGet(TechnicalSkills),
		`{"skills": {"Languages": ["1", "2", "3", "4", "5", "6", "7", "8"]}}`))

	assert.Error(t, schemas.ValidateJSONString(MustGet(TechnicalSkills),
		`{"skills": {"": ["Go"]}}`))

	assert.Error(t, schemas.ValidateJSONString(MustGet(TechnicalSkills),
		`{"skills": {"Languages": "Go"}}`))
}

func TestExtractionSchema_AllowsAbsentSections(t *testing.T) {
	err := schemas.ValidateJSONString(MustGet(Extraction), `{
		"name": "Ada",
		"email": "ada@example.com",
		"phone": null,
		"coding_stats": [{"platform": "LeetCode", "description": "500"}]
	}`)
	assert.NoError(t, err)
}
