// Package schemas embeds the JSON Schema documents that describe every
// structured artifact exchanged with the reasoning service or handed between
// pipeline stages.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var schemaFS embed.FS

// Schema file names
const (
	Extraction        = "extraction.schema.json"
	GeneratedProjects = "generated_projects.schema.json"
	TechnicalSkills   = "technical_skills.schema.json"
	ResumeRecord      = "resume_record.schema.json"
)

// Get returns the raw schema document for the given file name
func Get(name string) (string, error) {
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("schema not found: %s", name)
	}
	return string(data), nil
}

// MustGet returns the schema document or panics if it does not exist.
// Use only with the package constants.
func MustGet(name string) string {
	s, err := Get(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Names lists all embedded schema files
func Names() []string {
	return []string{Extraction, GeneratedProjects, TechnicalSkills, ResumeRecord}
}
