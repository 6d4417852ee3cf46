// Package prompts holds the embedded prompt templates for the reasoning stages.
// Each JSON file maps a key to a template; conversational prompts come in
// "<name>-system" and "<name>-user" pairs.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/resume-tailor/internal/llm"
)

//go:embed *.json
var promptFiles embed.FS

// NotFoundError reports a missing prompt file or key
type NotFoundError struct {
	File string
	Key  string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("prompt file %s not found", e.File)
	}
	return fmt.Sprintf("prompt key %q not found in %s", e.Key, e.File)
}

// library parses every embedded file once
var library = sync.OnceValues(func() (map[string]map[string]string, error) {
	entries, err := promptFiles.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to list prompt files: %w", err)
	}

	lib := make(map[string]map[string]string, len(entries))
	for _, entry := range entries {
		if path.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := promptFiles.ReadFile(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file %s: %w", entry.Name(), err)
		}
		var templates map[string]string
		if err := json.Unmarshal(data, &templates); err != nil {
			return nil, fmt.Errorf("failed to parse prompt file %s: %w", entry.Name(), err)
		}
		lib[entry.Name()] = templates
	}
	return lib, nil
})

func file(name string) (map[string]string, error) {
	lib, err := library()
	if err != nil {
		return nil, err
	}
	templates, ok := lib[name]
	if !ok {
		return nil, &NotFoundError{File: name}
	}
	return templates, nil
}

// Get returns the template stored under key in the named file
func Get(filename, key string) (string, error) {
	templates, err := file(filename)
	if err != nil {
		return "", err
	}
	tmpl, ok := templates[key]
	if !ok {
		return "", &NotFoundError{File: filename, Key: key}
	}
	return tmpl, nil
}

// MustGet is Get for templates the program cannot run without
func MustGet(filename, key string) string {
	tmpl, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return tmpl
}

// Keys lists the keys of a file in sorted order
func Keys(filename string) ([]string, error) {
	templates, err := file(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(templates))
	for k := range templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Format substitutes {{.Key}} placeholders in one pass. Inserted values are
// never expanded again, so a resume quoting "{{.JobDescription}}" stays literal.
// Unknown placeholders are left in place.
func Format(tmpl string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// Messages builds the system and user pair for a conversational prompt
func Messages(filename, name string, data map[string]string) ([]llm.Message, error) {
	system, err := Get(filename, name+"-system")
	if err != nil {
		return nil, err
	}
	user, err := Get(filename, name+"-user")
	if err != nil {
		return nil, err
	}
	return []llm.Message{
		{Role: llm.RoleSystem, Content: Format(system, data)},
		{Role: llm.RoleUser, Content: Format(user, data)},
	}, nil
}
