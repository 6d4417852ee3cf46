package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SkillCategory is one named group of technical skills
type SkillCategory struct {
	Name   string   `validate:"required"`
	Skills []string `validate:"dive"`
}

// SkillSet maps category name to skills. It is a slice so category order is
// stable; on the wire it is a JSON object whose key order is preserved.
type SkillSet []SkillCategory

// Get returns the skills for a category and whether it exists.
func (s SkillSet) Get(name string) ([]string, bool) {
	for _, c := range s {
		if c.Name == name {
			return c.Skills, true
		}
	}
	return nil, false
}

// Set replaces the skills of an existing category or appends a new one.
func (s *SkillSet) Set(name string, skills []string) {
	for i := range *s {
		if (*s)[i].Name == name {
			(*s)[i].Skills = skills
			return
		}
	}
	*s = append(*s, SkillCategory{Name: name, Skills: skills})
}

// MarshalJSON encodes the set as a JSON object in category order.
func (s SkillSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		skills := c.Skills
		if skills == nil {
			skills = []string{}
		}
		if err := writeMember(&buf, c.Name, skills); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of string arrays, keeping key order.
func (s *SkillSet) UnmarshalJSON(data []byte) error {
	var out SkillSet
	isNull, err := decodeObject(data, func(key string, raw json.RawMessage) error {
		var skills []string
		if err := json.Unmarshal(raw, &skills); err != nil {
			return fmt.Errorf("skill category %q: %w", key, err)
		}
		out.Set(key, skills)
		return nil
	})
	if err != nil {
		return err
	}
	if isNull {
		*s = nil
		return nil
	}
	if out == nil {
		out = SkillSet{}
	}
	*s = out
	return nil
}

// CodingStat is a single coding-platform summary
type CodingStat struct {
	Platform    string `json:"platform" validate:"required"`
	Description string `json:"description"`
}

// CodingStats maps platform name to a free-text description. A nil value means
// the resume has no coding profile data; on the wire that is JSON null.
type CodingStats []CodingStat

// Get returns the description for a platform and whether it exists.
func (c CodingStats) Get(platform string) (string, bool) {
	for _, s := range c {
		if s.Platform == platform {
			return s.Description, true
		}
	}
	return "", false
}

// Set replaces the description of an existing platform or appends a new one.
func (c *CodingStats) Set(platform, description string) {
	for i := range *c {
		if (*c)[i].Platform == platform {
			(*c)[i].Description = description
			return
		}
	}
	*c = append(*c, CodingStat{Platform: platform, Description: description})
}

// MarshalJSON encodes the stats as a JSON object, or null when absent.
func (c CodingStats) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, s.Platform, s.Description); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of strings, keeping key order.
func (c *CodingStats) UnmarshalJSON(data []byte) error {
	out := CodingStats{}
	isNull, err := decodeObject(data, func(key string, raw json.RawMessage) error {
		var desc string
		if err := json.Unmarshal(raw, &desc); err != nil {
			return fmt.Errorf("coding stat %q: %w", key, err)
		}
		out.Set(key, desc)
		return nil
	})
	if err != nil {
		return err
	}
	if isNull {
		*c = nil
		return nil
	}
	*c = out
	return nil
}

func writeMember(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// decodeObject walks a JSON object member by member in document order.
// It reports isNull for a JSON null literal.
func decodeObject(data []byte, fn func(key string, raw json.RawMessage) error) (isNull bool, err error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return false, err
	}
	if tok == nil {
		return true, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return false, fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return false, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return false, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return false, err
		}
		if err := fn(key, raw); err != nil {
			return false, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return false, err
	}
	return false, nil
}
