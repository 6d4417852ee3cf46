// Package assembly merges extracted and generated content into the canonical
// resume record.
package assembly

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Defaults used when extraction found no contact details
const (
	DefaultName  = "John Doe"
	DefaultEmail = "john@example.com"
)

// Assemble builds the resume record. Non-empty generated projects replace the
// extracted ones wholesale, and the same holds for generated skills; otherwise
// the extracted values are kept. The inputs are not modified.
func Assemble(extracted *types.ExtractedResume, generatedProjects []types.Project, generatedSkills types.SkillSet) (*types.ResumeRecord, error) {
	if extracted == nil {
		return nil, &MalformedStateError{Message: "extracted resume is missing"}
	}

	codingStats, err := NormalizeCodingStats(extracted.CodingStats)
	if err != nil {
		return nil, err
	}

	projects := extracted.Projects
	if len(generatedProjects) > 0 {
		projects = generatedProjects
	}

	skills := extracted.TechnicalSkills
	if len(generatedSkills) > 0 {
		skills = generatedSkills
	}

	record := &types.ResumeRecord{
		Name:            orDefault(extracted.Name, DefaultName),
		Email:           orDefault(extracted.Email, DefaultEmail),
		Phone:           optional(extracted.Phone),
		GitHub:          optional(extracted.GitHub),
		LinkedIn:        optional(extracted.LinkedIn),
		Experiences:     copyExperiences(extracted.Experiences),
		Education:       append([]types.Education{}, extracted.Education...),
		Projects:        copyProjects(projects),
		TechnicalSkills: copySkills(skills),
		SoftSkills:      append([]string{}, extracted.SoftSkills...),
		Positions:       append([]types.PositionOfResponsibility{}, extracted.Positions...),
		Certifications:  append([]types.Certification{}, extracted.Certifications...),
		CodingStats:     codingStats,
	}
	return record, nil
}

// NormalizeCodingStats converts whatever shape extraction produced into a
// platform mapping:
//   - a list of {platform, description} objects becomes a mapping in list
//     order; entries that are not objects or have no platform are skipped
//   - an object is kept; non-string values are stored as their JSON text
//   - null, absent, or any other shape yields nil
func NormalizeCodingStats(raw json.RawMessage) (types.CodingStats, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode coding stats list: %w", err)
		}
		stats := types.CodingStats{}
		for _, item := range items {
			var entry map[string]json.RawMessage
			if err := json.Unmarshal(item, &entry); err != nil || entry == nil {
				continue
			}
			platform := jsonText(entry["platform"])
			if platform == "" {
				continue
			}
			stats.Set(platform, jsonText(entry["description"]))
		}
		return stats, nil
	case '{':
		stats := types.CodingStats{}
		err := decodeOrderedObject(trimmed, func(key string, value json.RawMessage) {
			if key != "" {
				stats.Set(key, jsonText(value))
			}
		})
		if err != nil {
			return nil, fmt.Errorf("failed to decode coding stats object: %w", err)
		}
		return stats, nil
	default:
		return nil, nil
	}
}

// jsonText returns a JSON string's value, "" for null or absent, and the raw
// JSON text for any other value.
func jsonText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(bytes.TrimSpace(raw)) == "null" {
		return ""
	}
	return string(bytes.TrimSpace(raw))
}

func decodeOrderedObject(data []byte, fn func(key string, value json.RawMessage)) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		fn(key, value)
	}
	_, err := dec.Token()
	return err
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func optional(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	v := *value
	return &v
}

func copyExperiences(in []types.WorkExperience) []types.WorkExperience {
	out := make([]types.WorkExperience, 0, len(in))
	for _, e := range in {
		e.Achievements = append([]string{}, e.Achievements...)
		out = append(out, e)
	}
	return out
}

func copyProjects(in []types.Project) []types.Project {
	out := make([]types.Project, 0, len(in))
	for _, p := range in {
		p.Technologies = append([]string{}, p.Technologies...)
		p.Achievements = append([]string{}, p.Achievements...)
		out = append(out, p)
	}
	return out
}

func copySkills(in types.SkillSet) types.SkillSet {
	out := make(types.SkillSet, 0, len(in))
	for _, c := range in {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		out = append(out, types.SkillCategory{Name: c.Name, Skills: append([]string{}, c.Skills...)})
	}
	return out
}
