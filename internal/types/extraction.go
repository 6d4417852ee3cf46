package types

import "encoding/json"

// ExtractedResume is the structured data pulled from the source resume text.
// It is a superset of ResumeRecord: projects and skills are the raw, unmerged
// values, and coding stats keep whatever shape the model produced.
type ExtractedResume struct {
	Name            string                     `json:"name"`
	Email           string                     `json:"email"`
	Phone           *string                    `json:"phone"`
	GitHub          *string                    `json:"github"`
	LinkedIn        *string                    `json:"linkedin"`
	Experiences     []WorkExperience           `json:"experiences"`
	Education       []Education                `json:"education"`
	Projects        []Project                  `json:"projects"`
	TechnicalSkills SkillSet                   `json:"technical_skills"`
	SoftSkills      []string                   `json:"soft_skills"`
	Positions       []PositionOfResponsibility `json:"positions_of_responsibility"`
	Certifications  []Certification            `json:"certifications"`
	CodingStats     json.RawMessage            `json:"coding_stats"`
}

// NormalizeCollections replaces nil collections with empty ones so absent
// sections are represented as empty lists rather than null.
func (e *ExtractedResume) NormalizeCollections() {
	if e.Experiences == nil {
		e.Experiences = []WorkExperience{}
	}
	for i := range e.Experiences {
		if e.Experiences[i].Achievements == nil {
			e.Experiences[i].Achievements = []string{}
		}
	}
	if e.Education == nil {
		e.Education = []Education{}
	}
	if e.Projects == nil {
		e.Projects = []Project{}
	}
	for i := range e.Projects {
		if e.Projects[i].Technologies == nil {
			e.Projects[i].Technologies = []string{}
		}
		if e.Projects[i].Achievements == nil {
			e.Projects[i].Achievements = []string{}
		}
	}
	if e.TechnicalSkills == nil {
		e.TechnicalSkills = SkillSet{}
	}
	if e.SoftSkills == nil {
		e.SoftSkills = []string{}
	}
	if e.Positions == nil {
		e.Positions = []PositionOfResponsibility{}
	}
	if e.Certifications == nil {
		e.Certifications = []Certification{}
	}
}
