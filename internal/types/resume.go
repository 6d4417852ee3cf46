// Package types provides type definitions for structured data used throughout the resume-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// ResumeRecord is the canonical, fully merged resume ready for rendering.
// It is built once by the assembly stage and treated as immutable afterwards.
type ResumeRecord struct {
	Name            string                     `json:"name" validate:"required"`
	Email           string                     `json:"email" validate:"required"`
	Phone           *string                    `json:"phone"`
	GitHub          *string                    `json:"github"`
	LinkedIn        *string                    `json:"linkedin"`
	Experiences     []WorkExperience           `json:"experiences"`
	Education       []Education                `json:"education"`
	Projects        []Project                  `json:"projects"`
	TechnicalSkills SkillSet                   `json:"technical_skills" validate:"dive"`
	SoftSkills      []string                   `json:"soft_skills"`
	Positions       []PositionOfResponsibility `json:"positions_of_responsibility"`
	Certifications  []Certification            `json:"certifications"`
	CodingStats     CodingStats                `json:"coding_stats" validate:"omitempty,dive"`
}

// WorkExperience is a single employment entry
type WorkExperience struct {
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	Duration     string   `json:"duration"`
	Achievements []string `json:"achievements"`
}

// Education is a single degree or qualification
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Duration    string `json:"duration"`
}

// Project is a resume project entry. Generated projects carry at most three
// technologies and two or three achievements; extracted ones are taken as-is.
type Project struct {
	Name         string   `json:"name"`
	Technologies []string `json:"technologies"`
	Date         string   `json:"date"`
	Achievements []string `json:"achievements"`
}

// PositionOfResponsibility is a leadership or volunteer role
type PositionOfResponsibility struct {
	Organization string `json:"organization"`
	Role         string `json:"role"`
	Duration     string `json:"duration"`
	Location     string `json:"location"`
	Description  string `json:"description"`
}

// Certification is a professional certification
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// Validate checks the record-level invariants (required contact fields and
// non-empty skill category / coding platform keys).
func (r *ResumeRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
