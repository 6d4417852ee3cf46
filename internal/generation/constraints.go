package generation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Content bounds for generated sections
const (
	ProjectCount           = 3
	MaxProjectTechnologies = 3
	MinProjectAchievements = 2
	MaxProjectAchievements = 3
	MaxSkillsPerCategory   = 7
)

var validate = validator.New()

// CheckProjects verifies the generated project list against the content bounds
func CheckProjects(projects []types.Project) error {
	if err := validate.Var(projects, fmt.Sprintf("len=%d", ProjectCount)); err != nil {
		return &ConstraintError{Field: "projects", Message: fmt.Sprintf("expected exactly %d projects, got %d", ProjectCount, len(projects)), Cause: err}
	}
	for i, p := range projects {
		field := fmt.Sprintf("projects[%d]", i)
		if err := validate.Var(p.Name, "required"); err != nil {
			return &ConstraintError{Field: field + ".name", Message: "name is empty", Cause: err}
		}
		if err := validate.Var(p.Technologies, fmt.Sprintf("max=%d", MaxProjectTechnologies)); err != nil {
			return &ConstraintError{Field: field + ".technologies", Message: fmt.Sprintf("at most %d technologies allowed, got %d", MaxProjectTechnologies, len(p.Technologies)), Cause: err}
		}
		if err := validate.Var(p.Achievements, fmt.Sprintf("min=%d,max=%d", MinProjectAchievements, MaxProjectAchievements)); err != nil {
			return &ConstraintError{Field: field + ".achievements", Message: fmt.Sprintf("expected %d-%d achievements, got %d", MinProjectAchievements, MaxProjectAchievements, len(p.Achievements)), Cause: err}
		}
	}
	return nil
}

// CheckSkills verifies the generated skill categories against the content bounds
func CheckSkills(skills types.SkillSet) error {
	for i, c := range skills {
		if err := validate.Var(c.Name, "required"); err != nil {
			return &ConstraintError{Field: fmt.Sprintf("skills[%d]", i), Message: "category name is empty", Cause: err}
		}
		if err := validate.Var(c.Skills, fmt.Sprintf("max=%d", MaxSkillsPerCategory)); err != nil {
			return &ConstraintError{Field: "skills." + c.Name, Message: fmt.Sprintf("at most %d skills allowed, got %d", MaxSkillsPerCategory, len(c.Skills)), Cause: err}
		}
	}
	return nil
}
