// Package generation synthesizes role-relevant projects and technical skills
// from a job description.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/schemas"
)

// Schema names identify generation calls to the reasoning service
const (
	ProjectsSchemaName = "GeneratedProjects"
	SkillsSchemaName   = "TechnicalSkills"
)

// ProjectsSchema is the structured output contract for project generation
var ProjectsSchema = llm.Schema{
	Name:        ProjectsSchemaName,
	Description: "Three projects tailored to the job description",
	JSON:        schemas.MustGet(schemas.GeneratedProjects),
}

// SkillsSchema is the structured output contract for skills generation
var SkillsSchema = llm.Schema{
	Name:        SkillsSchemaName,
	Description: "Technical skills grouped by category",
	JSON:        schemas.MustGet(schemas.TechnicalSkills),
}

// GenerateProjects asks for exactly three projects that fit the job
// description and the candidate's existing experience.
func GenerateProjects(ctx context.Context, client llm.Client, jobDescription string, experiences []types.WorkExperience) ([]types.Project, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &InputError{Message: "job description is empty"}
	}

	if experiences == nil {
		experiences = []types.WorkExperience{}
	}
	summary, err := json.MarshalIndent(experiences, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize experience summary: %w", err)
	}

	messages, err := prompts.Messages("generation.json", "generate-projects", map[string]string{
		"JobDescription":    jobDescription,
		"ExperienceSummary": string(summary),
	})
	if err != nil {
		return nil, err
	}

	out, err := llm.Invoke[types.GeneratedProjects](ctx, client, messages, ProjectsSchema, llm.TierAdvanced)
	if err != nil {
		return nil, err
	}
	if err := CheckProjects(out.Projects); err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Debug().Int("projects", len(out.Projects)).Msg("generated projects")
	return out.Projects, nil
}

// GenerateSkills asks for job-relevant technical skills grouped by category.
// Category names are chosen by the service; each holds at most seven skills.
func GenerateSkills(ctx context.Context, client llm.Client, jobDescription string) (types.SkillSet, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &InputError{Message: "job description is empty"}
	}

	messages, err := prompts.Messages("generation.json", "generate-skills", map[string]string{
		"JobDescription": jobDescription,
	})
	if err != nil {
		return nil, err
	}

	out, err := llm.Invoke[types.GeneratedSkills](ctx, client, messages, SkillsSchema, llm.TierAdvanced)
	if err != nil {
		return nil, err
	}
	if err := CheckSkills(out.Skills); err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Debug().Int("categories", len(out.Skills)).Msg("generated skills")
	return out.Skills, nil
}
