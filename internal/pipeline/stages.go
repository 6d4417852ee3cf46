package pipeline

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-tailor/internal/assembly"
	"github.com/jonathan/resume-tailor/internal/extraction"
	"github.com/jonathan/resume-tailor/internal/generation"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/rendering"
)

// Stage names, in execution order
const (
	StageExtractInfo      = "extract_info"
	StageGenerateProjects = "generate_projects"
	StageGenerateSkills   = "generate_skills"
	StageCreateMetadata   = "create_metadata"
	StageGenerateLaTeX    = "generate_latex"
)

// Stage categories used in progress events
const (
	CategoryExtraction = "extraction"
	CategoryGeneration = "generation"
	CategoryAssembly   = "assembly"
	CategoryRendering  = "rendering"
)

// Stage is one state transition of the pipeline
type Stage struct {
	Name     string
	Category string
	Run      func(ctx context.Context, state State) (State, error)
}

// StageNames lists the stage names in execution order
func StageNames() []string {
	return []string{StageExtractInfo, StageGenerateProjects, StageGenerateSkills, StageCreateMetadata, StageGenerateLaTeX}
}

// DefaultStages builds the fixed stage chain. tmpl is the LaTeX template; an
// empty string selects the embedded default.
func DefaultStages(client llm.Client, tmpl string) []Stage {
	if tmpl == "" {
		tmpl = rendering.DefaultTemplate()
	}

	return []Stage{
		{
			Name:     StageExtractInfo,
			Category: CategoryExtraction,
			Run: func(ctx context.Context, s State) (State, error) {
				extracted, err := extraction.ExtractResume(ctx, client, s.ResumeText)
				if err != nil {
					return s, err
				}
				s.Extracted = extracted
				return s.withMessage("Extracted information from resume"), nil
			},
		},
		{
			Name:     StageGenerateProjects,
			Category: CategoryGeneration,
			Run: func(ctx context.Context, s State) (State, error) {
				if s.Extracted == nil {
					return s, &assembly.MalformedStateError{Message: "extraction has not run"}
				}
				projects, err := generation.GenerateProjects(ctx, client, s.JobDescription, s.Extracted.Experiences)
				if err != nil {
					return s, err
				}
				s.GeneratedProjects = projects
				return s.withMessage(fmt.Sprintf("Generated %d relevant projects", len(projects))), nil
			},
		},
		{
			Name:     StageGenerateSkills,
			Category: CategoryGeneration,
			Run: func(ctx context.Context, s State) (State, error) {
				skills, err := generation.GenerateSkills(ctx, client, s.JobDescription)
				if err != nil {
					return s, err
				}
				s.GeneratedSkills = skills
				return s.withMessage("Generated relevant technical skills"), nil
			},
		},
		{
			Name:     StageCreateMetadata,
			Category: CategoryAssembly,
			Run: func(_ context.Context, s State) (State, error) {
				record, err := assembly.Assemble(s.Extracted, s.GeneratedProjects, s.GeneratedSkills)
				if err != nil {
					return s, err
				}
				if err := record.Validate(); err != nil {
					return s, &assembly.MalformedStateError{Message: err.Error()}
				}
				s.Record = record
				return s.withMessage("Created resume metadata"), nil
			},
		},
		{
			Name:     StageGenerateLaTeX,
			Category: CategoryRendering,
			Run: func(_ context.Context, s State) (State, error) {
				latex, err := rendering.RenderLaTeXWithTemplate(s.Record, tmpl)
				if err != nil {
					return s, err
				}
				s.LaTeX = latex
				return s.withMessage("Generated LaTeX code"), nil
			},
		},
	}
}
