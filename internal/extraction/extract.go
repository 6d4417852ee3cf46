// Package extraction turns raw resume text into a structured ExtractedResume.
package extraction

import (
	"context"
	"strings"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/schemas"
)

// SchemaName identifies extraction calls to the reasoning service
const SchemaName = "ExtractedResume"

// Schema is the structured output contract for extraction
var Schema = llm.Schema{
	Name:        SchemaName,
	Description: "Structured information extracted from a resume",
	JSON:        schemas.MustGet(schemas.Extraction),
}

// ExtractResume asks the reasoning service to extract every section present in
// resumeText. Absent sections come back as empty lists, absent optional contact
// fields as nil. Nothing is invented to fill gaps.
func ExtractResume(ctx context.Context, client llm.Client, resumeText string) (*types.ExtractedResume, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &InputError{Message: "resume text is empty"}
	}

	messages, err := prompts.Messages("extraction.json", "extract-resume", map[string]string{
		"ResumeText": resumeText,
	})
	if err != nil {
		return nil, err
	}

	extracted, err := llm.Invoke[types.ExtractedResume](ctx, client, messages, Schema, llm.TierStandard)
	if err != nil {
		return nil, err
	}
	extracted.NormalizeCollections()

	logger.Ctx(ctx).Debug().
		Int("experiences", len(extracted.Experiences)).
		Int("education", len(extracted.Education)).
		Int("projects", len(extracted.Projects)).
		Int("skill_categories", len(extracted.TechnicalSkills)).
		Msg("extracted resume")

	return extracted, nil
}
