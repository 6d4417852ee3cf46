package pipeline

import (
	"github.com/google/uuid"

	"github.com/jonathan/resume-tailor/internal/types"
)

// State is the value threaded through the stages of one run. A stage never
// mutates the State it receives; it returns a copy with its own fields set.
type State struct {
	RunID             uuid.UUID
	ResumeText        string
	JobDescription    string
	Extracted         *types.ExtractedResume
	GeneratedProjects []types.Project
	GeneratedSkills   types.SkillSet
	Record            *types.ResumeRecord
	LaTeX             string
	// Messages is the human-readable log of completed stages
	Messages []string
}

// NewState returns the initial state for a run
func NewState(resumeText, jobDescription string) State {
	return State{
		RunID:          uuid.New(),
		ResumeText:     resumeText,
		JobDescription: jobDescription,
		Messages:       []string{},
	}
}

// withMessage returns a copy of s with msg appended to a fresh Messages slice
func (s State) withMessage(msg string) State {
	messages := make([]string, len(s.Messages), len(s.Messages)+1)
	copy(messages, s.Messages)
	s.Messages = append(messages, msg)
	return s
}
