// Package pipeline runs the resume tailoring stages in their fixed order:
// extraction, project generation, skills generation, assembly, rendering.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options configures a Pipeline
type Options struct {
	Client llm.Client
	// Template is the LaTeX template; empty selects the embedded default
	Template   string
	OnProgress ProgressCallback
}

// Pipeline executes stages strictly in sequence
type Pipeline struct {
	stages     []Stage
	onProgress ProgressCallback
}

// New builds the standard pipeline
func New(opts Options) *Pipeline {
	return NewWithStages(DefaultStages(opts.Client, opts.Template), opts.OnProgress)
}

// NewWithStages builds a pipeline over an explicit stage list
func NewWithStages(stages []Stage, onProgress ProgressCallback) *Pipeline {
	return &Pipeline{stages: stages, onProgress: onProgress}
}

// DebugCounts summarizes how much content each stage contributed
type DebugCounts struct {
	ExtractedExperiences int `json:"extracted_experiences_count"`
	GeneratedProjects    int `json:"generated_projects_count"`
	FinalExperiences     int `json:"final_experiences_count"`
	FinalProjects        int `json:"final_projects_count"`
}

// Result is the outcome of a successful run
type Result struct {
	RunID    string
	Record   *types.ResumeRecord
	LaTeX    string
	Messages []string
	Debug    DebugCounts
}

// Run executes every stage in order and stops at the first failure, which is
// returned as a *StageError. No partial result is returned on failure.
func (p *Pipeline) Run(ctx context.Context, resumeText, jobDescription string) (*Result, error) {
	state := NewState(resumeText, jobDescription)
	runID := state.RunID.String()

	ctx = logger.With(ctx, "run_id", runID)
	log := logger.Ctx(ctx)
	log.Info().Int("stages", len(p.stages)).Msg("pipeline started")
	started := time.Now()

	for i, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, &StageError{Stage: stage.Name, Cause: err}
		}

		p.emit(ProgressEvent{
			Step:     stage.Name,
			Category: stage.Category,
			Message:  fmt.Sprintf("Step %d/%d: %s", i+1, len(p.stages), stage.Name),
			RunID:    runID,
		})

		stageStart := time.Now()
		next, err := stage.Run(ctx, state)
		if err != nil {
			log.Error().Err(err).
				Str("stage", stage.Name).
				Dur("duration", time.Since(stageStart)).
				Msg("stage failed")
			return nil, &StageError{Stage: stage.Name, Cause: err}
		}
		state = next

		log.Debug().
			Str("stage", stage.Name).
			Dur("duration", time.Since(stageStart)).
			Msg("stage completed")
	}

	if state.Record == nil {
		return nil, &StageError{Stage: StageCreateMetadata, Cause: fmt.Errorf("pipeline finished without a resume record")}
	}

	result := &Result{
		RunID:    runID,
		Record:   state.Record,
		LaTeX:    state.LaTeX,
		Messages: state.Messages,
		Debug: DebugCounts{
			GeneratedProjects: len(state.GeneratedProjects),
			FinalExperiences:  len(state.Record.Experiences),
			FinalProjects:     len(state.Record.Projects),
		},
	}
	if state.Extracted != nil {
		result.Debug.ExtractedExperiences = len(state.Extracted.Experiences)
	}

	log.Info().
		Int("experiences", result.Debug.FinalExperiences).
		Int("projects", result.Debug.FinalProjects).
		Dur("duration", time.Since(started)).
		Msg("pipeline completed")

	p.emit(ProgressEvent{Step: "done", Category: CategoryRendering, Message: "Pipeline completed", RunID: runID})
	return result, nil
}

func (p *Pipeline) emit(event ProgressEvent) {
	if p.onProgress != nil {
		p.onProgress(event)
	}
}
