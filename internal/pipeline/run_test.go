package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/extraction"
	"github.com/jonathan/resume-tailor/internal/generation"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/llm/llmtest"
)

const extractedJSON = `{
	"name": "Ada Lovelace",
	"email": "ada@example.com",
	"phone": null,
	"github": null,
	"linkedin": "linkedin.com/in/ada",
	"experiences": [
		{"company": "Analytical Engines", "role": "Engineer", "duration": "1842 - 1843", "achievements": ["Wrote the first program"]},
		{"company": "Royal Society", "role": "Translator", "duration": "1840 - 1842", "achievements": []}
	],
	"education": [],
	"projects": [{"name": "Old Project", "technologies": ["Punch cards"], "date": "1841", "achievements": ["a", "b"]}],
	"technical_skills": {"Languages": ["Fortran"]},
	"soft_skills": [],
	"positions_of_responsibility": [],
	"certifications": [],
	"coding_stats": null
}`

const projectsJSON = `{"projects": [
	{"name": "Stream Processor", "technologies": ["Go", "Kafka"], "date": "2024", "achievements": ["Handled 1M events/day", "Cut latency 40%"]},
	{"name": "Feature Store", "technologies": ["Python", "Redis", "gRPC"], "date": "2023", "achievements": ["Served 200 models", "Added TTL eviction"]},
	{"name": "Infra CLI", "technologies": ["Go"], "date": "2022", "achievements": ["Automated deploys", "Wrote docs", "Added tests"]}
]}`

const skillsJSON = `{"skills": {"Languages": ["Go", "Python"], "Tools": ["Kafka", "Docker"]}}`

func scriptedClient() *llmtest.Fake {
	return llmtest.New().
		On(extraction.SchemaName, extractedJSON).
		On(generation.ProjectsSchemaName, projectsJSON).
		On(generation.SkillsSchemaName, skillsJSON)
}

func TestPipeline_Run_Success(t *testing.T) {
	client := scriptedClient()
	p := New(Options{Client: client})

	result, err := p.Run(context.Background(), "Ada Lovelace resume text", "Backend engineer, Go and Kafka")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "Ada Lovelace", result.Record.Name)
	require.Len(t, result.Record.Projects, 3)
	assert.Equal(t, "Stream Processor", result.Record.Projects[0].Name)
	assert.Equal(t, "Languages", result.Record.TechnicalSkills[0].Name)
	assert.Equal(t, []string{"Go", "Python"}, result.Record.TechnicalSkills[0].Skills)

	assert.Contains(t, result.LaTeX, "Ada Lovelace")
	assert.Contains(t, result.LaTeX, "Stream Processor")
	assert.NotContains(t, result.LaTeX, "Old Project")
	assert.Contains(t, result.LaTeX, "Cut latency 40\\%")

	assert.Equal(t, DebugCounts{
		ExtractedExperiences: 2,
		GeneratedProjects:    3,
		FinalExperiences:     2,
		FinalProjects:        3,
	}, result.Debug)
	assert.Len(t, result.Messages, 5)
}

func TestPipeline_Run_CallOrder(t *testing.T) {
	client := scriptedClient()
	_, err := New(Options{Client: client}).Run(context.Background(), "resume", "job")
	require.NoError(t, err)

	calls := client.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, extraction.SchemaName, calls[0].Schema.Name)
	assert.Equal(t, generation.ProjectsSchemaName, calls[1].Schema.Name)
	assert.Equal(t, generation.SkillsSchemaName, calls[2].Schema.Name)

	// the project prompt carries the extracted experiences
	var user string
	for _, m := range calls[1].Messages {
		if m.Role == llm.RoleUser {
			user = m.Content
		}
	}
	assert.Contains(t, user, "Analytical Engines")
	assert.Contains(t, user, "job")
}

func TestPipeline_Run_StopsAtFirstFailure(t *testing.T) {
	serviceErr := &llm.ServiceError{Provider: "fake", Message: "quota exhausted"}
	client := llmtest.New().
		On(extraction.SchemaName, extractedJSON).
		OnError(generation.ProjectsSchemaName, serviceErr)

	result, err := New(Options{Client: client}).Run(context.Background(), "resume", "job")
	assert.Nil(t, result)
	require.Error(t, err)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StageGenerateProjects, stageErr.Stage)

	var svcErr *llm.ServiceError
	assert.True(t, errors.As(err, &svcErr))
	assert.Contains(t, err.Error(), "quota exhausted")

	// skills generation never ran
	assert.Empty(t, client.CallsFor(generation.SkillsSchemaName))
}

func TestPipeline_Run_SchemaViolationAborts(t *testing.T) {
	client := llmtest.New().On(extraction.SchemaName, `{"name": ["Ada"], "unexpected": true}`)

	_, err := New(Options{Client: client}).Run(context.Background(), "resume", "job")
	require.Error(t, err)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StageExtractInfo, stageErr.Stage)

	var violation *llm.SchemaViolationError
	assert.True(t, errors.As(err, &violation))
}

func TestPipeline_Run_EmptyResumeText(t *testing.T) {
	client := scriptedClient()

	_, err := New(Options{Client: client}).Run(context.Background(), "  ", "job")
	require.Error(t, err)

	var inputErr *extraction.InputError
	assert.True(t, errors.As(err, &inputErr))
	assert.Empty(t, client.Calls())
}

func TestPipeline_Run_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := scriptedClient()
	_, err := New(Options{Client: client}).Run(ctx, "resume", "job")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, client.Calls())
}

func TestPipeline_Run_ProgressEvents(t *testing.T) {
	var mu sync.Mutex
	var steps []string
	p := New(Options{
		Client: scriptedClient(),
		OnProgress: func(event ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			assert.NotEmpty(t, event.RunID)
			steps = append(steps, event.Step)
		},
	})

	_, err := p.Run(context.Background(), "resume", "job")
	require.NoError(t, err)
	assert.Equal(t, append(StageNames(), "done"), steps)
}

func TestPipeline_Run_CustomTemplate(t *testing.T) {
	tmpl := strings.Join([]string{
		"{{NAME}}", "{{PHONE}}", "{{EMAIL}}", "{{LINKEDIN}}", "{{GITHUB}}",
		"{{EXPERIENCE}}", "{{EDUCATION}}", "{{PROJECTS}}", "{{TECHNICAL_SKILLS}}",
		"{{CERTIFICATIONS}}", "{{POSITIONS}}",
	}, "\n")

	result, err := New(Options{Client: scriptedClient(), Template: tmpl}).Run(context.Background(), "resume", "job")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.LaTeX, "Ada Lovelace\n"))
}

func TestPipeline_RunsAreIndependent(t *testing.T) {
	p := New(Options{Client: scriptedClient()})

	first, err := p.Run(context.Background(), "resume", "job")
	require.NoError(t, err)
	second, err := p.Run(context.Background(), "resume", "job")
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.LaTeX, second.LaTeX)
	assert.Equal(t, first.Record, second.Record)
}

func TestNewWithStages_CustomChain(t *testing.T) {
	boom := errors.New("boom")
	var ran []string
	stages := []Stage{
		{Name: "first", Run: func(_ context.Context, s State) (State, error) {
			ran = append(ran, "first")
			return s.withMessage("first"), nil
		}},
		{Name: "second", Run: func(_ context.Context, s State) (State, error) {
			ran = append(ran, "second")
			return s, boom
		}},
		{Name: "third", Run: func(_ context.Context, s State) (State, error) {
			ran = append(ran, "third")
			return s, nil
		}},
	}

	_, err := NewWithStages(stages, nil).Run(context.Background(), "r", "j")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first", "second"}, ran)
	assert.Equal(t, "stage second failed: boom", err.Error())
}

func TestState_WithMessageDoesNotAlias(t *testing.T) {
	base := NewState("r", "j")
	a := base.withMessage("a")
	b := base.withMessage("b")

	assert.Empty(t, base.Messages)
	assert.Equal(t, []string{"a"}, a.Messages)
	assert.Equal(t, []string{"b"}, b.Messages)
}
