package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/extraction"
	"github.com/jonathan/resume-tailor/internal/generation"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/llm/llmtest"
	"github.com/jonathan/resume-tailor/internal/typesetting"
)

const extractedJSON = `{
	"name": "Ada Lovelace",
	"email": "ada@example.com",
	"phone": null,
	"github": null,
	"linkedin": null,
	"experiences": [
		{"company": "Analytical Engines", "role": "Engineer", "duration": "1842 - 1843", "achievements": ["Wrote the first program"]}
	],
	"education": [],
	"projects": [],
	"technical_skills": {},
	"soft_skills": [],
	"positions_of_responsibility": [],
	"certifications": [],
	"coding_stats": null
}`

const projectsJSON = `{"projects": [
	{"name": "Stream Processor", "technologies": ["Go"], "date": "2024", "achievements": ["Handled 1M events/day", "Cut latency 40%"]},
	{"name": "Feature Store", "technologies": ["Python"], "date": "2023", "achievements": ["Served 200 models", "Added TTL eviction"]},
	{"name": "Infra CLI", "technologies": ["Go"], "date": "2022", "achievements": ["Automated deploys", "Added tests"]}
]}`

const skillsJSON = `{"skills": {"Languages": ["Go", "Python"]}}`

func scriptedClient() *llmtest.Fake {
	return llmtest.New().
		On(extraction.SchemaName, extractedJSON).
		On(generation.ProjectsSchemaName, projectsJSON).
		On(generation.SkillsSchemaName, skillsJSON)
}

type fakeCompiler struct {
	pdf     []byte
	err     error
	sources []string
}

func (f *fakeCompiler) Compile(_ context.Context, source string) ([]byte, error) {
	f.sources = append(f.sources, source)
	return f.pdf, f.err
}

// stubDeps swaps the client and compiler factories for the test
func stubDeps(t *testing.T, client llm.Client, compiler typesetting.Compiler) {
	t.Helper()
	prevClient, prevCompiler := newClient, newCompiler
	newClient = func(context.Context, *config.Config) (llm.Client, error) { return client, nil }
	newCompiler = func(*config.Config) typesetting.Compiler { return compiler }
	t.Cleanup(func() {
		newClient, newCompiler = prevClient, prevCompiler
	})
}

// resetFlags restores every flag to its default so commands can be executed
// repeatedly in one process
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command in-process and returns its stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
