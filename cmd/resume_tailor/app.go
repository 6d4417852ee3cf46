package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/jonathan/resume-tailor/internal/rendering"
	"github.com/jonathan/resume-tailor/internal/typesetting"
)

// newClient builds the reasoning-service client; tests replace it
var newClient = func(ctx context.Context, c *config.Config) (llm.Client, error) {
	if err := c.RequireAPIKey(); err != nil {
		return nil, err
	}
	return llm.NewClient(ctx, c.LLMClientConfig(), c.LLM.APIKey)
}

// newCompiler builds the typesetting stack; tests replace it
var newCompiler = func(c *config.Config) typesetting.Compiler {
	return typesetting.New(c.TypesettingOptions())
}

// loadTemplate returns the configured template or the embedded default
func loadTemplate(c *config.Config) (string, error) {
	if c.Template == "" {
		return rendering.DefaultTemplate(), nil
	}
	return rendering.LoadTemplate(c.Template)
}

// newPipeline wires client and template into a pipeline that reports
// progress on stderr
func newPipeline(c *config.Config, client llm.Client, quiet bool) (*pipeline.Pipeline, error) {
	tmpl, err := loadTemplate(c)
	if err != nil {
		return nil, err
	}

	opts := pipeline.Options{Client: client, Template: tmpl}
	if !quiet {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "  -> %s\n", event.Message)
		}
	}
	return pipeline.New(opts), nil
}

// readJobDescription resolves --job or --job-url into cleaned text
func readJobDescription(ctx context.Context, path, url string, useBrowser bool) (string, error) {
	if url != "" {
		return ingestion.JobDescriptionFromURL(ctx, url, useBrowser)
	}
	return ingestion.ReadJobDescription(path)
}

// writeFile creates parent directories as needed
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// compileTo compiles source and writes the PDF, returning its page count
func compileTo(ctx context.Context, compiler typesetting.Compiler, source, out string) (int, error) {
	pdf, err := compiler.Compile(ctx, source)
	if err != nil {
		return 0, err
	}
	if err := writeFile(out, pdf); err != nil {
		return 0, err
	}
	pages, err := typesetting.PageCount(pdf)
	if err != nil {
		// the PDF is already written; a count is informational only
		return 0, nil
	}
	return pages, nil
}
