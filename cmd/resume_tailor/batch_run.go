package main

import (
	"context"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/pipeline"
)

// tailorOne runs the pipeline for one job file and writes the LaTeX
func tailorOne(ctx context.Context, p *pipeline.Pipeline, resumeText, jobFile, target string) error {
	jobDescription, err := ingestion.ReadJobDescription(jobFile)
	if err != nil {
		return err
	}
	result, err := p.Run(ctx, resumeText, jobDescription)
	if err != nil {
		return err
	}
	return writeFile(target, []byte(result.LaTeX))
}
