package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/validation"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Tailor a resume to one job description",
	Long: `Runs the full pipeline: extract the resume, generate projects and skills for
the job, assemble the record and render LaTeX. Optionally compiles the result
to PDF with the online compiler.`,
	RunE: runGenerate,
}

var (
	generateResume     string
	generateJob        string
	generateJobURL     string
	generateOut        string
	generateMetadata   string
	generatePDF        string
	generateUseBrowser bool
	generateQuiet      bool
	generateVerbose    bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateResume, "resume", "r", "", "Path to the source resume (PDF or text)")
	generateCmd.Flags().StringVarP(&generateJob, "job", "j", "", "Path to the job description (text or HTML)")
	generateCmd.Flags().StringVar(&generateJobURL, "job-url", "", "URL of the job posting")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "resume.tex", "Path for the generated LaTeX")
	generateCmd.Flags().StringVar(&generateMetadata, "metadata", "", "Optional path for the resume record as JSON")
	generateCmd.Flags().StringVar(&generatePDF, "pdf", "", "Optional path for the compiled PDF")
	generateCmd.Flags().BoolVar(&generateUseBrowser, "use-browser", false, "Render --job-url with headless Chrome when needed")
	generateCmd.Flags().BoolVarP(&generateQuiet, "quiet", "q", false, "Do not print progress")
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print the tailored record and lint findings")

	_ = generateCmd.MarkFlagRequired("resume")
	generateCmd.MarkFlagsMutuallyExclusive("job", "job-url")
	generateCmd.MarkFlagsOneRequired("job", "job-url")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	resumeText, err := ingestion.ReadResume(generateResume)
	if err != nil {
		return err
	}
	jobDescription, err := readJobDescription(ctx, generateJob, generateJobURL, generateUseBrowser || cfg.UseBrowser)
	if err != nil {
		return err
	}

	client, err := newClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	p, err := newPipeline(cfg, client, generateQuiet)
	if err != nil {
		return err
	}

	result, err := p.Run(ctx, resumeText, jobDescription)
	if err != nil {
		return err
	}

	if err := writeFile(generateOut, []byte(result.LaTeX)); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "LaTeX written to %s (%d experiences, %d projects)\n",
		generateOut, result.Debug.FinalExperiences, result.Debug.FinalProjects)

	violations, err := validation.Lint(result.LaTeX, cfg.LintOptions())
	if err != nil {
		logger.Warn().Err(err).Msg("lint skipped")
	}
	if generateVerbose {
		printer := observability.NewPrinter(out)
		printer.PrintRecord(result.Record)
		printer.PrintProjects(result.Record.Projects)
		printer.PrintSkills(result.Record.TechnicalSkills)
		printer.PrintViolations(violations)
	} else {
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", v)
		}
	}

	if generateMetadata != "" {
		data, err := json.MarshalIndent(result.Record, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal resume record: %w", err)
		}
		if err := writeFile(generateMetadata, data); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Resume record written to %s\n", generateMetadata)
	}

	if generatePDF != "" {
		pages, err := compileTo(ctx, newCompiler(cfg), result.LaTeX, generatePDF)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "PDF written to %s\n", generatePDF)
		if pages > 1 {
			logger.Warn().Int("pages", pages).Msg("resume does not fit on one page")
			fmt.Fprintf(os.Stderr, "Warning: resume is %d pages\n", pages)
		}
	}

	return nil
}

