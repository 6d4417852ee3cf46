package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/validation"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.tex>",
	Short: "Lint a LaTeX resume for long lines and forbidden phrases",
	Long: `Reports lines whose printed content is likely to wrap and lines containing
configured forbidden phrases. Exits non-zero when any error-level finding is
reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var (
	checkMaxChars int
	checkForbid   []string
)

func init() {
	checkCmd.Flags().IntVar(&checkMaxChars, "max-chars", 0, "Maximum printed characters per line (overrides config)")
	checkCmd.Flags().StringSliceVar(&checkForbid, "forbid", nil, "Additional forbidden phrases")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	opts := cfg.LintOptions()
	if checkMaxChars > 0 {
		opts.MaxLineChars = checkMaxChars
	}
	opts.ForbiddenPhrases = append(opts.ForbiddenPhrases, checkForbid...)

	violations, err := validation.Lint(string(source), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(violations) == 0 {
		_, _ = fmt.Fprintln(out, "No problems found")
		return nil
	}
	for _, v := range violations {
		_, _ = fmt.Fprintln(out, v.String())
	}
	if validation.HasErrors(violations) {
		return fmt.Errorf("%d problems found", len(violations))
	}
	return nil
}
