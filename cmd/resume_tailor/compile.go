package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile <file.tex>",
	Short: "Compile LaTeX to PDF with the online compiler",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

var compileOut string

func init() {
	compileCmd.Flags().StringVarP(&compileOut, "out", "o", "", "Path for the PDF (defaults to the input with .pdf)")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	input := args[0]
	source, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	out := compileOut
	if out == "" {
		out = strings.TrimSuffix(input, ".tex") + ".pdf"
	}

	pages, err := compileTo(cmd.Context(), newCompiler(cfg), string(source), out)
	if err != nil {
		return err
	}

	if pages > 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s (%d pages)\n", out, pages)
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s\n", out)
	}
	return nil
}
