// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most n runes, marking the cut with "..."
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// more writes the "... and N more" trailer when items were cut
func more(sb *strings.Builder, total, shown int, noun string) {
	if total > shown {
		fmt.Fprintf(sb, "  ... and %d more %s\n", total-shown, noun)
	}
}

// PrintRecord outputs the contact block and per-section counts of a record
func (p *Printer) PrintRecord(record *types.ResumeRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:     %s\n", record.Name)
	fmt.Fprintf(&sb, "Email:    %s\n", record.Email)
	if record.LinkedIn != nil {
		fmt.Fprintf(&sb, "LinkedIn: %s\n", *record.LinkedIn)
	}
	if record.GitHub != nil {
		fmt.Fprintf(&sb, "GitHub:   %s\n", *record.GitHub)
	}
	sb.WriteString("\n")

	if len(record.Experiences) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(record.Experiences), maxItemsToShow)
		for _, exp := range record.Experiences[:count] {
			fmt.Fprintf(&sb, "  • %s, %s (%s)\n", exp.Role, exp.Company, exp.Duration)
		}
		more(&sb, len(record.Experiences), count, "roles")
	}

	fmt.Fprintf(&sb, "Education: %d  Positions: %d  Certifications: %d",
		len(record.Education), len(record.Positions), len(record.Certifications))

	p.printBox("RESUME RECORD", sb.String())
}

// PrintProjects outputs the tailored projects with their technologies
func (p *Printer) PrintProjects(projects []types.Project) {
	if len(projects) == 0 {
		return
	}

	var sb strings.Builder
	for i, proj := range projects {
		fmt.Fprintf(&sb, "#%d  %s", i+1, proj.Name)
		if proj.Date != "" {
			fmt.Fprintf(&sb, " (%s)", proj.Date)
		}
		sb.WriteString("\n")
		if len(proj.Technologies) > 0 {
			fmt.Fprintf(&sb, "    Tech: %s\n", strings.Join(proj.Technologies, ", "))
		}
		for _, a := range proj.Achievements {
			fmt.Fprintf(&sb, "    • %s\n", a)
		}
		if i < len(projects)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("TAILORED PROJECTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs skill categories in order
func (p *Printer) PrintSkills(skills types.SkillSet) {
	if len(skills) == 0 {
		return
	}

	var sb strings.Builder
	for _, cat := range skills {
		fmt.Fprintf(&sb, "%s: %s\n", cat.Name, strings.Join(cat.Skills, ", "))
	}

	p.printBox("TECHNICAL SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintViolations outputs lint findings, errors first
func (p *Printer) PrintViolations(violations []validation.Violation) {
	if len(violations) == 0 {
		p.printBox("LATEX CHECKS", "✓ No problems found")
		return
	}

	var errs, warns []validation.Violation
	for _, v := range violations {
		if v.Severity == validation.SeverityError {
			errs = append(errs, v)
		} else {
			warns = append(warns, v)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors, %d warnings\n\n", len(errs), len(warns))
	shown := 0
	for _, v := range append(errs, warns...) {
		if shown == maxItemsToShow {
			break
		}
		marker := "!"
		if v.Severity == validation.SeverityError {
			marker = "✗"
		}
		fmt.Fprintf(&sb, "%s line %d: %s\n", marker, v.Line, v.Details)
		shown++
	}
	more(&sb, len(violations), shown, "findings")

	p.printBox("LATEX CHECKS", strings.TrimSuffix(sb.String(), "\n"))
}
