package validation

import (
	"bufio"
	"fmt"
	"strings"
)

// Violation kinds
const (
	KindLineTooLong     = "line_too_long"
	KindForbiddenPhrase = "forbidden_phrase"
)

// Severities
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// DefaultMaxLineChars approximates one full line of body text in the template
const DefaultMaxLineChars = 110

// Violation is one finding, tied to a source line
type Violation struct {
	Kind      string `json:"kind"`
	Severity  string `json:"severity"`
	Line      int    `json:"line"`
	Details   string `json:"details"`
	CharCount int    `json:"char_count,omitempty"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: line %d: %s", v.Severity, v.Line, v.Details)
}

// Options control which checks run. A zero MaxLineChars disables the length check.
type Options struct {
	MaxLineChars     int
	ForbiddenPhrases []string
}

// DefaultOptions enables the length check only
func DefaultOptions() Options {
	return Options{MaxLineChars: DefaultMaxLineChars}
}

// Lint checks every line of a LaTeX document. Lines inside the preamble are
// skipped since they never reach the page.
func Lint(latex string, opts Options) ([]Violation, error) {
	violations := []Violation{}
	inBody := !strings.Contains(latex, `\begin{document}`)

	scanner := bufio.NewScanner(strings.NewReader(latex))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if !inBody {
			inBody = strings.Contains(line, `\begin{document}`)
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), "%") {
			continue
		}

		if v, ok := checkLineLength(line, lineNum, opts.MaxLineChars); ok {
			violations = append(violations, v)
		}
		if v, ok := checkForbidden(line, lineNum, opts.ForbiddenPhrases); ok {
			violations = append(violations, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &Error{Message: "failed to read LaTeX source", Cause: err}
	}
	return violations, nil
}

// HasErrors reports whether any violation has error severity
func HasErrors(violations []Violation) bool {
	for _, v := range violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}
