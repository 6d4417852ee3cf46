package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// \command{content} keeps content, bare \command is dropped
	latexCommandPattern = regexp.MustCompile(`\\([a-zA-Z]+|.)\{([^}]*)\}`)
	bareCommandPattern  = regexp.MustCompile(`\\[a-zA-Z]+\*?`)
	escapedCharPattern  = regexp.MustCompile(`\\([%#_{}&$])`)
	commentPattern      = regexp.MustCompile(`(^|[^\\])%.*$`)
)

func checkLineLength(line string, lineNum, maxChars int) (Violation, bool) {
	if maxChars <= 0 {
		return Violation{}, false
	}
	n := countContentChars(line)
	if n <= maxChars {
		return Violation{}, false
	}
	return Violation{
		Kind:      KindLineTooLong,
		Severity:  SeverityWarning,
		Line:      lineNum,
		Details:   fmt.Sprintf("%d characters, maximum is %d", n, maxChars),
		CharCount: n,
	}, true
}

// countContentChars approximates the printed width of a LaTeX line
func countContentChars(line string) int {
	line = commentPattern.ReplaceAllString(line, "$1")
	// escaped specials print as one character each
	line = escapedCharPattern.ReplaceAllString(line, "\u00b7")
	for latexCommandPattern.MatchString(line) {
		line = latexCommandPattern.ReplaceAllString(line, "$2")
	}
	line = bareCommandPattern.ReplaceAllString(line, "")
	line = strings.NewReplacer("{", "", "}", "", "&", "", "~", " ").Replace(line)
	return len([]rune(strings.TrimSpace(line)))
}
