package validation

import (
	"fmt"
	"strings"
)

func checkForbidden(line string, lineNum int, phrases []string) (Violation, bool) {
	if len(phrases) == 0 {
		return Violation{}, false
	}
	normalized := normalizeForMatching(line)

	for _, phrase := range phrases {
		p := strings.ToLower(strings.TrimSpace(phrase))
		if p == "" {
			continue
		}
		// first match only, one finding per line
		if strings.Contains(normalized, p) {
			return Violation{
				Kind:     KindForbiddenPhrase,
				Severity: SeverityError,
				Line:     lineNum,
				Details:  fmt.Sprintf("contains forbidden phrase %q", phrase),
			}, true
		}
	}
	return Violation{}, false
}

// normalizeForMatching unescapes LaTeX specials and lowercases. Comments are
// cut before unescaping so an escaped percent survives.
func normalizeForMatching(text string) string {
	text = commentPattern.ReplaceAllString(text, "$1")
	text = strings.NewReplacer(
		`\textbackslash{}`, `\`,
		`\textasciitilde{}`, "~",
		`\textasciicircum{}`, "^",
		`\$`, "$", `\&`, "&", `\%`, "%", `\#`, "#", `\_`, "_", `\{`, "{", `\}`, "}",
	).Replace(text)
	return strings.ToLower(text)
}
