package rendering

import "strings"

// preEscapedAmpersand is passed through unchanged so already-safe input is
// not double-escaped.
const preEscapedAmpersand = `\&`

// EscapeLaTeX escapes special LaTeX characters in text so it can be inserted
// into a document as literal content.
// Special characters: \ { } $ & % # ^ _ ~
//
// The text is scanned once, left to right, so markers introduced for one
// character (the braces in \textbackslash{}, for example) are never
// re-escaped. A literal \& in the input is kept as is.
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)

	for i := 0; i < len(text); {
		if strings.HasPrefix(text[i:], preEscapedAmpersand) {
			result.WriteString(preEscapedAmpersand)
			i += len(preEscapedAmpersand)
			continue
		}

		c := text[i]
		switch c {
		case '\\':
			result.WriteString(`\textbackslash{}`)
		case '{':
			result.WriteString(`\{`)
		case '}':
			result.WriteString(`\}`)
		case '$':
			result.WriteString(`\$`)
		case '&':
			result.WriteString(`\&`)
		case '%':
			result.WriteString(`\%`)
		case '#':
			result.WriteString(`\#`)
		case '^':
			result.WriteString(`\textasciicircum{}`)
		case '_':
			result.WriteString(`\_`)
		case '~':
			result.WriteString(`\textasciitilde{}`)
		default:
			// multi-byte UTF-8 sequences never contain ASCII bytes, so
			// copying byte by byte keeps them intact
			result.WriteByte(c)
		}
		i++
	}

	return result.String()
}
