package llm

import (
	"strings"

	"github.com/tidwall/gjson"
)

// CleanJSONBlock strips markdown fences and any prose around the first JSON
// value in a model response. Text without a balanced JSON value is returned
// trimmed but otherwise unchanged, so schema validation reports it.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if body, ok := unfence(text); ok {
		return body
	}
	if gjson.Valid(text) {
		return text
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	if value := balancedJSON(text[start:]); value != "" {
		return value
	}
	return text
}

// unfence returns the body of a ``` fenced block. An info string such as
// "json" on the opening line is dropped.
func unfence(text string) (string, bool) {
	if !strings.HasPrefix(text, "```") {
		return "", false
	}
	body := strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		info := strings.TrimSpace(body[:nl])
		if len(info) < 20 && !strings.ContainsAny(info, " {[") {
			body = body[nl+1:]
		}
	}
	if end := strings.LastIndex(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body), true
}

// balancedJSON returns the object or array at the start of s up to its
// matching close bracket, or "" when s does not start one or never closes it.
// Brackets inside strings are ignored.
func balancedJSON(s string) string {
	if s == "" {
		return ""
	}
	var open, close byte
	switch s[0] {
	case '{':
		open, close = '{', '}'
	case '[':
		open, close = '[', ']'
	default:
		return ""
	}

	depth := 0
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
