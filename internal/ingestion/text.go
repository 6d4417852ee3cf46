// Package ingestion turns resumes and job descriptions from files, uploads and
// URLs into the plain text the pipeline consumes.
package ingestion

import (
	"context"
	"errors"
	"os"
	"regexp"
	"strings"

	"github.com/jonathan/resume-tailor/internal/fetch"
)

var (
	innerWhitespace = regexp.MustCompile(`[ \t\f\v]+`)
	extraBlankLines = regexp.MustCompile(`\n{3,}`)
	htmlTag         = regexp.MustCompile(`(?i)<(html|body|div|p|ul|ol|li|br|h[1-6]|span|strong|section)\b`)
)

// CleanText normalizes line endings, collapses runs of spaces inside lines and
// keeps at most one blank line between paragraphs. Bullet indentation is kept.
func CleanText(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := extraBlankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.TrimSpace(trimmed) == "" {
		return ""
	}

	body := innerWhitespace.ReplaceAllString(strings.TrimSpace(trimmed), " ")
	if isBulletLine(trimmed) {
		if indent := len(line) - len(trimmed); indent > 0 {
			return strings.Repeat(" ", indent) + body
		}
	}
	return body
}

func isBulletLine(line string) bool {
	for _, marker := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}

// LooksLikeHTML reports whether text contains common block-level markup
func LooksLikeHTML(text string) bool {
	return htmlTag.MatchString(text)
}

// CleanJobDescription converts an HTML job description to text when needed and
// normalizes whitespace. Plain text only gets the whitespace treatment.
func CleanJobDescription(text string) (string, error) {
	if LooksLikeHTML(text) {
		converted, err := fetch.HTMLToText(text)
		if err != nil {
			return "", &ExtractionError{Source: "job description", Message: "invalid HTML", Cause: err}
		}
		text = converted
	}
	return CleanText(text), nil
}

// JobDescriptionFromURL fetches a posting and returns its cleaned description
func JobDescriptionFromURL(ctx context.Context, url string, useBrowser bool) (string, error) {
	text, err := fetch.PostingText(ctx, url, useBrowser)
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

// ReadResume loads a resume from disk, reading PDFs through MuPDF
func ReadResume(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Source: path, Message: "failed to read file", Cause: err}
	}
	text, err := ExtractorFor(data).ExtractText(data)
	if err != nil {
		var extractErr *ExtractionError
		if errors.As(err, &extractErr) && extractErr.Source == "" {
			extractErr.Source = path
		}
		return "", err
	}
	return text, nil
}

// ReadJobDescription loads a job description file, HTML or plain text
func ReadJobDescription(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Source: path, Message: "failed to read file", Cause: err}
	}
	return CleanJobDescription(string(data))
}
