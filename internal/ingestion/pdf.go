package ingestion

import (
	"bytes"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// TextExtractor turns an uploaded document into plain text
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// PDFExtractor reads the text layer of a PDF with MuPDF. Scanned PDFs
// without a text layer yield an ExtractionError.
type PDFExtractor struct{}

// ExtractText joins the text of every page with newlines
func (PDFExtractor) ExtractText(data []byte) (string, error) {
	if !IsPDF(data) {
		return "", &ExtractionError{Message: "not a PDF document"}
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", &ExtractionError{Message: "failed to open PDF", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	var sb strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return "", &ExtractionError{Message: "failed to read page", Cause: err}
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", &ExtractionError{Message: "PDF has no text layer"}
	}
	return sb.String(), nil
}

// PlainTextExtractor accepts UTF-8 text as-is
type PlainTextExtractor struct{}

// ExtractText returns the data as a string
func (PlainTextExtractor) ExtractText(data []byte) (string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", &ExtractionError{Message: "document is empty"}
	}
	return string(data), nil
}

// IsPDF reports whether data starts with the PDF magic bytes
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF"))
}

// ExtractorFor picks an extractor by content, falling back to plain text
func ExtractorFor(data []byte) TextExtractor {
	if IsPDF(data) {
		return PDFExtractor{}
	}
	return PlainTextExtractor{}
}
