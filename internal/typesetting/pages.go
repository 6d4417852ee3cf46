package typesetting

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// PageCount reports the number of pages in a compiled PDF
func PageCount(pdf []byte) (int, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer func() { _ = doc.Close() }()
	return doc.NumPage(), nil
}
