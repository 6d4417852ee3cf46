package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Source kinds
const (
	KindPDF  = "pdf"
	KindText = "text"
	KindURL  = "url"
)

// Metadata describes where an input document came from. It is logged with
// each run so repeated inputs can be recognized.
type Metadata struct {
	Kind      string `json:"kind"`
	Source    string `json:"source,omitempty"`
	Timestamp string `json:"timestamp"`
	Hash      string `json:"hash"`
	Chars     int    `json:"chars"`
}

// NewMetadata fingerprints content with SHA-256
func NewMetadata(kind, source, content string) *Metadata {
	sum := sha256.Sum256([]byte(content))
	return &Metadata{
		Kind:      kind,
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      hex.EncodeToString(sum[:]),
		Chars:     len(content),
	}
}

// KindOf classifies raw input bytes
func KindOf(data []byte) string {
	if IsPDF(data) {
		return KindPDF
	}
	return KindText
}
